package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/riyanoob/dlp-gui/internal/config"
	"github.com/riyanoob/dlp-gui/internal/download"
	"github.com/riyanoob/dlp-gui/internal/filter"
	"github.com/riyanoob/dlp-gui/internal/model"
	"github.com/riyanoob/dlp-gui/internal/platform"
	"github.com/riyanoob/dlp-gui/internal/recent"
)

// Notification behavior
const (
	NotificationAutoHide = 5 * time.Second
)

// StatusFilter enumerates visible subsets of jobs in the UI
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterActive
	FilterQueued
	FilterCompleted
	FilterErrors
)

// String returns the display name for a status filter
func (sf StatusFilter) String() string {
	switch sf {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterQueued:
		return "Queued"
	case FilterCompleted:
		return "Completed"
	case FilterErrors:
		return "Errors"
	default:
		return "Unknown"
	}
}

// statusFilters lists the filters in tab order
func statusFilters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterActive, FilterQueued, FilterCompleted, FilterErrors}
}

// matches reports whether a job in the given state belongs to this filter
func (sf StatusFilter) matches(state model.JobState) bool {
	switch sf {
	case FilterActive:
		return state.IsActive()
	case FilterQueued:
		return state == model.StatePending
	case FilterCompleted:
		return state == model.StateCompleted
	case FilterErrors:
		return state == model.StateFailed
	default:
		return true
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	app    fyne.App

	scheduler     *download.Scheduler
	settings      *config.Settings
	contentFilter *filter.ContentFilter
	recentStore   *recent.Store
	prober        *platform.PlaylistProber

	urlEntry     *widget.Entry
	presetSelect *widget.Select
	downloadBtn  *widget.Button
	filterSelect *widget.Select
	statsLabel   *widget.Label
	rowList      *fyne.Container

	currentFilter StatusFilter

	// rows is keyed by job ID and mutated only on the Fyne thread
	rows     map[string]*TaskRow
	rowOrder []string

	notificationLabel *widget.Label
	notificationHide  *time.Timer

	stop chan struct{}
}

// NewRootUI creates and initializes the main UI
func NewRootUI(
	window fyne.Window,
	app fyne.App,
	scheduler *download.Scheduler,
	settings *config.Settings,
	contentFilter *filter.ContentFilter,
	recentStore *recent.Store,
) *RootUI {
	ui := &RootUI{
		window:        window,
		app:           app,
		scheduler:     scheduler,
		settings:      settings,
		contentFilter: contentFilter,
		recentStore:   recentStore,
		prober:        platform.NewPlaylistProber(),
		rows:          make(map[string]*TaskRow),
		stop:          make(chan struct{}),
	}

	ui.setupUI()
	go ui.consumeEvents()
	return ui
}

// Close stops the event consumer
func (ui *RootUI) Close() {
	close(ui.stop)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Enter video or playlist URL")
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	presetOptions := []string{}
	for _, preset := range config.FormatPresetOptions() {
		presetOptions = append(presetOptions, string(preset))
	}
	ui.presetSelect = widget.NewSelect(presetOptions, func(selected string) {
		ui.settings.SetFormatPreset(config.FormatPreset(selected))
	})
	ui.presetSelect.SetSelected(string(ui.settings.GetFormatPreset()))

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	recentBtn := widget.NewButton(IconRecent, ui.onShowRecent)
	recentBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil,
		container.NewHBox(settingsBtn, recentBtn),
		container.NewHBox(ui.presetSelect, ui.downloadBtn),
		ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Hide()

	// Bulk controls and filter tabs
	pauseAllBtn := widget.NewButton("Pause All", func() {
		paused := ui.scheduler.PauseAll()
		log.Printf("Paused %d downloads", paused)
	})
	resumeAllBtn := widget.NewButton("Resume All", func() {
		resumed := ui.scheduler.ResumeAll()
		log.Printf("Resumed %d downloads", resumed)
	})
	cancelAllBtn := widget.NewButton("Cancel All", ui.onCancelAll)

	filterOptions := []string{}
	for _, sf := range statusFilters() {
		filterOptions = append(filterOptions, sf.String())
	}
	ui.filterSelect = widget.NewSelect(filterOptions, func(selected string) {
		for _, sf := range statusFilters() {
			if sf.String() == selected {
				ui.currentFilter = sf
				break
			}
		}
		ui.applyFilter()
	})
	ui.filterSelect.SetSelected(FilterAll.String())

	toolbar := container.NewHBox(pauseAllBtn, resumeAllBtn, cancelAllBtn, widget.NewSeparator(), ui.filterSelect)

	ui.rowList = container.NewVBox()
	scroll := container.NewVScroll(ui.rowList)

	ui.statsLabel = widget.NewLabel("")
	ui.statsLabel.TextStyle = fyne.TextStyle{Monospace: true}

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationLabel, toolbar),
		ui.statsLabel,
		nil, nil,
		scroll,
	)
	ui.window.SetContent(content)
}

// createMenu builds the main menu
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Settings", ui.onShowSettings),
		fyne.NewMenuItem("Recent Downloads", ui.onShowRecent),
		fyne.NewMenuItem("Open Downloads Folder", func() {
			dir := ui.settings.GetDownloadDirectory()
			if err := platform.OpenFileInManager(dir); err != nil {
				log.Printf("Failed to open downloads folder: %v", err)
			}
		}),
	)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// validateURL checks that the entry holds a plausible http(s) URL
func (ui *RootUI) validateURL(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parsed, err := url.Parse(text)
	if err != nil {
		return fmt.Errorf("invalid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http or https")
	}
	return nil
}

// onDownloadClick validates, filters, and submits the entered URL
func (ui *RootUI) onDownloadClick() {
	rawURL := strings.TrimSpace(ui.urlEntry.Text)
	if rawURL == "" {
		return
	}
	if err := ui.validateURL(rawURL); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	decision := ui.contentFilter.Check(rawURL)
	if decision.Blocked {
		dialog.ShowInformation("Blocked", "This URL is blocked: "+decision.Reason, ui.window)
		return
	}

	ui.urlEntry.SetText("")

	if platform.IsPlaylistURL(rawURL) {
		ui.submitPlaylist(rawURL)
		return
	}
	ui.submitURL(rawURL)
}

// submitURL enqueues a single download
func (ui *RootUI) submitURL(rawURL string) {
	spec := model.JobSpec{
		URL:     rawURL,
		DestDir: ui.settings.GetDownloadDirectory(),
		Options: ui.settings.BuildOptions(),
	}
	id := ui.scheduler.Submit(spec)
	ui.addRow(id, rawURL)
	log.Printf("Submitted download %s for %s", id, rawURL)
}

// submitPlaylist probes the playlist off the UI thread, then enqueues each
// video as its own job
func (ui *RootUI) submitPlaylist(rawURL string) {
	ui.showNotification("Resolving playlist...")
	go func() {
		playlist, err := ui.prober.Probe(context.Background(), rawURL)
		fyne.Do(func() {
			if err != nil {
				ui.showNotification("Playlist probe failed: " + err.Error())
				log.Printf("Playlist probe failed for %s: %v", rawURL, err)
				return
			}
			for _, videoURL := range playlist.URLs() {
				if ui.contentFilter.Check(videoURL).Blocked {
					continue
				}
				ui.submitURL(videoURL)
			}
			ui.showNotification(fmt.Sprintf("Queued %d videos from %s", len(playlist.Videos), playlist.Title))
		})
	}()
}

// onCancelAll asks for confirmation before draining the queue
func (ui *RootUI) onCancelAll() {
	dialog.ShowConfirm("Cancel All", "Cancel all queued and running downloads?", func(confirmed bool) {
		if !confirmed {
			return
		}
		cancelled := ui.scheduler.CancelAll()
		log.Printf("Cancelled %d downloads", cancelled)
	}, ui.window)
}

// onShowSettings opens the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, func() {
		ui.scheduler.SetMaxConcurrent(ui.settings.GetMaxParallelDownloads())
		ui.presetSelect.SetSelected(string(ui.settings.GetFormatPreset()))
	}).Show()
}

// onShowRecent opens the recent downloads dialog
func (ui *RootUI) onShowRecent() {
	ShowRecentDialog(ui.recentStore, ui.window)
}

// addRow registers a new row at the top of the list
func (ui *RootUI) addRow(id, rawURL string) {
	row := NewTaskRow(id, rawURL)
	row.SetCallbacks(ui.onPauseResume, ui.onCancelJob, ui.onRevealFile, ui.onOpenFile)
	ui.rows[id] = row
	ui.rowOrder = append([]string{id}, ui.rowOrder...)

	ui.rowList.Objects = nil
	for _, rowID := range ui.rowOrder {
		ui.rowList.Add(ui.rows[rowID])
	}
	ui.applyFilter()
}

// applyFilter shows only the rows matching the current filter
func (ui *RootUI) applyFilter() {
	for _, row := range ui.rows {
		if ui.currentFilter.matches(row.Sample().State) {
			row.Show()
		} else {
			row.Hide()
		}
	}
	ui.rowList.Refresh()
}

// onPauseResume toggles a single job between running and paused
func (ui *RootUI) onPauseResume(jobID string) {
	row, ok := ui.rows[jobID]
	if !ok {
		return
	}
	if row.Sample().State == model.StatePaused {
		ui.scheduler.Resume(jobID)
	} else {
		ui.scheduler.Pause(jobID)
	}
}

// onCancelJob cancels one job
func (ui *RootUI) onCancelJob(jobID string) {
	ui.scheduler.Cancel(jobID)
}

// onRevealFile reveals the file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Failed to reveal file %s: %v", filePath, err)
		ui.showNotification("Could not reveal file: " + err.Error())
	}
}

// onOpenFile opens the file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Failed to open file %s: %v", filePath, err)
		ui.showNotification("Could not open file: " + err.Error())
	}
}

// consumeEvents drains the scheduler's event stream and applies updates on
// the Fyne thread
func (ui *RootUI) consumeEvents() {
	events := ui.scheduler.Events()
	for {
		select {
		case <-ui.stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			fyne.Do(func() {
				ui.handleEvent(ev)
			})
		}
	}
}

// handleEvent applies one scheduler event. Runs on the Fyne thread.
func (ui *RootUI) handleEvent(ev download.Event) {
	switch ev.Type {
	case download.EventProgress:
		ui.handleSample(ev.Sample)
	case download.EventStats:
		ui.statsLabel.SetText(fmt.Sprintf("Active: %d%sQueued: %d%sFinished: %d",
			ev.Stats.Active, MiddleDotSeparator, ev.Stats.Queued, MiddleDotSeparator, ev.Stats.Completed))
	case download.EventSchedulerError:
		if ev.Err != nil {
			ui.showNotification(ev.Err.Error())
		}
	}
}

// handleSample routes a progress sample to its row and records completions
func (ui *RootUI) handleSample(sample model.ProgressSample) {
	row, ok := ui.rows[sample.JobID]
	if !ok {
		return
	}
	previous := row.Sample().State
	row.Update(sample)

	if sample.State != previous {
		ui.applyFilter()
	}

	if sample.State == model.StateCompleted && previous != model.StateCompleted {
		ui.recordCompletion(row, sample)
	}
}

// recordCompletion stores the finished download and optionally reveals it
func (ui *RootUI) recordCompletion(row *TaskRow, sample model.ProgressSample) {
	if sample.Filename == "" {
		return
	}
	preset := ui.settings.GetFormatPreset()
	item := recent.Item{
		FilePath:  sample.Filename,
		URL:       row.URL(),
		Title:     row.displayTitle(),
		FileSize:  sample.DownloadedBytes,
		AudioOnly: preset.AudioOnly(),
	}
	if err := ui.recentStore.Add(item); err != nil {
		log.Printf("Failed to record recent download: %v", err)
	}

	if ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealFile(sample.Filename)
	}
}

// showNotification displays a transient message under the URL entry
func (ui *RootUI) showNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationLabel.Show()

	if ui.notificationHide != nil {
		ui.notificationHide.Stop()
	}
	ui.notificationHide = time.AfterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			ui.notificationLabel.Hide()
		})
	})
}
