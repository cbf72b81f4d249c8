package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/riyanoob/dlp-gui/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onApply  func()

	// UI components
	downloadDirEntry  *widget.Entry
	maxParallelEntry  *widget.Entry
	presetSelect      *widget.Select
	customFormatEntry *widget.Entry
	filenameEntry     *widget.Entry
	subtitlesCheck    *widget.Check
	subtitleLangEntry *widget.Entry
	autoRevealCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onApply runs after a
// confirmed save so the caller can pick up changed values.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onApply func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onApply:  onApply,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// Max parallel downloads
	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	// Format preset selection
	presetOptions := []string{}
	for _, preset := range config.FormatPresetOptions() {
		presetOptions = append(presetOptions, string(preset))
	}
	sd.presetSelect = widget.NewSelect(presetOptions, func(selected string) {
		sd.updateCustomFormatVisibility(config.FormatPreset(selected))
	})

	// Custom format string, only relevant for the custom preset
	sd.customFormatEntry = widget.NewEntry()
	sd.customFormatEntry.SetPlaceHolder("yt-dlp format string, e.g. bestvideo+bestaudio")

	// Filename template
	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder("%(title)s.%(ext)s")

	// Subtitles
	sd.subtitlesCheck = widget.NewCheck("Download subtitles", nil)
	sd.subtitleLangEntry = widget.NewEntry()
	sd.subtitleLangEntry.SetPlaceHolder("en,es")

	// Auto-reveal completed downloads
	sd.autoRevealCheck = widget.NewCheck("Reveal completed downloads in file manager", nil)

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Max Parallel Downloads:"),
		sd.maxParallelEntry,

		widget.NewLabel("Format Preset:"),
		sd.presetSelect,
		sd.customFormatEntry,

		widget.NewLabel("Filename Template:"),
		sd.filenameEntry,

		widget.NewSeparator(),
		sd.subtitlesCheck,
		widget.NewLabel("Subtitle Languages:"),
		sd.subtitleLangEntry,

		widget.NewSeparator(),
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDlgWidth, SettingsDlgHeight))
}

// updateCustomFormatVisibility shows the format entry only for the custom preset
func (sd *SettingsDialog) updateCustomFormatVisibility(preset config.FormatPreset) {
	if preset == config.PresetCustom {
		sd.customFormatEntry.Show()
	} else {
		sd.customFormatEntry.Hide()
	}
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.presetSelect.SetSelected(string(sd.settings.GetFormatPreset()))
	sd.customFormatEntry.SetText(sd.settings.GetCustomFormat())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.subtitlesCheck.SetChecked(sd.settings.GetWriteSubtitles())
	sd.subtitleLangEntry.SetText(sd.settings.GetSubtitleLangs())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.updateCustomFormatVisibility(sd.settings.GetFormatPreset())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}

	if sd.maxParallelEntry.Text != "" {
		if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
			sd.settings.SetMaxParallelDownloads(maxParallel)
		}
	}

	if sd.presetSelect.Selected != "" {
		sd.settings.SetFormatPreset(config.FormatPreset(sd.presetSelect.Selected))
	}
	sd.settings.SetCustomFormat(sd.customFormatEntry.Text)

	if sd.filenameEntry.Text != "" {
		sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	}

	sd.settings.SetWriteSubtitles(sd.subtitlesCheck.Checked)
	if sd.subtitleLangEntry.Text != "" {
		sd.settings.SetSubtitleLangs(sd.subtitleLangEntry.Text)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onApply != nil {
		sd.onApply()
	}
}
