package ui

import (
	"fmt"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/riyanoob/dlp-gui/internal/model"
)

// TaskRow represents a compact job row widget
type TaskRow struct {
	widget.BaseWidget

	jobID  string
	url    string
	sample model.ProgressSample

	// UI components
	titleLabel  *widget.Label
	statusLabel *widget.Label
	speedLabel  *widget.Label
	progressBar *widget.ProgressBar

	// Action buttons
	pauseBtn  *widget.Button
	cancelBtn *widget.Button
	openBtn   *widget.Button // reveal in file manager
	playBtn   *widget.Button // open file with default app

	// Callbacks
	onPauseResume func(jobID string)
	onCancel      func(jobID string)
	onReveal      func(filePath string)
	onOpen        func(filePath string)
}

// NewTaskRow creates a new job row widget
func NewTaskRow(jobID, url string) *TaskRow {
	tr := &TaskRow{
		jobID: jobID,
		url:   url,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.Update(model.ProgressSample{JobID: jobID, State: model.StatePending})
	return tr
}

// JobID returns the job this row renders
func (tr *TaskRow) JobID() string {
	return tr.jobID
}

// URL returns the source URL of the job
func (tr *TaskRow) URL() string {
	return tr.url
}

// Sample returns the most recently rendered sample
func (tr *TaskRow) Sample() model.ProgressSample {
	return tr.sample
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onPauseResume func(jobID string),
	onCancel func(jobID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
) {
	tr.onPauseResume = onPauseResume
	tr.onCancel = onCancel
	tr.onReveal = onReveal
	tr.onOpen = onOpen
}

// Update renders a new progress sample. Stale samples are ignored.
func (tr *TaskRow) Update(sample model.ProgressSample) {
	if sample.Seq > 0 && sample.Seq <= tr.sample.Seq {
		return
	}
	tr.sample = sample

	tr.titleLabel.SetText(tr.displayTitle())
	tr.updateStatus()
	tr.updateProgress()
	tr.updateButtons()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.speedLabel = widget.NewLabel("")
	tr.speedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.Min = 0
	tr.progressBar.Max = 100

	tr.pauseBtn = widget.NewButton(IconPause, func() {
		if tr.onPauseResume != nil {
			tr.onPauseResume(tr.jobID)
		}
	})
	tr.cancelBtn = widget.NewButton(IconStop, func() {
		if tr.onCancel != nil {
			tr.onCancel(tr.jobID)
		}
	})
	tr.openBtn = widget.NewButton(IconFolder, func() {
		if tr.onReveal != nil && tr.sample.Filename != "" {
			tr.onReveal(tr.sample.Filename)
		}
	})
	tr.playBtn = widget.NewButton(IconPlay, func() {
		if tr.onOpen != nil && tr.sample.Filename != "" {
			tr.onOpen(tr.sample.Filename)
		}
	})
}

// displayTitle prefers the output filename over the source URL
func (tr *TaskRow) displayTitle() string {
	if tr.sample.Filename != "" {
		return filepath.Base(tr.sample.Filename)
	}
	return tr.url
}

// updateStatus sets the status label text and importance for the state
func (tr *TaskRow) updateStatus() {
	switch tr.sample.State {
	case model.StatePending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " queued")
	case model.StateRunning:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " downloading")
	case model.StatePaused:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPause + " paused")
	case model.StateCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText("completed")
	case model.StateFailed:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " failed")
	case model.StateCancelled:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconStop + " cancelled")
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(string(tr.sample.State))
	}
}

// updateProgress sets the bar and the speed/ETA line
func (tr *TaskRow) updateProgress() {
	progress := tr.sample.Progress
	if tr.sample.State == model.StateCompleted {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	tr.progressBar.SetValue(progress)

	switch tr.sample.State {
	case model.StateRunning:
		text := model.FormatSpeed(tr.sample.Speed)
		if tr.sample.ETASec != model.UnknownETA {
			text += MiddleDotSeparator + model.FormatETA(tr.sample.ETASec)
		}
		if tr.sample.TotalBytes != model.UnknownTotal {
			text += MiddleDotSeparator + fmt.Sprintf("%s / %s",
				model.FormatBytes(tr.sample.DownloadedBytes), model.FormatBytes(tr.sample.TotalBytes))
		}
		tr.speedLabel.SetText(text)
	case model.StateFailed:
		tr.speedLabel.SetText(tr.sample.Error)
	case model.StateCompleted:
		if tr.sample.DownloadedBytes > 0 {
			tr.speedLabel.SetText(model.FormatBytes(tr.sample.DownloadedBytes))
		} else {
			tr.speedLabel.SetText("")
		}
	default:
		tr.speedLabel.SetText(DashPlaceholder)
	}
}

// updateButtons enables the actions valid for the current state
func (tr *TaskRow) updateButtons() {
	switch tr.sample.State {
	case model.StateRunning:
		tr.pauseBtn.SetText(IconPause)
		tr.pauseBtn.Enable()
		tr.cancelBtn.Enable()
	case model.StatePaused:
		tr.pauseBtn.SetText(IconPlay)
		tr.pauseBtn.Enable()
		tr.cancelBtn.Enable()
	case model.StatePending:
		tr.pauseBtn.SetText(IconPause)
		tr.pauseBtn.Disable()
		tr.cancelBtn.Enable()
	default: // terminal
		tr.pauseBtn.SetText(IconPause)
		tr.pauseBtn.Disable()
		tr.cancelBtn.Disable()
	}

	if tr.sample.State == model.StateCompleted && tr.sample.Filename != "" {
		tr.openBtn.Enable()
		tr.playBtn.Enable()
	} else {
		tr.openBtn.Disable()
		tr.playBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	actionRow := container.NewHBox(tr.pauseBtn, tr.cancelBtn, tr.openBtn, tr.playBtn)
	rightSide := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		container.NewHBox(
			fixedWidth(ProgressBarWidth, tr.progressBar),
			fixedWidth(SpeedLabelWidth, tr.speedLabel),
		),
	)
	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, tr.titleLabel)

	layout := container.NewVBox(mainContent, widget.NewSeparator())
	return widget.NewSimpleRenderer(layout)
}
