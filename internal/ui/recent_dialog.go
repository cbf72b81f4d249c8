package ui

import (
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/riyanoob/dlp-gui/internal/model"
	"github.com/riyanoob/dlp-gui/internal/platform"
	"github.com/riyanoob/dlp-gui/internal/recent"
)

// ShowRecentDialog displays the remembered downloads with reveal/open actions
func ShowRecentDialog(store *recent.Store, window fyne.Window) {
	items := store.Items()

	if len(items) == 0 {
		dialog.ShowInformation("Recent Downloads", "No downloads yet.", window)
		return
	}

	rows := container.NewVBox()
	for _, item := range items {
		item := item

		title := item.Title
		if title == "" {
			title = filepath.Base(item.FilePath)
		}
		titleLabel := widget.NewLabel(title)
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}
		titleLabel.Truncation = fyne.TextTruncateEllipsis

		detail := item.DownloadedAt.Format("2006-01-02 15:04")
		if item.FileSize > 0 {
			detail += MiddleDotSeparator + model.FormatBytes(item.FileSize)
		}
		detailLabel := widget.NewLabel(detail)

		revealBtn := widget.NewButton(IconFolder, func() {
			if err := platform.OpenFileInManager(item.FilePath); err != nil {
				log.Printf("Failed to reveal recent file %s: %v", item.FilePath, err)
			}
		})
		openBtn := widget.NewButton(IconPlay, func() {
			if err := platform.OpenFileWithDefaultApp(item.FilePath); err != nil {
				log.Printf("Failed to open recent file %s: %v", item.FilePath, err)
			}
		})

		row := container.NewBorder(nil, nil, nil,
			container.NewHBox(revealBtn, openBtn),
			container.NewVBox(titleLabel, detailLabel))
		rows.Add(row)
		rows.Add(widget.NewSeparator())
	}

	content := container.NewVScroll(rows)

	d := dialog.NewCustom("Recent Downloads", "Close", content, window)
	d.Resize(fyne.NewSize(RecentDlgWidth, RecentDlgHeight))
	d.Show()
}
