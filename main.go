package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/riyanoob/dlp-gui/internal/config"
	"github.com/riyanoob/dlp-gui/internal/download"
	"github.com/riyanoob/dlp-gui/internal/filter"
	"github.com/riyanoob/dlp-gui/internal/platform"
	"github.com/riyanoob/dlp-gui/internal/recent"
	"github.com/riyanoob/dlp-gui/internal/ui"
	"github.com/riyanoob/dlp-gui/internal/ytdlp"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.riyanoob.dlp-gui"
	AppName = "DLP GUI"

	WindowWidth  = 860
	WindowHeight = 620
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("Failed to ensure downloads dir: %v", err)
	}

	configDir, err := platform.GetConfigDir()
	if err != nil {
		log.Printf("Failed to resolve config dir, using downloads dir: %v", err)
		configDir = downloadsDir
	}
	recentStore := recent.NewStoreInDir(configDir, settings.GetRecentLimit())
	contentFilter := filter.New()

	executor := ytdlp.NewExecutor()
	executor.SetProgressInterval(settings.GetProgressInterval())

	cfg := download.DefaultConfig()
	cfg.MaxConcurrent = settings.GetMaxParallelDownloads()
	cfg.ProgressInterval = settings.GetProgressInterval()
	scheduler := download.NewScheduler(executor, cfg)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, scheduler, settings, contentFilter, recentStore)

	myWindow.SetOnClosed(func() {
		rootUI.Close()
		scheduler.CancelAll()
		scheduler.Stop()
	})

	myWindow.ShowAndRun()
}
