package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/riyanoob/dlp-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyFormatPreset       = "format_preset"
	KeyCustomFormat       = "custom_format"
	KeyFilenameTemplate   = "filename_template"
	KeyWriteSubtitles     = "write_subtitles"
	KeySubtitleLangs      = "subtitle_languages"
	KeyProgressInterval   = "progress_interval_ms"
	KeyRecentLimit        = "recent_limit"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 3
	DefaultFilenameTemplate   = "%(title)s.%(ext)s"
	DefaultSubtitleLangs      = "en"
	DefaultProgressIntervalMs = 500
	DefaultRecentLimit        = 20
	DefaultAutoRevealComplete = true
)

// Parallel download bounds
const (
	MinParallel = 1
	MaxParallel = 10
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < MinParallel {
		count = MinParallel
	}
	if count > MaxParallel {
		count = MaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetFormatPreset returns the configured format preset
func (s *Settings) GetFormatPreset() FormatPreset {
	preset := FormatPreset(s.app.Preferences().String(KeyFormatPreset))
	if !preset.Valid() {
		s.SetFormatPreset(DefaultFormatPreset)
		return DefaultFormatPreset
	}
	return preset
}

// SetFormatPreset sets the format preset
func (s *Settings) SetFormatPreset(preset FormatPreset) {
	s.app.Preferences().SetString(KeyFormatPreset, string(preset))
}

// GetCustomFormat returns the yt-dlp format string used by the custom preset
func (s *Settings) GetCustomFormat() string {
	return s.app.Preferences().String(KeyCustomFormat)
}

// SetCustomFormat sets the custom yt-dlp format string
func (s *Settings) SetCustomFormat(format string) {
	s.app.Preferences().SetString(KeyCustomFormat, format)
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetWriteSubtitles returns whether subtitle downloading is enabled
func (s *Settings) GetWriteSubtitles() bool {
	return s.app.Preferences().Bool(KeyWriteSubtitles)
}

// SetWriteSubtitles toggles subtitle downloading
func (s *Settings) SetWriteSubtitles(enabled bool) {
	s.app.Preferences().SetBool(KeyWriteSubtitles, enabled)
}

// GetSubtitleLangs returns the comma-separated subtitle language list
func (s *Settings) GetSubtitleLangs() string {
	langs := s.app.Preferences().String(KeySubtitleLangs)
	if langs == "" {
		return DefaultSubtitleLangs
	}
	return langs
}

// SetSubtitleLangs sets the subtitle language list
func (s *Settings) SetSubtitleLangs(langs string) {
	s.app.Preferences().SetString(KeySubtitleLangs, langs)
}

// GetProgressInterval returns the minimum delay between progress updates
// forwarded for a running download
func (s *Settings) GetProgressInterval() time.Duration {
	ms := s.app.Preferences().Int(KeyProgressInterval)
	if ms <= 0 {
		ms = DefaultProgressIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// SetProgressInterval sets the progress update interval
func (s *Settings) SetProgressInterval(interval time.Duration) {
	ms := int(interval / time.Millisecond)
	if ms <= 0 {
		ms = DefaultProgressIntervalMs
	}
	s.app.Preferences().SetInt(KeyProgressInterval, ms)
}

// GetRecentLimit returns how many recent downloads are retained
func (s *Settings) GetRecentLimit() int {
	limit := s.app.Preferences().Int(KeyRecentLimit)
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return limit
}

// SetRecentLimit sets the recent downloads retention count
func (s *Settings) SetRecentLimit(limit int) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	s.app.Preferences().SetInt(KeyRecentLimit, limit)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}
