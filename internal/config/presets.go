package config

import (
	"github.com/riyanoob/dlp-gui/internal/ytdlp"
)

// Format presets offered in the UI
type FormatPreset string

const (
	PresetBestVideoAudio FormatPreset = "Best Quality (Video + Audio)"
	PresetBestVideoOnly  FormatPreset = "Best Video Only"
	PresetBestAudioOnly  FormatPreset = "Best Audio Only"
	Preset720p           FormatPreset = "720p Video + Audio"
	Preset480p           FormatPreset = "480p Video + Audio"
	PresetMP3            FormatPreset = "MP3 Audio Only"
	PresetCustom         FormatPreset = "Custom Format"
)

// DefaultFormatPreset is used when nothing is configured yet
const DefaultFormatPreset = PresetBestVideoAudio

// DefaultCustomFormat is the fallback format string for the custom preset
const DefaultCustomFormat = "best"

// FormatPresetOptions returns the presets in display order
func FormatPresetOptions() []FormatPreset {
	return []FormatPreset{
		PresetBestVideoAudio,
		PresetBestVideoOnly,
		PresetBestAudioOnly,
		Preset720p,
		Preset480p,
		PresetMP3,
		PresetCustom,
	}
}

// Valid reports whether p is one of the known presets
func (p FormatPreset) Valid() bool {
	for _, known := range FormatPresetOptions() {
		if p == known {
			return true
		}
	}
	return false
}

// AudioOnly reports whether the preset produces audio files
func (p FormatPreset) AudioOnly() bool {
	return p == PresetBestAudioOnly || p == PresetMP3
}

// Options translates the preset into executor option keys. customFormat is
// consulted only for PresetCustom.
func (p FormatPreset) Options(customFormat string) map[string]string {
	switch p {
	case PresetBestVideoAudio:
		return map[string]string{
			ytdlp.OptFormat:            "bestvideo[height<=1080]+bestaudio/best[height<=1080]",
			ytdlp.OptMergeOutputFormat: "mp4",
		}
	case PresetBestVideoOnly:
		return map[string]string{
			ytdlp.OptFormat:            "bestvideo[height<=1080]",
			ytdlp.OptMergeOutputFormat: "mp4",
		}
	case PresetBestAudioOnly:
		return map[string]string{
			ytdlp.OptFormat:       "bestaudio/best",
			ytdlp.OptExtractAudio: "true",
			ytdlp.OptAudioFormat:  "mp3",
			ytdlp.OptAudioQuality: "192",
		}
	case Preset720p:
		return map[string]string{
			ytdlp.OptFormat:            "bestvideo[height<=720]+bestaudio/best[height<=720]",
			ytdlp.OptMergeOutputFormat: "mp4",
		}
	case Preset480p:
		return map[string]string{
			ytdlp.OptFormat:            "bestvideo[height<=480]+bestaudio/best[height<=480]",
			ytdlp.OptMergeOutputFormat: "mp4",
		}
	case PresetMP3:
		return map[string]string{
			ytdlp.OptFormat:       "bestaudio/best",
			ytdlp.OptExtractAudio: "true",
			ytdlp.OptAudioFormat:  "mp3",
			ytdlp.OptAudioQuality: "320",
		}
	case PresetCustom:
		format := customFormat
		if format == "" {
			format = DefaultCustomFormat
		}
		return map[string]string{
			ytdlp.OptFormat:            format,
			ytdlp.OptMergeOutputFormat: "mp4",
		}
	default:
		return PresetBestVideoAudio.Options("")
	}
}

// SubtitleOptions returns executor options that enable subtitle downloading
// for the given comma-separated language list
func SubtitleOptions(langs string) map[string]string {
	if langs == "" {
		langs = DefaultSubtitleLangs
	}
	return map[string]string{
		ytdlp.OptWriteSubs:     "true",
		ytdlp.OptWriteAutoSubs: "true",
		ytdlp.OptSubLangs:      langs,
		ytdlp.OptSubFormat:     "srt",
	}
}

// BuildOptions assembles the executor option map for one download from the
// current settings
func (s *Settings) BuildOptions() map[string]string {
	preset := s.GetFormatPreset()
	options := preset.Options(s.GetCustomFormat())
	options[ytdlp.OptOutputTemplate] = s.GetFilenameTemplate()
	options[ytdlp.OptNoPlaylist] = "true"
	options[ytdlp.OptEmbedMetadata] = "true"
	if s.GetWriteSubtitles() && !preset.AudioOnly() {
		for key, value := range SubtitleOptions(s.GetSubtitleLangs()) {
			options[key] = value
		}
	}
	return options
}
