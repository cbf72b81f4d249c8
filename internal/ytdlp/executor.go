package ytdlp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	ytdlplib "github.com/lrstanley/go-ytdlp"

	"github.com/riyanoob/dlp-gui/internal/download"
	"github.com/riyanoob/dlp-gui/internal/model"
)

// DefaultOutputTemplate is the yt-dlp filename template used when the job
// spec does not override it
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// DefaultProgressInterval matches the downstream job throttle
const DefaultProgressInterval = 500 * time.Millisecond

// Option keys understood by this executor. The job spec's Options map is
// opaque to the core; these are the keys this adapter interprets.
const (
	OptFormat            = "format"
	OptMergeOutputFormat = "merge_output_format"
	OptExtractAudio      = "extract_audio"
	OptAudioFormat       = "audio_format"
	OptAudioQuality      = "audio_quality"
	OptWriteSubs         = "write_subs"
	OptWriteAutoSubs     = "write_auto_subs"
	OptSubLangs          = "sub_langs"
	OptSubFormat         = "sub_format"
	OptNoPlaylist        = "no_playlist"
	OptYesPlaylist       = "yes_playlist"
	OptEmbedMetadata     = "embed_metadata"
	OptOutputTemplate    = "outtmpl"
)

const optTrue = "true"

// Executor runs downloads through yt-dlp. It implements download.Executor:
// progress callbacks arrive on the calling goroutine at most once per
// interval, and stop once Execute returns.
type Executor struct {
	progressInterval time.Duration
}

// NewExecutor creates an executor with the default progress interval
func NewExecutor() *Executor {
	return &Executor{progressInterval: DefaultProgressInterval}
}

// SetProgressInterval overrides the raw callback interval
func (e *Executor) SetProgressInterval(interval time.Duration) {
	if interval > 0 {
		e.progressInterval = interval
	}
}

// Execute downloads one URL, forwarding raw progress events, and returns the
// produced file paths.
func (e *Executor) Execute(ctx context.Context, spec model.JobSpec, onProgress func(download.ProgressEvent)) ([]string, error) {
	dl := ytdlplib.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(filepath.Join(spec.DestDir, outputTemplate(spec.Options)))

	dl = applyOptions(dl, spec.Options)

	dl.ProgressFunc(e.progressInterval, func(update ytdlplib.ProgressUpdate) {
		onProgress(convertUpdate(update))
	})

	result, err := dl.Run(ctx, spec.URL)
	if err != nil {
		return nil, classifyRunError(ctx, err)
	}

	return outputPaths(result), nil
}

// applyOptions translates the opaque option map into yt-dlp flags
func applyOptions(dl *ytdlplib.Command, opts map[string]string) *ytdlplib.Command {
	if v := opts[OptFormat]; v != "" {
		dl = dl.Format(v)
	}
	if v := opts[OptMergeOutputFormat]; v != "" {
		dl = dl.MergeOutputFormat(v)
	}
	if opts[OptExtractAudio] == optTrue {
		dl = dl.ExtractAudio()
		if v := opts[OptAudioFormat]; v != "" {
			dl = dl.AudioFormat(v)
		}
		if v := opts[OptAudioQuality]; v != "" {
			dl = dl.AudioQuality(v)
		}
	}
	if opts[OptWriteSubs] == optTrue {
		dl = dl.WriteSubs()
	}
	if opts[OptWriteAutoSubs] == optTrue {
		dl = dl.WriteAutoSubs()
	}
	if v := opts[OptSubLangs]; v != "" {
		dl = dl.SubLangs(v)
	}
	if v := opts[OptSubFormat]; v != "" {
		dl = dl.SubFormat(v)
	}
	if opts[OptNoPlaylist] == optTrue {
		dl = dl.NoPlaylist()
	}
	if opts[OptYesPlaylist] == optTrue {
		dl = dl.YesPlaylist()
	}
	if opts[OptEmbedMetadata] == optTrue {
		dl = dl.EmbedMetadata()
	}
	return dl
}

func outputTemplate(opts map[string]string) string {
	if v := opts[OptOutputTemplate]; v != "" {
		return v
	}
	return DefaultOutputTemplate
}

// convertUpdate maps a yt-dlp progress update to the core event shape
func convertUpdate(update ytdlplib.ProgressUpdate) download.ProgressEvent {
	ev := download.ProgressEvent{
		Phase:           mapStatus(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Speed:           computeSpeed(update.Started, int64(update.DownloadedBytes)),
		ETASec:          etaSeconds(update.ETA()),
		Filename:        update.Filename,
	}
	if ev.Phase == download.PhaseError {
		ev.Err = "download error reported by yt-dlp"
	}
	return ev
}

// mapStatus collapses yt-dlp's status set into the three core phases.
// Pre-processing and post-processing stages count as downloading: bytes may
// still move and the file is not final yet.
func mapStatus(status ytdlplib.ProgressStatus) download.ProgressPhase {
	switch status {
	case ytdlplib.ProgressStatusFinished:
		return download.PhaseFinished
	case ytdlplib.ProgressStatusError:
		return download.PhaseError
	default:
		return download.PhaseDownloading
	}
}

// computeSpeed derives an average bytes/sec from the transfer start time
func computeSpeed(started time.Time, downloadedBytes int64) float64 {
	if started.IsZero() || downloadedBytes <= 0 {
		return 0
	}
	elapsed := time.Since(started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(downloadedBytes) / elapsed
}

// etaSeconds converts the library ETA into whole seconds, unknown when the
// library cannot estimate
func etaSeconds(eta time.Duration) int {
	if eta <= 0 {
		return model.UnknownETA
	}
	return int(eta.Seconds())
}

// outputPaths collects the final file paths from the yt-dlp result
func outputPaths(result *ytdlplib.Result) []string {
	if result == nil {
		return nil
	}
	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range info {
		if entry != nil && entry.Filename != nil && *entry.Filename != "" {
			paths = append(paths, *entry.Filename)
		}
	}
	return paths
}

// classifyRunError maps a yt-dlp run failure to a classified error. Exact
// messages are preserved so callers can surface them unchanged.
func classifyRunError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return &download.Error{Kind: download.KindCancelled, Message: "download cancelled", Cause: err}
	}

	lower := strings.ToLower(err.Error())
	for _, marker := range []string{"no space left", "permission denied", "read-only file system", "disk full"} {
		if strings.Contains(lower, marker) {
			return &download.Error{Kind: download.KindStorage, Message: err.Error(), Cause: err}
		}
	}

	return &download.Error{Kind: download.KindNetwork, Message: err.Error(), Cause: err}
}
