package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// Unknown value markers used in progress samples
const (
	// UnknownETA marks an ETA that the executor could not estimate
	UnknownETA = -1

	// UnknownTotal marks an unknown total size (live streams, some extractors)
	UnknownTotal = 0
)

// JobSpec is the caller-supplied, immutable description of one download.
// Options is an opaque key/value map interpreted by the executor adapter
// (format selection, audio extraction, subtitles and similar switches).
type JobSpec struct {
	URL     string
	DestDir string
	Options map[string]string
}

// ProgressSample is one point-in-time snapshot of a job's transfer status.
// Seq increases monotonically per job, so observers can order samples and
// discard stale ones.
type ProgressSample struct {
	JobID           string
	Seq             uint64
	State           JobState
	Progress        float64 // 0 to 100
	Speed           float64 // bytes per second, 0 if unknown
	ETASec          int     // seconds, UnknownETA if unknown
	DownloadedBytes int64
	TotalBytes      int64 // UnknownTotal if unknown
	Filename        string
	Error           string // populated only for Failed
	ErrorKind       string // validation, network, storage, cancelled
}

// JobInfo is a read-only view of a job handed to callers and the UI.
type JobInfo struct {
	ID          string
	Spec        JobSpec
	State       JobState
	Sample      ProgressSample
	OutputFiles []string
	SubmittedAt time.Time
	StartedAt   time.Time
	FinishedAt  time.Time
}

// DisplayTitle returns the base name of the output file if known, otherwise
// the URL. Samples carry full paths; this is the short form for lists.
func (ji JobInfo) DisplayTitle() string {
	if ji.Sample.Filename != "" {
		return filepath.Base(ji.Sample.Filename)
	}
	return ji.Spec.URL
}

// FormatBytes formats a byte count into a human readable string
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatSpeed formats a transfer rate into a human readable string
func FormatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond <= 0 {
		return "0 B/s"
	}
	return FormatBytes(int64(bytesPerSecond)) + "/s"
}

// FormatETA formats an ETA in seconds as mm:ss or hh:mm:ss, "—" if unknown
func FormatETA(etaSec int) string {
	if etaSec <= 0 {
		return "—"
	}

	hours := etaSec / 3600
	minutes := (etaSec % 3600) / 60
	seconds := etaSec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
