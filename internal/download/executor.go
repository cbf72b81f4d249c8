package download

import (
	"context"

	"github.com/riyanoob/dlp-gui/internal/model"
)

// ProgressPhase is the phase reported by a raw executor status event.
type ProgressPhase string

const (
	// PhaseDownloading means bytes are being transferred
	PhaseDownloading ProgressPhase = "downloading"

	// PhaseFinished means one output file completed
	PhaseFinished ProgressPhase = "finished"

	// PhaseError means the executor hit an error it will also return from Execute
	PhaseError ProgressPhase = "error"
)

// ProgressEvent is one raw status event from the executor. TotalBytes may be
// model.UnknownTotal mid-stream for sources that do not announce a size.
type ProgressEvent struct {
	Phase           ProgressPhase
	DownloadedBytes int64
	TotalBytes      int64
	Speed           float64 // bytes per second, 0 if unknown
	ETASec          int     // model.UnknownETA if unknown
	Filename        string
	Err             string
}

// Executor is the boundary to the actual download implementation. Execute
// performs the transfer for one spec, invoking onProgress zero or more times
// from the calling goroutine, and must not invoke it after returning. It
// returns the paths of the produced output files. Cancellation is cooperative
// via ctx.
type Executor interface {
	Execute(ctx context.Context, spec model.JobSpec, onProgress func(ProgressEvent)) ([]string, error)
}
