package download

// Package download implements the core download pipeline: the per-job state
// machine (pause/resume/cancel, progress throttling) and the scheduler that
// admits queued jobs under a concurrency bound and fans all job events into
// a single stream for the UI.
