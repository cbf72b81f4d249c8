package download

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/riyanoob/dlp-gui/internal/model"
)

// Progress throttling defaults
const (
	// DefaultProgressInterval is the minimum interval between forwarded
	// Running samples. Transition and terminal samples bypass it.
	DefaultProgressInterval = 500 * time.Millisecond
)

// Temp file extensions left behind by interrupted transfers
var tempExtensions = []string{".part", ".ytdl", ".temp"}

// Job owns the lifecycle of a single download: one spec, one state, the
// latest progress sample, and the pause/cancel flags. Exactly one goroutine
// drives a Job via Run; control methods may be called from any goroutine.
type Job struct {
	id   string
	spec model.JobSpec

	mu   sync.Mutex
	cond *sync.Cond

	// emitMu serializes sample delivery. It is acquired while mu is still
	// held, so sinks receive samples in the same order Seq was assigned
	// even when control and executor goroutines race. Lock order is
	// always mu then emitMu.
	emitMu sync.Mutex

	state     model.JobState
	paused    bool
	cancelled bool
	started   bool

	seq      uint64
	sample   model.ProgressSample
	lastEmit time.Time
	throttle time.Duration

	outputFiles []string
	tempFiles   map[string]struct{}

	submittedAt time.Time
	startedAt   time.Time
	finishedAt  time.Time

	ctx       context.Context
	ctxCancel context.CancelFunc

	onSample func(model.ProgressSample)
}

// NewJob creates a job in Pending state. onSample receives every forwarded
// progress sample; it must not call back into the job's control surface while
// holding locks the job's callers also take.
func NewJob(id string, spec model.JobSpec, throttle time.Duration, onSample func(model.ProgressSample)) *Job {
	if throttle <= 0 {
		throttle = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &Job{
		id:          id,
		spec:        spec,
		state:       model.StatePending,
		throttle:    throttle,
		tempFiles:   make(map[string]struct{}),
		submittedAt: time.Now(),
		ctx:         ctx,
		ctxCancel:   cancel,
		onSample:    onSample,
	}
	j.cond = sync.NewCond(&j.mu)
	j.sample = model.ProgressSample{
		JobID:  id,
		State:  model.StatePending,
		ETASec: model.UnknownETA,
	}
	return j
}

// ID returns the immutable job identifier
func (j *Job) ID() string {
	return j.id
}

// Spec returns the immutable job spec
func (j *Job) Spec() model.JobSpec {
	return j.spec
}

// State returns the current state
func (j *Job) State() model.JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Snapshot returns the latest progress sample. It never blocks on the
// download itself and is safe from any goroutine.
func (j *Job) Snapshot() model.ProgressSample {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sample
}

// Info returns a read-only view of the job for callers and the UI
func (j *Job) Info() model.JobInfo {
	j.mu.Lock()
	defer j.mu.Unlock()

	outputs := make([]string, len(j.outputFiles))
	copy(outputs, j.outputFiles)

	return model.JobInfo{
		ID:          j.id,
		Spec:        j.spec,
		State:       j.state,
		Sample:      j.sample,
		OutputFiles: outputs,
		SubmittedAt: j.submittedAt,
		StartedAt:   j.startedAt,
		FinishedAt:  j.finishedAt,
	}
}

// Run validates the spec, transitions Pending to Running and drives the
// executor to completion. It is called at most once, from the job's own
// goroutine, and never lets an executor failure escape.
func (j *Job) Run(executor Executor) {
	if err := j.validateSpec(); err != nil {
		// Never entered Running
		j.finish(nil, err)
		return
	}

	j.mu.Lock()
	if j.cancelled || j.state.IsTerminal() {
		j.mu.Unlock()
		j.finish(nil, NewError(KindCancelled, "cancelled before start"))
		return
	}
	j.started = true
	j.state = model.StateRunning
	j.startedAt = time.Now()
	j.advanceSampleLocked(func(s *model.ProgressSample) {
		s.State = model.StateRunning
	})
	// The Pending->Running transition is never throttled away
	j.forwardLocked()

	outputs, err := j.execute(executor)
	j.finish(outputs, err)
}

// execute invokes the executor, converting a panic into a classified error so
// it cannot escape into the scheduler.
func (j *Job) execute(executor Executor) (outputs []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Job %s: executor panic recovered: %v", j.id, r)
			err = NewError(KindNetwork, "executor panic: %v", r)
		}
	}()
	return executor.Execute(j.ctx, j.spec, j.observe)
}

// Pause suspends progress-driven work. Only effective while Running.
func (j *Job) Pause() bool {
	j.mu.Lock()
	if j.state != model.StateRunning {
		j.mu.Unlock()
		return false
	}
	j.paused = true
	j.state = model.StatePaused
	j.advanceSampleLocked(func(s *model.ProgressSample) {
		s.State = model.StatePaused
	})
	j.forwardLocked()
	return true
}

// Resume wakes a paused job. Only effective while Paused.
func (j *Job) Resume() bool {
	j.mu.Lock()
	if j.state != model.StatePaused {
		j.mu.Unlock()
		return false
	}
	j.paused = false
	j.state = model.StateRunning
	j.advanceSampleLocked(func(s *model.ProgressSample) {
		s.State = model.StateRunning
	})
	j.cond.Broadcast()
	j.forwardLocked()
	return true
}

// Cancel requests cooperative cancellation from Pending, Running or Paused.
// A paused job is woken so it can observe the flag and unwind. Idempotent.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	if j.state.IsTerminal() {
		j.mu.Unlock()
		return false
	}
	if j.cancelled {
		j.mu.Unlock()
		return true
	}
	j.cancelled = true
	neverStarted := !j.started
	j.ctxCancel()
	j.cond.Broadcast()
	j.mu.Unlock()

	if neverStarted {
		// No executor goroutine will ever observe the flag; finalize here.
		j.finish(nil, NewError(KindCancelled, "cancelled before start"))
	}
	return true
}

// observe is the single progress checkpoint. Cancellation is observed here,
// and pause blocks the executor's calling goroutine here until resumed or
// cancelled.
func (j *Job) observe(ev ProgressEvent) {
	j.mu.Lock()

	if j.cancelled || j.state.IsTerminal() {
		j.mu.Unlock()
		return
	}

	for j.paused && !j.cancelled {
		j.cond.Wait()
	}
	if j.cancelled || j.state.IsTerminal() {
		j.mu.Unlock()
		return
	}

	j.advanceSampleLocked(func(s *model.ProgressSample) {
		s.State = model.StateRunning
		s.DownloadedBytes = ev.DownloadedBytes
		s.TotalBytes = ev.TotalBytes
		s.Speed = ev.Speed
		s.ETASec = ev.ETASec
		if ev.Filename != "" {
			s.Filename = ev.Filename
		}

		switch ev.Phase {
		case PhaseDownloading:
			if ev.TotalBytes > 0 {
				pct := float64(ev.DownloadedBytes) / float64(ev.TotalBytes) * 100
				if pct > 100 {
					pct = 100
				}
				s.Progress = pct
			}
		case PhaseFinished:
			s.Progress = 100
		case PhaseError:
			s.Error = ev.Err
		}
	})

	switch ev.Phase {
	case PhaseFinished:
		if ev.Filename != "" {
			j.recordOutputLocked(ev.Filename)
		}
	case PhaseDownloading:
		if ev.Filename != "" {
			j.tempFiles[ev.Filename] = struct{}{}
		}
	}

	// Running samples are lossy under throttling; finished/error events
	// are always forwarded.
	forward := ev.Phase != PhaseDownloading || time.Since(j.lastEmit) >= j.throttle
	if !forward {
		j.mu.Unlock()
		return
	}
	j.lastEmit = time.Now()
	j.forwardLocked()
}

// finish performs the single terminal transition. Safe to call more than
// once; only the first call has effect.
func (j *Job) finish(outputs []string, err error) {
	j.mu.Lock()
	if j.state.IsTerminal() {
		j.mu.Unlock()
		return
	}

	for _, path := range outputs {
		j.recordOutputLocked(path)
	}

	var final model.JobState
	var dlErr *Error
	switch {
	case j.cancelled:
		final = model.StateCancelled
	case err != nil:
		dlErr = Classify(err)
		if dlErr.Kind == KindCancelled {
			final = model.StateCancelled
		} else {
			final = model.StateFailed
		}
	case len(j.outputFiles) > 0:
		final = model.StateCompleted
	default:
		final = model.StateFailed
		dlErr = NewError(KindNetwork, "download finished but no files were produced")
	}

	// A paused job being finalized was woken by cancel; clear the flag so
	// the state graph stays Running/Paused -> terminal.
	j.paused = false
	j.started = true
	j.state = final
	j.finishedAt = time.Now()
	j.ctxCancel()
	j.cond.Broadcast()

	j.advanceSampleLocked(func(s *model.ProgressSample) {
		s.State = final
		switch final {
		case model.StateCompleted:
			s.Progress = 100
			s.Error = ""
			s.ErrorKind = ""
		case model.StateFailed:
			s.Error = dlErr.Message
			s.ErrorKind = string(dlErr.Kind)
		case model.StateCancelled:
			s.Error = ""
			s.ErrorKind = string(KindCancelled)
		}
		if len(j.outputFiles) > 0 {
			s.Filename = j.outputFiles[len(j.outputFiles)-1]
		}
	})
	cleanup := final == model.StateCancelled || final == model.StateFailed

	// Terminal samples are never throttled and are emitted exactly once
	j.forwardLocked()

	if cleanup {
		j.cleanupTempFiles()
	}
}

// validateSpec rejects jobs that must never start: empty URL, empty or
// uncreatable destination.
func (j *Job) validateSpec() error {
	if j.spec.URL == "" {
		return NewError(KindValidation, "no URL provided")
	}
	if j.spec.DestDir == "" {
		return NewError(KindValidation, "no destination directory specified")
	}
	if err := os.MkdirAll(j.spec.DestDir, 0755); err != nil {
		return &Error{
			Kind:    KindStorage,
			Message: "cannot create destination directory: " + err.Error(),
			Cause:   err,
		}
	}
	return nil
}

// forwardLocked delivers the latest sample to the sink. Callers hold j.mu;
// it is released before the sink runs and the call returns with both locks
// released. emitMu is taken first so concurrent emitters deliver in Seq
// order.
func (j *Job) forwardLocked() {
	j.emitMu.Lock()
	out, sink := j.sample, j.onSample
	j.mu.Unlock()
	if sink != nil {
		sink(out)
	}
	j.emitMu.Unlock()
}

// advanceSampleLocked bumps the sequence counter and mutates the latest
// sample in place. Callers hold j.mu.
func (j *Job) advanceSampleLocked(mutate func(*model.ProgressSample)) {
	j.seq++
	j.sample.Seq = j.seq
	mutate(&j.sample)
}

// recordOutputLocked registers a completed output file, deduplicated, and
// drops it from the temp set. Callers hold j.mu.
func (j *Job) recordOutputLocked(path string) {
	delete(j.tempFiles, path)
	for _, existing := range j.outputFiles {
		if existing == path {
			return
		}
	}
	j.outputFiles = append(j.outputFiles, path)
}

// cleanupTempFiles removes partially-downloaded files left behind by a
// cancelled or failed transfer. Best effort; failures are logged only.
func (j *Job) cleanupTempFiles() {
	j.mu.Lock()
	candidates := make([]string, 0, len(j.tempFiles))
	for path := range j.tempFiles {
		candidates = append(candidates, path)
	}
	j.mu.Unlock()

	for _, path := range candidates {
		removeIfExists(path)
		for _, ext := range tempExtensions {
			removeIfExists(path + ext)
		}
	}
}

func removeIfExists(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("Failed to remove temp file %s: %v", path, err)
	}
}
