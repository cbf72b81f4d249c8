package download

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riyanoob/dlp-gui/internal/model"
)

// Scheduler defaults
const (
	DefaultMaxConcurrent = 3
	DefaultHistoryLimit  = 100
	DefaultStatsInterval = 2 * time.Second
	DefaultEventBuffer   = 256

	// JobIDPrefix prefixes every generated job identifier
	JobIDPrefix = "job-"

	// spawnRetryDelay is how long the scheduler waits before retrying
	// dispatch after failing to start an execution context
	spawnRetryDelay = time.Second
)

// EventType distinguishes entries on the scheduler's fan-in stream.
type EventType int

const (
	// EventProgress carries one job's progress or terminal sample
	EventProgress EventType = iota

	// EventStats carries periodic queue-wide statistics
	EventStats

	// EventSchedulerError carries a scheduler-level error (resource exhaustion)
	EventSchedulerError
)

// Stats is a queue-wide counter snapshot. Completed counts every retired
// job, whatever its terminal state.
type Stats struct {
	Active    int
	Queued    int
	Completed int
}

// Event is one entry on the fan-in stream.
type Event struct {
	Type   EventType
	Sample model.ProgressSample
	Stats  Stats
	Err    error
}

// Config holds scheduler tuning knobs.
type Config struct {
	MaxConcurrent    int
	ProgressInterval time.Duration
	StatsInterval    time.Duration
	HistoryLimit     int
	EventBuffer      int
}

// DefaultConfig returns the scheduler defaults
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:    DefaultMaxConcurrent,
		ProgressInterval: DefaultProgressInterval,
		StatsInterval:    DefaultStatsInterval,
		HistoryLimit:     DefaultHistoryLimit,
		EventBuffer:      DefaultEventBuffer,
	}
}

// Scheduler admits submitted jobs into a FIFO queue and dispatches them with
// bounded concurrency. Every job's progress and terminal events are re-emitted
// on a single Events channel, tagged with the job ID, together with periodic
// queue statistics. Individual job failures never affect siblings.
type Scheduler struct {
	executor Executor

	mu            sync.Mutex
	queue         []*Job
	running       map[string]*Job
	history       []string
	retired       int
	maxConcurrent int

	throttle     time.Duration
	historyLimit int

	events chan Event
	wake   chan struct{}
	stopc  chan struct{}
	stopWg sync.WaitGroup
	once   sync.Once

	statsInterval time.Duration

	// spawn starts one execution context; injectable so tests can model
	// resource exhaustion
	spawn func(fn func()) error
}

// NewScheduler creates a scheduler and starts its dispatch loop.
func NewScheduler(executor Executor, cfg Config) *Scheduler {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = DefaultStatsInterval
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}

	s := &Scheduler{
		executor:      executor,
		running:       make(map[string]*Job),
		maxConcurrent: cfg.MaxConcurrent,
		throttle:      cfg.ProgressInterval,
		historyLimit:  cfg.HistoryLimit,
		events:        make(chan Event, cfg.EventBuffer),
		wake:          make(chan struct{}, 1),
		stopc:         make(chan struct{}),
		statsInterval: cfg.StatsInterval,
	}
	s.spawn = func(fn func()) error {
		go fn()
		return nil
	}

	s.stopWg.Add(1)
	go s.run()
	return s
}

// Events returns the fan-in stream of job samples, stats and scheduler
// errors. The caller must drain it; terminal samples are delivered exactly
// once per job and are never dropped.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Submit creates a Pending job for the spec, appends it to the FIFO queue and
// returns its ID immediately. Spec validation happens when the job starts.
func (s *Scheduler) Submit(spec model.JobSpec) string {
	job := NewJob(newJobID(), spec, s.throttle, s.emitSample)

	s.mu.Lock()
	s.queue = append(s.queue, job)
	s.mu.Unlock()

	log.Printf("Job %s submitted: %s", job.ID(), spec.URL)
	s.kick()
	return job.ID()
}

// Cancel cancels a running job or removes a queued one without ever starting
// it. Returns whether a job was found.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	if job, ok := s.running[id]; ok {
		s.mu.Unlock()
		job.Cancel()
		return true
	}
	job := s.removeQueuedLocked(id)
	s.mu.Unlock()

	if job == nil {
		return false
	}
	job.Cancel() // finalizes immediately, the job never started
	s.retire(job.ID())
	return true
}

// Pause forwards to the running job with the given ID. Returns false if the
// job is not currently running.
func (s *Scheduler) Pause(id string) bool {
	if job := s.runningJob(id); job != nil {
		return job.Pause()
	}
	return false
}

// Resume forwards to the running job with the given ID. Returns false if the
// job is not currently running.
func (s *Scheduler) Resume(id string) bool {
	if job := s.runningJob(id); job != nil {
		return job.Resume()
	}
	return false
}

// PauseAll pauses every currently running job and returns the number affected
func (s *Scheduler) PauseAll() int {
	count := 0
	for _, job := range s.runningJobs() {
		if job.Pause() {
			count++
		}
	}
	return count
}

// ResumeAll resumes every currently paused job and returns the number affected
func (s *Scheduler) ResumeAll() int {
	count := 0
	for _, job := range s.runningJobs() {
		if job.Resume() {
			count++
		}
	}
	return count
}

// CancelAll cancels all running jobs and drains the queue. Queued jobs are
// removed without ever starting. Returns the total number affected.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	active := make([]*Job, 0, len(s.running))
	for _, job := range s.running {
		active = append(active, job)
	}
	queued := s.queue
	s.queue = nil
	s.mu.Unlock()

	count := 0
	for _, job := range active {
		if job.Cancel() {
			count++
		}
	}
	for _, job := range queued {
		if job.Cancel() {
			count++
		}
		s.retire(job.ID())
	}
	return count
}

// SetMaxConcurrent updates the concurrency bound. Values below 1 are clamped.
// A lower bound never preempts already-running jobs; it applies to future
// dispatch decisions only.
func (s *Scheduler) SetMaxConcurrent(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.maxConcurrent = n
	s.mu.Unlock()
	s.kick()
}

// Status returns the info for a queued or running job. Retired jobs are
// forgotten; only their IDs remain in the statistics history.
func (s *Scheduler) Status(id string) (model.JobInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.running[id]; ok {
		return job.Info(), true
	}
	for _, job := range s.queue {
		if job.ID() == id {
			return job.Info(), true
		}
	}
	return model.JobInfo{}, false
}

// ListAll returns info for all running jobs followed by queued jobs in
// admission order.
func (s *Scheduler) ListAll() []model.JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]model.JobInfo, 0, len(s.running)+len(s.queue))
	for _, job := range s.running {
		infos = append(infos, job.Info())
	}
	for _, job := range s.queue {
		infos = append(infos, job.Info())
	}
	return infos
}

// Counts returns the current queue-wide statistics
func (s *Scheduler) Counts() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Active:    len(s.running),
		Queued:    len(s.queue),
		Completed: s.retired,
	}
}

// Stop shuts down the dispatch loop. It does not cancel jobs; call CancelAll
// first for a full teardown. The events channel stays open so late terminal
// samples from unwinding jobs are not sent on a closed channel.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.stopc)
		s.stopWg.Wait()
	})
}

// run is the dispatch loop: woken by submissions and freed slots, with a
// periodic stats tick. It never spins.
func (s *Scheduler) run() {
	defer s.stopWg.Done()

	ticker := time.NewTicker(s.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopc:
			return
		case <-s.wake:
			s.dispatch()
		case <-ticker.C:
			s.emit(Event{Type: EventStats, Stats: s.Counts()})
		}
	}
}

// dispatch fills free slots from the head of the FIFO queue.
func (s *Scheduler) dispatch() {
	s.mu.Lock()
	for len(s.running) < s.maxConcurrent && len(s.queue) > 0 {
		job := s.queue[0]
		s.queue = s.queue[1:]

		if job.State().IsTerminal() {
			// Cancelled while queued; already finalized
			continue
		}

		s.running[job.ID()] = job
		if err := s.spawn(func() { s.runJob(job) }); err != nil {
			// Return the job to the head of the queue rather than
			// dropping it, and report the condition upstream.
			delete(s.running, job.ID())
			s.queue = append([]*Job{job}, s.queue...)
			s.mu.Unlock()

			log.Printf("Scheduler: could not start execution context: %v", err)
			s.emit(Event{
				Type: EventSchedulerError,
				Err:  &Error{Kind: KindResourceExhausted, Message: "cannot start download: " + err.Error(), Cause: err},
			})
			time.AfterFunc(spawnRetryDelay, s.kick)
			return
		}
	}
	s.mu.Unlock()
}

// runJob drives one job to its terminal state, then retires it and frees the
// slot for the next queued job.
func (s *Scheduler) runJob(job *Job) {
	job.Run(s.executor)

	s.mu.Lock()
	delete(s.running, job.ID())
	s.mu.Unlock()

	s.retire(job.ID())
	s.kick()
}

// retire records a finished job ID in the bounded history.
func (s *Scheduler) retire(id string) {
	s.mu.Lock()
	s.retired++
	s.history = append(s.history, id)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	s.mu.Unlock()
}

// emitSample is the fan-in sink handed to every job. Terminal samples block
// until delivered; Running samples are dropped when the consumer lags.
func (s *Scheduler) emitSample(sample model.ProgressSample) {
	ev := Event{Type: EventProgress, Sample: sample}
	if sample.State.IsTerminal() {
		s.events <- ev
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

// emit pushes a non-critical event without blocking the dispatch loop.
func (s *Scheduler) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// kick wakes the dispatch loop; coalesces when one wake is already pending.
func (s *Scheduler) kick() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// removeQueuedLocked splices the job with the given ID out of the FIFO queue
// and returns it, or nil when the ID is not queued. Callers hold s.mu.
func (s *Scheduler) removeQueuedLocked(id string) *Job {
	for i, job := range s.queue {
		if job.ID() == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return job
		}
	}
	return nil
}

func (s *Scheduler) runningJob(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[id]
}

func (s *Scheduler) runningJobs() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]*Job, 0, len(s.running))
	for _, job := range s.running {
		jobs = append(jobs, job)
	}
	return jobs
}

// newJobID generates a unique job ID
func newJobID() string {
	return JobIDPrefix + uuid.New().String()
}
