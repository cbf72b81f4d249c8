package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// StatePending means the job is queued but not started
	StatePending JobState = "Pending"

	// StateRunning means the download is in progress
	StateRunning JobState = "Running"

	// StatePaused means the download is suspended and waiting for resume
	StatePaused JobState = "Paused"

	// StateCompleted means the job finished successfully
	StateCompleted JobState = "Completed"

	// StateFailed means the job failed with an error
	StateFailed JobState = "Failed"

	// StateCancelled means the job was cancelled by the user
	StateCancelled JobState = "Cancelled"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true if the job is in an active (non-queued, non-final) state
func (js JobState) IsActive() bool {
	return js == StateRunning || js == StatePaused
}

// IsTerminal returns true if the job reached a final state
func (js JobState) IsTerminal() bool {
	return js == StateCompleted || js == StateFailed || js == StateCancelled
}

// CanTransitionTo reports whether the state graph allows moving to next.
// Pending may only start or be cancelled; Paused is reachable only from
// Running; terminal states are never left.
func (js JobState) CanTransitionTo(next JobState) bool {
	switch js {
	case StatePending:
		return next == StateRunning || next == StateCancelled || next == StateFailed
	case StateRunning:
		return next == StatePaused || next.IsTerminal()
	case StatePaused:
		return next == StateRunning || next == StateCancelled
	default:
		return false
	}
}
