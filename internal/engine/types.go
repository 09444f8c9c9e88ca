package engine

import "time"

// Mode identifies which kind of session the timer is counting down.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeRest  Mode = "rest"
)

// Other returns the mode the timer advances to when a session ends.
func (m Mode) Other() Mode {
	if m == ModeFocus {
		return ModeRest
	}
	return ModeFocus
}

// SessionStatus is the final disposition of a recorded session.
type SessionStatus string

const (
	StatusFinished  SessionStatus = "finished"
	StatusCancelled SessionStatus = "cancelled"
)

// NoTaskName is the display name shown when no task is linked.
const NoTaskName = "No Task"

// Snapshot is an immutable view of the timer state, pushed to listeners on
// every change. Remaining is negative while the session runs in overtime.
type Snapshot struct {
	Mode      Mode
	Running   bool
	Remaining time.Duration
	Total     time.Duration
	TaskName  string
	TaskPath  string
}

// Overtime reports whether the session has run past its scheduled duration.
func (s Snapshot) Overtime() bool {
	return s.Running && s.Remaining < 0
}

// SessionSink receives session lifecycle events from the timer. The timer
// never holds the in-progress record itself; it only issues these calls.
type SessionSink interface {
	// Begin opens a new session record, or closes the open pause interval
	// when a record is already in progress (resume).
	Begin(mode Mode, taskName string, scheduledMinutes int, taskPath string)
	// Pause opens a pause interval on the in-progress record.
	Pause()
	// UpdateTask rewrites the in-progress record's task link in place.
	UpdateTask(name, path string)
	// End finalizes and clears the in-progress record.
	End(status SessionStatus)
}

// NopSink discards all session events. Useful as a test double and when no
// recorder is wired.
type NopSink struct{}

func (NopSink) Begin(Mode, string, int, string) {}
func (NopSink) Pause()                          {}
func (NopSink) UpdateTask(string, string)       {}
func (NopSink) End(SessionStatus)               {}

// TaskChecker reports whether a linked task has been completed in its
// source document. Document parsing lives with the task source, not here.
type TaskChecker interface {
	TaskComplete(path, name string) bool
}
