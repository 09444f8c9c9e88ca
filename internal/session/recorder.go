package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gentlepom/gentlepom/internal/clock"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/rs/zerolog"
)

// Recorder owns the single in-progress session record and persists finalized
// records to daily log files. It implements engine.SessionSink.
//
// A failed log write is reported on the diagnostic logger and otherwise
// swallowed: the record is still cleared and the timer is never interrupted.
type Recorder struct {
	mu        sync.Mutex
	clock     clock.Clock
	log       zerolog.Logger
	dir       string // log folder; empty disables persistence
	active    *Record
	openPause *time.Time // pending pause start, nil when no pause is open
}

// NewRecorder creates a Recorder writing to the given log folder. An empty
// folder disables logging; sessions still run, nothing is persisted.
func NewRecorder(dir string, clk clock.Clock, logger zerolog.Logger) *Recorder {
	if clk == nil {
		clk = clock.System{}
	}
	return &Recorder{
		clock: clk,
		log:   logger,
		dir:   dir,
	}
}

// SetLogFolder reconfigures the target folder. Applies from the next write.
func (r *Recorder) SetLogFolder(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = dir
}

// Active returns a copy of the in-progress record, if any.
func (r *Recorder) Active() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return Record{}, false
	}
	rec := *r.active
	rec.Pauses = append([]Pause(nil), r.active.Pauses...)
	return rec, true
}

// Begin opens a new session record. When a record is already in progress the
// call is a resume instead: it closes the open pause interval and leaves the
// record's start time untouched. This dual behavior lets the single Begin
// entry point serve both "fresh start" and "resume from pause".
func (r *Recorder) Begin(mode engine.Mode, taskName string, scheduledMinutes int, taskPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.closeOpenPauseLocked()
		return
	}

	r.active = &Record{
		Mode:             mode,
		TaskName:         taskName,
		TaskPath:         taskPath,
		ScheduledMinutes: scheduledMinutes,
		Start:            r.clock.Now(),
		// Overwritten at finalization; a session that never ends cleanly
		// would have read as cancelled.
		Status: engine.StatusCancelled,
	}
}

// Pause opens a pause interval by recording the current time as the pending
// pause start. No-op when no session is active or a pause is already open.
func (r *Recorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil || r.openPause != nil {
		return
	}
	now := r.clock.Now()
	r.openPause = &now
}

// UpdateTask rewrites the active record's task link in place, so the eventual
// log line reflects the most recent selection. No-op when no session is active.
func (r *Recorder) UpdateTask(name, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return
	}
	r.active.TaskName = name
	r.active.TaskPath = path
}

// End finalizes the in-progress record: closes any open pause interval,
// stamps the end time and status, appends the derived log line, and clears
// the record. No-op when no session is active.
func (r *Recorder) End(status engine.SessionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return
	}

	r.closeOpenPauseLocked()
	r.active.End = r.clock.Now()
	r.active.Status = status

	rec := *r.active
	r.active = nil

	if r.dir == "" {
		// Logging disabled by configuration, not an error
		return
	}
	if err := r.append(rec); err != nil {
		r.log.Error().Err(err).Str("file", rec.LogFileName()).Msg("failed to write session log")
	}
}

// closeOpenPauseLocked converts the pending pause start into a closed
// interval. Symmetric with resume: callers that end or resume a session close
// the pause first.
func (r *Recorder) closeOpenPauseLocked() {
	if r.openPause == nil {
		return
	}
	r.active.Pauses = append(r.active.Pauses, Pause{Start: *r.openPause, End: r.clock.Now()})
	r.openPause = nil
}

// append writes the record's log line to its daily file: created with the
// line as its entire content when missing, otherwise extended with a newline
// followed by the line. Existing lines are never rewritten or reordered.
func (r *Recorder) append(rec Record) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create log folder: %w", err)
	}

	path := filepath.Join(r.dir, rec.LogFileName())
	line := rec.LogLine()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(line), 0644); err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString("\n" + line); err != nil {
		return fmt.Errorf("failed to append log line: %w", err)
	}
	return nil
}
