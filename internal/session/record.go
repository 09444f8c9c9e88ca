// Package session records completed timer sessions as append-only lines in
// daily markdown log files.
package session

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gentlepom/gentlepom/internal/engine"
)

const (
	// timestampLayout is the fixed format for all timestamps in log lines.
	timestampLayout = "2006-01-02 15:04:05"
	// logFileSuffix is appended to the session's start date to form the
	// daily log file name.
	logFileSuffix = "-gentle-pomodoro-log.md"
)

// Pause is one closed pause interval within a session.
type Pause struct {
	Start time.Time
	End   time.Time
}

// Record is the unit of logging: created when a session starts, mutated by
// pause and task-reassignment events, finalized exactly once.
type Record struct {
	Mode             engine.Mode
	TaskName         string
	TaskPath         string
	ScheduledMinutes int
	Start            time.Time
	End              time.Time
	Pauses           []Pause
	Status           engine.SessionStatus
}

// TotalSeconds derives the net session duration: elapsed wall time minus the
// sum of all closed pause intervals, floored to whole seconds.
func (r Record) TotalSeconds() int {
	var paused time.Duration
	for _, p := range r.Pauses {
		paused += p.End.Sub(p.Start)
	}
	net := r.End.Sub(r.Start) - paused
	return int(net.Milliseconds() / 1000)
}

// ScheduledSeconds is the scheduled duration fixed at session start.
func (r Record) ScheduledSeconds() int {
	return r.ScheduledMinutes * 60
}

// TaskRef renders the task field: the literal "No Task" when nothing is
// linked, otherwise a document-link token in [[path|name]] form.
func (r Record) TaskRef() string {
	if r.TaskPath == "" {
		return engine.NoTaskName
	}
	return fmt.Sprintf("[[%s|%s]]", r.TaskPath, r.TaskName)
}

// LogFilePath returns the daily log file path under folder for the given date.
func LogFilePath(folder string, date time.Time) string {
	return filepath.Join(folder, date.Format("2006-01-02")+logFileSuffix)
}

// LogFileName returns the daily file the record belongs to, keyed by the
// calendar date of the session's start time. A session that rolls past
// midnight still logs to its start date.
func (r Record) LogFileName() string {
	return r.Start.Format("2006-01-02") + logFileSuffix
}

// LogLine renders the record into its immutable persisted form.
//
// Focus:
//
//	- 🍅 Focus | Task:: <ref> | Start:: <ts> | End:: <ts> | Scheduled:: <s> | Pauses:: <json> | Total:: <s> | Status:: <status>
//
// Rest lines omit the Task, Pauses and Status fields.
func (r Record) LogLine() string {
	start := r.Start.Format(timestampLayout)
	end := r.End.Format(timestampLayout)

	if r.Mode == engine.ModeRest {
		return fmt.Sprintf("- ☕ Rest | Start:: %s | End:: %s | Scheduled:: %d | Total:: %d",
			start, end, r.ScheduledSeconds(), r.TotalSeconds())
	}

	return fmt.Sprintf("- 🍅 Focus | Task:: %s | Start:: %s | End:: %s | Scheduled:: %d | Pauses:: %s | Total:: %d | Status:: %s",
		r.TaskRef(), start, end, r.ScheduledSeconds(), r.pausesJSON(), r.TotalSeconds(), r.Status)
}

// pausesJSON renders the closed pause intervals as a JSON array of
// "<start> - <end>" strings in chronological order.
func (r Record) pausesJSON() string {
	spans := make([]string, 0, len(r.Pauses))
	for _, p := range r.Pauses {
		spans = append(spans, p.Start.Format(timestampLayout)+" - "+p.End.Format(timestampLayout))
	}
	// A slice of strings always marshals
	data, _ := json.Marshal(spans)
	return string(data)
}
