package session

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gentlepom/gentlepom/internal/clock"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/rs/zerolog"
)

var sessionStart = time.Date(2025, time.December, 21, 14, 0, 0, 0, time.Local)

func newTestRecorder(t *testing.T) (*Recorder, *clock.Fake, string) {
	t.Helper()
	dir := t.TempDir()
	fake := clock.NewFake(sessionStart)
	return NewRecorder(dir, fake, zerolog.Nop()), fake, dir
}

func readLogFile(t *testing.T, dir string, date string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, date+logFileSuffix))
	if err != nil {
		t.Fatalf("reading log file for %s failed: %v", date, err)
	}
	return string(data)
}

// The exact end-to-end scenario: focus session with one pause, linked task,
// finished by an explicit stop.
func TestEndToEndFocusLine(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, "Task Name #tag", 25, "Path/To/File.md")
	fake.Set(time.Date(2025, time.December, 21, 14, 10, 0, 0, time.Local))
	rec.Pause()
	fake.Set(time.Date(2025, time.December, 21, 14, 12, 0, 0, time.Local))
	rec.Begin(engine.ModeFocus, "Task Name #tag", 25, "Path/To/File.md") // resume
	fake.Set(time.Date(2025, time.December, 21, 14, 27, 0, 0, time.Local))
	rec.End(engine.StatusFinished)

	// 27 minutes of wall time minus the 2-minute pause: Total equals the
	// full scheduled 1500 seconds.
	want := `- 🍅 Focus | Task:: [[Path/To/File.md|Task Name #tag]] | Start:: 2025-12-21 14:00:00 | End:: 2025-12-21 14:27:00 | Scheduled:: 1500 | Pauses:: ["2025-12-21 14:10:00 - 2025-12-21 14:12:00"] | Total:: 1500 | Status:: finished`
	if got := readLogFile(t, dir, "2025-12-21"); got != want {
		t.Errorf("log file content mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestFocusLineWithoutTaskOrPauses(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(25 * time.Minute)
	rec.End(engine.StatusFinished)

	got := readLogFile(t, dir, "2025-12-21")
	if !strings.Contains(got, "Task:: No Task |") {
		t.Errorf("line missing No Task literal: %s", got)
	}
	if !strings.Contains(got, "Pauses:: [] |") {
		t.Errorf("line missing empty pause array: %s", got)
	}
}

func TestRestLineOmitsTaskPausesStatus(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeRest, engine.NoTaskName, 5, "")
	fake.Advance(5 * time.Minute)
	rec.End(engine.StatusFinished)

	want := "- ☕ Rest | Start:: 2025-12-21 14:00:00 | End:: 2025-12-21 14:05:00 | Scheduled:: 300 | Total:: 300"
	if got := readLogFile(t, dir, "2025-12-21"); got != want {
		t.Errorf("rest line mismatch\n got: %s\nwant: %s", got, want)
	}
}

// Total == floor(((End - Start) - sum of pauses) / 1000), for any pause count.
func TestTotalSecondsInvariant(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		pauses    []time.Duration // durations of consecutive pause intervals
		wantTotal int
	}{
		{
			name:      "no pauses",
			elapsed:   25 * time.Minute,
			wantTotal: 1500,
		},
		{
			name:      "single pause",
			elapsed:   25 * time.Minute,
			pauses:    []time.Duration{2 * time.Minute},
			wantTotal: 1380,
		},
		{
			name:      "multiple pauses",
			elapsed:   30 * time.Minute,
			pauses:    []time.Duration{2 * time.Minute, 3 * time.Minute, 30 * time.Second},
			wantTotal: 1470,
		},
		{
			name:      "sub-second remainder floors",
			elapsed:   10*time.Second + 900*time.Millisecond,
			wantTotal: 10,
		},
		{
			name:      "overtime included in total",
			elapsed:   25*time.Minute + 5*time.Second,
			wantTotal: 1505,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, fake, dir := newTestRecorder(t)
			rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")

			// Work a minute, pause, resume - once per scenario pause
			var consumed time.Duration
			for _, p := range tt.pauses {
				fake.Advance(time.Minute)
				rec.Pause()
				fake.Advance(p)
				rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
				consumed += time.Minute + p
			}

			// Advance whatever is left of the scenario's wall-clock span
			fake.Advance(tt.elapsed - consumed)
			rec.End(engine.StatusFinished)

			got := readLogFile(t, dir, "2025-12-21")
			wantField := "Total:: " + strconv.Itoa(tt.wantTotal) + " |"
			if !strings.Contains(got, wantField) {
				t.Errorf("line missing %q: %s", wantField, got)
			}
		})
	}
}

// A second Begin without an intervening End never creates a second record;
// it resumes the first, leaving the start time unchanged.
func TestBeginTwiceIsResume(t *testing.T) {
	rec, fake, _ := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(10 * time.Minute)
	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")

	active, ok := rec.Active()
	if !ok {
		t.Fatal("no active record after Begin")
	}
	if !active.Start.Equal(sessionStart) {
		t.Errorf("Start = %v, want unchanged %v", active.Start, sessionStart)
	}
}

func TestEndWithoutSessionIsNoOp(t *testing.T) {
	rec, _, dir := newTestRecorder(t)

	rec.End(engine.StatusFinished)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("End with no active session wrote %d file(s)", len(entries))
	}
}

func TestPauseWithoutSessionIsNoOp(t *testing.T) {
	rec, _, _ := newTestRecorder(t)
	rec.Pause() // must not panic or create state

	if _, ok := rec.Active(); ok {
		t.Error("Pause with no session created a record")
	}
}

func TestDoublePauseKeepsFirstInterval(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(5 * time.Minute)
	rec.Pause()
	fake.Advance(time.Minute)
	rec.Pause() // idempotent: the open pause keeps its original start
	fake.Advance(time.Minute)
	rec.End(engine.StatusFinished)

	got := readLogFile(t, dir, "2025-12-21")
	if !strings.Contains(got, `["2025-12-21 14:05:00 - 2025-12-21 14:07:00"]`) {
		t.Errorf("pause interval not as expected: %s", got)
	}
}

func TestEndClosesOpenPause(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(10 * time.Minute)
	rec.Pause()
	fake.Advance(2 * time.Minute)
	rec.End(engine.StatusCancelled)

	got := readLogFile(t, dir, "2025-12-21")
	if !strings.Contains(got, `["2025-12-21 14:10:00 - 2025-12-21 14:12:00"]`) {
		t.Errorf("open pause not closed at End: %s", got)
	}
	// The closed pause is excluded from the total: 10 minutes of work
	if !strings.Contains(got, "Total:: 600") {
		t.Errorf("Total should exclude the closed pause: %s", got)
	}
	if !strings.Contains(got, "Status:: cancelled") {
		t.Errorf("Status should be cancelled: %s", got)
	}
}

func TestUpdateTaskRewritesActiveRecord(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	rec.Begin(engine.ModeFocus, "First Task", 25, "a/first.md")
	fake.Advance(5 * time.Minute)
	rec.UpdateTask("Second Task", "b/second.md")
	fake.Advance(5 * time.Minute)
	rec.End(engine.StatusFinished)

	got := readLogFile(t, dir, "2025-12-21")
	if !strings.Contains(got, "[[b/second.md|Second Task]]") {
		t.Errorf("log line should carry the most recent task link: %s", got)
	}
	if strings.Contains(got, "first.md") {
		t.Errorf("log line still references the original task: %s", got)
	}
}

func TestUpdateTaskWithoutSessionIsNoOp(t *testing.T) {
	rec, _, _ := newTestRecorder(t)
	rec.UpdateTask("Task", "a/b.md")
	if _, ok := rec.Active(); ok {
		t.Error("UpdateTask with no session created a record")
	}
}

// A session that rolls past midnight logs to its start date.
func TestMidnightRollover(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	fake.Set(time.Date(2025, time.December, 21, 23, 58, 0, 0, time.Local))
	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Set(time.Date(2025, time.December, 22, 0, 3, 0, 0, time.Local))
	rec.End(engine.StatusFinished)

	if _, err := os.Stat(filepath.Join(dir, "2025-12-21"+logFileSuffix)); err != nil {
		t.Errorf("log file for start date missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2025-12-22"+logFileSuffix)); !os.IsNotExist(err) {
		t.Error("session logged to its end date instead of its start date")
	}
}

func TestAppendSemantics(t *testing.T) {
	rec, fake, dir := newTestRecorder(t)

	// First session creates the file with a single line and no trailing newline
	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(25 * time.Minute)
	rec.End(engine.StatusFinished)

	first := readLogFile(t, dir, "2025-12-21")
	if strings.Contains(first, "\n") {
		t.Errorf("initial file should be a single line: %q", first)
	}

	// Second session appends a newline followed by its line
	rec.Begin(engine.ModeRest, engine.NoTaskName, 5, "")
	fake.Advance(5 * time.Minute)
	rec.End(engine.StatusFinished)

	both := readLogFile(t, dir, "2025-12-21")
	lines := strings.Split(both, "\n")
	if len(lines) != 2 {
		t.Fatalf("file has %d lines, want 2: %q", len(lines), both)
	}
	if lines[0] != first {
		t.Error("appending rewrote the existing first line")
	}
	if !strings.HasPrefix(lines[1], "- ☕ Rest") {
		t.Errorf("second line = %q, want rest line", lines[1])
	}
}

func TestUnsetLogFolderDisablesLogging(t *testing.T) {
	fake := clock.NewFake(sessionStart)
	rec := NewRecorder("", fake, zerolog.Nop())

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(25 * time.Minute)
	rec.End(engine.StatusFinished)

	// The record is still cleared; the session simply was not persisted
	if _, ok := rec.Active(); ok {
		t.Error("record not cleared when logging is disabled")
	}
}

func TestMissingFolderIsCreated(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "notes", "logs")
	fake := clock.NewFake(sessionStart)
	rec := NewRecorder(dir, fake, zerolog.Nop())

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(time.Minute)
	rec.End(engine.StatusFinished)

	if _, err := os.Stat(filepath.Join(dir, "2025-12-21"+logFileSuffix)); err != nil {
		t.Errorf("log folder not created before first write: %v", err)
	}
}

func TestWriteFailureStillClearsRecord(t *testing.T) {
	// Point the recorder at a path that cannot be a directory
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	fake := clock.NewFake(sessionStart)
	rec := NewRecorder(filepath.Join(blocker, "logs"), fake, zerolog.Nop())

	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	fake.Advance(time.Minute)
	rec.End(engine.StatusFinished)

	if _, ok := rec.Active(); ok {
		t.Error("record not cleared after failed write")
	}

	// The timer path is unaffected: a new session can begin immediately
	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")
	if _, ok := rec.Active(); !ok {
		t.Error("recorder unusable after failed write")
	}
}

func TestDefaultStatusIsCancelled(t *testing.T) {
	rec, _, _ := newTestRecorder(t)
	rec.Begin(engine.ModeFocus, engine.NoTaskName, 25, "")

	active, ok := rec.Active()
	if !ok {
		t.Fatal("no active record")
	}
	if active.Status != engine.StatusCancelled {
		t.Errorf("default status = %q, want cancelled until finalization", active.Status)
	}
}
