// Package engine implements the focus/rest timer state machine.
//
// Remaining time is always measured against a fixed wall-clock target rather
// than a decremented counter, so the countdown stays correct across missed
// ticks and process suspension. Negative remaining time means the session is
// running in overtime; there is no terminal "expired" state.
package engine

import (
	"sync"
	"time"

	"github.com/gentlepom/gentlepom/internal/clock"
	"github.com/rs/zerolog"
)

// minDuration is the floor for both the scheduled total and the visible
// remaining time when durations are adjusted.
const minDuration = time.Minute

// defaultTickInterval is how often listeners receive a recomputed snapshot
// while the timer runs.
const defaultTickInterval = 50 * time.Millisecond

// Config contains the engine's scheduled durations and mode-advance behavior.
type Config struct {
	FocusDuration  time.Duration
	RestDuration   time.Duration
	AutoStartBreak bool
	AutoStartFocus bool
	TickInterval   time.Duration
}

// Engine is the timer state machine. All operations are atomic with respect
// to each other; session lifecycle events are forwarded to a SessionSink.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	clock     clock.Clock
	sink      SessionSink
	checker   TaskChecker
	log       zerolog.Logger
	mode      Mode
	running   bool
	remaining time.Duration
	total     time.Duration
	target    time.Time // wall-clock session end; zero while not running
	taskName  string
	taskPath  string
	listeners map[int]func(Snapshot)
	nextID    int
	stopCh    chan struct{}
	looping   bool
}

// New creates an Engine in the Stopped focus state.
func New(cfg Config, clk clock.Clock, sink SessionSink, logger zerolog.Logger) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if clk == nil {
		clk = clock.System{}
	}
	if sink == nil {
		sink = NopSink{}
	}

	return &Engine{
		cfg:       cfg,
		clock:     clk,
		sink:      sink,
		log:       logger,
		mode:      ModeFocus,
		remaining: cfg.FocusDuration,
		total:     cfg.FocusDuration,
		taskName:  NoTaskName,
		listeners: make(map[int]func(Snapshot)),
	}
}

// SetTaskChecker injects the collaborator consulted on external document
// changes.
func (e *Engine) SetTaskChecker(c TaskChecker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checker = c
}

// Subscribe registers a listener that receives a snapshot on every state
// change and on every tick. Listeners must not block and must not call back
// into the engine. Returns an id for Unsubscribe.
func (e *Engine) Subscribe(fn func(Snapshot)) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return id
}

// Unsubscribe removes a previously registered listener.
func (e *Engine) Unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, id)
}

// Snapshot returns the current state. While running, remaining time is
// recomputed from the wall-clock target.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.remaining = e.target.Sub(e.clock.Now())
	}
	return e.snapshotLocked()
}

// Start transitions Stopped/Paused to Running. No-op if already running.
// Beginning from Stopped opens a new session record; beginning from Paused
// closes the open pause interval instead (the sink folds both into Begin).
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.startLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Pause transitions Running to Paused and opens a pause interval on the
// in-progress session. No-op if not running.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.remaining = e.target.Sub(e.clock.Now())
	e.running = false
	e.target = time.Time{}
	e.haltLoopLocked()
	e.sink.Pause()
	e.log.Debug().Str("mode", string(e.mode)).Msg("timer paused")
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Finish ends the current session as finished, regardless of remaining time
// sign, then switches to the other mode, auto-starting per configuration.
func (e *Engine) Finish() {
	e.mu.Lock()
	e.endLocked(StatusFinished)
	next := e.mode.Other()
	e.switchModeLocked(next, e.autoStartFor(next))
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Skip ends the current session early and advances to the next mode without
// auto-starting. A skipped focus session is cancelled; a skipped rest session
// is finished, since leaving a break is a normal way to complete it.
func (e *Engine) Skip() {
	e.mu.Lock()
	status := StatusCancelled
	if e.mode == ModeRest {
		status = StatusFinished
	}
	e.endLocked(status)
	e.switchModeLocked(e.mode.Other(), false)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Reset restores the visible countdown to the full scheduled duration. The
// in-progress session record is untouched and keeps accumulating from its
// original start time; only the displayed remaining time resets.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.remaining = e.total
	if e.running {
		e.target = e.clock.Now().Add(e.total)
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// AddMinutes adjusts the scheduled total and the remaining time by delta
// minutes. The total never drops below one minute and remaining never exceeds
// the new total; a countdown additionally never drops below one minute, while
// negative (overtime) remaining simply shifts by the applied delta. While
// running, the wall-clock target shifts by the applied (post-clamp) delta so
// the next tick does not jump.
func (e *Engine) AddMinutes(delta int) {
	e.mu.Lock()
	now := e.clock.Now()

	newTotal := e.total + time.Duration(delta)*time.Minute
	if newTotal < minDuration {
		newTotal = minDuration
	}
	applied := newTotal - e.total

	cur := e.remaining
	if e.running {
		cur = e.target.Sub(now)
	}
	rem := cur + applied
	if rem > newTotal {
		rem = newTotal
	}
	// A session already in overtime keeps counting up: the adjustment only
	// shifts how deep the overtime is. The floor applies to countdowns only.
	if cur >= 0 && rem < minDuration {
		rem = minDuration
	}

	e.total = newTotal
	e.remaining = rem
	if e.running {
		e.target = now.Add(rem)
	}

	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// SwitchMode resets to a fresh state for the target mode. With autoStart it
// immediately begins a new session; otherwise the timer is left Stopped.
func (e *Engine) SwitchMode(mode Mode, autoStart bool) {
	e.mu.Lock()
	e.switchModeLocked(mode, autoStart)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// UpdateDuration live-reconfigures the scheduled duration for a mode. If that
// mode is active and the timer sits at a fresh, unstarted state, the visible
// remaining time updates too.
func (e *Engine) UpdateDuration(mode Mode, minutes int) {
	if minutes < 1 {
		return
	}
	e.mu.Lock()
	d := time.Duration(minutes) * time.Minute
	switch mode {
	case ModeFocus:
		e.cfg.FocusDuration = d
	case ModeRest:
		e.cfg.RestDuration = d
	}

	fresh := !e.running && e.remaining == e.total
	if e.mode == mode && fresh {
		e.total = d
		e.remaining = d
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// SetTask updates the linked task at any point, including mid-session, and
// pushes the update into the active session record so the eventual log line
// reflects the latest selection. An empty name clears the link.
func (e *Engine) SetTask(name, path string) {
	if name == "" {
		name = NoTaskName
		path = ""
	}
	e.mu.Lock()
	e.taskName = name
	e.taskPath = path
	e.sink.UpdateTask(name, path)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// ClearTask unlinks the current task.
func (e *Engine) ClearTask() {
	e.SetTask(NoTaskName, "")
}

// OnExternalDocumentChange notifies the engine that a document changed. When
// the changed document is the linked task's source and the task checker
// reports it complete, the link is cleared.
func (e *Engine) OnExternalDocumentChange(path string) {
	e.mu.Lock()
	name, current := e.taskName, e.taskPath
	checker := e.checker
	e.mu.Unlock()

	if checker == nil || current == "" || path != current {
		return
	}
	if checker.TaskComplete(current, name) {
		e.log.Debug().Str("path", path).Str("task", name).Msg("linked task completed, unlinking")
		e.ClearTask()
	}
}

// Close halts the tick loop and drops all listeners.
func (e *Engine) Close() {
	e.mu.Lock()
	e.haltLoopLocked()
	e.running = false
	e.target = time.Time{}
	e.listeners = make(map[int]func(Snapshot))
	e.mu.Unlock()
}

// startLocked begins running from the current remaining time and issues the
// sink's Begin call (fresh start or resume, decided by the recorder).
func (e *Engine) startLocked() {
	now := e.clock.Now()
	e.running = true
	e.target = now.Add(e.remaining)
	e.startLoopLocked()
	e.sink.Begin(e.mode, e.taskName, int(e.total/time.Minute), e.taskPath)
	e.log.Debug().Str("mode", string(e.mode)).Dur("remaining", e.remaining).Msg("timer running")
}

// endLocked stops the clock and finalizes the in-progress session, if any.
func (e *Engine) endLocked(status SessionStatus) {
	e.running = false
	e.target = time.Time{}
	e.haltLoopLocked()
	e.sink.End(status)
	e.log.Debug().Str("mode", string(e.mode)).Str("status", string(status)).Msg("session ended")
}

// switchModeLocked resets to a fresh state for the target mode.
func (e *Engine) switchModeLocked(mode Mode, autoStart bool) {
	e.running = false
	e.target = time.Time{}
	e.haltLoopLocked()
	e.mode = mode
	e.total = e.scheduledLocked(mode)
	e.remaining = e.total
	if autoStart {
		e.startLocked()
	}
}

func (e *Engine) scheduledLocked(mode Mode) time.Duration {
	if mode == ModeRest {
		return e.cfg.RestDuration
	}
	return e.cfg.FocusDuration
}

func (e *Engine) autoStartFor(next Mode) bool {
	if next == ModeRest {
		return e.cfg.AutoStartBreak
	}
	return e.cfg.AutoStartFocus
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:      e.mode,
		Running:   e.running,
		Remaining: e.remaining,
		Total:     e.total,
		TaskName:  e.taskName,
		TaskPath:  e.taskPath,
	}
}

// notify delivers a snapshot to all listeners outside the state lock.
func (e *Engine) notify(snap Snapshot) {
	e.mu.Lock()
	fns := make([]func(Snapshot), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// startLoopLocked launches the tick goroutine if it is not already running.
func (e *Engine) startLoopLocked() {
	if e.looping {
		return
	}
	e.looping = true
	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)
}

// haltLoopLocked stops the tick goroutine.
func (e *Engine) haltLoopLocked() {
	if !e.looping {
		return
	}
	close(e.stopCh)
	e.looping = false
}

func (e *Engine) run(stop <-chan struct{}) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick recomputes remaining time from the wall clock and notifies listeners.
func (e *Engine) tick() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.remaining = e.target.Sub(e.clock.Now())
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}
