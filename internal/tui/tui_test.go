package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gentlepom/gentlepom/internal/clock"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/gentlepom/gentlepom/internal/tui/ui"
	"github.com/rs/zerolog"
)

func newTestModel(t *testing.T) (Model, *engine.Engine) {
	t.Helper()
	fake := clock.NewFake(time.Date(2025, 12, 21, 14, 0, 0, 0, time.Local))
	eng := engine.New(engine.Config{
		FocusDuration: 25 * time.Minute,
		RestDuration:  5 * time.Minute,
		TickInterval:  time.Hour,
	}, fake, nil, zerolog.Nop())
	t.Cleanup(eng.Close)

	m := New(eng, "", "")
	t.Cleanup(m.Close)
	return m, eng
}

func TestNew(t *testing.T) {
	m, _ := newTestModel(t)

	if m.activeTab != TabTimer {
		t.Errorf("expected initial tab to be Timer, got %d", m.activeTab)
	}
	if m.showHelp {
		t.Error("expected showHelp to be false initially")
	}
}

func TestInit(t *testing.T) {
	m, _ := newTestModel(t)

	if cmd := m.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	got := newModel.(Model)

	if got.width != 100 {
		t.Errorf("expected width 100, got %d", got.width)
	}
	if got.height != 50 {
		t.Errorf("expected height 50, got %d", got.height)
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := newModel.(Model)
	if got.activeTab != TabTasks {
		t.Errorf("expected tab to advance to Tasks, got %d", got.activeTab)
	}

	newModel, _ = got.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	got = newModel.(Model)
	if got.activeTab != TabTimer {
		t.Errorf("expected tab to return to Timer, got %d", got.activeTab)
	}

	newModel, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	got = newModel.(Model)
	if got.activeTab != TabLog {
		t.Errorf("expected '3' to jump to Log, got %d", got.activeTab)
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	got := newModel.(Model)
	if !got.showHelp {
		t.Error("expected help to be shown after ?")
	}

	newModel, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	got = newModel.(Model)
	if got.showHelp {
		t.Error("expected help to be hidden after second ?")
	}
}

func TestUpdate_TaskSelectedSetsEngineTask(t *testing.T) {
	m, eng := newTestModel(t)
	m.activeTab = TabTasks

	newModel, _ := m.Update(ui.TaskSelectedMsg{Name: "Write report", Path: "work/todo.md"})
	got := newModel.(Model)

	if got.activeTab != TabTimer {
		t.Errorf("expected task selection to switch back to the timer view, got %d", got.activeTab)
	}
	snap := eng.Snapshot()
	if snap.TaskName != "Write report" || snap.TaskPath != "work/todo.md" {
		t.Errorf("expected engine task to be set, got %q %q", snap.TaskName, snap.TaskPath)
	}
}

func TestUpdate_SnapshotRoutedToTimerView(t *testing.T) {
	m, eng := newTestModel(t)
	m.activeTab = TabLog

	eng.Start()
	newModel, cmd := m.Update(ui.SnapshotMsg(eng.Snapshot()))
	got := newModel.(Model)

	if cmd == nil {
		t.Error("expected a re-armed snapshot wait command")
	}
	got.activeTab = TabTimer
	got.width = 80
	if view := got.View(); !strings.Contains(view, "25:00") {
		t.Errorf("expected timer view to reflect the running snapshot, got:\n%s", view)
	}
}

func TestView_RendersTabsAndStatusBar(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 80
	m.height = 24

	view := m.View()
	for _, want := range []string{"Timer", "Tasks", "Log", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestView_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 80
	m.showHelp = true

	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("expected help view, got:\n%s", view)
	}
}
