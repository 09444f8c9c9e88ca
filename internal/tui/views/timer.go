package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/gentlepom/gentlepom/internal/tui/ui"
)

// TimerModel is the model for the timer view. It is a thin presenter over
// engine snapshots; all timing logic lives in the engine.
type TimerModel struct {
	engine *engine.Engine
	styles ui.Styles
	keys   ui.KeyMap

	width  int
	height int
	snap   engine.Snapshot
}

// NewTimerModel creates a new timer view model
func NewTimerModel(eng *engine.Engine, styles ui.Styles, keys ui.KeyMap) TimerModel {
	return TimerModel{
		engine: eng,
		styles: styles,
		keys:   keys,
		snap:   eng.Snapshot(),
	}
}

// Init implements tea.Model
func (m TimerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TimerModel) Update(msg tea.Msg) (TimerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.SnapshotMsg:
		m.snap = engine.Snapshot(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.StartPause):
			if m.snap.Running {
				m.engine.Pause()
			} else {
				m.engine.Start()
			}
		case key.Matches(msg, m.keys.Finish):
			m.engine.Finish()
		case key.Matches(msg, m.keys.Skip):
			m.engine.Skip()
		case key.Matches(msg, m.keys.Reset):
			m.engine.Reset()
		case key.Matches(msg, m.keys.AddMinute):
			m.engine.AddMinutes(1)
		case key.Matches(msg, m.keys.SubMinute):
			// Guard: never decrement past what is left on the clock
			if m.snap.Remaining > time.Minute {
				m.engine.AddMinutes(-1)
			}
		case key.Matches(msg, m.keys.ClearTask):
			m.engine.ClearTask()
		}
		m.snap = m.engine.Snapshot()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m TimerModel) View() string {
	var b strings.Builder

	b.WriteString(m.modeLine())
	b.WriteString("\n\n")

	clockStyle := m.styles.Clock
	if m.snap.Overtime() {
		clockStyle = m.styles.ClockOvertime
	}
	b.WriteString(clockStyle.Render(FormatClock(m.snap.Remaining)))
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("of " + FormatClock(m.snap.Total)))
	b.WriteString("\n\n")

	if m.snap.Mode == engine.ModeFocus {
		b.WriteString(m.styles.StatLabel.Render("Task:"))
		b.WriteString(" ")
		b.WriteString(m.styles.StatValue.Render(m.snap.TaskName))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m TimerModel) modeLine() string {
	if m.snap.Mode == engine.ModeRest {
		return m.styles.ModeRest.Render("☕ Rest")
	}
	return m.styles.ModeFocus.Render("🍅 Focus")
}

func (m TimerModel) statusLine() string {
	switch {
	case m.snap.Overtime():
		return m.styles.Warning.Render("overtime - press f to finish")
	case m.snap.Running:
		return m.styles.StatLabel.Render("running")
	case m.snap.Remaining < m.snap.Total:
		return m.styles.Paused.Render("paused - press space to resume")
	default:
		return m.styles.Paused.Render("press space to start")
	}
}

// FormatClock renders a countdown duration as MM:SS (or H:MM:SS above an
// hour). Negative durations - overtime - render their absolute value with a
// "+" prefix.
func FormatClock(d time.Duration) string {
	prefix := ""
	if d < 0 {
		prefix = "+"
		d = -d
	}

	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", prefix, hours, minutes, seconds)
	}
	return fmt.Sprintf("%s%02d:%02d", prefix, minutes, seconds)
}
