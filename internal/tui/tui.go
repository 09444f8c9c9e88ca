// Package tui provides the interactive terminal interface for gentlepom.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/gentlepom/gentlepom/internal/tui/ui"
	"github.com/gentlepom/gentlepom/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabTimer Tab = iota
	TabTasks
	TabLog
)

var tabNames = []string{"Timer", "Tasks", "Log"}

// Model is the root TUI model
type Model struct {
	engine *engine.Engine

	// Snapshot bridge: the engine pushes state changes onto this channel
	// from its own goroutine; waitForSnapshot feeds them into the loop.
	snapshots chan engine.Snapshot
	subID     int

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	timerView views.TimerModel
	tasksView views.TasksModel
	logView   views.LogModel

	styles ui.Styles
	keys   ui.KeyMap
}

// New creates a new TUI model. tasksPath and logFolder may be empty,
// which disables the corresponding views.
func New(eng *engine.Engine, tasksPath, logFolder string) Model {
	styles := ui.DefaultStyles()
	keys := ui.DefaultKeyMap()

	m := Model{
		engine:    eng,
		snapshots: make(chan engine.Snapshot, 16),
		activeTab: TabTimer,
		styles:    styles,
		keys:      keys,
		timerView: views.NewTimerModel(eng, styles, keys),
		tasksView: views.NewTasksModel(tasksPath, styles, keys),
		logView:   views.NewLogModel(logFolder, styles),
	}
	m.subID = eng.Subscribe(m.pushSnapshot)
	return m
}

// pushSnapshot forwards an engine snapshot to the UI loop. Snapshots are
// droppable: a full channel just means a fresher one is already queued
// or the loop is about to pull the current state anyway.
func (m Model) pushSnapshot(snap engine.Snapshot) {
	select {
	case m.snapshots <- snap:
	default:
	}
}

// waitForSnapshot blocks on the snapshot channel as a tea command
func (m Model) waitForSnapshot() tea.Cmd {
	ch := m.snapshots
	return func() tea.Msg {
		return ui.SnapshotMsg(<-ch)
	}
}

// Close detaches the model from the engine
func (m Model) Close() {
	m.engine.Unsubscribe(m.subID)
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForSnapshot(),
		m.timerView.Init(),
		m.tasksView.Init(),
		m.logView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabTimer
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabTasks
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabLog
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timerView, _ = m.timerView.Update(msg)
		m.tasksView, _ = m.tasksView.Update(msg)
		m.logView, _ = m.logView.Update(msg)
		return m, nil

	case ui.SnapshotMsg:
		// Always route timer state to the timer view, whichever tab is
		// visible, then re-arm the bridge.
		m.timerView, cmd = m.timerView.Update(msg)
		return m, tea.Batch(cmd, m.waitForSnapshot())

	case ui.TaskSelectedMsg:
		m.engine.SetTask(msg.Name, msg.Path)
		m.activeTab = TabTimer
		m.timerView, cmd = m.timerView.Update(ui.SnapshotMsg(m.engine.Snapshot()))
		return m, cmd
	}

	// Route everything else to the active view
	switch m.activeTab {
	case TabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case TabTasks:
		m.tasksView, cmd = m.tasksView.Update(msg)
	case TabLog:
		m.logView, cmd = m.logView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.activeTab {
	case TabTimer:
		b.WriteString(m.timerView.View())
	case TabTasks:
		b.WriteString(m.tasksView.View())
	case TabLog:
		b.WriteString(m.logView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.styles.App.Render(m.renderHelp())
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStatusBar renders the key hints at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch m.activeTab {
	case TabTimer:
		parts = append(parts, m.renderKeyHelp("space", "start/pause"))
		parts = append(parts, m.renderKeyHelp("f", "finish"))
		parts = append(parts, m.renderKeyHelp("s", "skip"))
		parts = append(parts, m.renderKeyHelp("r", "reset"))
		parts = append(parts, m.renderKeyHelp("+/-", "minutes"))
	case TabTasks:
		parts = append(parts, m.renderKeyHelp("j/k", "move"))
		parts = append(parts, m.renderKeyHelp("enter", "pick task"))
	case TabLog:
		parts = append(parts, m.renderKeyHelp("2", "tasks"))
	}

	parts = append(parts, m.renderKeyHelp("1-3", "views"))
	parts = append(parts, m.renderKeyHelp("?", "help"))
	parts = append(parts, m.renderKeyHelp("q", "quit"))

	return strings.Join(parts, "  ")
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.HelpKey.Render(key),
		m.styles.HelpDesc.Render(desc))
}

// renderHelp renders the full-screen help view
func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"Timer", []key.Binding{
			m.keys.StartPause, m.keys.Finish, m.keys.Skip,
			m.keys.Reset, m.keys.AddMinute, m.keys.SubMinute, m.keys.ClearTask,
		}},
		{"Tasks", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select}},
		{"Global", []key.Binding{
			m.keys.NextTab, m.keys.PrevTab, m.keys.Help, m.keys.Quit,
		}},
	}

	for _, s := range sections {
		b.WriteString(m.styles.StatValue.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.keys {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.styles.HelpKey.Render(k.Help().Key),
				m.styles.HelpDesc.Render(k.Help().Desc)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpDesc.Render("Press ? to close"))
	return b.String()
}

// initCurrentView refreshes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabTimer:
		return m.timerView.Init()
	case TabTasks:
		return m.tasksView.Init()
	case TabLog:
		return m.logView.Init()
	}
	return nil
}

// Run starts the TUI and blocks until the user quits
func Run(eng *engine.Engine, tasksPath, logFolder string) error {
	model := New(eng, tasksPath, logFolder)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
