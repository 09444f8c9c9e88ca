package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gentlepom/gentlepom/internal/tasks"
	"github.com/gentlepom/gentlepom/internal/tui/ui"
)

// TasksModel is the model for the task picker view
type TasksModel struct {
	root   string // tasks folder; empty disables the picker
	styles ui.Styles
	keys   ui.KeyMap

	items  []tasks.Task
	cursor int
	err    error
}

// NewTasksModel creates a new task picker model
func NewTasksModel(root string, styles ui.Styles, keys ui.KeyMap) TasksModel {
	return TasksModel{
		root:   root,
		styles: styles,
		keys:   keys,
	}
}

// tasksLoadedMsg is sent when the task scan completes
type tasksLoadedMsg struct {
	items []tasks.Task
	err   error
}

// Init implements tea.Model
func (m TasksModel) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks scans the configured folder off the UI loop
func (m TasksModel) loadTasks() tea.Cmd {
	if m.root == "" {
		return nil
	}
	root := m.root
	return func() tea.Msg {
		items, err := tasks.Scan(root, time.Now())
		return tasksLoadedMsg{items: items, err: err}
	}
}

// Update implements tea.Model
func (m TasksModel) Update(msg tea.Msg) (TasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.items = msg.items
		m.err = msg.err
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				task := m.items[m.cursor]
				return m, func() tea.Msg {
					return ui.TaskSelectedMsg{Name: task.Name, Path: task.Path}
				}
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m TasksModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Tasks"))
	b.WriteString("\n")

	if m.root == "" {
		b.WriteString(m.styles.StatLabel.Render("No tasks folder configured. Set tasks_path in the config file."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString(m.styles.StatLabel.Render("Nothing due in the next week."))
		return b.String()
	}

	for i, task := range m.items {
		line := fmt.Sprintf("%s  %s", task.Due.Format("2006-01-02"), task.Name)
		if i == m.cursor {
			b.WriteString(m.styles.TaskSelected.Render("> " + line))
		} else {
			b.WriteString(m.styles.TaskNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("enter links the task to the running session"))
	return b.String()
}
