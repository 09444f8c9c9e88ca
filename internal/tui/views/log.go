package views

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gentlepom/gentlepom/internal/session"
	"github.com/gentlepom/gentlepom/internal/tui/ui"
)

// LogModel shows today's session log file, read-only.
type LogModel struct {
	folder string // log folder; empty means logging is disabled
	styles ui.Styles

	lines []string
	err   error
}

// NewLogModel creates a new log view model
func NewLogModel(folder string, styles ui.Styles) LogModel {
	return LogModel{
		folder: folder,
		styles: styles,
	}
}

// logLoadedMsg is sent when today's log file has been read
type logLoadedMsg struct {
	lines []string
	err   error
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadLog()
}

// loadLog reads today's log file off the UI loop
func (m LogModel) loadLog() tea.Cmd {
	if m.folder == "" {
		return nil
	}
	path := session.LogFilePath(m.folder, time.Now())
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return logLoadedMsg{}
		}
		if err != nil {
			return logLoadedMsg{err: err}
		}
		return logLoadedMsg{lines: strings.Split(string(data), "\n")}
	}
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	if msg, ok := msg.(logLoadedMsg); ok {
		m.lines = msg.lines
		m.err = msg.err
	}
	return m, nil
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Today's Log"))
	b.WriteString("\n")

	if m.folder == "" {
		b.WriteString(m.styles.StatLabel.Render("Logging disabled. Set log_folder in the config file."))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if len(m.lines) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No sessions logged today."))
		return b.String()
	}

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
