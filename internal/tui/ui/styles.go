package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	ViewTitle lipgloss.Style

	// Timer
	Clock         lipgloss.Style
	ClockOvertime lipgloss.Style
	ModeFocus     lipgloss.Style
	ModeRest      lipgloss.Style
	Paused        lipgloss.Style

	// Task list
	TaskSelected lipgloss.Style
	TaskNormal   lipgloss.Style
	TaskDue      lipgloss.Style

	// Labels
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	// Color palette
	tomato := lipgloss.Color("203")
	coffee := lipgloss.Color("179")
	muted := lipgloss.Color("240")
	bright := lipgloss.Color("231")
	warning := lipgloss.Color("214")
	errorColor := lipgloss.Color("196")

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(tomato).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		ViewTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(bright).
			MarginBottom(1),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(bright),
		ClockOvertime: lipgloss.NewStyle().
			Bold(true).
			Foreground(warning),
		ModeFocus: lipgloss.NewStyle().
			Bold(true).
			Foreground(tomato),
		ModeRest: lipgloss.NewStyle().
			Bold(true).
			Foreground(coffee),
		Paused: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		TaskSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(tomato),
		TaskNormal: lipgloss.NewStyle().
			Foreground(bright),
		TaskDue: lipgloss.NewStyle().
			Foreground(muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted),
		StatValue: lipgloss.NewStyle().
			Foreground(bright),

		HelpKey: lipgloss.NewStyle().
			Foreground(tomato),
		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),

		Error:   lipgloss.NewStyle().Foreground(errorColor),
		Warning: lipgloss.NewStyle().Foreground(warning),
	}
}
