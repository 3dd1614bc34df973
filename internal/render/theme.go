package render

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#14B8A6") // Teal
	Warn    = lipgloss.Color("#F97316") // Orange
	Fg      = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Number = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Fg)

	Answer = lipgloss.NewStyle().
		Foreground(Fg).
		PaddingLeft(4)

	ID = lipgloss.NewStyle().
		Foreground(TextDim).
		PaddingLeft(4)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)
