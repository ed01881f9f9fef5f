package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7280")
	destructive = lipgloss.Color("#e53935")
	highlight   = lipgloss.Color("#2196F3")
)

// Styles groups the lipgloss styles used by the board view.
type Styles struct {
	Header       lipgloss.Style
	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	Selected     lipgloss.Style
	Dragged      lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
}

func DefaultStyles() Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Column:       column,
		ActiveColumn: column.BorderForeground(accent),
		ColumnTitle:  lipgloss.NewStyle().Bold(true),
		Card:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Reverse(true),
		Dragged:      lipgloss.NewStyle().Foreground(highlight).Bold(true),
		Empty:        lipgloss.NewStyle().Foreground(muted).Italic(true),
		Status:       lipgloss.NewStyle().Foreground(muted),
		Error:        lipgloss.NewStyle().Foreground(destructive),
	}
}
