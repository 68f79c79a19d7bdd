package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-configured lipgloss styles for the comparison view.
type Styles struct {
	Title      lipgloss.Style
	ColumnHead lipgloss.Style
	Column     lipgloss.Style
	CardTitle  lipgloss.Style
	Score      lipgloss.Style
	Muted      lipgloss.Style
	// Match is the visual treatment for highlighted query terms:
	// underline + bold on a soft highlight background.
	Match      lipgloss.Style
	InBoth     lipgloss.Style
	PageActive lipgloss.Style
	PageNumber lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	purple := lipgloss.Color("#7C3AED")
	cyan := lipgloss.Color("#06B6D4")
	muted := lipgloss.Color("#6C7086")
	softYellow := lipgloss.Color("#3B3B1F")

	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(purple),
		ColumnHead: lipgloss.NewStyle().Bold(true).Foreground(cyan).Underline(true),
		Column:     lipgloss.NewStyle().Padding(0, 1),
		CardTitle:  lipgloss.NewStyle().Bold(true),
		Score:      lipgloss.NewStyle().Foreground(cyan),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Match:      lipgloss.NewStyle().Bold(true).Underline(true).Background(softYellow),
		InBoth:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		PageActive: lipgloss.NewStyle().Bold(true).Foreground(purple).Underline(true),
		PageNumber: lipgloss.NewStyle().Foreground(muted),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		Status:     lipgloss.NewStyle().Foreground(muted),
	}
}
