// Package ui renders project snapshots for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by Render and InfoModel.
type Styles struct {
	Title   lipgloss.Style
	Dir     lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Spinner lipgloss.Style
	Frame   lipgloss.Style
}

func NewStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79FF"}
	muted := lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	accent := lipgloss.AdaptiveColor{Light: "#0B7A75", Dark: "#3FD0C9"}

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Dir: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Label: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Value:   lipgloss.NewStyle(),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Spinner: lipgloss.NewStyle().Foreground(primary),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
	}
}

// PlainStyles renders without colour or borders, for pipes and --plain.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Dir:     plain,
		Label:   plain,
		Value:   plain,
		Body:    plain,
		Muted:   plain,
		Spinner: plain,
		Frame:   plain,
	}
}
