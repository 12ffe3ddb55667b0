// Package tui is the terminal rendition of the advocates directory.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent      = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("#6b7280")
	colorDestructive = lipgloss.Color("#e53935")
	colorBorder      = lipgloss.Color("#dce0e5")
)

// Styles holds the lipgloss styles used by the model.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Live    lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1),
		Bold:  lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Error: lipgloss.NewStyle().
			Foreground(colorDestructive).
			Bold(true),
		Live:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Spinner: lipgloss.NewStyle().Foreground(colorAccent),
		Divider: lipgloss.NewStyle().Foreground(colorBorder),
	}
}
