// Package tui implements the interactive SQL shell.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the pre-configured lipgloss styles for the shell.
type Styles struct {
	// Prompt styles the input label.
	Prompt lipgloss.Style

	// Header styles the result table header row.
	Header lipgloss.Style

	// Muted styles secondary text (hints, row counts).
	Muted lipgloss.Style

	// Error styles failure messages.
	Error lipgloss.Style
}

// DefaultStyles returns the default shell styles.
func DefaultStyles() *Styles {
	return &Styles{
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}
