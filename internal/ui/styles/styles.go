// Package styles holds the shared lipgloss styles for the UI chrome.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	HeaderNote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	// SelectedBg is the selection background. The row highlighter splices
	// it into raw SGR sequences, so it is a color rather than a style.
	SelectedBg = lipgloss.Color("236")

	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	InfoTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)

	InfoError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	HelpGroup = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	HelpKeys = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))
)
