package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the chooser and the records board.
var (
	accentColor = lipgloss.Color("229")
	borderColor = lipgloss.Color("240")
	mutedColor  = lipgloss.Color("241")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	solvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	emptyStyle = mutedStyle.Italic(true).Padding(2, 4)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// listItem renders one chooser or sidebar row with the cursor marker.
func listItem(text string, selected bool) string {
	if selected {
		return cursorStyle.Render("> " + text)
	}
	return "  " + text
}
