package components

import (
	"strings"

	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. status is shown on the
// right; busy highlights it while a background fetch is running.
func RenderStatusBar(width int, status string, busy bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	rightStyle := style
	if busy {
		rightStyle = rightStyle.Foreground(t.Yellow)
	}

	left := " [?]help  [e]dit  [l]ive  [q]uit"
	right := ""
	if status != "" {
		right = status + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left+strings.Repeat(" ", padding)) + rightStyle.Render(right)
}
