package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// Toast is a transient notice shown in the status bar after a mutation.
type Toast struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// toast (if any) and the selected month on the right.
func RenderStatusBar(width int, month string, toast Toast) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	monthStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [a]dd  [i]ncome  [[/]]month  [q]uit")

	right := monthStyle.Render(month) + base.Render(" ")
	if toast.Text != "" {
		color := t.Green
		if toast.Error {
			color = t.Red
		}
		toastStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
		right = toastStyle.Render(toast.Text) + base.Render("  ") + right
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
