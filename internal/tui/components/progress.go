package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// ProgressBar renders a block progress bar followed by its percentage.
func ProgressBar(p model.BudgetProgress, width int) string {
	t := theme.Active
	filled := int(p.Ratio * float64(width))
	filled = max(0, min(filled, width))

	barColor := StatusColor(p.Status)

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", p.Ratio*100))
}

// StatusColor maps a budget status to green/orange/red.
func StatusColor(s model.BudgetStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.BudgetOver:
		return t.Red
	case model.BudgetWarning:
		return t.Orange
	default:
		return t.Green
	}
}

// BudgetBar renders a labeled budget row: label, bar, percentage, then
// "spent / ceiling".
func BudgetBar(label string, p model.BudgetProgress, spent, ceiling string, labelW, barWidth int) string {
	t := theme.Active

	ratio := max(0, min(p.Ratio, 1))
	color := StatusColor(p.Status)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(ratio) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", ratio*100)) +
		spaceStyle.Render("  ") +
		amountStyle.Render(spent+" / "+ceiling)
}
