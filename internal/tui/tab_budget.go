package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/components"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// budgetState tracks the selected category budget row.
type budgetState struct {
	cursor int
}

func (b *budgetState) clamp(n int) {
	b.cursor = max(0, min(b.cursor, n-1))
}

func (a App) categoryRows() []model.CategoryBudgetRow {
	return pipeline.CategoryBudgetRows(a.budgets, a.expenses, a.month)
}

func (a App) updateBudgetKey(key string) (App, tea.Cmd, bool) {
	rows := a.categoryRows()
	switch key {
	case "j", "down":
		a.budget.cursor = min(a.budget.cursor+1, len(rows)-1)
		a.budget.clamp(len(rows))
	case "k", "up":
		a.budget.cursor = max(a.budget.cursor-1, 0)
	case "enter", "e":
		if len(rows) == 0 {
			return a, nil, true
		}
		m, cmd := a.openBudgetForm(rows[a.budget.cursor].Budget.Label)
		return m.(App), cmd, true
	case "d":
		if len(rows) == 0 {
			return a, nil, true
		}
		next, cmd := a.openDeleteBudget(rows[a.budget.cursor].Budget)
		return next, cmd, true
	case "D":
		if a.summary.Budget == nil {
			return a, nil, true
		}
		next, cmd := a.openDeleteBudget(*a.summary.Budget)
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	sym := a.currency()
	innerW := components.CardInnerWidth(cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	barW := max(10, innerW-60)
	labelW := 14

	var b strings.Builder

	// Overall
	var overall strings.Builder
	s := a.summary
	if s.Budget == nil {
		overall.WriteString(mutedStyle.Render("No overall budget for this month. Press s to set one."))
		overall.WriteString("\n")
		overall.WriteString(mutedStyle.Render("Spent so far ") + valueStyle.Render(cli.FormatAmount(s.Total, sym)))
	} else {
		overall.WriteString(components.BudgetBar(model.OverallLabel, s.Progress,
			cli.FormatAmount(s.Total, sym), cli.FormatAmount(s.Budget.Amount, sym), labelW, barW))
		overall.WriteString("\n")
		remaining := s.Budget.Amount.Sub(s.Total)
		status := lipgloss.NewStyle().Foreground(components.StatusColor(s.Progress.Status)).Background(t.Surface)
		if remaining.IsNegative() {
			overall.WriteString(status.Render(cli.FormatAmount(remaining.Neg(), sym) + " over budget"))
		} else {
			overall.WriteString(status.Render(cli.FormatAmount(remaining, sym) + " remaining"))
		}
	}
	b.WriteString(components.ContentCard("Overall · "+cli.FormatMonth(a.month), overall.String(), cw))
	b.WriteString("\n")

	// Categories
	var cats strings.Builder
	rows := a.categoryRows()
	if len(rows) == 0 {
		cats.WriteString(mutedStyle.Render("No category budgets. Press s and pick a category."))
	}
	for i, r := range rows {
		marker := mutedStyle.Render("  ")
		if i == a.budget.cursor {
			marker = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("▸ ")
		}
		cats.WriteString(marker)
		cats.WriteString(labelDot(model.KindExpense, r.Budget.Label))
		cats.WriteString(mutedStyle.Render(" "))
		cats.WriteString(components.BudgetBar(r.Budget.Label, r.Progress,
			cli.FormatAmount(r.Spent, sym), cli.FormatAmount(r.Budget.Amount, sym), labelW, barW))
		cats.WriteString("\n")
	}

	// Categories with spending but no budget
	if unbudgeted := a.unbudgetedCategories(rows); len(unbudgeted) > 0 {
		cats.WriteString("\n")
		cats.WriteString(mutedStyle.Render(fmt.Sprintf("Without a budget: %s", strings.Join(unbudgeted, ", "))))
		cats.WriteString("\n")
	}

	cats.WriteString("\n")
	cats.WriteString(hintStyle.Render("[s] set  [Enter] edit  [d] remove  [D] remove overall  [j/k] move"))

	b.WriteString(components.ContentCard("Categories", cats.String(), cw))
	return b.String()
}

// unbudgetedCategories lists categories with spending this month but no
// category budget, largest first.
func (a App) unbudgetedCategories(rows []model.CategoryBudgetRow) []string {
	have := make(map[string]bool, len(rows))
	for _, r := range rows {
		have[r.Budget.Label] = true
	}
	var out []string
	for _, la := range pipeline.BreakdownByLabel(a.expenses) {
		if !have[la.Label] {
			out = append(out, la.Label)
		}
	}
	return out
}
