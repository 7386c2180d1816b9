package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/quote"
	"github.com/theirongolddev/coffer/internal/tui/components"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

const maxBreakdownRows = 6

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	sym := a.currency()
	var b strings.Builder

	// Row 1: metric cards
	changeColor := t.TextDim
	switch {
	case s.ChangePercent > 0:
		changeColor = t.Red
	case s.ChangePercent < 0:
		changeColor = t.Green
	}
	change := ""
	if !s.PreviousTotal.IsZero() {
		change = cli.FormatChange(s.ChangePercent)
	}

	highest, highestDate := "—", "no spending yet"
	if s.HasHighest {
		highest = cli.FormatAmount(s.Highest.Total, sym)
		highestDate = cli.FormatShortDate(s.Highest.Date)
	}

	cards := []components.Metric{
		{Label: "Total Spend", Value: cli.FormatAmount(s.Total, sym), Delta: change, DeltaColor: changeColor},
		{Label: "This Week", Value: cli.FormatAmount(s.WeekToDate, sym), Delta: "Mon to Sun"},
		{Label: "Transactions", Value: cli.FormatNumber(int64(s.Count)), Delta: "income " + cli.FormatAmount(pipeline.TotalOf(a.incomes), sym)},
		{Label: "Highest Day", Value: highest, Delta: highestDate},
	}
	if s.Budget != nil {
		remaining := s.Budget.Amount.Sub(s.Total)
		delta := cli.FormatAmount(remaining, sym) + " left"
		if remaining.IsNegative() {
			delta = cli.FormatAmount(remaining.Neg(), sym) + " over"
		}
		cards = append(cards, components.Metric{
			Label:      "Budget",
			Value:      cli.FormatAmount(s.Budget.Amount, sym),
			Delta:      delta,
			DeltaColor: components.StatusColor(s.Progress.Status),
		})
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: quote of the day
	q := quote.ForDay(a.now())
	quoteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Italic(true)
	authorStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString(components.ContentCard("",
		quoteStyle.Render("“"+q.Text+"”")+authorStyle.Render("  · "+q.Author), cw))
	b.WriteString("\n")

	// Row 3: category and source breakdowns
	expenseCard := a.breakdownCard("Spending by Category", model.KindExpense, a.expenses, cw)
	incomeCard := a.breakdownCard("Income by Source", model.KindIncome, a.incomes, cw)
	if a.isCompactLayout() {
		b.WriteString(expenseCard)
		b.WriteString("\n")
		b.WriteString(incomeCard)
	} else {
		halves := components.LayoutRow(cw, 2)
		expenseCard = a.breakdownCard("Spending by Category", model.KindExpense, a.expenses, halves[0])
		incomeCard = a.breakdownCard("Income by Source", model.KindIncome, a.incomes, halves[1])
		b.WriteString(components.CardRow([]string{expenseCard, incomeCard}))
	}
	b.WriteString("\n")

	// Row 4: daily spending chart
	series := pipeline.DailySeries(a.expenses, pipeline.ChartWindow(a.month, a.now()))
	if len(series) > 0 {
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		chart := components.DailyChart{
			Series: series,
			Symbol: sym,
			Color:  t.Accent,
			Width:  components.CardInnerWidth(cw),
			Height: chartH,
		}
		if s.HasHighest {
			chart.Highlight = s.Highest.Date
		}
		b.WriteString(components.ContentCard("Daily Spending", chart.Render(), cw))
	}

	return b.String()
}

// breakdownCard renders a label breakdown as horizontal bars with share of
// the total. Rows past maxBreakdownRows are folded into a "+N more" line.
func (a App) breakdownCard(title string, kind model.Kind, records []model.Transaction, w int) string {
	t := theme.Active
	sym := a.currency()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	rows := pipeline.BreakdownByLabel(records)
	if len(rows) == 0 {
		empty := "No expenses this month"
		if kind == model.KindIncome {
			empty = "No income this month"
		}
		return components.ContentCard(title, muted.Render(empty), w)
	}

	total := pipeline.TotalOf(records)
	shown := rows
	if len(shown) > maxBreakdownRows {
		shown = shown[:maxBreakdownRows]
	}

	bars := make([]components.HBar, len(shown))
	for i, r := range shown {
		bars[i] = components.HBar{
			Label: model.DisplayLabel(kind, r.Label),
			Value: r.Amount.InexactFloat64(),
			Right: fmt.Sprintf("%s %3d%%", cli.FormatAmount(r.Amount, sym), pipeline.SharePercent(r.Amount, total)),
			Color: theme.LabelColor(kind, r.Label),
		}
	}

	body := components.HorizontalBars(bars, components.CardInnerWidth(w))
	if extra := len(rows) - len(shown); extra > 0 {
		body += "\n" + muted.Render(fmt.Sprintf("+%d more", extra))
	}
	body += "\n" + muted.Render("Total ") +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true).Render(cli.FormatAmount(total, sym))

	return components.ContentCard(title, body, w)
}
