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

// ledgerState holds the ledger tab state. With detailDate set the tab shows
// a single day split into Expenses and Income.
type ledgerState struct {
	kind       model.Kind
	cursor     int
	offset     int // scroll offset in lines
	detailDate string
}

func (l *ledgerState) clamp(records []model.Transaction) {
	l.cursor = max(0, min(l.cursor, len(records)-1))
}

func (l *ledgerState) move(delta, n int) {
	l.cursor = max(0, min(l.cursor+delta, n-1))
}

func (l *ledgerState) openDetail(date string, kind model.Kind) {
	l.detailDate = date
	l.kind = kind
	l.cursor = 0
	l.offset = 0
}

func (l *ledgerState) closeDetail() {
	l.detailDate = ""
	l.cursor = 0
	l.offset = 0
}

func (l *ledgerState) toggleKind() {
	if l.kind == model.KindIncome {
		l.kind = model.KindExpense
	} else {
		l.kind = model.KindIncome
	}
	l.cursor = 0
	l.offset = 0
}

// recordsOf returns the loaded records of kind for the selected month.
func (a App) recordsOf(kind model.Kind) []model.Transaction {
	if kind == model.KindIncome {
		return a.incomes
	}
	return a.expenses
}

// ledgerRecords returns the records the ledger cursor walks, in display order.
func (a App) ledgerRecords() []model.Transaction {
	records := a.recordsOf(a.ledger.kind)
	if a.ledger.detailDate != "" {
		return pipeline.FilterByDate(records, a.ledger.detailDate)
	}
	var flat []model.Transaction
	for _, g := range pipeline.DayGroups(records) {
		flat = append(flat, g.Records...)
	}
	return flat
}

func (a App) selectedRecord() (model.Transaction, bool) {
	records := a.ledgerRecords()
	if a.ledger.cursor < 0 || a.ledger.cursor >= len(records) {
		return model.Transaction{}, false
	}
	return records[a.ledger.cursor], true
}

func (a App) updateLedgerKey(key string) (App, tea.Cmd, bool) {
	n := len(a.ledgerRecords())
	switch key {
	case "j", "down":
		a.ledger.move(1, n)
	case "k", "up":
		a.ledger.move(-1, n)
	case "g":
		a.ledger.cursor = 0
	case "G":
		a.ledger.move(n, n)
	case "tab":
		a.ledger.toggleKind()
	case "enter":
		if a.ledger.detailDate != "" {
			return a, nil, true
		}
		if r, ok := a.selectedRecord(); ok {
			a.ledger.openDetail(r.Date, a.ledger.kind)
		}
	case "esc":
		if a.ledger.detailDate == "" {
			return a, nil, false
		}
		a.ledger.closeDetail()
	case "e":
		if r, ok := a.selectedRecord(); ok {
			next, cmd := a.openEditForm(r)
			return next, cmd, true
		}
	case "d":
		if r, ok := a.selectedRecord(); ok {
			next, cmd := a.openDeleteTransaction(r)
			return next, cmd, true
		}
	case "a", "i":
		if a.ledger.detailDate == "" {
			return a, nil, false
		}
		kind := model.KindExpense
		if key == "i" {
			kind = model.KindIncome
		}
		m, cmd := a.openAddForm(kind, a.ledger.detailDate)
		return m.(App), cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderLedgerTab(cw, h int) string {
	if a.ledger.detailDate != "" {
		return a.renderDayDetail(cw, h)
	}
	return a.renderLedgerList(cw, h)
}

func (a App) ledgerTitle() string {
	if a.ledger.kind == model.KindIncome {
		return "Income"
	}
	return "Expenses"
}

// renderLedgerList shows the month's records grouped by day, newest first.
func (a App) renderLedgerList(cw, h int) string {
	t := theme.Active
	sym := a.currency()
	innerW := components.CardInnerWidth(cw)

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	records := a.recordsOf(a.ledger.kind)
	title := fmt.Sprintf("%s · %s", a.ledgerTitle(), cli.FormatMonth(a.month))
	hint := hintStyle.Render("[j/k] move  [Enter] day  [Tab] expenses/income  [e]dit  [d]elete")

	if len(records) == 0 {
		empty := "No expenses recorded this month. Press a to add one."
		if a.ledger.kind == model.KindIncome {
			empty = "No income recorded this month. Press i to add one."
		}
		return components.ContentCard(title, mutedStyle.Render(empty)+"\n\n"+hint, cw)
	}

	var lines []string
	cursorLine := 0
	idx := 0
	for _, g := range pipeline.DayGroups(records) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		heading := cli.FormatDayHeading(g.Date)
		total := cli.FormatAmount(g.Total, sym)
		gap := max(1, innerW-lipgloss.Width(heading)-lipgloss.Width(total))
		lines = append(lines, headStyle.Render(heading)+mutedStyle.Render(strings.Repeat(" ", gap))+headStyle.Render(total))
		for _, r := range g.Records {
			if idx == a.ledger.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, a.renderRecordRow(r, innerW, idx == a.ledger.cursor))
			idx++
		}
	}

	visible := max(3, h-5) // card border (2) + title (1) + blank + hint
	offset := a.ledger.offset
	if cursorLine < offset {
		offset = cursorLine
	}
	if cursorLine >= offset+visible {
		offset = cursorLine - visible + 1
	}
	end := min(len(lines), offset+visible)

	body := strings.Join(lines[offset:end], "\n")
	summary := mutedStyle.Render(fmt.Sprintf("%d records · total ", len(records))) +
		headStyle.Render(cli.FormatAmount(pipeline.TotalOf(records), sym))
	return components.ContentCard(title, body+"\n\n"+summary+"  "+hint, cw)
}

// renderRecordRow renders "● Label  note  amount" across width.
func (a App) renderRecordRow(r model.Transaction, width int, selected bool) string {
	t := theme.Active
	bg := t.Surface
	if selected {
		bg = t.SurfaceHover
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).Bold(selected)
	if r.Kind == model.KindIncome {
		amountStyle = amountStyle.Foreground(t.Green)
	}
	dot := lipgloss.NewStyle().Foreground(theme.LabelColor(r.Kind, r.Label)).Background(bg).Render("●")

	marker := noteStyle.Render("  ")
	if selected {
		marker = lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Render("▸ ")
	}

	amount := cli.FormatAmount(r.Amount, a.currency())
	label := fmt.Sprintf(" %-14s", model.DisplayLabel(r.Kind, r.Label))
	noteW := width - 3 - lipgloss.Width(label) - lipgloss.Width(amount) - 2
	note := truncStr(strings.ReplaceAll(r.Note, "\n", " "), noteW)
	gap := max(1, noteW-lipgloss.Width(note)+1)

	return marker + dot + labelStyle.Render(label) + noteStyle.Render(" "+note+strings.Repeat(" ", gap)) + amountStyle.Render(amount)
}

// renderDayDetail shows one day with Expenses and Income sub-tabs and a
// per-label breakdown of the active side.
func (a App) renderDayDetail(cw, h int) string {
	t := theme.Active
	sym := a.currency()
	date := a.ledger.detailDate
	innerW := components.CardInnerWidth(cw)

	expenses := pipeline.FilterByDate(a.expenses, date)
	incomes := pipeline.FilterByDate(a.incomes, date)

	activeTab := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true).Padding(0, 1)
	idleTab := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	expTab := fmt.Sprintf("Expenses (%d)", len(expenses))
	incTab := fmt.Sprintf("Income (%d)", len(incomes))
	var tabs string
	if a.ledger.kind == model.KindIncome {
		tabs = idleTab.Render(expTab) + mutedStyle.Render(" ") + activeTab.Render(incTab)
	} else {
		tabs = activeTab.Render(expTab) + mutedStyle.Render(" ") + idleTab.Render(incTab)
	}

	totals := mutedStyle.Render("Spent ") + valueStyle.Render(cli.FormatAmount(pipeline.TotalOf(expenses), sym)) +
		mutedStyle.Render("   Earned ") + valueStyle.Render(cli.FormatAmount(pipeline.TotalOf(incomes), sym))

	var body strings.Builder
	body.WriteString(tabs)
	body.WriteString("\n\n")
	body.WriteString(totals)
	body.WriteString("\n\n")

	records := a.ledgerRecords()
	if len(records) == 0 {
		empty := "No expenses on this day"
		if a.ledger.kind == model.KindIncome {
			empty = "No income on this day"
		}
		body.WriteString(mutedStyle.Render(empty))
	} else {
		visible := max(3, h-14)
		start := max(0, a.ledger.cursor-visible+1)
		end := min(len(records), start+visible)
		for i := start; i < end; i++ {
			body.WriteString(a.renderRecordRow(records[i], innerW, i == a.ledger.cursor))
			body.WriteString("\n")
		}

		rows := pipeline.BreakdownByLabel(records)
		total := pipeline.TotalOf(records)
		bars := make([]components.HBar, len(rows))
		for i, r := range rows {
			bars[i] = components.HBar{
				Label: model.DisplayLabel(a.ledger.kind, r.Label),
				Value: r.Amount.InexactFloat64(),
				Right: fmt.Sprintf("%s %3d%%", cli.FormatAmount(r.Amount, sym), pipeline.SharePercent(r.Amount, total)),
				Color: theme.LabelColor(a.ledger.kind, r.Label),
			}
		}
		body.WriteString("\n")
		body.WriteString(components.HorizontalBars(bars, innerW))
	}

	body.WriteString("\n\n")
	body.WriteString(hintStyle.Render("[Tab] expenses/income  [a]dd  [i]ncome  [e]dit  [d]elete  [Esc] back"))

	return components.ContentCard(cli.FormatLongDate(date), body.String(), cw)
}
