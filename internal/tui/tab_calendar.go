package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/components"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// calendarState tracks the selected day as a zero-based offset into the month.
type calendarState struct {
	cursor int
}

func (c *calendarState) clamp(days int) {
	c.cursor = max(0, min(c.cursor, days-1))
}

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const calendarCellLines = 3

// selectedDate returns the calendar cursor as a YYYY-MM-DD key.
func (a App) selectedDate() string {
	return model.DateKey(a.month.AddDate(0, 0, a.cal.cursor))
}

func (a App) updateCalendarKey(key string) (App, tea.Cmd, bool) {
	days := pipeline.MonthWindow(a.month).Days()
	switch key {
	case "left", "h":
		a.cal.cursor--
	case "right":
		a.cal.cursor++
	case "up", "k":
		a.cal.cursor -= 7
	case "down", "j":
		a.cal.cursor += 7
	case "enter":
		a.ledger.openDetail(a.selectedDate(), model.KindExpense)
		a.activeTab = tabLedger
		return a, nil, true
	case "a":
		date := a.selectedDate()
		if model.ValidateDate(date, a.now()) != nil {
			date = model.DateKey(a.now())
		}
		m, cmd := a.openAddForm(model.KindExpense, date)
		return m.(App), cmd, true
	default:
		return a, nil, false
	}
	a.cal.clamp(days)
	return a, nil, true
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)
	cellW := max(6, innerW/7)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true).Width(cellW)
	blankStyle := lipgloss.NewStyle().Background(t.Surface).Width(cellW)

	cells := pipeline.CalendarGrid(a.expenses, a.month, a.now())
	selected := a.selectedDate()

	var grid strings.Builder
	headers := make([]string, len(weekdayHeaders))
	for i, h := range weekdayHeaders {
		headers[i] = headerStyle.Render(" " + h)
	}
	grid.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))

	for start := 0; start < len(cells); start += 7 {
		row := make([]string, 0, 7)
		for i := start; i < start+7; i++ {
			if i >= len(cells) || !cells[i].InMonth {
				row = append(row, blankStyle.Render(strings.Repeat("\n", calendarCellLines-1)))
				continue
			}
			row = append(row, renderCalendarCell(cells[i], cellW, model.DateKey(cells[i].Date) == selected))
		}
		grid.WriteString("\n")
		grid.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	legend := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("less ") +
		heatSwatch(0) + heatSwatch(0.2) + heatSwatch(0.5) + heatSwatch(1) +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(" more")
	grid.WriteString("\n\n")
	grid.WriteString(legend)

	var b strings.Builder
	b.WriteString(components.ContentCard("Calendar · "+cli.FormatMonth(a.month), grid.String(), cw))
	b.WriteString("\n")
	b.WriteString(a.renderDayPreview(selected, cw))
	return b.String()
}

func heatSwatch(intensity float64) string {
	return lipgloss.NewStyle().Background(theme.HeatColor(intensity)).Render("  ")
}

func renderCalendarCell(c model.CalendarCell, w int, selected bool) string {
	t := theme.Active
	bg := theme.HeatColor(c.Intensity)
	fg := t.TextPrimary
	if c.Intensity >= 0.34 {
		fg = t.Background
	}
	if c.Future {
		fg = t.TextDim
	}

	style := lipgloss.NewStyle().Background(bg).Foreground(fg).Width(w)
	dayStyle := style.Bold(c.Today)
	if selected {
		dayStyle = dayStyle.Reverse(true)
	}

	day := strconv.Itoa(c.Date.Day())
	if c.Today {
		day += " •"
	}

	amount, label := "", ""
	if c.Count > 0 {
		amount = cli.FormatCompact(c.Total)
		label = truncStr(c.TopLabel, w-2)
	}

	lines := []string{
		dayStyle.Render(truncStr(" "+day, w)),
		style.Render(truncStr(" "+amount, w)),
		style.Render(truncStr(" "+label, w)),
	}
	return strings.Join(lines, "\n")
}

// renderDayPreview summarizes the selected calendar day.
func (a App) renderDayPreview(date string, cw int) string {
	t := theme.Active
	sym := a.currency()

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	records := pipeline.FilterByDate(a.expenses, date)
	var body strings.Builder
	if len(records) == 0 {
		body.WriteString(muted.Render("No expenses on this day"))
	} else {
		fmt.Fprintf(&body, "%s %s   %s %s",
			muted.Render("Spent"), value.Bold(true).Render(cli.FormatAmount(pipeline.TotalOf(records), sym)),
			muted.Render("Transactions"), value.Render(strconv.Itoa(len(records))))
		for _, r := range pipeline.BreakdownByLabel(records) {
			body.WriteString("\n")
			body.WriteString(labelDot(model.KindExpense, r.Label))
			body.WriteString(value.Render(fmt.Sprintf(" %-14s %s", r.Label, cli.FormatAmount(r.Amount, sym))))
		}
	}
	body.WriteString("\n")
	body.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("[arrows] move  [Enter] day detail  [a] add on this day"))

	return components.ContentCard(cli.FormatLongDate(date), body.String(), cw)
}

// labelDot is a colored legend dot on the card surface.
func labelDot(kind model.Kind, label string) string {
	return lipgloss.NewStyle().
		Foreground(theme.LabelColor(kind, label)).
		Background(theme.Active.Surface).
		Render("●")
}
