package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one block per value, scaled to the largest.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	runes := make([]rune, len(values))
	top := len(sparkBlocks) - 1
	for i, v := range values {
		idx := min(max(int(v/peak*float64(top)), 0), top)
		runes[i] = sparkBlocks[idx]
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(string(runes))
}

// DailyChart describes a day-per-bar spending chart.
type DailyChart struct {
	Series    []model.DayAmount
	Symbol    string         // currency prefix on the y-axis
	Color     lipgloss.Color // bar color
	Highlight string         // YYYY-MM-DD drawn in the highlight color, usually the highest day
	Width     int
	Height    int
}

// Render draws the chart with a currency y-axis and day-of-month labels
// under each Monday. When the card is too small it falls back to a sparkline.
// When there are more days than columns, the most recent days are kept.
func (c DailyChart) Render() string {
	series := c.Series
	if len(series) == 0 {
		return ""
	}
	values := make([]float64, len(series))
	for i, d := range series {
		values[i] = d.Amount.InexactFloat64()
	}
	if c.Width < 15 || c.Height < 3 {
		return Sparkline(values, c.Color)
	}

	t := theme.Active
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}

	step := axisStep(peak, max(c.Height/2, 2))
	ticks := max(int(math.Ceil(peak/step)), 1)
	ceiling := step * float64(ticks)
	rowsPerTick := max(c.Height/ticks, 1)
	chartH := rowsPerTick * ticks

	labelW := len(c.axisLabel(ceiling))
	plotW := max(c.Width-labelW-1, 5)

	if len(series) > plotW {
		drop := len(series) - plotW
		series, values = series[drop:], values[drop:]
	}
	n := len(series)
	barW, gap := 1, 0
	switch {
	case n*3-1 <= plotW:
		barW, gap = min((plotW+1)/n-1, 4), 1
	case n*2-1 <= plotW:
		gap = 1
	}
	slot := barW + gap
	axisLen := n*slot - gap

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	upper := lipgloss.NewStyle().Foreground(c.Color).Background(t.Surface)
	lower := lipgloss.NewStyle().Foreground(t.AccentDim).Background(t.Surface)
	marked := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = c.axisLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, label)))

		style := lower
		if 2*row > chartH {
			style = upper
		}
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(space.Render(" "))
			}
			cell := " "
			switch {
			case v >= top && v > 0:
				cell = "█"
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				cell = string(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
			}
			st := style
			if cell != " " && model.DateKey(series[i].Date) == c.Highlight {
				st = marked
			}
			b.WriteString(st.Render(strings.Repeat(cell, barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, c.axisLabel(0), strings.Repeat("─", axisLen))))

	// Day numbers under Mondays, skipping any that would collide.
	under := []byte(strings.Repeat(" ", axisLen))
	next := 0
	for i, d := range series {
		if d.Date.Weekday() != 1 && i != 0 {
			continue
		}
		lbl := strconv.Itoa(d.Date.Day())
		pos := i * slot
		if pos < next || pos+len(lbl) > axisLen {
			continue
		}
		copy(under[pos:], lbl)
		next = pos + len(lbl) + 1
	}
	b.WriteString("\n")
	b.WriteString(space.Render(strings.Repeat(" ", labelW+1)))
	b.WriteString(axis.Render(strings.TrimRight(string(under), " ")))
	return b.String()
}

func (c DailyChart) axisLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	return c.Symbol + cli.FormatCompact(decimal.NewFromFloat(v))
}

// axisStep picks a 1/2/5 x 10^k step giving at most maxTicks intervals up to peak.
func axisStep(peak float64, maxTicks int) float64 {
	if peak <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(peak/float64(maxTicks))))
	for _, mult := range []float64{1, 2, 5, 10} {
		if peak/(step*mult) <= float64(maxTicks) {
			return step * mult
		}
	}
	return step * 10
}

// HBar is one row of a horizontal bar list.
type HBar struct {
	Label string
	Value float64
	Right string // pre-formatted trailing text (amount, share)
	Color lipgloss.Color
}

// HorizontalBars renders one labeled bar per row, scaled to the largest value.
func HorizontalBars(rows []HBar, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	rightW := 0
	peak := 0.0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		rightW = max(rightW, lipgloss.Width(r.Right))
		peak = max(peak, r.Value)
	}
	if peak == 0 {
		peak = 1
	}

	barW := width - labelW - rightW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	rightStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		n := int(math.Round(r.Value / peak * float64(barW)))
		if n < 1 && r.Value > 0 {
			n = 1
		}
		n = min(n, barW)
		color := r.Color
		if color == "" {
			color = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label))+
				space.Render(" ")+
				barStyle.Render(strings.Repeat("█", n))+
				space.Render(strings.Repeat(" ", barW-n))+
				space.Render(" ")+
				rightStyle.Render(fmt.Sprintf("%*s", rightW, r.Right)))
	}
	return strings.Join(lines, "\n")
}
