package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// MonthStart returns the first day of t's month as UTC midnight.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// PreviousMonth returns the first day of the month before t's month.
func PreviousMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after t's month.
func NextMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// MonthWindow spans every day of month.
func MonthWindow(month time.Time) model.Window {
	start := MonthStart(month)
	return model.Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// ChartWindow is the month window with its end clamped to now's day, so a
// chart of the current month stops at today. A month entirely in the future
// yields an empty window.
func ChartWindow(month, now time.Time) model.Window {
	w := MonthWindow(month)
	today := model.DayOf(now)
	if today.Before(w.End) {
		w.End = today
	}
	return w
}

// WeekWindow is the Monday-start week containing ref.
func WeekWindow(ref time.Time) model.Window {
	day := model.DayOf(ref)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return model.Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// DailySeries returns one point per day of w in chronological order. Days
// without records report zero, so the length always equals w.Days().
func DailySeries(records []model.Transaction, w model.Window) []model.DayAmount {
	n := w.Days()
	if n == 0 {
		return []model.DayAmount{}
	}

	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		totals[r.Date] = totals[r.Date].Add(r.Amount)
	}

	series := make([]model.DayAmount, 0, n)
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		series = append(series, model.DayAmount{
			Date:   day,
			Amount: totals[day.Format(model.DateLayout)],
		})
	}
	return series
}

// WeekToDate sums records inside the Monday-start week containing ref.
func WeekToDate(records []model.Transaction, ref time.Time) decimal.Decimal {
	return TotalOf(FilterByWindow(records, WeekWindow(ref)))
}

// MonthToDate sums records inside month.
func MonthToDate(records []model.Transaction, month time.Time) decimal.Decimal {
	return TotalOf(FilterByWindow(records, MonthWindow(month)))
}
