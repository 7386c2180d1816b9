package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

var one = decimal.NewFromInt(1)

// DayBuckets folds records into per-date totals with per-label subtotals.
func DayBuckets(records []model.Transaction) map[string]*model.DayBucket {
	buckets := make(map[string]*model.DayBucket)
	for _, r := range records {
		b, ok := buckets[r.Date]
		if !ok {
			b = &model.DayBucket{Date: r.Date}
			buckets[r.Date] = b
		}
		b.Add(r)
	}
	return buckets
}

// MaxDayTotal returns the largest bucket total, floored at 1.
func MaxDayTotal(buckets map[string]*model.DayBucket) decimal.Decimal {
	peak := one
	for _, b := range buckets {
		if b.Total.GreaterThan(peak) {
			peak = b.Total
		}
	}
	return peak
}

// TopLabel returns the label with the highest subtotal in b. Ties go to the
// label seen first.
func TopLabel(b model.DayBucket) string {
	top := ""
	best := decimal.Zero
	for _, label := range b.Labels() {
		amt := b.ByLabel[label]
		if top == "" || amt.GreaterThan(best) {
			top, best = label, amt
		}
	}
	return top
}

// CalendarIntensity scales a day total into [0, 1] against the window's
// maximum day total. The maximum is floored at 1.
func CalendarIntensity(dayTotal, maxDayTotal decimal.Decimal) float64 {
	if maxDayTotal.LessThan(one) {
		maxDayTotal = one
	}
	v := dayTotal.Div(maxDayTotal)
	if v.GreaterThan(one) {
		return 1
	}
	if v.IsNegative() {
		return 0
	}
	return v.InexactFloat64()
}

// HighestDay returns the date with the largest total. Ties go to the earliest
// date. ok is false for empty input.
func HighestDay(records []model.Transaction) (model.HighDay, bool) {
	buckets := DayBuckets(records)
	var best model.HighDay
	found := false
	for date, b := range buckets {
		if !found ||
			b.Total.GreaterThan(best.Total) ||
			(b.Total.Equal(best.Total) && date < best.Date) {
			best = model.HighDay{Date: date, Total: b.Total}
			found = true
		}
	}
	return best, found
}

// CalendarGrid lays out month as Monday-first weeks. The result starts with
// blank cells up to the weekday of the 1st, followed by one cell per day.
func CalendarGrid(records []model.Transaction, month, now time.Time) []model.CalendarCell {
	w := MonthWindow(month)
	buckets := DayBuckets(FilterByWindow(records, w))
	peak := MaxDayTotal(buckets)
	today := model.DayOf(now)

	leading := (int(w.Start.Weekday()) + 6) % 7
	cells := make([]model.CalendarCell, leading, leading+w.Days())

	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		cell := model.CalendarCell{
			Date:    day,
			InMonth: true,
			Today:   day.Equal(today),
			Future:  day.After(today),
		}
		if b, ok := buckets[day.Format(model.DateLayout)]; ok {
			cell.Total = b.Total
			cell.Count = b.Count
			cell.TopLabel = TopLabel(*b)
			cell.Intensity = CalendarIntensity(b.Total, peak)
		}
		cells = append(cells, cell)
	}
	return cells
}

