package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is an inclusive range of calendar days. Start and End are UTC
// midnight values as returned by DayOf.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of days in the window, zero when End < Start.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether the YYYY-MM-DD date falls inside the window.
// Lexical comparison is chronological for this layout.
func (w Window) Contains(date string) bool {
	return date >= w.Start.Format(DateLayout) && date <= w.End.Format(DateLayout)
}

// StartKey and EndKey return the window bounds as date strings.
func (w Window) StartKey() string { return w.Start.Format(DateLayout) }
func (w Window) EndKey() string   { return w.End.Format(DateLayout) }

// LabelAmount is one row of a label breakdown.
type LabelAmount struct {
	Label  string
	Amount decimal.Decimal
}

// DayGroup holds the records for one date, in input order.
type DayGroup struct {
	Date    string
	Records []Transaction
	Total   decimal.Decimal
}

// DayBucket is the per-day total with per-label subtotals.
type DayBucket struct {
	Date    string
	Total   decimal.Decimal
	Count   int
	ByLabel map[string]decimal.Decimal
	order   []string
}

// Add folds one record into the bucket.
func (b *DayBucket) Add(t Transaction) {
	if b.ByLabel == nil {
		b.ByLabel = make(map[string]decimal.Decimal)
	}
	if _, ok := b.ByLabel[t.Label]; !ok {
		b.order = append(b.order, t.Label)
	}
	b.ByLabel[t.Label] = b.ByLabel[t.Label].Add(t.Amount)
	b.Total = b.Total.Add(t.Amount)
	b.Count++
}

// Labels returns the bucket's labels in first-seen order.
func (b DayBucket) Labels() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// DayAmount is one point of a dense daily series.
type DayAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

// BudgetStatus classifies spend against a ceiling.
type BudgetStatus string

const (
	BudgetOK      BudgetStatus = "ok"
	BudgetWarning BudgetStatus = "warning"
	BudgetOver    BudgetStatus = "over"
)

// BudgetProgress is spend over ceiling, clamped to [0, 1] for display.
type BudgetProgress struct {
	Ratio  float64
	Status BudgetStatus
}

// CalendarCell is one slot of a month grid. Blank leading slots have a zero
// Date and InMonth false.
type CalendarCell struct {
	Date      time.Time
	InMonth   bool
	Total     decimal.Decimal
	TopLabel  string
	Count     int
	Intensity float64
	Today     bool
	Future    bool
}

// HighDay is the date with the largest total.
type HighDay struct {
	Date  string
	Total decimal.Decimal
}

// MonthSummary backs the summary cards.
type MonthSummary struct {
	Month         string
	Total         decimal.Decimal
	PreviousTotal decimal.Decimal
	ChangePercent int
	WeekToDate    decimal.Decimal
	Count         int
	Highest       HighDay
	HasHighest    bool
	Budget        *Budget
	Progress      BudgetProgress
}

// CategoryBudgetRow pairs a category budget with what was spent against it.
type CategoryBudgetRow struct {
	Budget   Budget
	Spent    decimal.Decimal
	Progress BudgetProgress
}
