// Package model defines domain types for coffer transactions, budgets and
// the derived shapes the views render.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts shared by records, windows and the store.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Kind distinguishes expenses from incomes.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind accepts "expense"/"expenses" and "income"/"incomes".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "expense", "expenses":
		return KindExpense, true
	case "income", "incomes":
		return KindIncome, true
	}
	return "", false
}

// Transaction is a single expense or income entry. Label holds the category
// for expenses and the source for incomes.
type Transaction struct {
	ID        string
	Kind      Kind
	Amount    decimal.Decimal
	Date      string // YYYY-MM-DD
	Label     string
	Note      string
	CreatedAt time.Time
}

// Budget is a monthly spending ceiling, either Overall or for one category.
type Budget struct {
	ID        string
	Label     string
	Amount    decimal.Decimal
	Month     string // YYYY-MM
	CreatedAt time.Time
}

// IsOverall reports whether b is the month-wide budget.
func (b Budget) IsOverall() bool {
	return b.Label == OverallLabel
}

// DayOf returns the calendar day of t (in t's location) as UTC midnight.
// All day arithmetic uses this form so DST shifts never skip or repeat a day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats t's calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return DayOf(t).Format(DateLayout)
}

// MonthKey formats t's month as YYYY-MM.
func MonthKey(t time.Time) string {
	return DayOf(t).Format(MonthLayout)
}

// ParseDate parses a YYYY-MM-DD string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}
