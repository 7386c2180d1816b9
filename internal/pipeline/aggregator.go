// Package pipeline derives display shapes (totals, groupings, breakdowns,
// series, budget progress, calendar intensity) from loaded transactions.
// Nothing here performs I/O or reads the clock; callers pass every time
// reference explicitly.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// TotalOf sums the amounts of records. Empty input yields zero.
func TotalOf(records []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// GroupByDate partitions records by exact date string. Records within a day
// keep input order.
func GroupByDate(records []model.Transaction) map[string][]model.Transaction {
	groups := make(map[string][]model.Transaction)
	for _, r := range records {
		groups[r.Date] = append(groups[r.Date], r)
	}
	return groups
}

// SortedDates returns the keys of groups, most recent first.
func SortedDates(groups map[string][]model.Transaction) []string {
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// DayGroups returns records grouped by date with day totals, most recent
// first. This is the ledger view.
func DayGroups(records []model.Transaction) []model.DayGroup {
	groups := GroupByDate(records)
	out := make([]model.DayGroup, 0, len(groups))
	for _, date := range SortedDates(groups) {
		recs := groups[date]
		out = append(out, model.DayGroup{
			Date:    date,
			Records: recs,
			Total:   TotalOf(recs),
		})
	}
	return out
}

// BreakdownByLabel sums amounts per label, sorted by amount descending.
// Equal amounts keep the order in which labels were first seen.
func BreakdownByLabel(records []model.Transaction) []model.LabelAmount {
	index := make(map[string]int)
	rows := make([]model.LabelAmount, 0)

	for _, r := range records {
		i, ok := index[r.Label]
		if !ok {
			i = len(rows)
			index[r.Label] = i
			rows = append(rows, model.LabelAmount{Label: r.Label})
		}
		rows[i].Amount = rows[i].Amount.Add(r.Amount)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

// FilterByWindow returns records whose date falls inside w.
func FilterByWindow(records []model.Transaction, w model.Window) []model.Transaction {
	var result []model.Transaction
	for _, r := range records {
		if w.Contains(r.Date) {
			result = append(result, r)
		}
	}
	return result
}

// FilterByDate returns records on exactly date.
func FilterByDate(records []model.Transaction, date string) []model.Transaction {
	var result []model.Transaction
	for _, r := range records {
		if r.Date == date {
			result = append(result, r)
		}
	}
	return result
}

// FilterByLabel returns records carrying label. An empty label matches all.
func FilterByLabel(records []model.Transaction, label string) []model.Transaction {
	if label == "" {
		return records
	}
	var result []model.Transaction
	for _, r := range records {
		if r.Label == label {
			result = append(result, r)
		}
	}
	return result
}

// SharePercent is part/total as a rounded whole percentage, 0 when total is 0.
func SharePercent(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return roundHalfUp(part.Div(total).Mul(hundred))
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(d decimal.Decimal) int {
	return int(d.Add(half).Floor().IntPart())
}
