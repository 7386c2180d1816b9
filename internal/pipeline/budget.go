package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// Fixed budget thresholds.
var (
	overThreshold    = decimal.NewFromFloat(0.9)
	warningThreshold = decimal.NewFromFloat(0.7)
)

// PeriodComparison is the signed whole-percent change from previous to
// current. A zero previous period reports 0.
func PeriodComparison(current, previous decimal.Decimal) int {
	if previous.IsZero() {
		return 0
	}
	return roundHalfUp(current.Sub(previous).Div(previous).Mul(hundred))
}

// BudgetProgressOf reports spent/ceiling clamped to 1 with its status.
// A non-positive ceiling reports zero progress.
func BudgetProgressOf(spent, ceiling decimal.Decimal) model.BudgetProgress {
	if !ceiling.IsPositive() {
		return model.BudgetProgress{Status: model.BudgetOK}
	}
	ratio := spent.Div(ceiling)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		ratio = decimal.NewFromInt(1)
	}
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}

	status := model.BudgetOK
	switch {
	case ratio.GreaterThanOrEqual(overThreshold):
		status = model.BudgetOver
	case ratio.GreaterThanOrEqual(warningThreshold):
		status = model.BudgetWarning
	}
	return model.BudgetProgress{Ratio: ratio.InexactFloat64(), Status: status}
}

// FindBudget returns the first budget matching label and month in input
// order. Later duplicates are ignored.
func FindBudget(budgets []model.Budget, label string, month time.Time) (model.Budget, bool) {
	key := model.MonthKey(month)
	for _, b := range budgets {
		if b.Label == label && b.Month == key {
			return b, true
		}
	}
	return model.Budget{}, false
}

// CategoryBudgetRows pairs each category budget of month with the expenses
// spent in that category. Overall is excluded and duplicates after the first
// are skipped.
func CategoryBudgetRows(budgets []model.Budget, expenses []model.Transaction, month time.Time) []model.CategoryBudgetRow {
	key := model.MonthKey(month)
	monthly := FilterByWindow(expenses, MonthWindow(month))
	seen := make(map[string]struct{})

	rows := make([]model.CategoryBudgetRow, 0)
	for _, b := range budgets {
		if b.IsOverall() || b.Month != key {
			continue
		}
		if _, dup := seen[b.Label]; dup {
			continue
		}
		seen[b.Label] = struct{}{}

		spent := TotalOf(FilterByLabel(monthly, b.Label))
		rows = append(rows, model.CategoryBudgetRow{
			Budget:   b,
			Spent:    spent,
			Progress: BudgetProgressOf(spent, b.Amount),
		})
	}
	return rows
}
