package pipeline

import (
	"time"

	"github.com/theirongolddev/coffer/internal/model"
)

// Summarize builds the summary cards for month. current and previous are the
// expenses of month and the month before; now anchors the week-to-date card.
// A week that starts in the previous month counts those days too.
func Summarize(current, previous []model.Transaction, budgets []model.Budget, month, now time.Time) model.MonthSummary {
	both := make([]model.Transaction, 0, len(previous)+len(current))
	both = append(both, previous...)
	both = append(both, current...)

	s := model.MonthSummary{
		Month:         model.MonthKey(month),
		Total:         TotalOf(current),
		PreviousTotal: TotalOf(previous),
		WeekToDate:    WeekToDate(both, now),
		Count:         len(current),
	}
	s.ChangePercent = PeriodComparison(s.Total, s.PreviousTotal)
	s.Highest, s.HasHighest = HighestDay(current)

	if b, ok := FindBudget(budgets, model.OverallLabel, month); ok {
		s.Budget = &b
		s.Progress = BudgetProgressOf(s.Total, b.Amount)
	}
	return s
}
