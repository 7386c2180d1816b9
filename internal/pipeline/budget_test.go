package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/coffer/internal/model"
)

func TestPeriodComparison(t *testing.T) {
	tests := []struct {
		cur, prev string
		want      int
	}{
		{"100", "0", 0},
		{"150", "100", 50},
		{"50", "100", -50},
		{"100", "100", 0},
		{"0", "80", -100},
		{"1", "3", -67},
		{"100.5", "100", 1},
		{"99.5", "100", 0},
	}
	for _, tt := range tests {
		got := PeriodComparison(dec(tt.cur), dec(tt.prev))
		if got != tt.want {
			t.Fatalf("PeriodComparison(%s, %s) = %d, want %d", tt.cur, tt.prev, got, tt.want)
		}
	}
}

func TestBudgetProgressOf(t *testing.T) {
	tests := []struct {
		spent, ceiling string
		ratio          float64
		status         model.BudgetStatus
	}{
		{"950", "1000", 0.95, model.BudgetOver},
		{"750", "1000", 0.75, model.BudgetWarning},
		{"100", "1000", 0.1, model.BudgetOK},
		{"2000", "1000", 1, model.BudgetOver},
		{"900", "1000", 0.9, model.BudgetOver},
		{"700", "1000", 0.7, model.BudgetWarning},
		{"0", "1000", 0, model.BudgetOK},
	}
	for _, tt := range tests {
		got := BudgetProgressOf(dec(tt.spent), dec(tt.ceiling))
		assert.InDeltaf(t, tt.ratio, got.Ratio, 1e-9, "ratio for %s/%s", tt.spent, tt.ceiling)
		assert.Equalf(t, tt.status, got.Status, "status for %s/%s", tt.spent, tt.ceiling)
	}
}

func TestBudgetProgressOf_ZeroCeiling(t *testing.T) {
	got := BudgetProgressOf(dec("10"), decimal.Zero)
	assert.Equal(t, model.BudgetProgress{Status: model.BudgetOK}, got)
}

func TestFindBudget_FirstMatchWins(t *testing.T) {
	budgets := []model.Budget{
		{ID: "a", Label: "Food", Amount: dec("100"), Month: "2025-03"},
		{ID: "b", Label: model.OverallLabel, Amount: dec("1000"), Month: "2025-02"},
		{ID: "c", Label: model.OverallLabel, Amount: dec("1200"), Month: "2025-03"},
		{ID: "d", Label: model.OverallLabel, Amount: dec("5"), Month: "2025-03"},
	}
	b, ok := FindBudget(budgets, model.OverallLabel, mustDate(t, "2025-03-15"))
	require.True(t, ok)
	assert.Equal(t, "c", b.ID)

	_, ok = FindBudget(budgets, "Travel", mustDate(t, "2025-03-15"))
	assert.False(t, ok)
}

func TestCategoryBudgetRows(t *testing.T) {
	budgets := []model.Budget{
		{ID: "o", Label: model.OverallLabel, Amount: dec("500"), Month: "2025-03"},
		{ID: "f", Label: "Food", Amount: dec("20"), Month: "2025-03"},
		{ID: "t", Label: "Travel", Amount: dec("100"), Month: "2025-03"},
		{ID: "f2", Label: "Food", Amount: dec("999"), Month: "2025-03"},
		{ID: "x", Label: "Bills", Amount: dec("50"), Month: "2025-04"},
	}
	rows := CategoryBudgetRows(budgets, sampleMonth(), mustDate(t, "2025-03-01"))
	require.Len(t, rows, 2)

	assert.Equal(t, "f", rows[0].Budget.ID)
	assertDecimal(t, "19.90", rows[0].Spent)
	assert.Equal(t, model.BudgetOver, rows[0].Progress.Status)

	assert.Equal(t, "t", rows[1].Budget.ID)
	assertDecimal(t, "150", rows[1].Spent)
	assert.Equal(t, 1.0, rows[1].Progress.Ratio)

	assert.Empty(t, CategoryBudgetRows(nil, sampleMonth(), mustDate(t, "2025-03-01")))
}
