package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/coffer/internal/model"
)

func TestSummarize(t *testing.T) {
	prev := []model.Transaction{
		expense("2025-02-10", "Food", "200"),
	}
	budgets := []model.Budget{
		{ID: "o", Label: model.OverallLabel, Amount: dec("300"), Month: "2025-03"},
	}
	s := Summarize(sampleMonth(), prev, budgets, mustDate(t, "2025-03-01"), mustDate(t, "2025-03-06"))

	assert.Equal(t, "2025-03", s.Month)
	assertDecimal(t, "253.1", s.Total)
	assertDecimal(t, "200", s.PreviousTotal)
	assert.Equal(t, 27, s.ChangePercent)
	assertDecimal(t, "95.70", s.WeekToDate)
	assert.Equal(t, 6, s.Count)
	require.True(t, s.HasHighest)
	assert.Equal(t, "2025-03-31", s.Highest.Date)

	require.NotNil(t, s.Budget)
	assert.Equal(t, "o", s.Budget.ID)
	assert.Equal(t, model.BudgetWarning, s.Progress.Status)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil, mustDate(t, "2025-03-01"), mustDate(t, "2025-03-06"))
	assertDecimal(t, "0", s.Total)
	assert.Equal(t, 0, s.ChangePercent)
	assert.Equal(t, 0, s.Count)
	assert.False(t, s.HasHighest)
	assert.Nil(t, s.Budget)
}

func TestSummarize_WeekSpansMonthBoundary(t *testing.T) {
	prev := []model.Transaction{
		expense("2025-02-28", "Food", "10"),
		expense("2025-02-23", "Food", "99"), // Sunday of the week before
	}
	current := []model.Transaction{
		expense("2025-03-01", "Food", "5"),
	}
	// 2025-03-01 is a Saturday; its week starts Monday 2025-02-24.
	s := Summarize(current, prev, nil, mustDate(t, "2025-03-01"), mustDate(t, "2025-03-01"))
	assertDecimal(t, "15", s.WeekToDate)
	assertDecimal(t, "5", s.Total)
}
