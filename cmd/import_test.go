package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/source"
	"github.com/theirongolddev/coffer/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backupFixture() *source.LoadResult {
	expense := func(id, label string) model.Transaction {
		return model.Transaction{
			ID: id, Kind: model.KindExpense, Date: "2025-03-03",
			Label: label, Amount: decimal.RequireFromString("12.50"),
		}
	}
	return &source.LoadResult{
		Transactions: []model.Transaction{
			expense("a", "Food"),
			expense("b", "Snacks"),
			expense("", "Food"),
		},
		Budgets: []model.Budget{
			{Label: model.OverallLabel, Amount: decimal.NewFromInt(500), Month: "2025-03"},
			{Label: "Snacks", Amount: decimal.NewFromInt(50), Month: "2025-03"},
		},
	}
}

func TestImportRecords_CountsRejects(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "coffer.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()

	c, err := importRecords(ctx, st, log.Discard(), backupFixture())
	require.NoError(t, err)
	assert.Equal(t, importCounts{added: 1, budgets: 1, rejected: 3}, c)

	c, err = importRecords(ctx, st, log.Discard(), backupFixture())
	require.NoError(t, err)
	assert.Equal(t, importCounts{skipped: 1, budgets: 1, rejected: 3}, c)
}

func TestImportRecords_StopsOnStoreFailure(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "coffer.db"), nil)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	c, err := importRecords(context.Background(), st, log.Discard(), backupFixture())
	require.Error(t, err)
	assert.False(t, model.IsValidation(err), "store failure reported as invalid record: %v", err)
	assert.Contains(t, err.Error(), "importing transaction a")
	assert.Zero(t, c.added)
}

func TestImportRecords_Canceled(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "coffer.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = importRecords(ctx, st, log.Discard(), backupFixture())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
