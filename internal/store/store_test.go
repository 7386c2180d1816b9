package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/coffer/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "coffer.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return s
}

func tx(kind model.Kind, date, label, amount string) model.Transaction {
	return model.Transaction{
		Kind:   kind,
		Date:   date,
		Label:  label,
		Amount: decimal.RequireFromString(amount),
	}
}

func march() model.Window {
	return model.Window{
		Start: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffer.db")
	s1, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestAddAndListTransactions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Food", "12.50"))
	require.NoError(t, err)
	assert.Len(t, first.ID, 36)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-10", "Bills", "80"))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Transport", "3.2"))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, tx(model.KindExpense, "2025-02-28", "Food", "1"))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, tx(model.KindIncome, "2025-03-01", "Salary", "2500"))
	require.NoError(t, err)

	got, err := s.ListTransactions(ctx, model.KindExpense, march())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-03-10", got[0].Date)
	assert.Equal(t, "Food", got[1].Label)
	assert.Equal(t, "Transport", got[2].Label)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("12.5")))

	all, err := s.ListTransactions(ctx, model.KindExpense, model.Window{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	incomes, err := s.ListTransactions(ctx, model.KindIncome, march())
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, model.KindIncome, incomes[0].Kind)
}

func TestAddTransaction_Validates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-16", "Food", "1"))
	assert.True(t, errors.Is(err, model.ErrFutureDate), "got %v", err)

	_, err = s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-01", "Salary", "1"))
	assert.True(t, errors.Is(err, model.ErrUnknownLabel), "got %v", err)

	_, err = s.AddTransaction(ctx, tx(model.KindIncome, "2025-03-01", "Salary", "0"))
	assert.True(t, errors.Is(err, model.ErrInvalidAmount), "got %v", err)
}

func TestUpdateAndGetTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Food", "12.50"))
	require.NoError(t, err)

	added.Amount = decimal.RequireFromString("14")
	added.Label = "Health"
	added.Note = "pharmacy"
	added.Kind = model.KindIncome // ignored
	_, err = s.UpdateTransaction(ctx, added)
	require.NoError(t, err)

	got, err := s.GetTransaction(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KindExpense, got.Kind)
	assert.Equal(t, "Health", got.Label)
	assert.Equal(t, "pharmacy", got.Note)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(14)))

	short, err := s.GetTransaction(ctx, added.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, added.ID, short.ID)

	_, err = s.UpdateTransaction(ctx, model.Transaction{ID: "missing"})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GetTransaction(ctx, "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetTransaction_PrefixIsLiteral(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Food", "12.50"))
	require.NoError(t, err)

	for _, id := range []string{"%", "_", added.ID[:1] + "%", "________"} {
		_, err := s.GetTransaction(ctx, id)
		assert.True(t, errors.Is(err, ErrNotFound), "GetTransaction(%q) = %v", id, err)
	}

	got, err := s.GetTransaction(ctx, added.ID[:4])
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
}

func TestUpdateTransaction_ByShortID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Food", "12.50"))
	require.NoError(t, err)

	edit := added
	edit.ID = added.ID[:8]
	edit.Amount = decimal.NewFromInt(20)
	updated, err := s.UpdateTransaction(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, added.ID, updated.ID)

	got, err := s.GetTransaction(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(20)))
}

func TestUpdateTransaction_KeepsLegacyLabel(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO transactions
		(id, kind, amount, date, label, note, created_at)
		VALUES ('legacy-1', 'expense', '9', '2025-03-02', 'Groceries', '', ?)`,
		s.Now().UTC().Format(timeLayout))
	require.NoError(t, err)

	legacy, err := s.GetTransaction(ctx, "legacy-1")
	require.NoError(t, err)
	legacy.Note = "kept"
	_, err = s.UpdateTransaction(ctx, legacy)
	require.NoError(t, err)

	got, err := s.GetTransaction(ctx, "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Label)
	assert.Equal(t, "kept", got.Note)

	got.Label = "Snacks"
	_, err = s.UpdateTransaction(ctx, got)
	assert.True(t, errors.Is(err, model.ErrUnknownLabel), "got %v", err)
}

func TestDeleteTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.AddTransaction(ctx, tx(model.KindExpense, "2025-03-03", "Food", "1"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteTransaction(ctx, added.ID))

	err = s.DeleteTransaction(ctx, added.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GetTransaction(ctx, added.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpsertBudget_OnePerLabelAndMonth(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	b1, err := s.UpsertBudget(ctx, model.Budget{Label: model.OverallLabel, Amount: decimal.NewFromInt(500), Month: "2025-03"})
	require.NoError(t, err)
	b2, err := s.UpsertBudget(ctx, model.Budget{Label: model.OverallLabel, Amount: decimal.NewFromInt(800), Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, b1.ID, b2.ID)

	_, err = s.UpsertBudget(ctx, model.Budget{Label: "Food", Amount: decimal.NewFromInt(100), Month: "2025-03"})
	require.NoError(t, err)
	_, err = s.UpsertBudget(ctx, model.Budget{Label: "Food", Amount: decimal.NewFromInt(90), Month: "2025-04"})
	require.NoError(t, err)

	budgets, err := s.ListBudgets(ctx, "2025-03")
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, model.OverallLabel, budgets[0].Label)
	assert.True(t, budgets[0].Amount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, "Food", budgets[1].Label)

	_, err = s.UpsertBudget(ctx, model.Budget{Label: "Salary", Amount: decimal.NewFromInt(1), Month: "2025-03"})
	assert.True(t, errors.Is(err, model.ErrUnknownLabel))
}

func TestDeleteBudget(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertBudget(ctx, model.Budget{Label: "Food", Amount: decimal.NewFromInt(100), Month: "2025-03"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteBudget(ctx, "Food", "2025-03"))

	err = s.DeleteBudget(ctx, "Food", "2025-03")
	assert.True(t, errors.Is(err, ErrNotFound))

	budgets, err := s.ListBudgets(ctx, "2025-03")
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestImportTransaction_KeepsIDAndSkipsDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	rec := tx(model.KindExpense, "2025-03-03", "Food", "12.50")
	rec.ID = "11111111-2222-3333-4444-555555555555"
	rec.CreatedAt = created

	inserted, err := s.ImportTransaction(ctx, rec)
	require.NoError(t, err)
	assert.True(t, inserted)

	rec.Amount = decimal.NewFromInt(99)
	inserted, err = s.ImportTransaction(ctx, rec)
	require.NoError(t, err)
	assert.False(t, inserted, "existing ID is left alone")

	got, err := s.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, got.CreatedAt.Equal(created))

	rec.ID = "other"
	rec.Date = "2025-03-20"
	_, err = s.ImportTransaction(ctx, rec)
	assert.True(t, errors.Is(err, model.ErrFutureDate), "got %v", err)

	rec.ID = ""
	_, err = s.ImportTransaction(ctx, rec)
	assert.Error(t, err)
}

func TestAllBudgets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, b := range []model.Budget{
		{Label: "Food", Amount: decimal.NewFromInt(90), Month: "2025-04"},
		{Label: model.OverallLabel, Amount: decimal.NewFromInt(500), Month: "2025-03"},
		{Label: "Food", Amount: decimal.NewFromInt(100), Month: "2025-03"},
	} {
		_, err := s.UpsertBudget(ctx, b)
		require.NoError(t, err)
	}

	all, err := s.AllBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03", all[0].Month)
	assert.Equal(t, model.OverallLabel, all[0].Label)
	assert.Equal(t, "Food", all[1].Label)
	assert.Equal(t, "2025-04", all[2].Month)
}
