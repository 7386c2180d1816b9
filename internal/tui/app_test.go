package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/store"
	"github.com/theirongolddev/coffer/internal/tui/components"
)

var testNow = time.Date(2025, time.March, 15, 18, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "coffer.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	st.Now = func() time.Time { return testNow }
	return st
}

func seed(t *testing.T, st *store.Store, kind model.Kind, date, label, amount string) model.Transaction {
	t.Helper()
	rec, err := st.AddTransaction(context.Background(), model.Transaction{
		Kind:   kind,
		Date:   date,
		Label:  label,
		Amount: decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return rec
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded builds an App over st and feeds it the first data load.
func loaded(t *testing.T, st *store.Store) App {
	t.Helper()
	a := NewApp(Options{
		Store:  st,
		Config: config.DefaultConfig(),
		Now:    func() time.Time { return testNow },
	})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 45})
	a, _ = update(t, a, loadDataCmd(st, a.month)())
	require.True(t, a.loaded)
	return a
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := openTestStore(t)
	seed(t, st, model.KindExpense, "2025-02-20", "Food", "100")
	seed(t, st, model.KindExpense, "2025-03-03", "Food", "12.50")
	seed(t, st, model.KindExpense, "2025-03-03", "Transport", "30")
	seed(t, st, model.KindExpense, "2025-03-14", "Bills", "80")
	seed(t, st, model.KindIncome, "2025-03-01", "Salary", "2000")
	_, err := st.UpsertBudget(context.Background(), model.Budget{
		Label:  model.OverallLabel,
		Amount: decimal.RequireFromString("150"),
		Month:  "2025-03",
	})
	require.NoError(t, err)
	return st
}

func TestLoadComputesSummary(t *testing.T) {
	a := loaded(t, seededStore(t))

	assert.Equal(t, "2025-03", a.summary.Month)
	assert.True(t, a.summary.Total.Equal(decimal.RequireFromString("122.5")), a.summary.Total.String())
	assert.True(t, a.summary.PreviousTotal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 23, a.summary.ChangePercent)
	assert.Equal(t, 3, a.summary.Count)
	require.NotNil(t, a.summary.Budget)
	assert.Equal(t, model.BudgetWarning, a.summary.Progress.Status)
	assert.Len(t, a.incomes, 1)
	assert.Equal(t, 14, a.cal.cursor, "calendar starts on today")
}

func TestMonthPicker(t *testing.T) {
	st := seededStore(t)
	a := loaded(t, st)

	a, cmd := update(t, a, keyRunes("]"))
	assert.Nil(t, cmd, "cannot move past the current month")
	assert.Equal(t, "2025-03", model.MonthKey(a.month))

	a, cmd = update(t, a, keyRunes("["))
	require.NotNil(t, cmd)
	assert.Equal(t, "2025-02", model.MonthKey(a.month))
	assert.True(t, a.loading)

	a, _ = update(t, a, cmd())
	assert.False(t, a.loading)
	assert.Len(t, a.expenses, 1)
	assert.True(t, a.summary.Total.Equal(decimal.NewFromInt(100)))

	a, cmd = update(t, a, keyRunes("]"))
	require.NotNil(t, cmd)
	assert.Equal(t, "2025-03", model.MonthKey(a.month))
}

func TestStaleLoadIsIgnored(t *testing.T) {
	st := seededStore(t)
	a := loaded(t, st)

	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	a, _ = update(t, a, loadDataCmd(st, feb)())

	assert.Equal(t, "2025-03", model.MonthKey(a.month))
	assert.Len(t, a.expenses, 3)
}

func TestMutationRaisesToastAndReloads(t *testing.T) {
	a := loaded(t, seededStore(t))

	a, cmd := update(t, a, mutationMsg{notice: "Expense added"})
	require.NotNil(t, cmd)
	assert.Equal(t, components.Toast{Text: "Expense added"}, a.toast)
	assert.True(t, a.loading)

	a, _ = update(t, a, mutationMsg{err: fmt.Errorf("deleting: %w", store.ErrNotFound)})
	assert.True(t, a.toast.Error)
	assert.Equal(t, "Record no longer exists", a.toast.Text)
}

func TestToastExpiry(t *testing.T) {
	a := loaded(t, seededStore(t))
	a, _ = update(t, a, mutationMsg{notice: "first"})
	a, _ = update(t, a, mutationMsg{notice: "second"})

	a, _ = update(t, a, toastExpiredMsg{seq: a.toastSeq - 1})
	assert.Equal(t, "second", a.toast.Text, "an older timer must not clear a newer toast")

	a, _ = update(t, a, toastExpiredMsg{seq: a.toastSeq})
	assert.Empty(t, a.toast.Text)
}

func TestCalendarEnterOpensDayDetail(t *testing.T) {
	a := loaded(t, seededStore(t))
	a, _ = update(t, a, keyRunes("c"))
	require.Equal(t, tabCalendar, a.activeTab)

	// Move from the 15th back to the 3rd: up twice crosses two weeks
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyUp})
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyUp})
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "2025-03-02", a.selectedDate())
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, tabLedger, a.activeTab)
	assert.Equal(t, "2025-03-03", a.ledger.detailDate)
	assert.Len(t, a.ledgerRecords(), 2)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.KindIncome, a.ledger.kind)
	assert.Empty(t, a.ledgerRecords())

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Empty(t, a.ledger.detailDate)
}

func TestCalendarCursorClamps(t *testing.T) {
	a := loaded(t, seededStore(t))
	a.activeTab = tabCalendar
	for range 10 {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, "2025-03-31", a.selectedDate())
}

func TestLedgerRecordsNewestFirst(t *testing.T) {
	a := loaded(t, seededStore(t))
	a.activeTab = tabLedger

	records := a.ledgerRecords()
	require.Len(t, records, 3)
	assert.Equal(t, "2025-03-14", records[0].Date)
	assert.Equal(t, "2025-03-03", records[2].Date)

	a, _ = update(t, a, keyRunes("G"))
	assert.Equal(t, 2, a.ledger.cursor)
	a, _ = update(t, a, keyRunes("j"))
	assert.Equal(t, 2, a.ledger.cursor)
	a, _ = update(t, a, keyRunes("g"))
	assert.Equal(t, 0, a.ledger.cursor)
}

func TestSubmitAddForm(t *testing.T) {
	st := seededStore(t)
	a := loaded(t, st)

	a.formMode = formAddTransaction
	a.formVals = &formValues{kind: model.KindExpense, amount: "9,99", label: "Health", date: "2025-03-10", note: " pharmacy "}
	msg := a.submitForm()()
	res, ok := msg.(mutationMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Equal(t, "Expense added", res.notice)

	a, _ = update(t, a, res)
	a, _ = update(t, a, loadDataCmd(st, a.month)())
	require.Len(t, a.expenses, 4)

	var found bool
	for _, e := range a.expenses {
		if e.Label == "Health" {
			found = true
			assert.Equal(t, "9.99", e.Amount.StringFixed(2))
			assert.Equal(t, "pharmacy", e.Note)
		}
	}
	assert.True(t, found)
}

func TestSubmitFormRejectsInvalidAmount(t *testing.T) {
	a := loaded(t, seededStore(t))
	a.formMode = formSetBudget
	a.formVals = &formValues{label: "Food", amount: "-5"}

	res, ok := a.submitForm()().(mutationMsg)
	require.True(t, ok)
	require.ErrorIs(t, res.err, model.ErrInvalidAmount)
	assert.Equal(t, "Amount must be positive", mutationError(res.err))
}

func TestSubmitDeleteNeedsConfirmation(t *testing.T) {
	a := loaded(t, seededStore(t))
	a.formMode = formDeleteTransaction
	a.formVals = &formValues{id: a.expenses[0].ID}
	assert.Nil(t, a.submitForm())

	a.formVals.confirm = true
	res, ok := a.submitForm()().(mutationMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
}

func TestEscClosesForm(t *testing.T) {
	a := loaded(t, seededStore(t))
	a, _ = update(t, a, keyRunes("a"))
	require.NotNil(t, a.form)
	assert.Equal(t, formAddTransaction, a.formMode)
	assert.Equal(t, "2025-03-15", a.formVals.date)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Nil(t, a.form)
	assert.Nil(t, a.formVals)
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loaded(t, seededStore(t))

	want := []string{"Spending by Category", "Tue", "Expenses ·", "Overall ·", "Currency Symbol"}
	for tab, text := range want {
		a.activeTab = tab
		view := a.View()
		assert.Contains(t, view, text, "tab %d", tab)
		assert.Equal(t, a.height, len(strings.Split(view, "\n")), "tab %d fills the terminal", tab)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loaded(t, seededStore(t))
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, a.View(), "too narrow")
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := loaded(t, seededStore(t))
	x := 1 + components.TabVisualWidth(0, true) + components.TabGap() + 1
	a, _ = update(t, a, tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, tabCalendar, a.activeTab)
}

func TestEditFormKeepsUnlistedLabel(t *testing.T) {
	a := loaded(t, seededStore(t))
	legacy := model.Transaction{
		ID:     "legacy-1",
		Kind:   model.KindExpense,
		Amount: decimal.NewFromInt(9),
		Date:   "2025-03-02",
		Label:  "Groceries",
	}
	a, _ = a.openEditForm(legacy)
	require.NotNil(t, a.formVals)
	assert.Equal(t, "Groceries", a.formVals.label)

	opts := labelOptions(model.KindExpense, "Groceries")
	require.Len(t, opts, len(model.LabelsFor(model.KindExpense))+1)
	assert.Equal(t, "Groceries", opts[0].Value)
	assert.Contains(t, opts[0].Key, "no longer listed")

	assert.Len(t, labelOptions(model.KindExpense, "Food"), len(model.LabelsFor(model.KindExpense)))
	assert.Len(t, labelOptions(model.KindIncome, ""), len(model.LabelsFor(model.KindIncome)))
}
