package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/store"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

type formMode int

const (
	formNone formMode = iota
	formAddTransaction
	formEditTransaction
	formSetBudget
	formDeleteTransaction
	formDeleteBudget
)

// formValues backs the open dialog. It lives on the heap so huh fields keep
// valid pointers while App is copied between updates.
type formValues struct {
	kind    model.Kind
	id      string // edit and delete
	amount  string
	label   string
	date    string
	note    string
	confirm bool
}

const maxFormWidth = 60

func formWidth(termW int) int {
	return max(30, min(maxFormWidth, termW-8))
}

func amountValidator(s string) error {
	_, err := model.ParseAmount(s)
	return err
}

// newTransactionForm builds the add/edit dialog for kind.
func newTransactionForm(title string, v *formValues, a App) *huh.Form {
	labelTitle := "Category"
	if v.kind == model.KindIncome {
		labelTitle = "Source"
	}
	today := a.now()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.amount).
				Validate(amountValidator),
			huh.NewSelect[string]().
				Title(labelTitle).
				Options(labelOptions(v.kind, v.label)...).
				Value(&v.label),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Value(&v.date).
				Validate(func(s string) error {
					return model.ValidateDate(strings.TrimSpace(s), today)
				}),
			huh.NewText().
				Title("Note").
				Placeholder("optional").
				CharLimit(model.MaxNoteLen).
				Lines(3).
				Value(&v.note).
				Validate(model.ValidateNote),
		).Title(title),
	).WithShowHelp(true).WithWidth(formWidth(a.width))
}

// labelOptions lists the labels for kind. A current label outside the set is
// offered first so an edit keeps it unless another is picked.
func labelOptions(kind model.Kind, current string) []huh.Option[string] {
	opts := huh.NewOptions(model.LabelsFor(kind)...)
	if current == "" || model.KnownLabel(kind, current) {
		return opts
	}
	legacy := huh.NewOption(current+" (no longer listed)", current)
	return append([]huh.Option[string]{legacy}, opts...)
}

func newBudgetForm(v *formValues, a App) *huh.Form {
	labels := append([]string{model.OverallLabel}, model.LabelsFor(model.KindExpense)...)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget for").
				Options(huh.NewOptions(labels...)...).
				Value(&v.label),
			huh.NewInput().
				Title("Monthly limit").
				Placeholder("0.00").
				Value(&v.amount).
				Validate(amountValidator),
		).Title("Set Budget · " + cli.FormatMonth(a.month)),
	).WithShowHelp(true).WithWidth(formWidth(a.width))
}

func newConfirmForm(title, desc string, v *formValues, a App) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.confirm),
		),
	).WithWidth(formWidth(a.width))
}

// defaultFormDate is today for the current month, otherwise the selected
// calendar day of the viewed month.
func (a App) defaultFormDate() string {
	if a.atCurrentMonth() {
		return model.DateKey(a.now())
	}
	return model.DateKey(a.month.AddDate(0, 0, a.cal.cursor))
}

func (a App) openForm(mode formMode, v *formValues, form *huh.Form) (App, tea.Cmd) {
	a.form = form
	a.formMode = mode
	a.formVals = v
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formMode = formNone
	a.formVals = nil
}

func (a App) openAddForm(kind model.Kind, date string) (tea.Model, tea.Cmd) {
	v := &formValues{kind: kind, date: date, label: model.LabelsFor(kind)[0]}
	title := "Add Expense"
	if kind == model.KindIncome {
		title = "Add Income"
	}
	return a.openForm(formAddTransaction, v, newTransactionForm(title, v, a))
}

func (a App) openEditForm(t model.Transaction) (App, tea.Cmd) {
	v := &formValues{
		kind:   t.Kind,
		id:     t.ID,
		amount: t.Amount.StringFixed(2),
		label:  t.Label,
		date:   t.Date,
		note:   t.Note,
	}
	title := "Edit Expense"
	if t.Kind == model.KindIncome {
		title = "Edit Income"
	}
	return a.openForm(formEditTransaction, v, newTransactionForm(title, v, a))
}

func (a App) openBudgetForm(label string) (tea.Model, tea.Cmd) {
	v := &formValues{label: label}
	for _, b := range a.budgets {
		if b.Label == label && b.Month == model.MonthKey(a.month) {
			v.amount = b.Amount.StringFixed(2)
			break
		}
	}
	return a.openForm(formSetBudget, v, newBudgetForm(v, a))
}

func (a App) openDeleteTransaction(t model.Transaction) (App, tea.Cmd) {
	v := &formValues{kind: t.Kind, id: t.ID}
	desc := fmt.Sprintf("%s · %s · %s", t.Label, cli.FormatAmount(t.Amount, a.currency()), cli.FormatShortDate(t.Date))
	title := "Delete this expense?"
	if t.Kind == model.KindIncome {
		title = "Delete this income?"
	}
	return a.openForm(formDeleteTransaction, v, newConfirmForm(title, desc, v, a))
}

func (a App) openDeleteBudget(b model.Budget) (App, tea.Cmd) {
	v := &formValues{label: b.Label}
	desc := fmt.Sprintf("%s limit of %s for %s", b.Label, cli.FormatAmount(b.Amount, a.currency()), cli.FormatMonth(a.month))
	return a.openForm(formDeleteBudget, v, newConfirmForm("Remove this budget?", desc, v, a))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.closeForm()
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit := a.submitForm()
		a.closeForm()
		return a, submit
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm turns the completed dialog into a store mutation.
func (a App) submitForm() tea.Cmd {
	v := a.formVals
	st := a.store
	month := model.MonthKey(a.month)

	switch a.formMode {
	case formAddTransaction, formEditTransaction:
		amount, err := model.ParseAmount(v.amount)
		if err != nil {
			return failCmd(err)
		}
		t := model.Transaction{
			ID:     v.id,
			Kind:   v.kind,
			Amount: amount,
			Date:   strings.TrimSpace(v.date),
			Label:  v.label,
			Note:   strings.TrimSpace(v.note),
		}
		noun := "Expense"
		if v.kind == model.KindIncome {
			noun = "Income"
		}
		if a.formMode == formAddTransaction {
			return mutateCmd(noun+" added", func(ctx context.Context) error {
				_, err := st.AddTransaction(ctx, t)
				return err
			})
		}
		return mutateCmd(noun+" updated", func(ctx context.Context) error {
			_, err := st.UpdateTransaction(ctx, t)
			return err
		})

	case formSetBudget:
		amount, err := model.ParseAmount(v.amount)
		if err != nil {
			return failCmd(err)
		}
		b := model.Budget{Label: v.label, Amount: amount, Month: month}
		return mutateCmd(v.label+" budget set", func(ctx context.Context) error {
			_, err := st.UpsertBudget(ctx, b)
			return err
		})

	case formDeleteTransaction:
		if !v.confirm {
			return nil
		}
		id := v.id
		return mutateCmd("Deleted", func(ctx context.Context) error {
			return st.DeleteTransaction(ctx, id)
		})

	case formDeleteBudget:
		if !v.confirm {
			return nil
		}
		label := v.label
		return mutateCmd(label+" budget removed", func(ctx context.Context) error {
			return st.DeleteBudget(ctx, label, month)
		})
	}
	return nil
}

// failCmd reports a failure that happened before reaching the store.
func failCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: err}
	}
}

// mutationError maps store errors onto a short status bar message.
func mutationError(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Record no longer exists"
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrAmountTooLarge),
		errors.Is(err, model.ErrUnknownLabel),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrFutureDate),
		errors.Is(err, model.ErrNoteTooLong):
		return unwrapAll(err).Error()
	default:
		return "Something went wrong, please try again"
	}
}

func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 2)

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")
	card := cardStyle.Render(a.form.View() + "\n" + hint)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
