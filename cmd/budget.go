package cmd

import (
	"fmt"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly budgets with progress",
	RunE:  runBudgetList,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set LABEL AMOUNT",
	Short: "Set the Overall or a category budget for the month",
	Example: `  coffer budget set Overall 1500
  coffer budget set Food 300 --month 2025-04`,
	Args: cobra.ExactArgs(2),
	RunE: runBudgetSet,
}

var budgetRmCmd = &cobra.Command{
	Use:   "rm LABEL",
	Short: "Remove a budget for the month",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRm,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	label, err := model.ParseBudgetLabel(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	amount, err := model.ParseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.store.UpsertBudget(cmd.Context(), model.Budget{
		Label:  label,
		Amount: amount,
		Month:  model.MonthKey(s.month),
	})
	if err != nil {
		return err
	}
	notice("%s budget for %s set to %s", b.Label, cli.FormatMonth(s.month), cli.FormatAmount(b.Amount, s.currency()))
	return nil
}

func runBudgetRm(cmd *cobra.Command, args []string) error {
	label, err := model.ParseBudgetLabel(args[0])
	if err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.store.DeleteBudget(cmd.Context(), label, model.MonthKey(s.month)); err != nil {
		return err
	}
	notice("%s budget for %s removed", label, cli.FormatMonth(s.month))
	return nil
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	d, err := s.load(cmd.Context())
	if err != nil {
		return err
	}
	sym := s.currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  %s", cli.FormatMonth(s.month))))
	fmt.Println()

	spent := pipeline.TotalOf(d.expenses)
	overall, hasOverall := pipeline.FindBudget(d.budgets, model.OverallLabel, s.month)
	cats := pipeline.CategoryBudgetRows(d.budgets, d.expenses, s.month)

	if !hasOverall && len(cats) == 0 {
		fmt.Println("  No budgets set for this month.")
		fmt.Println("  Set one with `coffer budget set Overall 1500`.")
		return nil
	}

	var rows [][]string
	if hasOverall {
		rows = append(rows, budgetRow(model.OverallLabel, spent, overall.Amount, sym))
		if len(cats) > 0 {
			rows = append(rows, []string{"---"})
		}
	}
	for _, c := range cats {
		rows = append(rows, budgetRow(c.Budget.Label, c.Spent, c.Budget.Amount, sym))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Budget", "Spent", "Ceiling", "Left", "Progress"},
		Rows:    rows,
	}))

	budgeted := make(map[string]bool, len(cats))
	for _, c := range cats {
		budgeted[c.Budget.Label] = true
	}
	var loose []model.LabelAmount
	for _, r := range pipeline.BreakdownByLabel(d.expenses) {
		if !budgeted[r.Label] {
			loose = append(loose, r)
		}
	}
	if len(loose) > 0 && len(cats) > 0 {
		fmt.Println()
		fmt.Println(cli.Muted("  Without a category budget:"))
		for _, r := range loose {
			fmt.Printf("    %-14s %s\n", model.DisplayLabel(model.KindExpense, r.Label), cli.FormatAmount(r.Amount, sym))
		}
	}
	return nil
}

func budgetRow(label string, spent, ceiling decimal.Decimal, sym string) []string {
	p := pipeline.BudgetProgressOf(spent, ceiling)
	return []string{
		label,
		cli.FormatAmount(spent, sym),
		cli.FormatAmount(ceiling, sym),
		cli.FormatAmount(ceiling.Sub(spent), sym),
		cli.RenderProgressBar(p, 20),
	}
}
