package cmd

import (
	"fmt"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month summary: spend, change, week, budget",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
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
	sum := pipeline.Summarize(d.expenses, d.prevExpenses, d.budgets, s.month, s.now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COFFER  %s", cli.FormatMonth(s.month))))
	fmt.Println()

	if sum.Count == 0 && len(d.incomes) == 0 {
		fmt.Println("  No transactions this month.")
		fmt.Println("  Add one with `coffer add expense 12.50 --label Food`.")
		return nil
	}

	change := cli.FormatChange(sum.ChangePercent)
	if sum.PreviousTotal.IsZero() {
		change = "no spending last month"
	}
	highest := "-"
	if sum.HasHighest {
		highest = fmt.Sprintf("%s  %s", cli.FormatShortDate(sum.Highest.Date), cli.FormatAmount(sum.Highest.Total, sym))
	}
	income := pipeline.TotalOf(d.incomes)

	rows := [][]string{
		{"Total Spend", cli.FormatAmount(sum.Total, sym)},
		{"vs Last Month", change},
		{"This Week", cli.FormatAmount(sum.WeekToDate, sym)},
		{"Transactions", cli.FormatNumber(int64(sum.Count))},
		{"Highest Day", highest},
		{"---"},
		{"Income", cli.FormatAmount(income, sym)},
		{"Net", cli.FormatAmount(income.Sub(sum.Total), sym)},
	}
	if sum.Budget != nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"Budget", cli.FormatAmount(sum.Budget.Amount, sym)},
			[]string{"Remaining", cli.FormatAmount(sum.Budget.Amount.Sub(sum.Total), sym)},
			[]string{"Status", string(sum.Progress.Status)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if sum.Budget != nil {
		fmt.Println()
		fmt.Printf("  %s %s\n", cli.Muted("Budget"), cli.RenderProgressBar(sum.Progress, 40))
	}
	return nil
}
