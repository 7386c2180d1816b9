package cmd

import (
	"fmt"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/theme"

	"github.com/spf13/cobra"
)

var flagBreakdownIncome bool

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Spending (or income) by label with share of total",
	RunE:  runBreakdown,
}

func init() {
	breakdownCmd.Flags().BoolVarP(&flagBreakdownIncome, "income", "i", false, "Break down income by source")
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(cmd *cobra.Command, _ []string) error {
	kind := model.KindExpense
	title := "SPENDING BY CATEGORY"
	if flagBreakdownIncome {
		kind = model.KindIncome
		title = "INCOME BY SOURCE"
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	theme.SetActive(s.cfg.Appearance.Theme)

	records, err := s.store.ListTransactions(cmd.Context(), kind, pipeline.MonthWindow(s.month))
	if err != nil {
		return err
	}
	sym := s.currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", title, cli.FormatMonth(s.month))))
	fmt.Println()

	rows := pipeline.BreakdownByLabel(records)
	if len(rows) == 0 {
		fmt.Println("  Nothing recorded this month.")
		return nil
	}

	total := pipeline.TotalOf(records)
	peak := rows[0].Amount.InexactFloat64()
	tableRows := make([][]string, 0, len(rows)+2)
	for _, r := range rows {
		color := theme.LabelColor(kind, r.Label)
		tableRows = append(tableRows, []string{
			cli.Swatch(color) + " " + model.DisplayLabel(kind, r.Label),
			cli.FormatAmount(r.Amount, sym),
			fmt.Sprintf("%d%%", pipeline.SharePercent(r.Amount, total)),
			cli.RenderHorizontalBar(r.Amount.InexactFloat64(), peak, 24, color),
		})
	}
	tableRows = append(tableRows, []string{"---"}, []string{"Total", cli.FormatAmount(total, sym), "100%", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Label", "Amount", "Share", ""},
		Rows:    tableRows,
	}))
	return nil
}
