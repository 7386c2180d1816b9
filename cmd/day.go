package cmd

import (
	"fmt"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/theme"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Expenses and income of one day with per-label breakdowns",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	theme.SetActive(s.cfg.Appearance.Theme)

	date := model.DateKey(s.now)
	if len(args) == 1 {
		date = args[0]
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%q: %w", date, err)
	}
	w := model.Window{Start: day, End: day}

	fmt.Println()
	fmt.Println(cli.RenderTitle(cli.FormatLongDate(date)))

	for _, kind := range []model.Kind{model.KindExpense, model.KindIncome} {
		records, err := s.store.ListTransactions(cmd.Context(), kind, w)
		if err != nil {
			return err
		}
		fmt.Println()
		printDaySection(kind, records, s.currency())
	}
	return nil
}

func printDaySection(kind model.Kind, records []model.Transaction, sym string) {
	title := kindTitle(kind)
	if kind == model.KindExpense {
		title = "Expenses"
	}
	total := pipeline.TotalOf(records)
	fmt.Printf("  %s  %s\n", cli.Header(fmt.Sprintf("%s (%d)", title, len(records))), cli.FormatAmount(total, sym))

	if len(records) == 0 {
		fmt.Println(cli.Muted("  Nothing recorded."))
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{cli.ShortID(r.ID), model.DisplayLabel(kind, r.Label), truncate(r.Note, 32), cli.FormatAmount(r.Amount, sym)})
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"ID", "Label", "Note", "Amount"}, Rows: rows}))

	breakdown := pipeline.BreakdownByLabel(records)
	if len(breakdown) < 2 {
		return
	}
	peak := breakdown[0].Amount.InexactFloat64()
	for _, row := range breakdown {
		label := model.DisplayLabel(kind, row.Label)
		color := theme.LabelColor(kind, row.Label)
		fmt.Printf("  %s %-14s %-20s %s %3d%%\n",
			cli.Swatch(color), label,
			cli.RenderHorizontalBar(row.Amount.InexactFloat64(), peak, 20, color),
			cli.FormatAmount(row.Amount, sym), pipeline.SharePercent(row.Amount, total))
	}
}
