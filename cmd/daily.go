package cmd

import (
	"fmt"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily spending table with sparkline",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
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

	series := pipeline.DailySeries(d.expenses, pipeline.ChartWindow(s.month, s.now))
	if len(series) == 0 {
		fmt.Println("\n  This month has not started yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  %s", cli.FormatMonth(s.month))))
	fmt.Println()

	values := make([]float64, len(series))
	peak := 0.0
	for i, p := range series {
		values[i] = p.Amount.InexactFloat64()
		peak = max(peak, values[i])
	}
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values))

	running := decimal.Zero
	rows := make([][]string, 0, len(series))
	for i, p := range series {
		running = running.Add(p.Amount)
		amount := cli.Muted("-")
		if !p.Amount.IsZero() {
			amount = cli.FormatAmount(p.Amount, sym)
		}
		rows = append(rows, []string{
			p.Date.Format("2006-01-02"),
			p.Date.Format("Mon"),
			amount,
			cli.FormatAmount(running, sym),
			cli.RenderHorizontalBar(values[i], peak, 20, cli.ColorAccent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Spent", "Running", ""},
		Rows:    rows,
	}))
	return nil
}
