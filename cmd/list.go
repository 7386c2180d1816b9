package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagListIncome bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Ledger grouped by day, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagListIncome, "income", "i", false, "List income instead of expenses")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	kind := model.KindExpense
	if flagListIncome {
		kind = model.KindIncome
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	records, err := s.store.ListTransactions(cmd.Context(), kind, pipeline.MonthWindow(s.month))
	if err != nil {
		return err
	}
	sym := s.currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", strings.ToUpper(kindTitle(kind)), cli.FormatMonth(s.month))))
	fmt.Println()

	if len(records) == 0 {
		fmt.Printf("  No %s recorded this month.\n", strings.ToLower(kindTitle(kind)))
		return nil
	}

	var rows [][]string
	for i, g := range pipeline.DayGroups(records) {
		if i > 0 {
			rows = append(rows, []string{"---"})
		}
		rows = append(rows, []string{
			cli.FormatDayHeading(g.Date), "", "", cli.Muted(fmt.Sprintf("%d items", len(g.Records))),
			cli.Header(cli.FormatAmount(g.Total, sym)),
		})
		for _, r := range g.Records {
			rows = append(rows, []string{
				"  " + cli.Muted(cli.ShortID(r.ID)),
				model.DisplayLabel(kind, r.Label),
				truncate(r.Note, 28),
				"",
				cli.FormatAmount(r.Amount, sym),
			})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day / ID", "Label", "Note", "", "Amount"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %d records · total %s\n", len(records), cli.FormatAmount(pipeline.TotalOf(records), sym))
	return nil
}

// truncate shortens s to n runes with an ellipsis, flattening newlines.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
