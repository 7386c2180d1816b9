package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagAddLabel string
	flagAddDate  string
	flagAddNote  string
)

var addCmd = &cobra.Command{
	Use:   "add expense|income AMOUNT",
	Short: "Record an expense or income",
	Example: `  coffer add expense 12.50 --label Food --note lunch
  coffer add income 2000 --label Salary --date 2025-03-01`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddLabel, "label", "l", "", "Category (expense) or source (income)")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Optional note")
	_ = addCmd.MarkFlagRequired("label")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, ok := model.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("%q: %w, want expense or income", args[0], model.ErrInvalidKind)
	}
	amount, err := model.ParseAmount(args[1])
	if err != nil {
		return err
	}
	label, err := model.ParseLabel(kind, flagAddLabel)
	if err != nil {
		return fmt.Errorf("%w, one of: %s", err, strings.Join(model.LabelsFor(kind), ", "))
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	date := flagAddDate
	if date == "" {
		date = model.DateKey(s.now)
	}

	rec, err := s.store.AddTransaction(cmd.Context(), model.Transaction{
		Kind:   kind,
		Amount: amount,
		Date:   date,
		Label:  label,
		Note:   strings.TrimSpace(flagAddNote),
	})
	if err != nil {
		return err
	}

	notice("%s added: %s %s on %s (%s)", kindTitle(kind), label,
		cli.FormatAmount(rec.Amount, s.currency()), cli.FormatShortDate(rec.Date), cli.ShortID(rec.ID))
	return nil
}

func kindTitle(k model.Kind) string {
	if k == model.KindIncome {
		return "Income"
	}
	return "Expense"
}
