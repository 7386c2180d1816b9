package cmd

import (
	"strings"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagEditAmount string
	flagEditLabel  string
	flagEditDate   string
	flagEditNote   string
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change amount, label, date or note of a transaction",
	Long:  "Change a transaction. ID may be the short form shown by `coffer list`.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount")
	editCmd.Flags().StringVarP(&flagEditLabel, "label", "l", "", "New category or source")
	editCmd.Flags().StringVarP(&flagEditDate, "date", "d", "", "New date as YYYY-MM-DD")
	editCmd.Flags().StringVar(&flagEditNote, "note", "", "New note (empty string clears it)")
	rootCmd.AddCommand(editCmd, rmCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	rec, err := s.store.GetTransaction(ctx, args[0])
	if err != nil {
		return err
	}

	if flagEditAmount != "" {
		if rec.Amount, err = model.ParseAmount(flagEditAmount); err != nil {
			return err
		}
	}
	if flagEditLabel != "" {
		if rec.Label, err = model.ParseLabel(rec.Kind, flagEditLabel); err != nil {
			return err
		}
	}
	if flagEditDate != "" {
		rec.Date = flagEditDate
	}
	if cmd.Flags().Changed("note") {
		rec.Note = strings.TrimSpace(flagEditNote)
	}

	rec, err = s.store.UpdateTransaction(ctx, rec)
	if err != nil {
		return err
	}
	notice("%s updated: %s %s on %s", kindTitle(rec.Kind), rec.Label,
		cli.FormatAmount(rec.Amount, s.currency()), cli.FormatShortDate(rec.Date))
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	rec, err := s.store.GetTransaction(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, rec.ID); err != nil {
		return err
	}
	notice("%s deleted: %s %s on %s", kindTitle(rec.Kind), rec.Label,
		cli.FormatAmount(rec.Amount, s.currency()), cli.FormatShortDate(rec.Date))
	return nil
}
