package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/source"

	"github.com/spf13/cobra"
)

var flagExportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every transaction and budget as JSONL",
	Example: `  coffer export > backup.jsonl
  coffer export -o ~/backups/coffer-2025-03.jsonl`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	var txs []model.Transaction
	for _, kind := range []model.Kind{model.KindExpense, model.KindIncome} {
		records, err := s.store.ListTransactions(ctx, kind, model.Window{})
		if err != nil {
			return err
		}
		txs = append(txs, records...)
	}
	budgets, err := s.store.AllBudgets(ctx)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if flagExportOutput != "" {
		f, err := os.OpenFile(flagExportOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := source.Write(out, txs, budgets); err != nil {
		return err
	}
	if flagExportOutput != "" {
		notice("Exported %d transactions and %d budgets to %s", len(txs), len(budgets), flagExportOutput)
	}
	return nil
}
