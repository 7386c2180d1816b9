package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/source"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Restore transactions and budgets from JSONL backups",
	Long: "Restore from files written by `coffer export`. Directories are " +
		"searched for *.jsonl files. Transactions already present (same ID) " +
		"are skipped; budgets overwrite the ceiling for their label and month.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// recordImporter is the part of the store an import writes through.
type recordImporter interface {
	ImportTransaction(ctx context.Context, t model.Transaction) (bool, error)
	UpsertBudget(ctx context.Context, b model.Budget) (model.Budget, error)
}

type importCounts struct {
	added    int
	skipped  int
	budgets  int
	rejected int
}

// importRecords writes loaded records through st. Records failing
// validation are logged and counted; any other error stops the import.
func importRecords(ctx context.Context, st recordImporter, logger *log.Logger, loaded *source.LoadResult) (importCounts, error) {
	var c importCounts
	for _, t := range loaded.Transactions {
		ok, err := st.ImportTransaction(ctx, t)
		switch {
		case err == nil && ok:
			c.added++
		case err == nil:
			c.skipped++
		case model.IsValidation(err):
			c.rejected++
			logger.Warn("rejected transaction", log.FieldID, t.ID, log.FieldError, err)
		default:
			return c, fmt.Errorf("importing transaction %s: %w", t.ID, err)
		}
	}

	for _, b := range loaded.Budgets {
		_, err := st.UpsertBudget(ctx, b)
		switch {
		case err == nil:
			c.budgets++
		case model.IsValidation(err):
			c.rejected++
			logger.Warn("rejected budget", "label", b.Label, log.FieldMonth, b.Month, log.FieldError, err)
		default:
			return c, fmt.Errorf("importing %s budget for %s: %w", b.Label, b.Month, err)
		}
	}
	return c, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	result, err := source.Load(args, progressFn)
	if err != nil {
		return err
	}
	if result.TotalFiles == 0 {
		fmt.Println("  No backup files found.")
		return nil
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	c, err := importRecords(cmd.Context(), s.store, s.logger, result)
	if err != nil {
		return err
	}

	notice("Imported %s transactions (%s already present) and %s budgets from %d files",
		cli.FormatNumber(int64(c.added)), cli.FormatNumber(int64(c.skipped)),
		cli.FormatNumber(int64(c.budgets)), result.ParsedFiles)
	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", result.FileErrors)
	}
	if n := result.ParseErrors + c.rejected; n > 0 {
		fmt.Fprintf(os.Stderr, "  %d entries were malformed or invalid\n", n)
	}
	return nil
}
