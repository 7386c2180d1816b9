// Package cmd implements the coffer CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagMonth string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:           "coffer",
	Short:         "Personal expense, income and budget tracker",
	Long:          "Track expenses and income, set monthly budgets and see where the money went.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to show as YYYY-MM (default current)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices and warnings")
}

// session is the state every command works against.
type session struct {
	cfg    config.Config
	store  *store.Store
	logger *log.Logger
	month  time.Time
	now    time.Time
}

// loadConfig reads the config file and applies --db.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	return cfg, nil
}

// selectedMonth resolves --month, defaulting to the month of now.
func selectedMonth(now time.Time) (time.Time, error) {
	if flagMonth == "" {
		return pipeline.MonthStart(now), nil
	}
	month, err := model.ParseMonth(flagMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month %q: %w", flagMonth, err)
	}
	return month, nil
}

// openSession loads config, applies the global flags and opens the store
// logging to stderr.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:     cliLogLevel(cfg.General.LogLevel),
		Component: log.ComponentCLI,
		Output:    os.Stderr,
	})
	return openSessionWith(cfg, logger)
}

func openSessionWith(cfg config.Config, logger *log.Logger) (*session, error) {
	now := time.Now()
	month, err := selectedMonth(now)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, store: st, logger: logger, month: month, now: now}, nil
}

// cliLogLevel keeps routine store events off the terminal unless debugging.
func cliLogLevel(configured string) slog.Level {
	if flagQuiet {
		return slog.LevelError
	}
	level := log.ParseLevel(configured)
	if level == slog.LevelDebug {
		return level
	}
	return max(level, slog.LevelWarn)
}

func (s *session) close() {
	_ = s.store.Close()
}

func (s *session) currency() string {
	return s.cfg.General.CurrencySymbol
}

// monthData holds the records a month's views are computed from.
type monthData struct {
	expenses     []model.Transaction
	prevExpenses []model.Transaction
	incomes      []model.Transaction
	budgets      []model.Budget
}

func (s *session) load(ctx context.Context) (monthData, error) {
	var d monthData
	var err error

	w := pipeline.MonthWindow(s.month)
	if d.expenses, err = s.store.ListTransactions(ctx, model.KindExpense, w); err != nil {
		return d, err
	}
	prev := pipeline.MonthWindow(pipeline.PreviousMonth(s.month))
	if d.prevExpenses, err = s.store.ListTransactions(ctx, model.KindExpense, prev); err != nil {
		return d, err
	}
	if d.incomes, err = s.store.ListTransactions(ctx, model.KindIncome, w); err != nil {
		return d, err
	}
	if d.budgets, err = s.store.ListBudgets(ctx, model.MonthKey(s.month)); err != nil {
		return d, err
	}
	return d, nil
}

// notice prints a one-line mutation result unless --quiet.
func notice(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf("  ✓ "+format+"\n", args...)
}
