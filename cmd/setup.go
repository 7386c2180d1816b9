package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to coffer!")
	fmt.Println()

	// 1. Currency
	fmt.Println("  1. Currency symbol")
	fmt.Println("     Shown in front of every amount (1 to 4 characters).")
	fmt.Printf("     Current: %s\n", cfg.General.CurrencySymbol)
	fmt.Print("     > ")
	currency, _ := reader.ReadString('\n')
	currency = strings.TrimSpace(currency)
	if n := utf8.RuneCountInString(currency); n > 0 && n <= 4 {
		cfg.General.CurrencySymbol = currency
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	for i, th := range theme.All {
		marker := ""
		if th.Name == cfg.Appearance.Theme {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, th.Name, marker)
	}
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(choice)); err == nil && n >= 1 && n <= len(theme.All) {
		cfg.Appearance.Theme = theme.All[n-1].Name
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `coffer setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
