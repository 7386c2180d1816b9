package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/tui"
	"github.com/theirongolddev/coffer/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	needSetup := !config.Exists()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log to a file so nothing writes over the alternate screen.
	logger, closer, err := log.ToFile(filepath.Join(config.CacheDir(), "coffer.log"), log.ParseLevel(cfg.General.LogLevel))
	if err != nil {
		logger = log.Discard()
	} else {
		defer func() { _ = closer.Close() }()
	}

	s, err := openSessionWith(cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	app := tui.NewApp(tui.Options{
		Store:     s.store,
		Logger:    logger.WithComponent(log.ComponentTUI),
		Config:    s.cfg,
		Month:     s.month,
		NeedSetup: needSetup,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
