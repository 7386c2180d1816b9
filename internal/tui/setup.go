package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// setupValues backs the first-run form.
type setupValues struct {
	currency string
	theme    string
}

func validateCurrency(s string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n == 0 || n > maxCurrencyLen {
		return errInvalidCurrency
	}
	return nil
}

// newSetupForm builds the first-run wizard shown when no config file exists.
func newSetupForm(v *setupValues) *huh.Form {
	options := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		options[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to coffer").
				Description("Track expenses, income and monthly budgets.\nLet's set up a couple of things."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount.").
				Placeholder("$").
				CharLimit(maxCurrencyLen).
				Value(&v.currency).
				Validate(validateCurrency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(options...).
				Value(&v.theme),
		),
	).WithShowHelp(true)
}

// saveSetupConfig applies the wizard answers and writes the config file.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if c := strings.TrimSpace(a.setupVals.currency); c != "" {
		cfg.General.CurrencySymbol = c
		a.cfg.General.CurrencySymbol = c
	}
	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		a.cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	if err := config.Save(cfg); err != nil {
		a.logger.Warn("saving setup config", "error", err)
		return err
	}
	return nil
}
