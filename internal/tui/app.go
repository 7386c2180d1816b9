// Package tui provides the interactive Bubble Tea dashboard for coffer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/config"
	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/components"
	"github.com/theirongolddev/coffer/internal/tui/theme"
)

// Store is the record store the dashboard reads from and writes to.
type Store interface {
	AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, kind model.Kind, w model.Window) ([]model.Transaction, error)
	UpsertBudget(ctx context.Context, b model.Budget) (model.Budget, error)
	DeleteBudget(ctx context.Context, label, month string) error
	ListBudgets(ctx context.Context, month string) ([]model.Budget, error)
}

// dataLoadedMsg carries one month of records from the store.
type dataLoadedMsg struct {
	month        time.Time
	expenses     []model.Transaction
	prevExpenses []model.Transaction
	incomes      []model.Transaction
	budgets      []model.Budget
	err          error
}

// mutationMsg reports the outcome of an add, edit, delete or budget change.
type mutationMsg struct {
	notice string
	err    error
}

type toastExpiredMsg struct{ seq int }

const (
	tabOverview = iota
	tabCalendar
	tabLedger
	tabBudget
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height

	storeTimeout = 5 * time.Second
	toastTTL     = 4 * time.Second
)

// Options configures a new dashboard.
type Options struct {
	Store     Store
	Logger    *log.Logger
	Config    config.Config
	Month     time.Time        // zero means the current month
	Now       func() time.Time // nil means time.Now
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
	cfg    config.Config

	// Data for the selected month
	month        time.Time
	expenses     []model.Transaction
	prevExpenses []model.Transaction
	incomes      []model.Transaction
	budgets      []model.Budget
	summary      model.MonthSummary
	loaded       bool
	loading      bool
	loadErr      error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	cal      calendarState
	ledger   ledgerState
	budget   budgetState
	settings settingsState

	// Dialog (huh form) state
	form     *huh.Form
	formMode formMode
	formVals *formValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner  spinner.Model
	toast    components.Toast
	toastSeq int
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	month := opts.Month
	if month.IsZero() {
		month = now()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		store:     opts.Store,
		logger:    logger.WithComponent(log.ComponentTUI),
		now:       now,
		cfg:       opts.Config,
		month:     pipeline.MonthStart(month),
		ledger:    ledgerState{kind: model.KindExpense},
		loading:   true,
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.store, a.month),
		a.spinner.Tick,
	)
}

// currency returns the configured currency symbol.
func (a App) currency() string {
	if a.cfg.General.CurrencySymbol == "" {
		return "$"
	}
	return a.cfg.General.CurrencySymbol
}

// atCurrentMonth reports whether the selected month is the current one, in
// which case moving forward is disabled.
func (a App) atCurrentMonth() bool {
	return !a.month.Before(pipeline.MonthStart(a.now()))
}

func (a *App) recompute() {
	a.summary = pipeline.Summarize(a.expenses, a.prevExpenses, a.budgets, a.month, a.now())
	a.cal.clamp(pipeline.MonthWindow(a.month).Days())
	a.ledger.clamp(a.ledgerRecords())
	a.budget.clamp(len(pipeline.CategoryBudgetRows(a.budgets, a.expenses, a.month)))
}

// setMonth moves the month picker and starts a reload.
func (a *App) setMonth(m time.Time) tea.Cmd {
	a.month = pipeline.MonthStart(m)
	a.loading = true
	a.ledger.closeDetail()
	a.cal.cursor = 0
	if a.atCurrentMonth() {
		a.cal.cursor = a.now().Day() - 1
	}
	return loadDataCmd(a.store, a.month)
}

// showToast raises a status bar notice that expires after toastTTL.
func (a *App) showToast(text string, isErr bool) tea.Cmd {
	a.toastSeq++
	a.toast = components.Toast{Text: text, Error: isErr}
	seq := a.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(formWidth(msg.Width))
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case dataLoadedMsg:
		if !msg.month.Equal(a.month) {
			return a, nil // stale load for a month no longer selected
		}
		a.loading = false
		if msg.err != nil {
			a.loadErr = msg.err
			a.logger.Error("loading month", "month", model.MonthKey(msg.month), "error", msg.err)
			a.loaded = true
			return a, a.showToast("Could not load data", true)
		}
		a.loadErr = nil
		a.expenses = msg.expenses
		a.prevExpenses = msg.prevExpenses
		a.incomes = msg.incomes
		a.budgets = msg.budgets
		firstLoad := !a.loaded
		a.loaded = true
		a.recompute()

		if firstLoad {
			if a.atCurrentMonth() {
				a.cal.cursor = a.now().Day() - 1
			}
			if a.needSetup {
				a.setupVals = &setupValues{currency: a.currency(), theme: theme.Active.Name}
				a.setupForm = newSetupForm(a.setupVals)
				if a.width > 0 {
					a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
				}
				return a, a.setupForm.Init()
			}
		}
		return a, nil

	case mutationMsg:
		var toast tea.Cmd
		if msg.err != nil {
			a.logger.Warn("mutation failed", "notice", msg.notice, "error", msg.err)
			toast = a.showToast(mutationError(msg.err), true)
		} else {
			toast = a.showToast(msg.notice, false)
		}
		a.loading = true
		return a, tea.Batch(toast, loadDataCmd(a.store, a.month))

	case toastExpiredMsg:
		if msg.seq == a.toastSeq {
			a.toast = components.Toast{}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whichever form is open
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Open dialogs intercept all keys
	if a.form != nil {
		return a.updateForm(msg)
	}

	// Settings tab has its own keybindings (text input)
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Tab-local bindings take precedence over globals
	if next, cmd, handled := a.updateTabKey(key); handled {
		return next, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "[":
		return a, a.setMonth(pipeline.PreviousMonth(a.month))
	case "]":
		if a.atCurrentMonth() {
			return a, nil
		}
		return a, a.setMonth(pipeline.NextMonth(a.month))
	case "r":
		a.loading = true
		return a, loadDataCmd(a.store, a.month)
	case "a":
		return a.openAddForm(model.KindExpense, a.defaultFormDate())
	case "i":
		return a.openAddForm(model.KindIncome, a.defaultFormDate())
	case "s":
		return a.openBudgetForm(model.OverallLabel)
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

// updateTabKey dispatches keys owned by the active tab.
func (a App) updateTabKey(key string) (App, tea.Cmd, bool) {
	switch a.activeTab {
	case tabCalendar:
		return a.updateCalendarKey(key)
	case tabLedger:
		return a.updateLedgerKey(key)
	case tabBudget:
		return a.updateBudgetKey(key)
	case tabSettings:
		return a.updateSettingsKey(key)
	}
	return a, nil, false
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabLedger {
			a.ledger.move(-1, len(a.ledgerRecords()))
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		if a.activeTab == tabLedger {
			a.ledger.move(1, len(a.ledgerRecords()))
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// Tab bar is the first line
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		var toast tea.Cmd
		if err := a.saveSetupConfig(); err != nil {
			toast = a.showToast("Could not save config", true)
		} else {
			toast = a.showToast("Settings saved", false)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, toast
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  coffer needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ coffer"))
	b.WriteString(subtitleStyle.Render(" · Expenses & Income"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + model.MonthKey(a.month) + "..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	type binding struct{ key, desc string }
	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o c l b x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next month"},
			{"j k", "Navigate lists"},
			{"Enter", "Open day / Edit budget"},
			{"Esc", "Back"},
		}},
		{"Records", []binding{
			{"a", "Add expense"},
			{"i", "Add income"},
			{"e", "Edit selected"},
			{"d", "Delete selected"},
			{"s", "Set budget"},
			{"Tab", "Expenses / Income (ledger)"},
		}},
		{"General", []binding{
			{"r", "Reload"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + month picker row
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderMonthPicker(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, cli.FormatMonth(a.month), a.toast)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabLedger:
		content = a.renderLedgerTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderMonthPicker draws "‹ March 2025 ›" with the forward arrow dimmed at
// the current month.
func (a App) renderMonthPicker(w int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)
	arrowStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	disabledStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	monthStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	next := arrowStyle.Render("›")
	if a.atCurrentMonth() {
		next = disabledStyle.Render("›")
	}

	row := dimStyle.Render(" ") + arrowStyle.Render("‹") + dimStyle.Render(" ") +
		monthStyle.Render(cli.FormatMonth(a.month)) + dimStyle.Render(" ") + next
	if a.loading {
		row += dimStyle.Render("  loading…")
	}
	return rowStyle.Render(row)
}

// ─── Commands ───────────────────────────────────────────────────

// loadDataCmd fetches the expenses, incomes and budgets of month plus the
// previous month's expenses for the comparison card.
func loadDataCmd(st Store, month time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		msg := dataLoadedMsg{month: month}
		var err error
		if msg.expenses, err = st.ListTransactions(ctx, model.KindExpense, pipeline.MonthWindow(month)); err != nil {
			msg.err = fmt.Errorf("listing expenses: %w", err)
			return msg
		}
		if msg.prevExpenses, err = st.ListTransactions(ctx, model.KindExpense, pipeline.MonthWindow(pipeline.PreviousMonth(month))); err != nil {
			msg.err = fmt.Errorf("listing previous expenses: %w", err)
			return msg
		}
		if msg.incomes, err = st.ListTransactions(ctx, model.KindIncome, pipeline.MonthWindow(month)); err != nil {
			msg.err = fmt.Errorf("listing incomes: %w", err)
			return msg
		}
		if msg.budgets, err = st.ListBudgets(ctx, model.MonthKey(month)); err != nil {
			msg.err = fmt.Errorf("listing budgets: %w", err)
			return msg
		}
		return msg
	}
}

// mutateCmd runs fn against the store and reports the outcome as a toast.
func mutateCmd(notice string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return mutationMsg{notice: notice, err: fn(ctx)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	return components.TabAtX(x, a.activeTab)
}
