// Package server exposes the monthly views as a read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"
	"github.com/theirongolddev/coffer/internal/pipeline"
)

// Reader is the subset of the store the API reads from.
type Reader interface {
	ListTransactions(ctx context.Context, kind model.Kind, w model.Window) ([]model.Transaction, error)
	ListBudgets(ctx context.Context, month string) ([]model.Budget, error)
}

// Config controls the server runtime.
type Config struct {
	Addr           string
	Currency       string
	RequestTimeout time.Duration
}

// Server serves the API until its context is canceled.
type Server struct {
	cfg    Config
	store  Reader
	logger *log.Logger

	// Now anchors week-to-date, chart clamping and future-day flags.
	Now func() time.Time
}

// New returns a server reading from st.
func New(cfg Config, st Reader, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		logger: logger.WithComponent(log.ComponentHTTP),
		Now:    time.Now,
	}
}

// Handler returns the router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/months/{month}", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/breakdown", s.handleBreakdown)
		r.Get("/daily", s.handleDaily)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/budgets", s.handleBudgets)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// Run listens on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// monthData is everything one month's views are computed from.
type monthData struct {
	month        time.Time
	expenses     []model.Transaction
	prevExpenses []model.Transaction
	incomes      []model.Transaction
	budgets      []model.Budget
}

func (s *Server) load(ctx context.Context, month time.Time) (monthData, error) {
	d := monthData{month: month}
	var err error

	if d.expenses, err = s.store.ListTransactions(ctx, model.KindExpense, pipeline.MonthWindow(month)); err != nil {
		return d, fmt.Errorf("loading expenses: %w", err)
	}
	prev := pipeline.PreviousMonth(month)
	if d.prevExpenses, err = s.store.ListTransactions(ctx, model.KindExpense, pipeline.MonthWindow(prev)); err != nil {
		return d, fmt.Errorf("loading previous expenses: %w", err)
	}
	if d.incomes, err = s.store.ListTransactions(ctx, model.KindIncome, pipeline.MonthWindow(month)); err != nil {
		return d, fmt.Errorf("loading incomes: %w", err)
	}
	if d.budgets, err = s.store.ListBudgets(ctx, model.MonthKey(month)); err != nil {
		return d, fmt.Errorf("loading budgets: %w", err)
	}
	return d, nil
}

// monthParam parses {month}, writing a 400 when it is malformed.
func (s *Server) monthParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := chi.URLParam(r, "month")
	month, err := model.ParseMonth(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q, want YYYY-MM", raw))
		return time.Time{}, false
	}
	return month, true
}

// withMonth parses the month, loads its data and hands it to fn.
func (s *Server) withMonth(fn func(http.ResponseWriter, *http.Request, monthData)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := s.monthParam(w, r)
		if !ok {
			return
		}
		d, err := s.load(r.Context(), month)
		if err != nil {
			s.logger.Error("loading month", log.FieldMonth, model.MonthKey(month), log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to load data")
			return
		}
		fn(w, r, d)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withMonth(func(w http.ResponseWriter, _ *http.Request, d monthData) {
		sum := pipeline.Summarize(d.expenses, d.prevExpenses, d.budgets, d.month, s.Now())
		resp := summaryResponse{
			Month:         sum.Month,
			Currency:      s.cfg.Currency,
			Total:         sum.Total,
			PreviousTotal: sum.PreviousTotal,
			ChangePercent: sum.ChangePercent,
			WeekToDate:    sum.WeekToDate,
			Count:         sum.Count,
			IncomeTotal:   pipeline.TotalOf(d.incomes),
		}
		if sum.HasHighest {
			resp.HighestDay = &dayAmountJSON{Date: sum.Highest.Date, Amount: sum.Highest.Total}
		}
		if sum.Budget != nil {
			resp.Budget = &budgetJSON{
				Label:  sum.Budget.Label,
				Amount: sum.Budget.Amount,
				Spent:  sum.Total,
				Ratio:  sum.Progress.Ratio,
				Status: sum.Progress.Status,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})(w, r)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	kind := model.KindExpense
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, ok := model.ParseKind(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid kind %q, want expense or income", raw))
			return
		}
		kind = k
	}

	s.withMonth(func(w http.ResponseWriter, _ *http.Request, d monthData) {
		records := d.expenses
		if kind == model.KindIncome {
			records = d.incomes
		}
		total := pipeline.TotalOf(records)
		rows := pipeline.BreakdownByLabel(records)

		resp := breakdownResponse{
			Month: model.MonthKey(d.month),
			Kind:  kind,
			Total: total,
			Rows:  make([]breakdownRow, len(rows)),
		}
		for i, row := range rows {
			resp.Rows[i] = breakdownRow{
				Label:   row.Label,
				Display: model.DisplayLabel(kind, row.Label),
				Amount:  row.Amount,
				Share:   pipeline.SharePercent(row.Amount, total),
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})(w, r)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	s.withMonth(func(w http.ResponseWriter, _ *http.Request, d monthData) {
		series := pipeline.DailySeries(d.expenses, pipeline.ChartWindow(d.month, s.Now()))
		days := make([]dayAmountJSON, len(series))
		for i, p := range series {
			days[i] = dayAmountJSON{Date: model.DateKey(p.Date), Amount: p.Amount}
		}
		writeJSON(w, http.StatusOK, dailyResponse{Month: model.MonthKey(d.month), Days: days})
	})(w, r)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	s.withMonth(func(w http.ResponseWriter, _ *http.Request, d monthData) {
		cells := pipeline.CalendarGrid(d.expenses, d.month, s.Now())
		resp := calendarResponse{Month: model.MonthKey(d.month), Cells: make([]calendarCell, len(cells))}
		for i, c := range cells {
			if !c.InMonth {
				continue
			}
			resp.Cells[i] = calendarCell{
				Date:      model.DateKey(c.Date),
				Total:     c.Total,
				Count:     c.Count,
				TopLabel:  c.TopLabel,
				Intensity: c.Intensity,
				Today:     c.Today,
				Future:    c.Future,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})(w, r)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	s.withMonth(func(w http.ResponseWriter, _ *http.Request, d monthData) {
		resp := budgetsResponse{Month: model.MonthKey(d.month), Categories: []budgetJSON{}}
		if b, ok := pipeline.FindBudget(d.budgets, model.OverallLabel, d.month); ok {
			spent := pipeline.TotalOf(d.expenses)
			p := pipeline.BudgetProgressOf(spent, b.Amount)
			resp.Overall = &budgetJSON{Label: b.Label, Amount: b.Amount, Spent: spent, Ratio: p.Ratio, Status: p.Status}
		}
		for _, row := range pipeline.CategoryBudgetRows(d.budgets, d.expenses, d.month) {
			resp.Categories = append(resp.Categories, budgetJSON{
				Label:  row.Budget.Label,
				Amount: row.Budget.Amount,
				Spent:  row.Spent,
				Ratio:  row.Progress.Ratio,
				Status: row.Progress.Status,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	})(w, r)
}

type dayAmountJSON struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type budgetJSON struct {
	Label  string             `json:"label"`
	Amount decimal.Decimal    `json:"amount"`
	Spent  decimal.Decimal    `json:"spent"`
	Ratio  float64            `json:"ratio"`
	Status model.BudgetStatus `json:"status"`
}

type summaryResponse struct {
	Month         string          `json:"month"`
	Currency      string          `json:"currency,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PreviousTotal decimal.Decimal `json:"previous_total"`
	ChangePercent int             `json:"change_percent"`
	WeekToDate    decimal.Decimal `json:"week_to_date"`
	Count         int             `json:"count"`
	IncomeTotal   decimal.Decimal `json:"income_total"`
	HighestDay    *dayAmountJSON  `json:"highest_day,omitempty"`
	Budget        *budgetJSON     `json:"budget,omitempty"`
}

type breakdownRow struct {
	Label   string          `json:"label"`
	Display string          `json:"display"`
	Amount  decimal.Decimal `json:"amount"`
	Share   int             `json:"share_percent"`
}

type breakdownResponse struct {
	Month string          `json:"month"`
	Kind  model.Kind      `json:"kind"`
	Total decimal.Decimal `json:"total"`
	Rows  []breakdownRow  `json:"rows"`
}

type dailyResponse struct {
	Month string          `json:"month"`
	Days  []dayAmountJSON `json:"days"`
}

// calendarCell is zero-valued for the blank slots before the 1st.
type calendarCell struct {
	Date      string          `json:"date,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	TopLabel  string          `json:"top_label,omitempty"`
	Intensity float64         `json:"intensity"`
	Today     bool            `json:"today,omitempty"`
	Future    bool            `json:"future,omitempty"`
}

type calendarResponse struct {
	Month string         `json:"month"`
	Cells []calendarCell `json:"cells"`
}

type budgetsResponse struct {
	Month      string       `json:"month"`
	Overall    *budgetJSON  `json:"overall,omitempty"`
	Categories []budgetJSON `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
