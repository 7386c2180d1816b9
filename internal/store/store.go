// Package store persists transactions and budgets in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/log"
	"github.com/theirongolddev/coffer/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when an ID or budget key has no row.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite-backed record store.
type Store struct {
	db     *sql.DB
	logger *log.Logger

	// Now is the clock used for created_at and future-date validation.
	Now func() time.Time
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.WithComponent(log.ComponentStore),
		Now:    time.Now,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddTransaction validates t, assigns an ID and creation time, and inserts it.
func (s *Store) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	now := s.Now()
	if err := model.ValidateTransaction(t, now); err != nil {
		return model.Transaction{}, fmt.Errorf("validating %s: %w", t.Kind, err)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = now.UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO transactions
		(id, kind, amount, date, label, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Kind), t.Amount.String(), t.Date, t.Label, t.Note,
		t.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("inserting %s: %w", t.Kind, err)
	}

	s.logger.InfoContext(ctx, "transaction added",
		log.FieldID, t.ID, log.FieldKind, t.Kind, "date", t.Date, "label", t.Label)
	return t, nil
}

// UpdateTransaction replaces amount, date, label and note of the row with
// t.ID. Kind and creation time are immutable.
func (s *Store) UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	existing, err := s.GetTransaction(ctx, t.ID)
	if err != nil {
		return model.Transaction{}, err
	}
	t.ID = existing.ID
	t.Kind = existing.Kind
	t.CreatedAt = existing.CreatedAt

	// A label that predates the current set may be kept as is.
	check := t
	if t.Label == existing.Label && !model.KnownLabel(t.Kind, t.Label) {
		check.Label = model.FallbackLabel
	}
	if err := model.ValidateTransaction(check, s.Now()); err != nil {
		return model.Transaction{}, fmt.Errorf("validating %s: %w", t.Kind, err)
	}

	res, err := s.db.ExecContext(ctx, `UPDATE transactions
		SET amount = ?, date = ?, label = ?, note = ?
		WHERE id = ?`,
		t.Amount.String(), t.Date, t.Label, t.Note, t.ID,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("updating %s: %w", t.ID, err)
	}
	if err := expectOneRow(res, t.ID); err != nil {
		return model.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "transaction updated", log.FieldID, t.ID)
	return t, nil
}

// DeleteTransaction removes the row with id.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	if err := expectOneRow(res, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "transaction deleted", log.FieldID, id)
	return nil
}

// GetTransaction loads one row by ID. A unique prefix of the ID is accepted
// so CLI users can type the short form shown by list.
func (s *Store) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, fmt.Errorf("empty id: %w", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, amount, date, label, note, created_at
		FROM transactions WHERE id = ? OR substr(id, 1, length(?)) = ? LIMIT 2`, id, id, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("querying %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	var found []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return model.Transaction{}, err
		}
		if t.ID == id {
			return t, nil
		}
		found = append(found, t)
	}
	if err := rows.Err(); err != nil {
		return model.Transaction{}, err
	}
	if len(found) != 1 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

// ListTransactions returns rows of kind inside w, newest date first and
// insertion order within a day. A zero window lists everything.
func (s *Store) ListTransactions(ctx context.Context, kind model.Kind, w model.Window) ([]model.Transaction, error) {
	query := `SELECT id, kind, amount, date, label, note, created_at
		FROM transactions WHERE kind = ?`
	args := []any{string(kind)}
	if !w.Start.IsZero() || !w.End.IsZero() {
		query += " AND date >= ? AND date <= ?"
		args = append(args, w.StartKey(), w.EndKey())
	}
	query += " ORDER BY date DESC, created_at ASC, rowid ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertBudget sets the ceiling for (label, month), creating the row if it
// does not exist. The returned budget carries the row's ID.
func (s *Store) UpsertBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	if err := model.ValidateBudget(b); err != nil {
		return model.Budget{}, fmt.Errorf("validating budget: %w", err)
	}
	now := s.Now().UTC()

	row := s.db.QueryRowContext(ctx, `INSERT INTO budgets (id, label, amount, month, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(label, month) DO UPDATE SET amount = excluded.amount
		RETURNING id, created_at`,
		uuid.NewString(), b.Label, b.Amount.String(), b.Month, now.Format(timeLayout),
	)
	var created string
	if err := row.Scan(&b.ID, &created); err != nil {
		return model.Budget{}, fmt.Errorf("upserting budget %s/%s: %w", b.Label, b.Month, err)
	}
	b.CreatedAt = parseTime(created)

	s.logger.InfoContext(ctx, "budget saved",
		log.FieldID, b.ID, "label", b.Label, log.FieldMonth, b.Month)
	return b, nil
}

// DeleteBudget removes the budget for (label, month).
func (s *Store) DeleteBudget(ctx context.Context, label, month string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE label = ? AND month = ?", label, month)
	if err != nil {
		return fmt.Errorf("deleting budget %s/%s: %w", label, month, err)
	}
	if err := expectOneRow(res, label+"/"+month); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "budget deleted", "label", label, log.FieldMonth, month)
	return nil
}

// ListBudgets returns the budgets of month in creation order.
func (s *Store) ListBudgets(ctx context.Context, month string) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, amount, month, created_at
		FROM budgets WHERE month = ? ORDER BY created_at ASC, rowid ASC`, month)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanBudgets(rows)
}

func scanBudgets(rows *sql.Rows) ([]model.Budget, error) {
	var out []model.Budget
	for rows.Next() {
		var b model.Budget
		var amount, created string
		if err := rows.Scan(&b.ID, &b.Label, &amount, &b.Month, &created); err != nil {
			return nil, err
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("budget %s amount %q: %w", b.ID, amount, err)
		}
		b.Amount = amt
		b.CreatedAt = parseTime(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ImportTransaction inserts t keeping its ID and creation time. It reports
// false without error when a row with that ID already exists.
func (s *Store) ImportTransaction(ctx context.Context, t model.Transaction) (bool, error) {
	if t.ID == "" {
		return false, fmt.Errorf("importing %s: %w", t.Kind, model.ErrMissingID)
	}
	if err := model.ValidateTransaction(t, s.Now()); err != nil {
		return false, fmt.Errorf("validating %s %s: %w", t.Kind, t.ID, err)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.Now()
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO transactions
		(id, kind, amount, date, label, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		t.ID, string(t.Kind), t.Amount.String(), t.Date, t.Label, t.Note,
		t.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("importing %s: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// AllBudgets returns every budget, ordered by month then creation.
func (s *Store) AllBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, amount, month, created_at
		FROM budgets ORDER BY month ASC, created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanBudgets(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var t model.Transaction
	var kind, amount, created string
	if err := row.Scan(&t.ID, &kind, &amount, &t.Date, &t.Label, &t.Note, &created); err != nil {
		return model.Transaction{}, err
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s amount %q: %w", t.ID, amount, err)
	}
	t.Kind = model.Kind(kind)
	t.Amount = amt
	t.CreatedAt = parseTime(created)
	return t, nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func expectOneRow(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return nil
}
