package source

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// Entry types carried in the "type" field of every line.
const (
	TypeTransaction = "transaction"
	TypeBudget      = "budget"
)

// RawTransaction is one transaction line of a backup file.
type RawTransaction struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Label     string          `json:"label"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// RawBudget is one budget line of a backup file.
type RawBudget struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Month     string          `json:"month"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r RawTransaction) toModel() (model.Transaction, bool) {
	kind, ok := model.ParseKind(r.Kind)
	if !ok || r.ID == "" {
		return model.Transaction{}, false
	}
	return model.Transaction{
		ID:        r.ID,
		Kind:      kind,
		Amount:    r.Amount,
		Date:      r.Date,
		Label:     r.Label,
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}, true
}

func (r RawBudget) toModel() (model.Budget, bool) {
	if r.Label == "" || r.Month == "" {
		return model.Budget{}, false
	}
	return model.Budget{
		ID:        r.ID,
		Label:     r.Label,
		Amount:    r.Amount,
		Month:     r.Month,
		CreatedAt: r.CreatedAt,
	}, true
}

// DiscoveredFile is a JSONL backup found during scanning.
type DiscoveredFile struct {
	Path string
	Name string // base name without extension
}
