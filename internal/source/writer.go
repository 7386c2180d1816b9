package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/theirongolddev/coffer/internal/model"
)

// Write emits one JSON line per transaction followed by one per budget.
func Write(w io.Writer, txs []model.Transaction, budgets []model.Budget) error {
	enc := json.NewEncoder(w)
	for _, t := range txs {
		raw := RawTransaction{
			Type:      TypeTransaction,
			ID:        t.ID,
			Kind:      string(t.Kind),
			Amount:    t.Amount,
			Date:      t.Date,
			Label:     t.Label,
			Note:      t.Note,
			CreatedAt: t.CreatedAt.UTC(),
		}
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}
	for _, b := range budgets {
		raw := RawBudget{
			Type:      TypeBudget,
			ID:        b.ID,
			Label:     b.Label,
			Amount:    b.Amount,
			Month:     b.Month,
			CreatedAt: b.CreatedAt.UTC(),
		}
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("writing budget %s/%s: %w", b.Label, b.Month, err)
		}
	}
	return nil
}
