package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"12.50", "12.5", nil},
		{"12,5", "12.5", nil},
		{" 3 ", "3", nil},
		{"0.005", "0.01", nil},
		{"0", "", ErrInvalidAmount},
		{"-4", "", ErrInvalidAmount},
		{"abc", "", ErrInvalidAmount},
		{"", "", ErrInvalidAmount},
		{"99999999", "99999999", nil},
		{"100000000", "", ErrAmountTooLarge},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAmount(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	got, err := ParseLabel(KindExpense, "food")
	if err != nil || got != "Food" {
		t.Fatalf("ParseLabel(expense, food) = %q, %v", got, err)
	}
	got, err = ParseLabel(KindIncome, "SALARY")
	if err != nil || got != "Salary" {
		t.Fatalf("ParseLabel(income, SALARY) = %q, %v", got, err)
	}
	if _, err := ParseLabel(KindExpense, "Salary"); !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("expense label Salary err = %v, want ErrUnknownLabel", err)
	}
	if _, err := ParseBudgetLabel("overall"); err != nil {
		t.Fatalf("ParseBudgetLabel(overall) err = %v", err)
	}
}

func TestDisplayLabelFallsBack(t *testing.T) {
	if got := DisplayLabel(KindExpense, "Groceries"); got != FallbackLabel {
		t.Fatalf("DisplayLabel(Groceries) = %q, want %q", got, FallbackLabel)
	}
	if got := DisplayLabel(KindIncome, "Gifts"); got != "Gifts" {
		t.Fatalf("DisplayLabel(Gifts) = %q", got)
	}
	if n := len(LabelsFor(KindExpense)); n != 9 {
		t.Fatalf("expense labels = %d, want 9", n)
	}
	if n := len(LabelsFor(KindIncome)); n != 7 {
		t.Fatalf("income labels = %d, want 7", n)
	}
}

func TestValidateTransaction(t *testing.T) {
	today := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.Local)
	valid := Transaction{
		Kind:   KindExpense,
		Amount: decimal.RequireFromString("4.20"),
		Date:   "2025-03-10",
		Label:  "Food",
	}
	if err := ValidateTransaction(valid, today); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"zero amount", func(tx *Transaction) { tx.Amount = decimal.Zero }, ErrInvalidAmount},
		{"huge amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(100000000) }, ErrAmountTooLarge},
		{"unknown label", func(tx *Transaction) { tx.Label = "Rent" }, ErrUnknownLabel},
		{"income label on expense", func(tx *Transaction) { tx.Label = "Salary" }, ErrUnknownLabel},
		{"bad date", func(tx *Transaction) { tx.Date = "2025-02-30" }, ErrInvalidDate},
		{"future date", func(tx *Transaction) { tx.Date = "2025-03-11" }, ErrFutureDate},
		{"long note", func(tx *Transaction) { tx.Note = strings.Repeat("x", MaxNoteLen+1) }, ErrNoteTooLong},
		{"bad kind", func(tx *Transaction) { tx.Kind = "transfer" }, ErrInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := ValidateTransaction(tx, today); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNote_CountsRunes(t *testing.T) {
	if err := ValidateNote(strings.Repeat("é", MaxNoteLen)); err != nil {
		t.Fatalf("200 runes rejected: %v", err)
	}
}

func TestValidateBudget(t *testing.T) {
	b := Budget{Label: OverallLabel, Amount: decimal.NewFromInt(500), Month: "2025-03"}
	if err := ValidateBudget(b); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	b.Month = "2025-13"
	if err := ValidateBudget(b); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("bad month err = %v", err)
	}
	b.Month = "2025-03"
	b.Label = "Salary"
	if err := ValidateBudget(b); !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("income label err = %v", err)
	}
	b.Label = "Food"
	b.Amount = decimal.Zero
	if err := ValidateBudget(b); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero ceiling err = %v", err)
	}
}

func TestIsValidation(t *testing.T) {
	wrapped := fmt.Errorf("validating expense: %w", ErrUnknownLabel)
	if !IsValidation(wrapped) {
		t.Errorf("IsValidation(%v) = false", wrapped)
	}
	if !IsValidation(ErrMissingID) {
		t.Error("missing id should count as a rejected record")
	}
	for _, err := range []error{nil, errors.New("sql: database is closed"), context.Canceled} {
		if IsValidation(err) {
			t.Errorf("IsValidation(%v) = true", err)
		}
	}
}
