package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors. Messages are the ones the forms show.
var (
	ErrInvalidAmount  = errors.New("Amount must be positive")
	ErrAmountTooLarge = errors.New("Amount too large")
	ErrUnknownLabel   = errors.New("Pick a category")
	ErrInvalidDate    = errors.New("Invalid date")
	ErrFutureDate     = errors.New("Date cannot be in the future")
	ErrNoteTooLong    = errors.New("Note too long")
	ErrInvalidMonth   = errors.New("Invalid month")
	ErrInvalidKind    = errors.New("Invalid kind")
	ErrMissingID      = errors.New("Missing id")
)

var validationErrors = []error{
	ErrInvalidAmount, ErrAmountTooLarge, ErrUnknownLabel, ErrInvalidDate,
	ErrFutureDate, ErrNoteTooLong, ErrInvalidMonth, ErrInvalidKind, ErrMissingID,
}

// IsValidation reports whether err is a rejected record rather than a
// failure to store one.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MaxNoteLen is the note limit in characters.
const MaxNoteLen = 200

// MaxAmount is the largest accepted amount.
var MaxAmount = decimal.NewFromInt(99999999)

// ParseAmount parses user input such as "12.50" or "12,50" and checks bounds.
// The result is rounded to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if err := checkAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func checkAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if d.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD string is a real day not after today's
// calendar day.
func ValidateDate(s string, today time.Time) error {
	d, err := ParseDate(s)
	if err != nil {
		return err
	}
	if d.After(DayOf(today)) {
		return ErrFutureDate
	}
	return nil
}

// ValidateNote enforces MaxNoteLen.
func ValidateNote(s string) error {
	if utf8.RuneCountInString(s) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

// ValidateTransaction checks every field of t. today bounds the date.
func ValidateTransaction(t Transaction, today time.Time) error {
	if t.Kind != KindExpense && t.Kind != KindIncome {
		return fmt.Errorf("kind %q: %w", t.Kind, ErrInvalidKind)
	}
	if err := checkAmount(t.Amount); err != nil {
		return err
	}
	if !KnownLabel(t.Kind, t.Label) {
		return ErrUnknownLabel
	}
	if err := ValidateDate(t.Date, today); err != nil {
		return err
	}
	return ValidateNote(t.Note)
}

// ValidateBudget checks label, ceiling and month.
func ValidateBudget(b Budget) error {
	if b.Label != OverallLabel && !KnownLabel(KindExpense, b.Label) {
		return ErrUnknownLabel
	}
	if err := checkAmount(b.Amount); err != nil {
		return err
	}
	if _, err := ParseMonth(b.Month); err != nil {
		return err
	}
	return nil
}
