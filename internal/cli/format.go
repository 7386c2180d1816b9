// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// FormatAmount renders d with the currency symbol, thousands separators and
// two decimals. e.g., 1234.5 -> "$1,234.50"
func FormatAmount(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + FormatAmount(d.Neg(), symbol)
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return symbol + fixed
	}
	return symbol + FormatNumber(n) + "." + frac
}

// FormatCompact renders d in at most a few characters for narrow cells.
// e.g., 12.5 -> "12.5", 1234 -> "1.2K", 2500000 -> "2.5M"
func FormatCompact(d decimal.Decimal) string {
	f := d.InexactFloat64()
	abs := f
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", f/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", f/1_000)
	case abs >= 100:
		return fmt.Sprintf("%.0f", f)
	default:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a whole percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatChange renders a period comparison with a direction arrow.
// Spending more than last period points up.
func FormatChange(pct int) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("↑ %d%% vs last month", pct)
	case pct < 0:
		return fmt.Sprintf("↓ %d%% vs last month", -pct)
	default:
		return "→ same as last month"
	}
}

// FormatDayHeading renders a YYYY-MM-DD date as "Monday, Mar 3".
func FormatDayHeading(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2")
}

// FormatLongDate renders a YYYY-MM-DD date as "Monday, March 3, 2025".
func FormatLongDate(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// FormatShortDate renders a YYYY-MM-DD date as "Mar 3".
func FormatShortDate(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// FormatMonth renders t as "March 2025".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// ShortID returns the first eight characters of a UUID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
