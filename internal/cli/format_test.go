package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		sym  string
		want string
	}{
		{"0", "$", "$0.00"},
		{"12.5", "$", "$12.50"},
		{"1234.5", "€", "€1,234.50"},
		{"99999999", "$", "$99,999,999.00"},
		{"-42.1", "$", "-$42.10"},
		{"0.005", "$", "$0.01"},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in), tt.sym)
		if got != tt.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"12.5", "12.5"},
		{"7", "7"},
		{"150", "150"},
		{"1234", "1.2K"},
		{"2500000", "2.5M"},
	}
	for _, tt := range tests {
		if got := FormatCompact(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Fatalf("FormatCompact(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Fatalf("FormatNumber(-1000) = %q", got)
	}
}

func TestFormatChange(t *testing.T) {
	if got := FormatChange(27); got != "↑ 27% vs last month" {
		t.Fatalf("FormatChange(27) = %q", got)
	}
	if got := FormatChange(-5); got != "↓ 5% vs last month" {
		t.Fatalf("FormatChange(-5) = %q", got)
	}
	if got := FormatChange(0); got != "→ same as last month" {
		t.Fatalf("FormatChange(0) = %q", got)
	}
}

func TestFormatDates(t *testing.T) {
	if got := FormatDayHeading("2025-03-03"); got != "Monday, Mar 3" {
		t.Fatalf("FormatDayHeading = %q", got)
	}
	if got := FormatLongDate("2025-03-03"); got != "Monday, March 3, 2025" {
		t.Fatalf("FormatLongDate = %q", got)
	}
	if got := FormatShortDate("bogus"); got != "bogus" {
		t.Fatalf("FormatShortDate(bogus) = %q", got)
	}
	if got := FormatMonth(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)); got != "March 2025" {
		t.Fatalf("FormatMonth = %q", got)
	}
}
