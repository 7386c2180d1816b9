package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/model"
)

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Label", "Amount"},
		Rows: [][]string{
			{"Food", "€12.50"},
			{"---"},
			{"Total", "€1,012.50"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Fatalf("line %d width %d, want %d:\n%s", i, lipgloss.Width(l), w, out)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("empty table rendered %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 5, 10})
	if got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty sparkline should be empty")
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Fatalf("all-zero sparkline = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(model.BudgetProgress{Ratio: 0.5, Status: model.BudgetOK}, 10)
	if lipgloss.Width(out) != 14 {
		t.Fatalf("progress bar width = %d: %q", lipgloss.Width(out), out)
	}
	if !strings.HasSuffix(out, "50%") {
		t.Fatalf("progress bar missing percent: %q", out)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar(5, 10, 20, ColorGreen); lipgloss.Width(got) != 10 {
		t.Fatalf("bar width = %d, want 10", lipgloss.Width(got))
	}
	if RenderHorizontalBar(5, 0, 20, ColorGreen) != "" {
		t.Fatal("zero max should render nothing")
	}
}
