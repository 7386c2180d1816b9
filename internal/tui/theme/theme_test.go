package theme

import (
	"testing"

	"github.com/theirongolddev/coffer/internal/model"
)

func TestLabelColor_FallsBackToOther(t *testing.T) {
	defer SetActive(Active.Name)
	SetActive("flexoki-dark")

	if got := LabelColor(model.KindExpense, "Groceries"); got != Active.TextMuted {
		t.Fatalf("unknown category color = %q, want Other color", got)
	}
	if got := LabelColor(model.KindIncome, "Lottery"); got != Active.TextMuted {
		t.Fatalf("unknown source color = %q, want Other color", got)
	}
	if got := LabelColor(model.KindExpense, "Food"); got != Active.Orange {
		t.Fatalf("Food color = %q, want orange", got)
	}
}

func TestEveryLabelHasAColor(t *testing.T) {
	for _, c := range model.ExpenseCategories {
		if FlexokiDark.CategoryColor(c) == "" {
			t.Fatalf("category %s has no color", c)
		}
	}
	for _, s := range model.IncomeSources {
		if FlexokiDark.SourceColor(s) == "" {
			t.Fatalf("source %s has no color", s)
		}
	}
}

func TestHeatColorSteps(t *testing.T) {
	if HeatColor(0) != Active.Surface {
		t.Fatal("zero intensity should use surface")
	}
	if HeatColor(1) != Active.Accent {
		t.Fatal("full intensity should use accent")
	}
}

func TestByNameDefaults(t *testing.T) {
	if ByName("nope").Name != "flexoki-dark" {
		t.Fatal("unknown theme should fall back to flexoki-dark")
	}
}
