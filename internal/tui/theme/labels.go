package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/coffer/internal/model"
)

// CategoryColor returns the color for an expense category. Unknown values
// use the Other color.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryFood:
		return t.Orange
	case model.CategoryTransport:
		return t.Blue
	case model.CategoryShopping:
		return t.Magenta
	case model.CategoryBills:
		return t.Red
	case model.CategoryEntertainment:
		return t.Yellow
	case model.CategoryHealth:
		return t.Green
	case model.CategoryEducation:
		return t.Cyan
	case model.CategoryTravel:
		return t.Accent
	default:
		return t.TextMuted
	}
}

// SourceColor returns the color for an income source. Unknown values use the
// Other color.
func (t Theme) SourceColor(s model.Source) lipgloss.Color {
	switch s {
	case model.SourceSalary:
		return t.Green
	case model.SourceFreelance:
		return t.Blue
	case model.SourceBusiness:
		return t.Cyan
	case model.SourceInvestments:
		return t.Yellow
	case model.SourceGifts:
		return t.Magenta
	case model.SourceRefunds:
		return t.Orange
	default:
		return t.TextMuted
	}
}

// LabelColor resolves a stored label of kind against the active theme.
func LabelColor(kind model.Kind, label string) lipgloss.Color {
	if kind == model.KindIncome {
		return Active.SourceColor(model.Source(label))
	}
	return Active.CategoryColor(model.Category(label))
}

// HeatColor maps a calendar intensity in [0, 1] to one of four steps from
// the surface color to the accent.
func HeatColor(intensity float64) lipgloss.Color {
	switch {
	case intensity <= 0:
		return Active.Surface
	case intensity < 0.34:
		return Active.AccentDim
	case intensity < 0.67:
		return Active.Cyan
	default:
		return Active.Accent
	}
}
