package model

import "strings"

// OverallLabel is the budget label covering every category in a month.
const OverallLabel = "Overall"

// Category is the closed set of expense labels.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

// Source is the closed set of income labels.
type Source string

const (
	SourceSalary      Source = "Salary"
	SourceFreelance   Source = "Freelance"
	SourceBusiness    Source = "Business"
	SourceInvestments Source = "Investments"
	SourceGifts       Source = "Gifts"
	SourceRefunds     Source = "Refunds"
	SourceOther       Source = "Other"
)

// IncomeSources lists every income source in display order.
var IncomeSources = []Source{
	SourceSalary,
	SourceFreelance,
	SourceBusiness,
	SourceInvestments,
	SourceGifts,
	SourceRefunds,
	SourceOther,
}

// FallbackLabel is used for display when a stored label is not in the set.
const FallbackLabel = "Other"

// ParseCategory matches s case-insensitively against ExpenseCategories.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrUnknownLabel
}

// ParseSource matches s case-insensitively against IncomeSources.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	for _, src := range IncomeSources {
		if strings.EqualFold(string(src), s) {
			return src, nil
		}
	}
	return "", ErrUnknownLabel
}

// ParseLabel resolves s within the label set for kind and returns the
// canonical spelling.
func ParseLabel(kind Kind, s string) (string, error) {
	if kind == KindIncome {
		src, err := ParseSource(s)
		return string(src), err
	}
	c, err := ParseCategory(s)
	return string(c), err
}

// ParseBudgetLabel accepts Overall or any expense category.
func ParseBudgetLabel(s string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(s), OverallLabel) {
		return OverallLabel, nil
	}
	c, err := ParseCategory(s)
	return string(c), err
}

// LabelsFor returns the ordered label set for kind.
func LabelsFor(kind Kind) []string {
	if kind == KindIncome {
		out := make([]string, len(IncomeSources))
		for i, s := range IncomeSources {
			out[i] = string(s)
		}
		return out
	}
	out := make([]string, len(ExpenseCategories))
	for i, c := range ExpenseCategories {
		out[i] = string(c)
	}
	return out
}

// KnownLabel reports whether label belongs to the set for kind.
func KnownLabel(kind Kind, label string) bool {
	for _, l := range LabelsFor(kind) {
		if l == label {
			return true
		}
	}
	return false
}

// DisplayLabel returns label if it is in the set for kind, else FallbackLabel.
func DisplayLabel(kind Kind, label string) string {
	if KnownLabel(kind, label) {
		return label
	}
	return FallbackLabel
}
