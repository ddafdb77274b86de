package domain

import "strings"

// Category pairs a fixed label with its display glyph. The set and its
// order are part of the contract with the categorization service; the
// order also breaks ties when sorting the expense breakdown.
type Category struct {
	Label string
	Emoji string
}

func (c Category) Display() string {
	return c.Emoji + " " + c.Label
}

var Categories = []Category{
	{Label: "Vivienda", Emoji: "🏠"},
	{Label: "Supermercado", Emoji: "🛒"},
	{Label: "Gastronomía", Emoji: "🍽️"},
	{Label: "Transporte", Emoji: "🚗"},
	{Label: "Salud", Emoji: "💊"},
	{Label: "Educación", Emoji: "📚"},
	{Label: "Entretenimiento", Emoji: "🎬"},
	{Label: "Ropa y Shopping", Emoji: "👕"},
	{Label: "Ingresos", Emoji: "💰"},
	{Label: "Otros", Emoji: "📦"},
}

// CategoryOther is the coercion target for labels outside the fixed set.
var CategoryOther = Categories[len(Categories)-1]

// FindCategory resolves a label against the fixed set. The service
// sometimes echoes the glyph back inside the label ("🛒 Supermercado"),
// so matching strips any non-letter prefix and ignores case.
func FindCategory(label string) (Category, bool) {
	needle := normalizeLabel(label)
	if needle == "" {
		return Category{}, false
	}
	for _, c := range Categories {
		if normalizeLabel(c.Label) == needle {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryRank returns the position of a label in the fixed set, or
// len(Categories) when unknown.
func CategoryRank(label string) int {
	needle := normalizeLabel(label)
	for i, c := range Categories {
		if normalizeLabel(c.Label) == needle {
			return i
		}
	}
	return len(Categories)
}

func normalizeLabel(label string) string {
	s := strings.TrimSpace(label)
	for _, c := range Categories {
		s = strings.TrimPrefix(s, c.Emoji)
	}
	return strings.ToLower(strings.TrimSpace(s))
}
