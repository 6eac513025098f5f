package models

// Category is a catalog category slug.
type Category string

const (
	CategoryAll         Category = "all"
	CategorySarees      Category = "sarees"
	CategoryJewelry     Category = "jewelry"
	CategoryHomeDecor   Category = "home-decor"
	CategoryHandicrafts Category = "handicrafts"
	CategoryTextiles    Category = "textiles"
	CategoryPottery     Category = "pottery"
	CategoryPaintings   Category = "paintings"
)

// categoryLabels lists storefront categories in display order. "all" is a
// filter value, not a category, so it is not listed.
var categoryLabels = []struct {
	slug  Category
	label string
}{
	{CategorySarees, "Sarees"},
	{CategoryJewelry, "Jewelry"},
	{CategoryHomeDecor, "Home Decor"},
	{CategoryHandicrafts, "Handicrafts"},
	{CategoryTextiles, "Textiles"},
	{CategoryPottery, "Pottery"},
	{CategoryPaintings, "Paintings"},
}

// Categories returns the storefront categories in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryLabels))
	for _, c := range categoryLabels {
		out = append(out, c.slug)
	}
	return out
}

// Label returns the display name, falling back to the slug itself.
func (c Category) Label() string {
	if c == CategoryAll {
		return "All"
	}
	for _, l := range categoryLabels {
		if l.slug == c {
			return l.label
		}
	}
	return string(c)
}

// Known reports whether c is a storefront category or "all".
func (c Category) Known() bool {
	if c == CategoryAll {
		return true
	}
	for _, l := range categoryLabels {
		if l.slug == c {
			return true
		}
	}
	return false
}
