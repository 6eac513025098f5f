package search

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// ApplyFilters returns the items that pass every facet of f, in their input
// order. items is never modified. Empty enum facets are unconstrained.
func ApplyFilters(items []models.CatalogItem, f models.FilterState) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if matches(item, f) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item models.CatalogItem, f models.FilterState) bool {
	if !f.PriceRange.Contains(item.Price) {
		return false
	}
	if f.Category != "" && f.Category != models.CategoryAll && item.Category != f.Category {
		return false
	}
	if item.Rating < f.RatingThreshold {
		return false
	}
	switch f.Availability {
	case models.AvailabilityInStock:
		return item.InStock
	case models.AvailabilityCustomOrder:
		return item.CustomOrder
	}
	return true
}

// MustApplyFilters is ApplyFilters for filters that were validated on entry.
// An invalid f here is a programming error and panics.
func MustApplyFilters(items []models.CatalogItem, f models.FilterState) []models.CatalogItem {
	if err := f.Validate(); err != nil {
		panic(apperr.Wrap(apperr.ErrFilterApplication, "unvalidated filter state", err))
	}
	return ApplyFilters(items, f)
}

// SortOption orders the filtered catalog view.
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortRating    SortOption = "rating"
	SortNewest    SortOption = "newest"
)

// ParseSortOption maps an empty string to relevance and rejects unknown values.
func ParseSortOption(s string) (SortOption, error) {
	switch o := SortOption(s); o {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return o, nil
	}
	return "", apperr.Validation("unknown sort option %q", s)
}

// SortCatalog returns a stably sorted copy of items. Relevance keeps source
// order; newest does too, since catalog items carry no timestamp.
func SortCatalog(items []models.CatalogItem, by SortOption) []models.CatalogItem {
	out := slices.Clone(items)
	if out == nil {
		out = []models.CatalogItem{}
	}

	switch by {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.CatalogItem) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.CatalogItem) int { return cmp.Compare(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b models.CatalogItem) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortRelevance, SortNewest, "":
	default:
		panic(fmt.Sprintf("search: unknown sort option %q", by))
	}
	return out
}
