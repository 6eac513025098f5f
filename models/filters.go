package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
)

const (
	DefaultMaxPrice = 10000
	MaxRating       = 5
)

// PriceRange is an inclusive price window.
type PriceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether price lies inside the window, bounds included.
func (p PriceRange) Contains(price float64) bool {
	return price >= p.Min && price <= p.Max
}

// FilterState holds the user-adjustable facets applied to catalog results.
type FilterState struct {
	PriceRange      PriceRange   `json:"priceRange"`
	Category        Category     `json:"category" validate:"required,category"`
	RatingThreshold float64      `json:"rating" validate:"gte=0,lte=5"`
	Availability    Availability `json:"availability" validate:"required,oneof=all in-stock custom-order"`
}

// DefaultFilterState is the state a fresh search session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange:      PriceRange{Min: 0, Max: DefaultMaxPrice},
		Category:        CategoryAll,
		RatingThreshold: 0,
		Availability:    AvailabilityAll,
	}
}

// DecodeFilterState reads a JSON filter object over the defaults, so facets
// the client leaves out keep their default value. An empty or null body
// yields the defaults. The result is not validated.
func DecodeFilterState(raw []byte) (FilterState, error) {
	f := DefaultFilterState()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, apperr.Validation("invalid filters: %v", err)
	}
	return f, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Known()
	})
	return v
}

// Validate checks the filter shape. Violations wrap apperr.ErrValidation.
func (f FilterState) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid filters: %v", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return apperr.Validation("invalid filters: %s", strings.Join(fields, ", "))
}

// ViewMode is how the storefront lays out results. It never affects data.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Availability *AvailabilityData `json:"availability"`
	Categories   []CategoryData    `json:"categories"`
	PriceRange   *PriceRangeData   `json:"priceRange"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock     int `json:"inStock"`
	CustomOrder int `json:"customOrder"`
	OutOfStock  int `json:"outOfStock"`
}

// CategoryData is a category with its number of published products
type CategoryData struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
