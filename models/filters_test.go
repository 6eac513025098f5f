package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
)

func TestDefaultFilterState(t *testing.T) {
	f := DefaultFilterState()

	assert.Equal(t, PriceRange{Min: 0, Max: 10000}, f.PriceRange)
	assert.Equal(t, CategoryAll, f.Category)
	assert.Zero(t, f.RatingThreshold)
	assert.Equal(t, AvailabilityAll, f.Availability)
	require.NoError(t, f.Validate())
}

func TestFilterState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *FilterState)
		wantErr string
	}{
		{"valid category", func(f *FilterState) { f.Category = CategoryPottery }, ""},
		{"valid custom order", func(f *FilterState) { f.Availability = AvailabilityCustomOrder }, ""},
		{"equal bounds", func(f *FilterState) { f.PriceRange = PriceRange{Min: 500, Max: 500} }, ""},
		{"negative min", func(f *FilterState) { f.PriceRange.Min = -1 }, "Min"},
		{"min above max", func(f *FilterState) { f.PriceRange = PriceRange{Min: 200, Max: 100} }, "Max"},
		{"rating above five", func(f *FilterState) { f.RatingThreshold = 5.5 }, "RatingThreshold"},
		{"negative rating", func(f *FilterState) { f.RatingThreshold = -0.5 }, "RatingThreshold"},
		{"unknown category", func(f *FilterState) { f.Category = "furniture" }, "Category"},
		{"empty category", func(f *FilterState) { f.Category = "" }, "Category"},
		{"unknown availability", func(f *FilterState) { f.Availability = "pre-order" }, "Availability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilterState()
			tt.mutate(&f)

			err := f.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPriceRange_Contains(t *testing.T) {
	r := PriceRange{Min: 100, Max: 200}

	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(200))
	assert.True(t, r.Contains(150))
	assert.False(t, r.Contains(99.99))
	assert.False(t, r.Contains(200.01))
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryAll.Known())
	assert.True(t, CategoryHomeDecor.Known())
	assert.False(t, Category("furniture").Known())

	assert.Equal(t, "Home Decor", CategoryHomeDecor.Label())
	assert.Equal(t, "furniture", Category("furniture").Label())
	assert.NotContains(t, Categories(), CategoryAll)
	assert.Len(t, Categories(), 7)
}
