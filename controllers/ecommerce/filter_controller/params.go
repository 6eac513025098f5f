package filter_controller

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// ParseFilterQuery reads category, min_price, max_price, rating and
// availability from the query string on top of the default filter state.
func ParseFilterQuery(c *gin.Context) (models.FilterState, error) {
	f := models.DefaultFilterState()

	if v := strings.TrimSpace(c.Query("category")); v != "" {
		f.Category = models.Category(strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("availability")); v != "" {
		f.Availability = models.Availability(strings.ToLower(v))
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"min_price", &f.PriceRange.Min},
		{"max_price", &f.PriceRange.Max},
		{"rating", &f.RatingThreshold},
	}
	for _, p := range floats {
		raw := strings.TrimSpace(c.Query(p.key))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, apperr.Validation("%s must be a number", p.key)
		}
		*p.dst = n
	}

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}
