package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

func TestBuildSearchConditions(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role
		text      string
		mutate    func(f *models.FilterState)
		wantConds []string
		wantArgs  []interface{}
	}{
		{
			name:      "guest with defaults only sees published",
			role:      models.RoleGuest,
			wantConds: []string{"p.status = 'Active'"},
			wantArgs:  []interface{}{},
		},
		{
			name:      "admin sees drafts",
			role:      models.RoleAdmin,
			wantConds: []string{},
			wantArgs:  []interface{}{},
		},
		{
			name: "text category and in-stock",
			role: models.RoleBuyer,
			text: "  silk saree ",
			mutate: func(f *models.FilterState) {
				f.Category = models.CategorySarees
				f.Availability = models.AvailabilityInStock
			},
			wantConds: []string{
				"p.status = 'Active'",
				"(p.name ILIKE ? OR p.description ILIKE ? OR p.category ILIKE ?)",
				"p.category = ?",
				"p.stock > 0",
			},
			wantArgs: []interface{}{"%silk saree%", "%silk saree%", "%silk saree%", "sarees"},
		},
		{
			name:   "custom order",
			role:   models.RoleSeller,
			mutate: func(f *models.FilterState) { f.Availability = models.AvailabilityCustomOrder },
			wantConds: []string{
				"p.status = 'Active'",
				"p.custom_order = TRUE",
			},
			wantArgs: []interface{}{},
		},
		{
			name: "price and rating never reach the source",
			role: models.RoleGuest,
			mutate: func(f *models.FilterState) {
				f.PriceRange = models.PriceRange{Min: 100, Max: 200}
				f.RatingThreshold = 4
			},
			wantConds: []string{"p.status = 'Active'"},
			wantArgs:  []interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.DefaultFilterState()
			if tt.mutate != nil {
				tt.mutate(&f)
			}
			conds, args := buildSearchConditions(tt.role, tt.text, f)
			assert.Equal(t, tt.wantConds, conds)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% silk\_blend`, escapeLike("100% silk_blend"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestBuildListConditions(t *testing.T) {
	f := models.DefaultFilterState()
	f.PriceRange = models.PriceRange{Min: 500, Max: 5000}
	f.RatingThreshold = 4.5

	conds, args := buildListConditions(models.RoleGuest, ListParams{Filters: f})

	assert.Equal(t, []string{
		"p.status = 'Active'",
		"p.price >= ?",
		"p.price <= ?",
		"p.rating >= ?",
	}, conds)
	assert.Equal(t, []interface{}{500.0, 5000.0, 4.5}, args)
	assert.Equal(t, "TRUE", whereClause(nil))
}

func TestBuildListConditions_ZeroMaxIsABound(t *testing.T) {
	f := models.DefaultFilterState()
	f.PriceRange = models.PriceRange{Min: 0, Max: 0}

	conds, args := buildListConditions(models.RoleAdmin, ListParams{Filters: f})

	assert.Equal(t, []string{"p.price <= ?"}, conds)
	assert.Equal(t, []interface{}{0.0}, args)
}

func TestBuildStorefrontOrderClause(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder, want string
	}{
		{"price", "asc", "p.price ASC, p.id"},
		{"price", "desc", "p.price DESC, p.id"},
		{"rating", "", "p.rating DESC, p.id"},
		{"popular", "ASC", "p.views ASC, p.id"},
		{"newest", "desc", "p.created_at DESC, p.id"},
		{"name; DROP TABLE products", "asc", "p.created_at DESC, p.id"},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy+"/"+tt.sortOrder, func(t *testing.T) {
			assert.Equal(t, tt.want, buildStorefrontOrderClause(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestCategoryData(t *testing.T) {
	got := categoryData(map[models.Category]int{
		models.CategorySarees:  12,
		models.CategoryPottery: 3,
		"unlisted":             9,
	})

	require.Len(t, got, len(models.Categories()))
	assert.Equal(t, models.CategoryData{ID: "sarees", Name: "Sarees", ProductCount: 12}, got[0])

	byID := map[string]int{}
	for _, c := range got {
		byID[c.ID] = c.ProductCount
	}
	assert.Equal(t, 3, byID["pottery"])
	assert.Zero(t, byID["textiles"])
	assert.NotContains(t, byID, "unlisted")
}
