package catalog

import (
	"math"
	"strings"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// rawArtisan and rawProduct mirror the wire shape of remote sources, where
// any field may be missing.
type rawArtisan struct {
	Name        *string  `json:"name"`
	Location    *string  `json:"location"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"reviewCount"`
}

type rawProduct struct {
	ID          *string     `json:"id"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Price       *float64    `json:"price"`
	Rating      *float64    `json:"rating"`
	Category    *string     `json:"category"`
	Location    *string     `json:"location"`
	Artisan     *rawArtisan `json:"artisan"`
	InStock     *bool       `json:"inStock"`
	CustomOrder *bool       `json:"customOrder"`
	ImageRef    *string     `json:"imageRef"`
	Status      *string     `json:"status,omitempty"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func boolean(p *bool) bool {
	return p != nil && *p
}

// clamp maps nil and NaN to lo.
func clamp(p *float64, lo, hi float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return lo
	}
	return math.Min(math.Max(*p, lo), hi)
}

func normalize(raw rawProduct) models.CatalogItem {
	item := models.CatalogItem{
		ID:          str(raw.ID),
		Name:        str(raw.Name),
		Description: str(raw.Description),
		Price:       clamp(raw.Price, 0, math.MaxFloat64),
		Rating:      clamp(raw.Rating, 0, models.MaxRating),
		Category:    models.Category(strings.ToLower(str(raw.Category))),
		Location:    str(raw.Location),
		InStock:     boolean(raw.InStock),
		CustomOrder: boolean(raw.CustomOrder),
		ImageRef:    str(raw.ImageRef),
	}

	if a := raw.Artisan; a != nil {
		item.Artisan = models.Artisan{
			Name:     str(a.Name),
			Location: str(a.Location),
			Rating:   clamp(a.Rating, 0, models.MaxRating),
		}
		if a.ReviewCount != nil && *a.ReviewCount > 0 {
			item.Artisan.ReviewCount = *a.ReviewCount
		}
	}
	if item.Location == "" {
		item.Location = item.Artisan.Location
	}

	return item
}

func normalizeAll(raws []rawProduct) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, normalize(raw))
	}
	return items
}
