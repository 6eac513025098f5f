package models

// StorefrontProduct is the detail view of a single product
type StorefrontProduct struct {
	CatalogItem
	Tags   []string     `json:"tags"`
	Media  ProductMedia `json:"media"`
	Stock  int          `json:"stock"`
	Status string       `json:"status,omitempty"` // Only set for roles that see drafts
}

// StorefrontProductResponse is the thin listing row
type StorefrontProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Category    Category `json:"category"`
	ArtisanName string   `json:"artisan_name"`
	InStock     bool     `json:"in_stock"`
	CustomOrder bool     `json:"custom_order"`
}
