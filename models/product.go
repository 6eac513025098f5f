package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

type MediaURL struct {
	URL   string `json:"url" binding:"required"`
	Order *int   `json:"order,omitempty"`
}

type ProductMedia struct {
	Primary MediaURL   `json:"primary" binding:"required"`
	Other   []MediaURL `json:"other,omitempty"`
}

type TagsList []string

const (
	ProductStatusActive = "Active"
	ProductStatusDraft  = "Draft"
)

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string       `json:"name" gorm:"not null;index"`
	Description string       `json:"description" gorm:"not null"`
	Price       float64      `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Rating      float64      `json:"rating" gorm:"type:numeric(2,1);not null;default:0;check:rating >= 0 AND rating <= 5"`
	Category    string       `json:"category" gorm:"not null;index:idx_products_category"`
	Location    string       `json:"location" gorm:"not null;default:''"`
	Artisan     Artisan      `json:"artisan" gorm:"type:jsonb;not null;default:'{}'"`
	Stock       int          `json:"stock" gorm:"not null;default:0"`
	CustomOrder bool         `json:"custom_order" gorm:"not null;default:false"`
	Status      string       `json:"status" gorm:"not null;check:status IN ('Active', 'Draft');index"`
	Tags        TagsList     `json:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	Media       ProductMedia `json:"media" gorm:"type:jsonb;not null;default:'{}'"`
	Views       int          `json:"views" gorm:"default:0;index:idx_products_views,sort:desc"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ToCatalogItem maps the stored product onto the catalog shape used by search.
func (p Product) ToCatalogItem() CatalogItem {
	return CatalogItem{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Rating:      p.Rating,
		Category:    Category(p.Category),
		Location:    p.Location,
		Artisan:     p.Artisan,
		InStock:     p.Stock > 0,
		CustomOrder: p.CustomOrder,
		ImageRef:    p.Media.Primary.URL,
	}
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM
// ═══════════════════════════════════════════════════════════

// jsonBytes accepts both encodings a driver may hand back for a JSONB column.
func jsonBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}

// TagsList methods
func (t *TagsList) Scan(value interface{}) error {
	if value == nil {
		*t = make(TagsList, 0)
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return errors.New("failed to scan TagsList")
	}
	return json.Unmarshal(bytes, t)
}

func (t TagsList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

// ProductMedia methods
func (m *ProductMedia) Scan(value interface{}) error {
	if value == nil {
		*m = ProductMedia{Other: make([]MediaURL, 0)}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return errors.New("failed to scan ProductMedia")
	}
	return json.Unmarshal(bytes, m)
}

func (m ProductMedia) Value() (driver.Value, error) {
	return json.Marshal(m)
}
