package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Role is the acting role of the caller, injected into searches by the auth middleware.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// SeesDrafts reports whether the role may see unpublished products.
func (r Role) SeesDrafts() bool {
	return r == RoleAdmin
}

// Availability is the stock facet of the filter state.
type Availability string

const (
	AvailabilityAll         Availability = "all"
	AvailabilityInStock     Availability = "in-stock"
	AvailabilityCustomOrder Availability = "custom-order"
)

// Artisan is the maker profile shown alongside a catalog item.
type Artisan struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// CatalogItem is a purchasable product as returned by a catalog source.
// Every field is populated; sources fill typed defaults for missing data.
type CatalogItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Artisan     Artisan  `json:"artisan"`
	InStock     bool     `json:"inStock"`
	CustomOrder bool     `json:"customOrder"`
	ImageRef    string   `json:"imageRef"`
}

// Scan lets Artisan live in a JSONB column.
func (a *Artisan) Scan(value interface{}) error {
	if value == nil {
		*a = Artisan{}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return errors.New("failed to scan Artisan")
	}
	return json.Unmarshal(bytes, a)
}

func (a Artisan) Value() (driver.Value, error) {
	return json.Marshal(a)
}
