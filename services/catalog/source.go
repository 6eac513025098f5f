// Package catalog looks up purchasable products for a search. Every source
// normalises its rows into models.CatalogItem and reports failures as
// apperr.ErrCatalogFetch.
package catalog

import (
	"context"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// Source finds catalog items matching the query text. Sources narrow by
// category and availability only; price and rating are left to the caller.
type Source interface {
	Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error)
}
