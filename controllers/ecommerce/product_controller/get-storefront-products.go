package product_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/filter_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/middleware"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
)

// GetStorefrontProducts returns one page of products matching the text search
// and filter facets in the query string.
//
// Query: search, category, min_price, max_price, rating, availability,
// sort_by (price|name|rating|popular|newest), sort_order (asc|desc), page, limit.
func (h *Handler) GetStorefrontProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	filters, err := filter_controller.ParseFilterQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filters", err.Error()))
		return
	}

	params := catalog.ListParams{
		Text:      strings.TrimSpace(c.Query("search")),
		Filters:   filters,
		SortBy:    c.DefaultQuery("sort_by", "newest"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
		Page:      page,
		Limit:     limit,
	}

	ctx, cancel := config.WithCustomTimeout(c.Request.Context(), config.DefaultQueryTimeout)
	defer cancel()

	products, total, err := h.store.List(ctx, middleware.GetActingRole(c), params)
	if err != nil {
		h.log.Error("list storefront products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched", products, models.NewPagination(page, limit, total)))
}
