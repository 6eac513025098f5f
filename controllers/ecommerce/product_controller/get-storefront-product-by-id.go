package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/middleware"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
)

// GetStorefrontProductByID returns full product details and counts the view.
func (h *Handler) GetStorefrontProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithCustomTimeout(c.Request.Context(), config.DefaultQueryTimeout)
	defer cancel()

	product, err := h.store.GetByID(ctx, middleware.GetActingRole(c), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		h.log.Error("get storefront product", zap.Stringer("id", productID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	// the request context is gone once the response is written
	go func() {
		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := h.store.IncrementViews(ctx, productID); err != nil {
			h.log.Warn("increment product views", zap.Stringer("id", productID), zap.Error(err))
		}
	}()

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched", product))
}
