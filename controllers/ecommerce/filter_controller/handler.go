package filter_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

type MetadataStore interface {
	FilterMetadata(ctx context.Context) (models.FilterMetadata, error)
}

type Handler struct {
	store MetadataStore
	log   *zap.Logger
}

func NewHandler(store MetadataStore, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// GetFilterMetadata returns availability counts, categories and the price
// range for the storefront filter panel.
func (h *Handler) GetFilterMetadata(c *gin.Context) {
	metadata, err := h.metadata(c)
	if err != nil {
		h.log.Error("filter metadata", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}

// GetCategories returns the category facet with product counts.
func (h *Handler) GetCategories(c *gin.Context) {
	metadata, err := h.metadata(c)
	if err != nil {
		h.log.Error("categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched", metadata.Categories))
}

func (h *Handler) metadata(c *gin.Context) (models.FilterMetadata, error) {
	if cached, ok := cache.GetFilterMetadata(); ok {
		return cached, nil
	}

	ctx, cancel := config.WithCustomTimeout(c.Request.Context(), config.DefaultQueryTimeout)
	defer cancel()

	metadata, err := h.store.FilterMetadata(ctx)
	if err != nil {
		return models.FilterMetadata{}, err
	}
	cache.SetFilterMetadata(metadata)
	return metadata, nil
}
