package product_controller

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
)

type Store interface {
	List(ctx context.Context, role models.Role, params catalog.ListParams) ([]models.StorefrontProductResponse, int, error)
	GetByID(ctx context.Context, role models.Role, id uuid.UUID) (*models.StorefrontProduct, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}
