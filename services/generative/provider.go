// Package generative produces AI inspiration variants (images or text ideas)
// for a free-text description.
package generative

import (
	"context"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// Request asks a provider for Count variants of Description.
type Request struct {
	Description string
	Mode        models.GenerationMode
	Count       int
}

// Provider returns at most Count ideas in provider order. Failures wrap
// apperr.ErrGenerationFailed or apperr.ErrGenerationUnavailable.
type Provider interface {
	Generate(ctx context.Context, req Request) ([]models.GeneratedIdea, error)
}
