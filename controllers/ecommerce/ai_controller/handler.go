package ai_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/generative"
)

type Generator interface {
	RunRequest(ctx context.Context, r generative.Request) (generative.Result, error)
}

type Handler struct {
	gen     Generator
	timeout time.Duration
	log     *zap.Logger
}

func NewHandler(gen Generator, timeout time.Duration, log *zap.Logger) *Handler {
	return &Handler{gen: gen, timeout: timeout, log: log}
}

type generateRequest struct {
	Description string `json:"description" binding:"required"`
	Count       int    `json:"count" binding:"omitempty,min=1,max=10"`
}

type generateResponse struct {
	Mode                models.GenerationMode  `json:"mode"`
	Ideas               []models.GeneratedIdea `json:"ideas"`
	DescriptionTooShort bool                   `json:"descriptionTooShort"`
}

// GenerateIdeas returns short text ideas for the description.
func (h *Handler) GenerateIdeas(c *gin.Context) {
	h.generate(c, models.GenerationModeIdeas)
}

// GenerateImages returns seed-distinct image URLs for the description.
func (h *Handler) GenerateImages(c *gin.Context) {
	h.generate(c, models.GenerationModeImages)
}

func (h *Handler) generate(c *gin.Context, mode models.GenerationMode) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid generation request", err.Error()))
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.gen.RunRequest(ctx, generative.Request{Description: req.Description, Mode: mode, Count: req.Count})
	if res.ValidationError {
		// Too short to generate from: an empty result, not a failed request.
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Description too short", generateResponse{
			Mode:                mode,
			Ideas:               []models.GeneratedIdea{},
			DescriptionTooShort: true,
		}))
		return
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperr.Wrap(apperr.ErrGenerationUnavailable, "generation timed out", err)
		}
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid generation request", err.Error()))
		case apperr.Retryable(err):
			h.log.Warn("generation unavailable", zap.String("mode", string(mode)), zap.Error(err))
			c.Header("Retry-After", "5")
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Generation service temporarily unavailable"))
		default:
			h.log.Error("generation failed", zap.String("mode", string(mode)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Generation failed"))
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Ideas generated", generateResponse{Mode: mode, Ideas: res.Ideas}))
}
