package search_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/events"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
)

const publishTimeout = 5 * time.Second

type Handler struct {
	searcher search.Searcher
	sessions *cache.SessionStore
	events   events.Publisher
	log      *zap.Logger
}

func NewHandler(searcher search.Searcher, sessions *cache.SessionStore, publisher events.Publisher, log *zap.Logger) *Handler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Handler{searcher: searcher, sessions: sessions, events: publisher, log: log}
}

// respondError maps validation failures to 400 and everything else to 500.
func (h *Handler) respondError(c *gin.Context, message string, err error) {
	if errors.Is(err, apperr.ErrValidation) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, message, err.Error()))
		return
	}
	h.log.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, message))
}

// publish sends the search event without holding up the response.
func (h *Handler) publish(rs *models.AggregatedResultSet, filters models.FilterState, sessionID string) {
	evt := events.NewSearchEvent(rs, filters, sessionID, time.Now())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.events.PublishSearch(ctx, evt); err != nil {
			h.log.Warn("publish search event", zap.String("query", evt.Query), zap.Error(err))
		}
	}()
}

func resultMessage(v search.View) string {
	switch {
	case v.CatalogError && v.GeneratedError:
		return "Search temporarily unavailable"
	case v.CatalogError || v.GeneratedError:
		return "Search partially completed"
	}
	return "Search completed"
}

func parseViewMode(s string) (models.ViewMode, error) {
	switch mode := models.ViewMode(s); mode {
	case "":
		return models.ViewModeGrid, nil
	case models.ViewModeGrid, models.ViewModeList:
		return mode, nil
	}
	return "", apperr.Validation("unknown view mode %q", s)
}
