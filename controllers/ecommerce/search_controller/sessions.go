package search_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/middleware"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
)

type submitRequest struct {
	Query string `json:"query" binding:"required"`
}

type viewRequest struct {
	ViewMode string `json:"viewMode" binding:"omitempty,oneof=grid list"`
	SortBy   string `json:"sortBy"`
}

type submitResponse struct {
	Applied bool               `json:"applied"`
	Session search.SessionView `json:"session"`
}

func (h *Handler) session(c *gin.Context) (*search.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid session ID"))
		return nil, false
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Search session not found or expired"))
		return nil, false
	}
	return sess, true
}

// CreateSession starts a session with default filters, grid view and
// relevance sort.
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.sessions.Create()
	if errors.Is(err, cache.ErrSessionLimit) {
		h.log.Warn("search session limit reached", zap.Int("sessions", h.sessions.Len()))
		c.Header("Retry-After", "60")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Too many active search sessions, try again later"))
		return
	}
	if err != nil {
		h.respondError(c, "Failed to create search session", err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Search session created", sess.View()))
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Search session fetched", sess.View()))
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid session ID"))
		return
	}
	if !h.sessions.Delete(id) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Search session not found"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Search session deleted", nil))
}

// SubmitSearch runs a search under the session's filters. A response whose
// search was overtaken by a newer submission reports applied=false and the
// session state left by the newer one.
func (h *Handler) SubmitSearch(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid search request", err.Error()))
		return
	}

	sub, err := sess.Submit(c.Request.Context(), h.searcher, middleware.GetActingRole(c), req.Query)
	if err != nil {
		h.respondError(c, "Invalid search request", err)
		return
	}
	h.publish(sub.Result, sub.Filters, sess.ID.String())

	message := "Search superseded by a newer search"
	sv := sess.View()
	if sub.Applied && sv.Result != nil {
		message = resultMessage(*sv.Result)
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, message, submitResponse{Applied: sub.Applied, Session: sv}))
}

// UpdateFilters replaces the session filters and re-derives the view from
// the stored result without searching again. Facets missing from the body
// are reset to their defaults.
func (h *Handler) UpdateFilters(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filters", err.Error()))
		return
	}
	filters, err := models.DecodeFilterState(raw)
	if err != nil {
		h.respondError(c, "Invalid filters", err)
		return
	}
	if err := sess.SetFilters(filters); err != nil {
		h.respondError(c, "Invalid filters", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters updated", sess.View()))
}

// UpdateView changes layout and sort. Empty fields keep their current value.
func (h *Handler) UpdateView(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid view settings", err.Error()))
		return
	}
	if err := sess.SetView(models.ViewMode(req.ViewMode), search.SortOption(req.SortBy)); err != nil {
		h.respondError(c, "Invalid view settings", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "View updated", sess.View()))
}
