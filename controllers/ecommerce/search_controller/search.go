package search_controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/filter_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/middleware"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
)

type searchRequest struct {
	Query    string          `json:"query" binding:"required"`
	Filters  json.RawMessage `json:"filters"`
	SortBy   string          `json:"sortBy"`
	ViewMode string          `json:"viewMode" binding:"omitempty,oneof=grid list"`
}

// Search runs a one-off combined search from a JSON body. Facets missing
// from filters keep their defaults.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid search request", err.Error()))
		return
	}

	filters, err := models.DecodeFilterState(req.Filters)
	if err != nil {
		h.respondError(c, "Invalid filters", err)
		return
	}
	h.run(c, req.Query, filters, req.SortBy, req.ViewMode)
}

// SearchQuery is Search driven by the query string: q, the filter facets,
// sort_by and view.
func (h *Handler) SearchQuery(c *gin.Context) {
	filters, err := filter_controller.ParseFilterQuery(c)
	if err != nil {
		h.respondError(c, "Invalid filters", err)
		return
	}
	h.run(c, c.Query("q"), filters, c.Query("sort_by"), c.Query("view"))
}

func (h *Handler) run(c *gin.Context, text string, filters models.FilterState, sortBy, view string) {
	sort, err := search.ParseSortOption(sortBy)
	if err != nil {
		h.respondError(c, "Invalid sort option", err)
		return
	}
	mode, err := parseViewMode(view)
	if err != nil {
		h.respondError(c, "Invalid view mode", err)
		return
	}
	if err := filters.Validate(); err != nil {
		h.respondError(c, "Invalid filters", err)
		return
	}

	rs, err := h.searcher.Search(c.Request.Context(), middleware.GetActingRole(c), models.SearchQuery{Text: text, Filters: filters})
	if err != nil {
		h.respondError(c, "Invalid search request", err)
		return
	}
	h.publish(rs, filters, "")

	v := search.BuildView(rs, filters, sort, mode)
	c.JSON(http.StatusOK, models.SuccessResponse(c, resultMessage(v), v))
}
