package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/search_controller"
)

// SetupSearchRoutes registers one-off combined search and search sessions.
// Every route that runs a search or creates a session sits behind limiter;
// filter and view updates never reach a source and stay unlimited.
func SetupSearchRoutes(router *gin.RouterGroup, h *search_controller.Handler, limiter gin.HandlerFunc) {
	store := router.Group("/store")

	store.POST("/search", limiter, h.Search)
	store.GET("/search", limiter, h.SearchQuery)

	sessions := store.Group("/sessions")
	{
		sessions.POST("", limiter, h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/search", limiter, h.SubmitSearch)
		sessions.PUT("/:id/filters", h.UpdateFilters)
		sessions.PUT("/:id/view", h.UpdateView)
	}
}
