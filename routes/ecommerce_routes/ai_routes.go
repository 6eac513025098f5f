package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/ai_controller"
)

// SetupAIRoutes registers the generative proxy routes behind limiter.
func SetupAIRoutes(router *gin.RouterGroup, h *ai_controller.Handler, limiter gin.HandlerFunc) {
	ai := router.Group("/ai")
	ai.Use(limiter)
	{
		ai.POST("/ideas", h.GenerateIdeas)
		ai.POST("/images", h.GenerateImages)
	}
}
