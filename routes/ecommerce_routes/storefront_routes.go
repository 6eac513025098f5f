package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	store_filter "github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/filter_controller"
	store_product "github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/product_controller"
)

func SetupStorefrontRoutes(router *gin.RouterGroup, products *store_product.Handler, filters *store_filter.Handler) {
	store := router.Group("/store")

	// Product routes
	productRoutes := store.Group("/products")
	{
		productRoutes.GET("", products.GetStorefrontProducts)         // List with filters
		productRoutes.GET("/:id", products.GetStorefrontProductByID) // Single product
	}

	store.GET("/categories", filters.GetCategories)
	store.GET("/filters/metadata", filters.GetFilterMetadata)
}
