package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/ai_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/filter_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/product_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/ecommerce/search_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/controllers/health_controller"
	"github.com/Heritage-Craft/artisan-marketplace-backend/middleware"
	"github.com/Heritage-Craft/artisan-marketplace-backend/routes/ecommerce_routes"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/events"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
	"github.com/Heritage-Craft/artisan-marketplace-backend/utils"
)

type routerDeps struct {
	store     *catalog.GormStore
	rdb       *redis.Client
	searcher  search.Searcher
	generator ai_controller.Generator
	sessions  *cache.SessionStore
	publisher events.Publisher
}

func newRouter(cfg *config.AppConfig, logger *zap.Logger, reg *prometheus.Registry, deps routerDeps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
	}

	router := gin.New()
	router.Use(gin.Recovery(), cors.New(corsCfg), middleware.HTTPMetrics(reg), middleware.RequestLogger(logger))

	health := health_controller.NewHandler(
		health_controller.Check{Name: "postgres", Ping: func(ctx context.Context) error { return config.CatalogDB.Ping(ctx) }},
		health_controller.Check{Name: "redis", Ping: func(ctx context.Context) error { return deps.rdb.Ping(ctx).Err() }},
	)
	router.GET("/health", health.Live)
	router.GET("/health/ready", health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	tokens := utils.TokenConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer, Expiry: cfg.Auth.JWTExpiry}

	api := router.Group("/api/v1")
	api.Use(middleware.OptionalAuth(tokens))

	ecommerce_routes.SetupStorefrontRoutes(api,
		product_controller.NewHandler(deps.store, logger),
		filter_controller.NewHandler(deps.store, logger),
	)
	ecommerce_routes.SetupSearchRoutes(api,
		search_controller.NewHandler(deps.searcher, deps.sessions, deps.publisher, logger),
		middleware.RateLimiter(deps.rdb, cfg.RateLimit.SearchRequests, cfg.RateLimit.SearchWindow, logger),
	)
	ecommerce_routes.SetupAIRoutes(api,
		ai_controller.NewHandler(deps.generator, cfg.Search.GenerativeTimeout, logger),
		middleware.RateLimiter(deps.rdb, cfg.RateLimit.AIRequests, cfg.RateLimit.AIWindow, logger),
	)

	return router
}
