package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/events"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/generative"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/search"
)

const sessionPurgeInterval = time.Minute

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.InitDB(ctx, cfg.Database, cfg.Env, logger); err != nil {
		return err
	}
	defer config.CloseDB(logger)

	rdb, err := config.ConnectRedis(ctx, cfg.Redis.URL, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, every request acts as guest")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := catalog.NewGormStore(config.CatalogGorm, cfg.Catalog.MaxResults, logger)
	source, err := newCatalogSource(cfg, store, rdb, logger)
	if err != nil {
		return err
	}

	query := generative.NewQuery(newProvider(cfg), generative.QueryOptions{
		Mode:                 models.GenerationMode(cfg.Generative.Mode),
		Variants:             cfg.Generative.Variants,
		MinDescriptionLength: cfg.Generative.MinDescriptionLength,
	}, logger)

	aggregator := search.NewAggregator(source, query, search.Options{
		CatalogTimeout:    cfg.Search.CatalogTimeout,
		GenerativeTimeout: cfg.Search.GenerativeTimeout,
	}, logger, search.NewMetrics(reg))

	sessions := cache.NewSessionStore(cfg.Search.SessionTTL, cfg.Search.MaxSessions)
	go sessions.Run(ctx, sessionPurgeInterval, logger)

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", zap.Error(err))
		}
	}()

	router := newRouter(cfg, logger, reg, routerDeps{
		store:     store,
		rdb:       rdb,
		searcher:  aggregator,
		generator: query,
		sessions:  sessions,
		publisher: publisher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCatalogSource picks the configured backend and puts the Redis cache in
// front of it when enabled.
func newCatalogSource(cfg *config.AppConfig, store *catalog.GormStore, rdb *redis.Client, logger *zap.Logger) (catalog.Source, error) {
	var source catalog.Source
	switch cfg.Catalog.Backend {
	case "", "postgres":
		source = store
	case "elasticsearch":
		es, err := config.NewElasticsearch(cfg.Elasticsearch)
		if err != nil {
			return nil, err
		}
		source = catalog.NewElasticStore(es, cfg.Elasticsearch.Index, cfg.Catalog.MaxResults, logger)
	case "http":
		if cfg.Catalog.URL == "" {
			return nil, errors.New("catalog.url is required for the http backend")
		}
		source = catalog.NewHTTPSource(cfg.Catalog.URL, &http.Client{Timeout: cfg.Search.CatalogTimeout})
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
	logger.Info("catalog backend selected", zap.String("backend", cfg.Catalog.Backend), zap.Bool("cache", cfg.Catalog.Cache))

	if cfg.Catalog.Cache {
		source = catalog.NewCachedSource(source, rdb, cfg.Redis.CacheTTL, logger)
	}
	return source, nil
}

func newProvider(cfg *config.AppConfig) generative.Provider {
	client := &http.Client{Timeout: cfg.Search.GenerativeTimeout}
	seeds := generative.NewSeedSource()
	if cfg.Generative.Provider == "http" && cfg.Generative.Endpoint != "" {
		return generative.NewHTTPProvider(cfg.Generative.Endpoint, client, seeds)
	}

	images := generative.ImageURLBuilder{
		BaseURL: cfg.Generative.ImageBaseURL,
		Width:   cfg.Generative.Width,
		Height:  cfg.Generative.Height,
		Model:   cfg.Generative.Model,
	}
	return generative.NewLocalProvider(images, seeds, cfg.Generative.TextBaseURL, cfg.Generative.TextModel, client)
}
