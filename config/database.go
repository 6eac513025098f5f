package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	CatalogDB   *pgxpool.Pool
	CatalogGorm *gorm.DB
)

// InitDB opens the catalog pool and layers GORM on top of it, so raw pgx
// calls (health checks) and GORM queries share one set of connections.
func InitDB(ctx context.Context, cfg DatabaseConfig, env string, log *zap.Logger) error {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connect catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("catalog database ping failed: %w", err)
	}
	log.Info("catalog database connected (pgx)")

	gormLogger := logger.Default.LogMode(logger.Info)
	if env == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		pool.Close()
		return fmt.Errorf("open gorm: %w", err)
	}
	log.Info("catalog database connected (GORM)")

	CatalogDB = pool
	CatalogGorm = db
	return nil
}

func CloseDB(log *zap.Logger) {
	if CatalogGorm != nil {
		if sqlDB, _ := CatalogGorm.DB(); sqlDB != nil {
			sqlDB.Close()
			log.Info("catalog database connection closed (GORM)")
		}
	}
	if CatalogDB != nil {
		CatalogDB.Close()
		log.Info("catalog database connection closed (pgx)")
	}
}

// DefaultQueryTimeout bounds storefront queries (bumped from 5s for Neon cold starts).
const DefaultQueryTimeout = 10 * time.Second

// WithTimeout returns a background context bounded by DefaultQueryTimeout.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultQueryTimeout)
}

// WithCustomTimeout derives a bounded context from parent.
func WithCustomTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, duration)
}
