package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Heritage-Craft/artisan-marketplace-backend/cache"
	"github.com/Heritage-Craft/artisan-marketplace-backend/config"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
	"github.com/Heritage-Craft/artisan-marketplace-backend/utils"
)

// main migrates the products table and loads the sample artisan catalog.
// Usage: go run ./cmd/seed [-index] [-token admin]
// This is a standalone CLI tool, not part of the main application
func main() {
	index := flag.Bool("index", false, "also index the products into Elasticsearch")
	tokenRole := flag.String("token", "", "print a development JWT for this role (guest|buyer|seller|admin)")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("HERITAGE CRAFT - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := config.NewLogger(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := config.InitDB(ctx, cfg.Database, cfg.Env, logger); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDB(logger)
	log.Println("✓ Connected to database")

	if err := config.CatalogGorm.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate products: %v", err)
	}
	log.Println("✓ Products table migrated")

	products, created, err := seedProducts(ctx, config.CatalogGorm, sampleProducts())
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	cache.Invalidate()
	log.Printf("✓ %d products present, %d newly created", len(products), created)

	if *index {
		if err := indexProducts(ctx, cfg, logger, products); err != nil {
			log.Fatalf("Failed to index products: %v", err)
		}
		log.Printf("✓ Indexed %d products into %q", len(products), cfg.Elasticsearch.Index)
	}

	if *tokenRole != "" {
		token, err := devToken(cfg, models.Role(*tokenRole))
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println()
		fmt.Printf("Bearer token (%s):\n%s\n", *tokenRole, token)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Catalog ready")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Next steps:")
	fmt.Println("1. Start the API: go run .")
	fmt.Println("2. Search: POST /api/v1/store/search {\"query\": \"banarasi saree\"}")
}

// seedProducts inserts every product whose name is not taken yet and returns
// the stored rows, existing ones included.
func seedProducts(ctx context.Context, db *gorm.DB, products []models.Product) ([]models.Product, int, error) {
	stored := make([]models.Product, 0, len(products))
	created := 0

	for _, p := range products {
		row := p
		res := db.WithContext(ctx).Where(models.Product{Name: p.Name}).FirstOrCreate(&row)
		if res.Error != nil {
			return nil, 0, fmt.Errorf("seed %q: %w", p.Name, res.Error)
		}
		created += int(res.RowsAffected)
		stored = append(stored, row)
	}
	return stored, created, nil
}

func indexProducts(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, products []models.Product) error {
	es, err := config.NewElasticsearch(cfg.Elasticsearch)
	if err != nil {
		return err
	}
	store := catalog.NewElasticStore(es, cfg.Elasticsearch.Index, cfg.Catalog.MaxResults, logger)
	if err := store.EnsureIndex(ctx); err != nil {
		return err
	}
	for _, p := range products {
		if err := store.IndexProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func devToken(cfg *config.AppConfig, role models.Role) (string, error) {
	tokens := utils.TokenConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer, Expiry: cfg.Auth.JWTExpiry}
	return utils.GenerateJWT(tokens, uuid.Must(uuid.NewV7()), "dev@heritagecraft.local", "Seeder", role)
}
