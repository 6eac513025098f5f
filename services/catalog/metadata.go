package catalog

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// FilterMetadata gathers availability counts, per-category product counts and
// the price range of published products. The three queries run concurrently.
func (s *GormStore) FilterMetadata(ctx context.Context) (models.FilterMetadata, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		metadata models.FilterMetadata
		errs     []error
	)

	run := func(fetch func(context.Context, *gorm.DB) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(ctx, s.db); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func(ctx context.Context, db *gorm.DB) error {
		availability, err := availabilityCounts(ctx, db)
		mu.Lock()
		metadata.Availability = availability
		mu.Unlock()
		return err
	})
	run(func(ctx context.Context, db *gorm.DB) error {
		categories, err := categoryCounts(ctx, db)
		mu.Lock()
		metadata.Categories = categories
		mu.Unlock()
		return err
	})
	run(func(ctx context.Context, db *gorm.DB) error {
		priceRange, err := priceRange(ctx, db)
		mu.Lock()
		metadata.PriceRange = priceRange
		mu.Unlock()
		return err
	})

	wg.Wait()

	if len(errs) > 0 {
		return models.FilterMetadata{}, errors.Join(errs...)
	}
	return metadata, nil
}

func availabilityCounts(ctx context.Context, db *gorm.DB) (*models.AvailabilityData, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE p.stock > 0)::int AS in_stock,
			COUNT(*) FILTER (WHERE p.custom_order)::int AS custom_order,
			COUNT(*) FILTER (WHERE p.stock <= 0 AND NOT p.custom_order)::int AS out_of_stock
		FROM products p
		WHERE p.status = ?
	`

	var data models.AvailabilityData
	if err := db.WithContext(ctx).Raw(query, models.ProductStatusActive).Scan(&data).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

// categoryCounts lists every known category, including empty ones, in
// display order.
func categoryCounts(ctx context.Context, db *gorm.DB) ([]models.CategoryData, error) {
	query := `
		SELECT p.category, COUNT(*)::int AS product_count
		FROM products p
		WHERE p.status = ?
		GROUP BY p.category
	`

	var rows []struct {
		Category     string `gorm:"column:category"`
		ProductCount int    `gorm:"column:product_count"`
	}
	if err := db.WithContext(ctx).Raw(query, models.ProductStatusActive).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.Category]int, len(rows))
	for _, r := range rows {
		counts[models.Category(r.Category)] = r.ProductCount
	}
	return categoryData(counts), nil
}

func categoryData(counts map[models.Category]int) []models.CategoryData {
	out := make([]models.CategoryData, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		if c == models.CategoryAll {
			continue
		}
		out = append(out, models.CategoryData{ID: string(c), Name: c.Label(), ProductCount: counts[c]})
	}
	return out
}

func priceRange(ctx context.Context, db *gorm.DB) (*models.PriceRangeData, error) {
	query := `
		SELECT
			COALESCE(MIN(price), 0)::float8 AS min,
			COALESCE(MAX(price), ?)::float8 AS max
		FROM products
		WHERE status = ?
			AND price > 0
	`

	var data models.PriceRangeData
	if err := db.WithContext(ctx).Raw(query, models.DefaultMaxPrice, models.ProductStatusActive).Scan(&data).Error; err != nil {
		return nil, err
	}
	return &data, nil
}
