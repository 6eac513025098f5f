package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

var ErrProductNotFound = errors.New("product not found")

// GormStore reads the products table. It backs both the search source and
// the paged storefront listing.
type GormStore struct {
	db         *gorm.DB
	maxResults int
	logger     *zap.Logger
}

func NewGormStore(db *gorm.DB, maxResults int, logger *zap.Logger) *GormStore {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &GormStore{db: db, maxResults: maxResults, logger: logger}
}

type productRow struct {
	ID          string         `gorm:"column:id"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Price       float64        `gorm:"column:price"`
	Rating      float64        `gorm:"column:rating"`
	Category    string         `gorm:"column:category"`
	Location    string         `gorm:"column:location"`
	Artisan     models.Artisan `gorm:"column:artisan"`
	Stock       int            `gorm:"column:stock"`
	CustomOrder bool           `gorm:"column:custom_order"`
	Image       string         `gorm:"column:image"`
}

func (r productRow) toCatalogItem() models.CatalogItem {
	location := r.Location
	if location == "" {
		location = r.Artisan.Location
	}
	return models.CatalogItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Rating:      r.Rating,
		Category:    models.Category(r.Category),
		Location:    location,
		Artisan:     r.Artisan,
		InStock:     r.Stock > 0,
		CustomOrder: r.CustomOrder,
		ImageRef:    r.Image,
	}
}

const productColumns = `
		p.id::text AS id,
		p.name,
		p.description,
		p.price::float8 AS price,
		p.rating::float8 AS rating,
		p.category,
		p.location,
		p.artisan,
		p.stock,
		p.custom_order,
		COALESCE(p.media->'primary'->>'url', '') AS image`

// escapeLike neutralises LIKE wildcards typed by the user.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildSearchConditions narrows by text, category and availability. Price and
// rating are deliberately absent: they are applied to the fetched set.
func buildSearchConditions(role models.Role, text string, filters models.FilterState) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if !role.SeesDrafts() {
		conditions = append(conditions, "p.status = 'Active'")
	}

	if text = strings.TrimSpace(text); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		conditions = append(conditions, "(p.name ILIKE ? OR p.description ILIKE ? OR p.category ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	if filters.Category != "" && filters.Category != models.CategoryAll {
		conditions = append(conditions, "p.category = ?")
		args = append(args, string(filters.Category))
	}

	switch filters.Availability {
	case models.AvailabilityInStock:
		conditions = append(conditions, "p.stock > 0")
	case models.AvailabilityCustomOrder:
		conditions = append(conditions, "p.custom_order = TRUE")
	}

	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(conditions, " AND ")
}

// Search implements Source. Rows come back best rated first.
func (s *GormStore) Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error) {
	conditions, args := buildSearchConditions(role, query.Text, query.Filters)

	sql := fmt.Sprintf(`
	SELECT %s
	FROM products p
	WHERE %s
	ORDER BY p.rating DESC, p.views DESC, p.created_at DESC
	LIMIT ?
`, productColumns, whereClause(conditions))

	rows := make([]productRow, 0)
	if err := s.db.WithContext(ctx).Raw(sql, append(args, s.maxResults)...).Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "query products", err)
	}

	items := make([]models.CatalogItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toCatalogItem())
	}
	return items, nil
}

// ListParams drives the paged storefront listing.
type ListParams struct {
	Text      string
	Filters   models.FilterState
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// buildListConditions extends the search conditions with the price and rating
// facets, since a paged listing cannot filter after the fact. The price window
// is inclusive on both ends, so [0,0] lists only free items.
func buildListConditions(role models.Role, params ListParams) ([]string, []interface{}) {
	conditions, args := buildSearchConditions(role, params.Text, params.Filters)

	f := params.Filters
	if f.PriceRange.Min > 0 {
		conditions = append(conditions, "p.price >= ?")
		args = append(args, f.PriceRange.Min)
	}
	conditions = append(conditions, "p.price <= ?")
	args = append(args, f.PriceRange.Max)
	if f.RatingThreshold > 0 {
		conditions = append(conditions, "p.rating >= ?")
		args = append(args, f.RatingThreshold)
	}

	return conditions, args
}

// buildStorefrontOrderClause builds the ORDER BY clause for the listing.
func buildStorefrontOrderClause(sortBy, sortOrder string) string {
	order := "DESC"
	if strings.ToUpper(sortOrder) == "ASC" {
		order = "ASC"
	}

	switch sortBy {
	case "price":
		return fmt.Sprintf("p.price %s, p.id", order)
	case "name":
		return fmt.Sprintf("p.name %s, p.id", order)
	case "rating":
		return fmt.Sprintf("p.rating %s, p.id", order)
	case "popular":
		return fmt.Sprintf("p.views %s, p.id", order)
	case "newest":
		return fmt.Sprintf("p.created_at %s, p.id", order)
	default:
		return "p.created_at DESC, p.id"
	}
}

// List returns one page of thin product rows and the total match count.
func (s *GormStore) List(ctx context.Context, role models.Role, params ListParams) ([]models.StorefrontProductResponse, int, error) {
	conditions, args := buildListConditions(role, params)
	where := whereClause(conditions)
	offset := (params.Page - 1) * params.Limit

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM products p
		WHERE %s
	`, where)

	var totalCount int64
	if err := s.db.WithContext(ctx).Raw(countQuery, args...).Scan(&totalCount).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	dataQuery := fmt.Sprintf(`
	SELECT
		p.id::text AS id,
		p.name,
		p.price::float8 AS price,
		p.rating::float8 AS rating,
		p.category,
		COALESCE(p.artisan->>'name', '') AS artisan_name,
		p.stock > 0 AS in_stock,
		p.custom_order,
		COALESCE(p.media->'primary'->>'url', '') AS image
	FROM products p
	WHERE %s
	ORDER BY %s
	LIMIT ? OFFSET ?
`, where, buildStorefrontOrderClause(params.SortBy, params.SortOrder))

	dataArgs := append(append([]interface{}{}, args...), params.Limit, offset)

	products := make([]models.StorefrontProductResponse, 0)
	if err := s.db.WithContext(ctx).Raw(dataQuery, dataArgs...).Scan(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, int(totalCount), nil
}

// GetByID loads one product. Drafts are visible only to roles that see drafts.
func (s *GormStore) GetByID(ctx context.Context, role models.Role, id uuid.UUID) (*models.StorefrontProduct, error) {
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if !role.SeesDrafts() {
		q = q.Where("status = ?", models.ProductStatusActive)
	}

	var p models.Product
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	product := &models.StorefrontProduct{
		CatalogItem: p.ToCatalogItem(),
		Tags:        p.Tags,
		Media:       p.Media,
		Stock:       p.Stock,
	}
	if role.SeesDrafts() {
		product.Status = p.Status
	}
	return product, nil
}

// IncrementViews bumps the view counter used by the "popular" sort.
func (s *GormStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Exec(`UPDATE products SET views = COALESCE(views, 0) + 1 WHERE id = ?`, id).
		Error
}
