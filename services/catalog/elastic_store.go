package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// ElasticStore searches a products index. Documents use the catalog wire shape.
type ElasticStore struct {
	es     *elasticsearch.Client
	index  string
	size   int
	logger *zap.Logger
}

func NewElasticStore(es *elasticsearch.Client, index string, size int, logger *zap.Logger) *ElasticStore {
	if size <= 0 {
		size = 50
	}
	return &ElasticStore{es: es, index: index, size: size, logger: logger}
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "name":        { "type": "text" },
      "description": { "type": "text" },
      "category":    { "type": "keyword" },
      "location":    { "type": "keyword" },
      "price":       { "type": "double" },
      "rating":      { "type": "double" },
      "inStock":     { "type": "boolean" },
      "customOrder": { "type": "boolean" },
      "status":      { "type": "keyword" },
      "imageRef":    { "type": "keyword", "index": false },
      "artisan": {
        "properties": {
          "name":        { "type": "text" },
          "location":    { "type": "keyword" },
          "rating":      { "type": "double" },
          "reviewCount": { "type": "integer" }
        }
      }
    }
  }
}`

// buildSearchBody mirrors buildSearchConditions for the search engine.
func buildSearchBody(role models.Role, query models.SearchQuery, size int) map[string]any {
	must := []any{}
	filter := []any{}

	if text := query.Trimmed(); text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"name^3", "description", "category^2"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}

	if !role.SeesDrafts() {
		filter = append(filter, map[string]any{"term": map[string]any{"status": models.ProductStatusActive}})
	}
	if c := query.Filters.Category; c != "" && c != models.CategoryAll {
		filter = append(filter, map[string]any{"term": map[string]any{"category": string(c)}})
	}
	switch query.Filters.Availability {
	case models.AvailabilityInStock:
		filter = append(filter, map[string]any{"term": map[string]any{"inStock": true}})
	case models.AvailabilityCustomOrder:
		filter = append(filter, map[string]any{"term": map[string]any{"customOrder": true}})
	}

	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []any{"_score", map[string]any{"rating": "desc"}},
	}
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Source rawProduct `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search implements Source.
func (s *ElasticStore) Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error) {
	body, err := json.Marshal(buildSearchBody(role, query, s.size))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "encode search body", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "elasticsearch search", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "elasticsearch search: "+res.Status(), nil)
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "decode search response", err)
	}

	items := make([]models.CatalogItem, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		item := normalize(hit.Source)
		if item.ID == "" {
			item.ID = hit.ID
		}
		items = append(items, item)
	}
	return items, nil
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (s *ElasticStore) EnsureIndex(ctx context.Context) error {
	exists, err := s.es.Indices.Exists([]string{s.index}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := s.es.Indices.Create(
		s.index,
		s.es.Indices.Create.WithContext(ctx),
		s.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index %s: %s: %s", s.index, res.Status(), msg)
	}

	s.logger.Info("elasticsearch index created", zap.String("index", s.index))
	return nil
}

// IndexProduct writes one product document, keyed by its id.
func (s *ElasticStore) IndexProduct(ctx context.Context, p models.Product) error {
	doc := map[string]any{
		"id":          p.ID.String(),
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"location":    p.Location,
		"price":       p.Price,
		"rating":      p.Rating,
		"inStock":     p.Stock > 0,
		"customOrder": p.CustomOrder,
		"status":      p.Status,
		"imageRef":    p.Media.Primary.URL,
		"artisan":     p.Artisan,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := s.es.Index(
		s.index,
		bytes.NewReader(body),
		s.es.Index.WithContext(ctx),
		s.es.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}
