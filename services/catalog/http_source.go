package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// HTTPSource calls a remote catalog search endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

type searchFilters struct {
	Category     models.Category     `json:"category"`
	PriceRange   [2]float64          `json:"priceRange"`
	Rating       float64             `json:"rating"`
	Availability models.Availability `json:"availability"`
}

type searchRequest struct {
	Query   string        `json:"query"`
	Filters searchFilters `json:"filters"`
	Role    models.Role   `json:"role,omitempty"`
}

type searchResponse struct {
	Products *[]rawProduct `json:"products"`
}

// Search implements Source. A non-2xx status or a body without a products
// array is a fetch error; an empty array is not.
func (s *HTTPSource) Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error) {
	f := query.Filters
	payload, err := json.Marshal(searchRequest{
		Query: query.Trimmed(),
		Filters: searchFilters{
			Category:     f.Category,
			PriceRange:   [2]float64{f.PriceRange.Min, f.PriceRange.Max},
			Rating:       f.RatingThreshold,
			Availability: f.Availability,
		},
		Role: role,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "call catalog", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, fmt.Sprintf("catalog responded %d", res.StatusCode), nil)
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "decode response", err)
	}
	if body.Products == nil {
		return nil, apperr.Wrap(apperr.ErrCatalogFetch, "response has no products field", nil)
	}

	return normalizeAll(*body.Products), nil
}
