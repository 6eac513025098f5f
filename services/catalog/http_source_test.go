package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

func TestHTTPSource_Search(t *testing.T) {
	query := models.SearchQuery{Text: " banarasi saree ", Filters: models.DefaultFilterState()}

	t.Run("sends the contract and normalises products", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "banarasi saree", req["query"])
			filters := req["filters"].(map[string]any)
			assert.Equal(t, "all", filters["category"])
			assert.Equal(t, []any{0.0, 10000.0}, filters["priceRange"])
			assert.Equal(t, 0.0, filters["rating"])
			assert.Equal(t, "all", filters["availability"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"products":[
				{"id":"1","name":"Katan Silk","price":2000},
				{"id":"2","name":"Kadhua Brocade","price":12000,"rating":4.9},
				{"id":"3","name":"Organza","price":4999}
			]}`))
		}))
		defer srv.Close()

		items, err := NewHTTPSource(srv.URL, srv.Client()).Search(context.Background(), models.RoleBuyer, query)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []float64{2000, 12000, 4999}, []float64{items[0].Price, items[1].Price, items[2].Price})
		assert.Zero(t, items[0].Rating)
	})

	t.Run("empty products is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"products":[]}`))
		}))
		defer srv.Close()

		items, err := NewHTTPSource(srv.URL, srv.Client()).Search(context.Background(), models.RoleGuest, query)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	failures := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"products":[`)) }},
		{"missing products", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"items":[]}`)) }},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPSource(srv.URL, srv.Client()).Search(context.Background(), models.RoleGuest, query)
			assert.ErrorIs(t, err, apperr.ErrCatalogFetch)
		})
	}

	t.Run("context deadline is a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := NewHTTPSource(srv.URL, srv.Client()).Search(ctx, models.RoleGuest, query)
		assert.ErrorIs(t, err, apperr.ErrCatalogFetch)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
