package generative

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

func TestHTTPProvider_Generate(t *testing.T) {
	ctx := context.Background()
	req := Request{Description: "Warli art wall hanging", Mode: models.GenerationModeImages, Count: 4}

	t.Run("images keep provider order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Warli art wall hanging", body["description"])
			assert.Equal(t, "images", body["mode"])
			assert.Equal(t, 4.0, body["count"])
			assert.Len(t, body["seeds"], 4)

			w.Write([]byte(`{"images":[
				{"url":"https://img/b","seed":202,"prompt":"warli b"},
				{"url":"https://img/a","seed":"101"},
				{"url":"https://img/c","seed":303,"prompt":"warli c"}
			]}`))
		}))
		defer srv.Close()

		ideas, err := NewHTTPProvider(srv.URL, srv.Client(), nil).Generate(ctx, req)
		require.NoError(t, err)
		require.Len(t, ideas, 3)
		assert.Equal(t, models.GeneratedIdea{PromptUsed: "warli b", ImageURL: "https://img/b", Seed: "202"}, ideas[0])
		assert.Equal(t, models.GeneratedIdea{PromptUsed: "Warli art wall hanging", ImageURL: "https://img/a", Seed: "101"}, ideas[1])
		assert.Equal(t, "303", ideas[2].Seed)
	})

	t.Run("images without seeds get the requested ones", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"images":[{"url":"a"},{"url":"b"},{"url":"c"},{"url":"d"}]}`))
		}))
		defer srv.Close()

		ideas, err := NewHTTPProvider(srv.URL, srv.Client(), fixedSeeds()).Generate(ctx, req)
		require.NoError(t, err)
		require.Len(t, ideas, 4)
		assert.Equal(t, []string{"1000", "1010", "1020", "1030"},
			[]string{ideas[0].Seed, ideas[1].Seed, ideas[2].Seed, ideas[3].Seed})
	})

	t.Run("repeated seeds are replaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"images":[
				{"url":"a","seed":1010},
				{"url":"b","seed":1010},
				{"url":"c","seed":""},
				{"url":"d","seed":7}
			]}`))
		}))
		defer srv.Close()

		ideas, err := NewHTTPProvider(srv.URL, srv.Client(), fixedSeeds()).Generate(ctx, req)
		require.NoError(t, err)
		require.Len(t, ideas, 4)
		assert.Equal(t, []string{"1010", "1000", "1020", "7"},
			[]string{ideas[0].Seed, ideas[1].Seed, ideas[2].Seed, ideas[3].Seed})
	})

	t.Run("ideas text is split", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ideas":"1. Warli coasters\n2. Warli lampshade\n\n- Warli tote"}`))
		}))
		defer srv.Close()

		ideas, err := NewHTTPProvider(srv.URL, srv.Client(), nil).Generate(ctx, Request{Description: "warli", Mode: models.GenerationModeIdeas, Count: 4})
		require.NoError(t, err)
		require.Len(t, ideas, 3)
		assert.Equal(t, "Warli coasters", ideas[0].TextLine)
		assert.Equal(t, "Warli tote", ideas[2].TextLine)
		assert.Equal(t, []string{"idea-1", "idea-2", "idea-3"}, []string{ideas[0].Seed, ideas[1].Seed, ideas[2].Seed})
	})

	statuses := []struct {
		code int
		kind error
	}{
		{http.StatusBadGateway, apperr.ErrGenerationUnavailable},
		{http.StatusServiceUnavailable, apperr.ErrGenerationUnavailable},
		{http.StatusGatewayTimeout, apperr.ErrGenerationUnavailable},
		{http.StatusTooManyRequests, apperr.ErrGenerationUnavailable},
		{http.StatusInternalServerError, apperr.ErrGenerationFailed},
		{http.StatusBadRequest, apperr.ErrGenerationFailed},
	}
	for _, tt := range statuses {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := NewHTTPProvider(srv.URL, srv.Client(), nil).Generate(ctx, req)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	t.Run("body without ideas or images fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"ok"}`))
		}))
		defer srv.Close()

		_, err := NewHTTPProvider(srv.URL, srv.Client(), nil).Generate(ctx, req)
		assert.ErrorIs(t, err, apperr.ErrGenerationFailed)
	})

	t.Run("timeout is transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := NewHTTPProvider(srv.URL, srv.Client(), nil).Generate(tctx, req)
		assert.ErrorIs(t, err, apperr.ErrGenerationUnavailable)
	})

	t.Run("connection refused fails", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPProvider(url, nil, nil).Generate(ctx, req)
		assert.ErrorIs(t, err, apperr.ErrGenerationFailed)
	})
}
