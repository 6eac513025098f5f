package generative

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

func fixedSeeds() *SeedSource {
	return NewFixedSeedSource(func() time.Time { return time.UnixMilli(1_000) }, 10, 0)
}

func TestLocalProvider_Images(t *testing.T) {
	p := NewLocalProvider(testBuilder(), fixedSeeds(), "http://unused.invalid", "openai", nil)

	ideas, err := p.Generate(context.Background(), Request{Description: "Pichwai painting", Mode: models.GenerationModeImages, Count: 4})
	require.NoError(t, err)
	require.Len(t, ideas, 4)

	assert.Equal(t, []string{"1000", "1010", "1020", "1030"},
		[]string{ideas[0].Seed, ideas[1].Seed, ideas[2].Seed, ideas[3].Seed})
	assert.Equal(t, testBuilder().Build(VariantPrompt("Pichwai painting", 2), 1020), ideas[2].ImageURL)
	assert.Empty(t, ideas[0].TextLine)
}

func TestLocalProvider_Ideas(t *testing.T) {
	ctx := context.Background()

	t.Run("splits the text endpoint response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.URL.Path, "/Suggest 3 distinct"))
			assert.Equal(t, "openai", r.URL.Query().Get("model"))
			assert.Equal(t, "1000", r.URL.Query().Get("seed"))
			w.Write([]byte("1. Ikat cushion covers\n2. Ikat table runner\n3. Ikat laptop sleeve\n"))
		}))
		defer srv.Close()

		p := NewLocalProvider(testBuilder(), fixedSeeds(), srv.URL+"/", "openai", srv.Client())
		ideas, err := p.Generate(ctx, Request{Description: "ikat weaves", Mode: models.GenerationModeIdeas, Count: 3})
		require.NoError(t, err)
		require.Len(t, ideas, 3)
		assert.Equal(t, "Ikat cushion covers", ideas[0].TextLine)
		assert.Equal(t, "1000-3", ideas[2].Seed)
		assert.Equal(t, "ikat weaves", ideas[1].PromptUsed)
	})

	t.Run("service unavailable is retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p := NewLocalProvider(testBuilder(), fixedSeeds(), srv.URL, "openai", srv.Client())
		_, err := p.Generate(ctx, Request{Description: "ikat weaves", Mode: models.GenerationModeIdeas, Count: 3})
		assert.ErrorIs(t, err, apperr.ErrGenerationUnavailable)
	})

	t.Run("unknown mode is a validation error", func(t *testing.T) {
		p := NewLocalProvider(testBuilder(), fixedSeeds(), "http://unused.invalid", "openai", nil)
		_, err := p.Generate(ctx, Request{Description: "ikat weaves", Mode: "video", Count: 3})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}
