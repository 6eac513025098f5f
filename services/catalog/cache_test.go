package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Search(ctx context.Context, role models.Role, query models.SearchQuery) ([]models.CatalogItem, error) {
	args := m.Called(ctx, role, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogItem), args.Error(1)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	items := []models.CatalogItem{{ID: "p1", Name: "Dhokra Elephant", Price: 1800}}

	t.Run("second call is served from redis", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		next := new(mockSource)
		query := models.SearchQuery{Text: "dhokra", Filters: models.DefaultFilterState()}
		next.On("Search", mock.Anything, models.RoleGuest, query).Return(items, nil).Once()

		cached := NewCachedSource(next, rdb, time.Minute, zap.NewNop())

		first, err := cached.Search(ctx, models.RoleGuest, query)
		require.NoError(t, err)
		second, err := cached.Search(ctx, models.RoleGuest, query)
		require.NoError(t, err)

		assert.Equal(t, items, first)
		assert.Equal(t, items, second)
		next.AssertExpectations(t)
	})

	t.Run("price and rating changes share an entry", func(t *testing.T) {
		a := models.SearchQuery{Text: "Dhokra", Filters: models.DefaultFilterState()}
		b := a
		b.Text = " dhokra "
		b.Filters.PriceRange.Max = 500
		b.Filters.RatingThreshold = 4

		assert.Equal(t, cacheKey(models.RoleBuyer, a), cacheKey(models.RoleSeller, b))
		assert.NotEqual(t, cacheKey(models.RoleBuyer, a), cacheKey(models.RoleAdmin, a))

		c := a
		c.Filters.Category = models.CategoryHandicrafts
		assert.NotEqual(t, cacheKey(models.RoleBuyer, a), cacheKey(models.RoleBuyer, c))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		next := new(mockSource)
		query := models.SearchQuery{Text: "bidri", Filters: models.DefaultFilterState()}
		fetchErr := apperr.Wrap(apperr.ErrCatalogFetch, "down", errors.New("dial tcp"))
		next.On("Search", mock.Anything, models.RoleGuest, query).Return(nil, fetchErr).Once()

		_, err := NewCachedSource(next, rdb, time.Minute, zap.NewNop()).Search(ctx, models.RoleGuest, query)
		assert.ErrorIs(t, err, apperr.ErrCatalogFetch)
		assert.Empty(t, mr.Keys())
	})

	t.Run("redis outage falls through to the source", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		mr.Close()

		next := new(mockSource)
		query := models.SearchQuery{Text: "madhubani", Filters: models.DefaultFilterState()}
		next.On("Search", mock.Anything, models.RoleGuest, query).Return(items, nil).Once()

		got, err := NewCachedSource(next, rdb, time.Minute, zap.NewNop()).Search(ctx, models.RoleGuest, query)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("entries expire", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		next := new(mockSource)
		query := models.SearchQuery{Text: "phulkari", Filters: models.DefaultFilterState()}
		next.On("Search", mock.Anything, models.RoleGuest, query).Return(items, nil).Twice()

		cached := NewCachedSource(next, rdb, time.Minute, zap.NewNop())
		_, err := cached.Search(ctx, models.RoleGuest, query)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		_, err = cached.Search(ctx, models.RoleGuest, query)
		require.NoError(t, err)
		next.AssertExpectations(t)
	})
}
