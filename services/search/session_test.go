package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// gatedSearcher blocks each search until the gate for its text is closed.
type gatedSearcher struct {
	gates map[string]chan struct{}
	calls atomic.Int32
}

func (g *gatedSearcher) Search(_ context.Context, role models.Role, q models.SearchQuery) (*models.AggregatedResultSet, error) {
	g.calls.Add(1)
	if gate, ok := g.gates[q.Text]; ok {
		<-gate
	}
	return &models.AggregatedResultSet{
		Query:      q.Text,
		ActingRole: role,
		Catalog:    sampleCatalog(),
		Generated:  fourIdeas(),
	}, nil
}

type submitOutcome struct {
	sub Submission
	err error
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	searcher := &gatedSearcher{gates: map[string]chan struct{}{
		"old query": make(chan struct{}),
		"new query": make(chan struct{}),
	}}
	s := NewSession(uuid.New())

	first := make(chan submitOutcome, 1)
	go func() {
		sub, err := s.Submit(context.Background(), searcher, models.RoleGuest, "old query")
		first <- submitOutcome{sub, err}
	}()
	require.Eventually(t, func() bool { return s.Generation() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan submitOutcome, 1)
	go func() {
		sub, err := s.Submit(context.Background(), searcher, models.RoleGuest, "new query")
		second <- submitOutcome{sub, err}
	}()
	require.Eventually(t, func() bool { return s.Generation() == 2 }, time.Second, 5*time.Millisecond)

	close(searcher.gates["new query"])
	got := <-second
	require.NoError(t, got.err)
	assert.True(t, got.sub.Applied)

	close(searcher.gates["old query"])
	got = <-first
	require.NoError(t, got.err)
	assert.False(t, got.sub.Applied)
	assert.Equal(t, "old query", got.sub.Result.Query)

	require.NotNil(t, s.Current())
	assert.Equal(t, "new query", s.Current().Query)
}

func TestSession_SubmitReportsFiltersItRanWith(t *testing.T) {
	searcher := &gatedSearcher{gates: map[string]chan struct{}{"saree": make(chan struct{})}}
	s := NewSession(uuid.New())

	done := make(chan submitOutcome, 1)
	go func() {
		sub, err := s.Submit(context.Background(), searcher, models.RoleGuest, "saree")
		done <- submitOutcome{sub, err}
	}()
	require.Eventually(t, func() bool { return searcher.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	jewelry := models.DefaultFilterState()
	jewelry.Category = models.CategoryJewelry
	require.NoError(t, s.SetFilters(jewelry))
	close(searcher.gates["saree"])

	got := <-done
	require.NoError(t, got.err)
	assert.True(t, got.sub.Applied)
	assert.Equal(t, models.DefaultFilterState(), got.sub.Filters)
	assert.Equal(t, jewelry, s.Filters())
}

func TestSession_ConcurrentSubmitsKeepLatest(t *testing.T) {
	searcher := &gatedSearcher{}
	s := NewSession(uuid.New())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(context.Background(), searcher, models.RoleBuyer, "pattachitra")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(20), s.Generation())
	assert.NotNil(t, s.Current())
}

func TestSession_SubmitValidationError(t *testing.T) {
	s := NewSession(uuid.New())
	agg, _ := newTestAggregator(staticCatalog(nil, nil), staticIdeas(nil, nil), Options{})

	sub, err := s.Submit(context.Background(), agg, models.RoleGuest, "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Nil(t, sub.Result)
	assert.False(t, sub.Applied)
	assert.Nil(t, s.Current())
}

func TestSession_SetFiltersRederivesWithoutSearching(t *testing.T) {
	searcher := &gatedSearcher{}
	s := NewSession(uuid.New())

	sub, err := s.Submit(context.Background(), searcher, models.RoleGuest, "saree")
	require.NoError(t, err)
	require.True(t, sub.Applied)

	before := s.View()
	require.NotNil(t, before.Result)
	assert.Len(t, before.Result.Catalog, 5)

	f := models.DefaultFilterState()
	f.Category = models.CategorySarees
	require.NoError(t, s.SetFilters(f))

	after := s.View()
	require.NotNil(t, after.Result)
	assert.Equal(t, []string{"1"}, ids(after.Result.Catalog))
	assert.Len(t, after.Result.Generated, 4)
	assert.Equal(t, int32(1), searcher.calls.Load())
}

func TestSession_SetFiltersRejectsInvalid(t *testing.T) {
	s := NewSession(uuid.New())

	bad := models.DefaultFilterState()
	bad.PriceRange = models.PriceRange{Min: 500, Max: 100}

	assert.ErrorIs(t, s.SetFilters(bad), apperr.ErrValidation)
	assert.Equal(t, models.DefaultFilterState(), s.Filters())
}

func TestSession_SetView(t *testing.T) {
	s := NewSession(uuid.New())

	require.NoError(t, s.SetView(models.ViewModeList, SortPriceAsc))
	v := s.View()
	assert.Equal(t, models.ViewModeList, v.ViewMode)
	assert.Equal(t, SortPriceAsc, v.SortBy)
	assert.Nil(t, v.Result)

	require.NoError(t, s.SetView("", ""))
	v = s.View()
	assert.Equal(t, models.ViewModeList, v.ViewMode)
	assert.Equal(t, SortPriceAsc, v.SortBy)

	assert.ErrorIs(t, s.SetView("carousel", ""), apperr.ErrValidation)
	assert.ErrorIs(t, s.SetView("", "cheapest"), apperr.ErrValidation)
	assert.Equal(t, models.ViewModeList, s.View().ViewMode)
}

func TestSession_ViewAppliesSort(t *testing.T) {
	s := NewSession(uuid.New())
	_, err := s.Submit(context.Background(), &gatedSearcher{}, models.RoleGuest, "gifts")
	require.NoError(t, err)

	require.NoError(t, s.SetView("", SortPriceDesc))

	v := s.View()
	require.NotNil(t, v.Result)
	assert.Equal(t, []string{"2", "5", "1", "3", "6"}, ids(v.Result.Catalog))
	assert.Equal(t, 1, v.Result.Hidden)
	assert.Equal(t, s.ID, v.ID)
}
