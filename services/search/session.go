package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// Session is one shopper's search state: filters, sort, view mode and the
// latest result set. Each submission takes a new generation number, and a
// result is kept only if no newer submission started while it ran.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	generation uint64
	filters    models.FilterState
	sortBy     SortOption
	viewMode   models.ViewMode
	current    *models.AggregatedResultSet
	updatedAt  time.Time
}

func NewSession(id uuid.UUID) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		filters:   models.DefaultFilterState(),
		sortBy:    SortRelevance,
		viewMode:  models.ViewModeGrid,
		updatedAt: now,
	}
}

// Submission is the outcome of one Submit.
type Submission struct {
	Result *models.AggregatedResultSet
	// Filters is the filter state the search ran with, which later
	// SetFilters calls do not change.
	Filters models.FilterState
	// Applied is false when a newer Submit began before this one finished.
	Applied bool
}

// Submit runs text through searcher with the session filters. The result
// becomes the session's current result only if no newer Submit started
// while it ran.
func (s *Session) Submit(ctx context.Context, searcher Searcher, role models.Role, text string) (Submission, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	query := models.SearchQuery{Text: text, Filters: s.filters}
	s.updatedAt = time.Now()
	s.mu.Unlock()

	rs, err := searcher.Search(ctx, role, query)
	if err != nil {
		return Submission{Filters: query.Filters}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub := Submission{Result: rs, Filters: query.Filters}
	if gen != s.generation {
		return sub, nil
	}
	s.current = rs
	s.updatedAt = time.Now()
	sub.Applied = true
	return sub, nil
}

// SetFilters replaces the filter state. The stored result is not refetched.
func (s *Session) SetFilters(f models.FilterState) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.updatedAt = time.Now()
	return nil
}

// SetView changes layout and sort. Empty values leave the setting unchanged.
func (s *Session) SetView(mode models.ViewMode, sortBy SortOption) error {
	if mode != "" && mode != models.ViewModeGrid && mode != models.ViewModeList {
		return apperr.Validation("unknown view mode %q", mode)
	}
	if sortBy != "" {
		if _, err := ParseSortOption(string(sortBy)); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != "" {
		s.viewMode = mode
	}
	if sortBy != "" {
		s.sortBy = sortBy
	}
	s.updatedAt = time.Now()
	return nil
}

func (s *Session) Filters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) Current() *models.AggregatedResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Touch marks the session as active without changing its state.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SessionView is the session's state as returned to the storefront.
type SessionView struct {
	ID         uuid.UUID          `json:"id"`
	Generation uint64             `json:"generation"`
	Filters    models.FilterState `json:"filters"`
	SortBy     SortOption         `json:"sortBy"`
	ViewMode   models.ViewMode    `json:"viewMode"`
	Result     *View              `json:"result"`
}

// View derives the display state from the current result. Result is nil
// until a search has completed.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv := SessionView{
		ID:         s.ID,
		Generation: s.generation,
		Filters:    s.filters,
		SortBy:     s.sortBy,
		ViewMode:   s.viewMode,
	}
	if s.current != nil {
		v := BuildView(s.current, s.filters, s.sortBy, s.viewMode)
		sv.Result = &v
	}
	return sv
}
