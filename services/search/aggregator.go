// Package search runs the combined catalog and inspiration search, applies
// the storefront filters to its catalog half, and tracks per-session state.
package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/catalog"
	"github.com/Heritage-Craft/artisan-marketplace-backend/services/generative"
)

const (
	DefaultCatalogTimeout    = 4 * time.Second
	DefaultGenerativeTimeout = 8 * time.Second
)

// IdeaSource is the generative half of a search.
type IdeaSource interface {
	Run(ctx context.Context, description string) (generative.Result, error)
}

// Searcher runs one combined search.
type Searcher interface {
	Search(ctx context.Context, role models.Role, query models.SearchQuery) (*models.AggregatedResultSet, error)
}

type Options struct {
	CatalogTimeout    time.Duration
	GenerativeTimeout time.Duration
}

// Aggregator fans a query out to the catalog and the generative source and
// joins both outcomes into one result set.
type Aggregator struct {
	catalog catalog.Source
	ideas   IdeaSource
	opts    Options
	logger  *zap.Logger
	metrics *Metrics
}

func NewAggregator(source catalog.Source, ideas IdeaSource, opts Options, logger *zap.Logger, metrics *Metrics) *Aggregator {
	if opts.CatalogTimeout <= 0 {
		opts.CatalogTimeout = DefaultCatalogTimeout
	}
	if opts.GenerativeTimeout <= 0 {
		opts.GenerativeTimeout = DefaultGenerativeTimeout
	}
	return &Aggregator{catalog: source, ideas: ideas, opts: opts, logger: logger, metrics: metrics}
}

// within runs call under its own timeout and returns as soon as the timeout
// fires, even if call ignores its context.
func within[T any](parent context.Context, d time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := call(ctx)
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, apperr.ErrValidation):
		return outcomeValidation
	}
	return outcomeError
}

// Search validates the query and runs both halves concurrently, returning
// once both have settled. A failed or timed out half leaves an empty list and
// an error flag; only validation errors are returned.
func (a *Aggregator) Search(ctx context.Context, role models.Role, query models.SearchQuery) (*models.AggregatedResultSet, error) {
	if role == "" {
		role = models.RoleGuest
	}
	if !role.Valid() {
		return nil, apperr.Validation("unknown acting role %q", role)
	}
	text := query.Trimmed()
	if text == "" {
		return nil, apperr.Validation("search text is required")
	}
	if err := query.Filters.Validate(); err != nil {
		return nil, err
	}
	query.Text = text

	rs := &models.AggregatedResultSet{
		Query:      text,
		ActingRole: role,
		Catalog:    []models.CatalogItem{},
		Generated:  []models.GeneratedIdea{},
	}

	var g errgroup.Group

	g.Go(func() error {
		start := time.Now()
		items, err := within(ctx, a.opts.CatalogTimeout, func(ctx context.Context) ([]models.CatalogItem, error) {
			return a.catalog.Search(ctx, role, query)
		})
		a.metrics.observe(sourceCatalog, outcomeOf(err), time.Since(start))

		if err != nil {
			if !errors.Is(err, apperr.ErrCatalogFetch) {
				err = apperr.Wrap(apperr.ErrCatalogFetch, "catalog search", err)
			}
			a.logger.Warn("catalog half failed", zap.String("query", text), zap.Error(err))
			rs.CatalogError = true
			rs.CatalogFailure = err.Error()
			return nil
		}
		if items != nil {
			rs.Catalog = items
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		res, err := within(ctx, a.opts.GenerativeTimeout, func(ctx context.Context) (generative.Result, error) {
			return a.ideas.Run(ctx, text)
		})
		a.metrics.observe(sourceGenerative, outcomeOf(err), time.Since(start))

		switch {
		case err == nil:
			if res.Ideas != nil {
				rs.Generated = res.Ideas
			}
		case res.ValidationError || errors.Is(err, apperr.ErrValidation):
			rs.GeneratedValidation = true
		default:
			if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, apperr.ErrGenerationUnavailable) {
				err = apperr.Wrap(apperr.ErrGenerationUnavailable, "generation timed out", err)
			}
			if !errors.Is(err, apperr.ErrGenerationUnavailable) && !errors.Is(err, apperr.ErrGenerationFailed) {
				err = apperr.Wrap(apperr.ErrGenerationFailed, "generation", err)
			}
			a.logger.Warn("generative half failed", zap.String("query", text), zap.Error(err))
			rs.GeneratedError = true
			rs.Retryable = apperr.Retryable(err)
			rs.GeneratedFailure = err.Error()
		}
		return nil
	})

	_ = g.Wait()

	state := "complete"
	switch {
	case rs.Degraded():
		state = "degraded"
	case rs.CatalogError || rs.GeneratedError:
		state = "partial"
	}
	a.metrics.searched(state)

	a.logger.Info("combined search finished",
		zap.String("query", text),
		zap.String("role", string(role)),
		zap.Int("catalog", len(rs.Catalog)),
		zap.Int("generated", len(rs.Generated)),
		zap.String("state", state),
	)
	return rs, nil
}
