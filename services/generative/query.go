package generative

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

const (
	DefaultVariants             = 4
	DefaultMinDescriptionLength = 5
)

// Result is the outcome of one generative query. ValidationError is set when
// the description was rejected before any remote call.
type Result struct {
	Ideas           []models.GeneratedIdea
	ValidationError bool
}

type QueryOptions struct {
	Mode                 models.GenerationMode
	Variants             int
	MinDescriptionLength int
}

// Query validates descriptions and asks the provider for a fixed number of variants.
type Query struct {
	provider  Provider
	mode      models.GenerationMode
	variants  int
	minLength int
	logger    *zap.Logger
}

func NewQuery(provider Provider, opts QueryOptions, logger *zap.Logger) *Query {
	if opts.Mode == "" {
		opts.Mode = models.GenerationModeImages
	}
	if opts.Variants <= 0 {
		opts.Variants = DefaultVariants
	}
	if opts.MinDescriptionLength <= 0 {
		opts.MinDescriptionLength = DefaultMinDescriptionLength
	}
	return &Query{
		provider:  provider,
		mode:      opts.Mode,
		variants:  opts.Variants,
		minLength: opts.MinDescriptionLength,
		logger:    logger,
	}
}

// Run requests the configured number of variants in the configured mode.
func (q *Query) Run(ctx context.Context, description string) (Result, error) {
	return q.RunRequest(ctx, Request{Description: description, Mode: q.mode, Count: q.variants})
}

// RunRequest validates r and calls the provider. Short descriptions never
// reach the provider. The result holds at most r.Count ideas and is never padded.
func (q *Query) RunRequest(ctx context.Context, r Request) (Result, error) {
	r.Description = strings.TrimSpace(r.Description)
	if n := utf8.RuneCountInString(r.Description); n < q.minLength {
		return Result{Ideas: []models.GeneratedIdea{}, ValidationError: true},
			apperr.Validation("description must be at least %d characters, got %d", q.minLength, n)
	}
	if r.Mode == "" {
		r.Mode = q.mode
	}
	if r.Count <= 0 {
		r.Count = q.variants
	}

	ideas, err := q.provider.Generate(ctx, r)
	if err != nil {
		q.logger.Warn("generative provider failed",
			zap.String("mode", string(r.Mode)),
			zap.Bool("retryable", apperr.Retryable(err)),
			zap.Error(err),
		)
		return Result{Ideas: []models.GeneratedIdea{}}, err
	}

	if len(ideas) > r.Count {
		ideas = ideas[:r.Count]
	}
	if ideas == nil {
		ideas = []models.GeneratedIdea{}
	}
	return Result{Ideas: ideas}, nil
}
