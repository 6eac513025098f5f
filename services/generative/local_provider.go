package generative

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

const maxTextResponse = 64 << 10

// LocalProvider builds image variants without a network call (the browser
// fetches the returned URLs) and asks a text endpoint for ideas.
type LocalProvider struct {
	images      ImageURLBuilder
	seeds       *SeedSource
	textBaseURL string
	textModel   string
	client      *http.Client
}

func NewLocalProvider(images ImageURLBuilder, seeds *SeedSource, textBaseURL, textModel string, client *http.Client) *LocalProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if seeds == nil {
		seeds = NewSeedSource()
	}
	return &LocalProvider{
		images:      images,
		seeds:       seeds,
		textBaseURL: strings.TrimRight(textBaseURL, "/"),
		textModel:   textModel,
		client:      client,
	}
}

func (p *LocalProvider) Generate(ctx context.Context, r Request) ([]models.GeneratedIdea, error) {
	switch r.Mode {
	case models.GenerationModeImages:
		return p.imageVariants(r), nil
	case models.GenerationModeIdeas:
		return p.textIdeas(ctx, r)
	}
	return nil, apperr.Validation("unknown generation mode %q", r.Mode)
}

func (p *LocalProvider) imageVariants(r Request) []models.GeneratedIdea {
	seeds := p.seeds.Seeds(r.Count)
	ideas := make([]models.GeneratedIdea, 0, r.Count)
	for i, seed := range seeds {
		prompt := VariantPrompt(r.Description, i)
		ideas = append(ideas, models.GeneratedIdea{
			PromptUsed: prompt,
			ImageURL:   p.images.Build(prompt, seed),
			Seed:       strconv.FormatInt(seed, 10),
		})
	}
	return ideas
}

func ideasPrompt(description string, count int) string {
	return fmt.Sprintf(
		"Suggest %d distinct handcrafted Indian artisan product ideas inspired by: %s. "+
			"Reply with one short idea per line and nothing else.",
		count, strings.TrimSpace(description),
	)
}

func (p *LocalProvider) textIdeas(ctx context.Context, r Request) ([]models.GeneratedIdea, error) {
	prompt := ideasPrompt(r.Description, r.Count)
	seed := p.seeds.Seeds(1)[0]

	q := url.Values{}
	q.Set("model", p.textModel)
	q.Set("seed", strconv.FormatInt(seed, 10))
	endpoint := p.textBaseURL + "/" + url.PathEscape(prompt) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrGenerationFailed, "build request", err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransport("call text endpoint", err)
	}
	defer res.Body.Close()

	if err := classifyStatus(res.StatusCode); err != nil {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, err
	}

	text, err := io.ReadAll(io.LimitReader(res.Body, maxTextResponse))
	if err != nil {
		return nil, classifyTransport("read text response", err)
	}

	lines := SplitIdeas(string(text), MaxIdeaLines)
	ideas := make([]models.GeneratedIdea, 0, len(lines))
	for i, line := range lines {
		ideas = append(ideas, models.GeneratedIdea{
			PromptUsed: r.Description,
			TextLine:   line,
			Seed:       fmt.Sprintf("%d-%d", seed, i+1),
		})
	}
	return ideas, nil
}
