package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// HTTPProvider calls a remote generation endpoint that answers with either
// {"ideas": "..."} or {"images": [{"url", "seed", "prompt"}]}. Image
// requests carry one seed per variant, and variants that come back without a
// seed, or with one already used, get a fresh one.
type HTTPProvider struct {
	endpoint string
	client   *http.Client
	seeds    *SeedSource
}

func NewHTTPProvider(endpoint string, client *http.Client, seeds *SeedSource) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if seeds == nil {
		seeds = NewSeedSource()
	}
	return &HTTPProvider{endpoint: endpoint, client: client, seeds: seeds}
}

type generateRequest struct {
	Description string                `json:"description"`
	Mode        models.GenerationMode `json:"mode"`
	Count       int                   `json:"count"`
	Seeds       []int64               `json:"seeds,omitempty"`
}

type generatedImage struct {
	URL    string          `json:"url"`
	Seed   json.RawMessage `json:"seed"`
	Prompt string          `json:"prompt"`
}

type generateResponse struct {
	Ideas  *string          `json:"ideas"`
	Images []generatedImage `json:"images"`
}

// seedString accepts numeric and string seeds.
func seedString(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func (p *HTTPProvider) Generate(ctx context.Context, r Request) ([]models.GeneratedIdea, error) {
	body := generateRequest{Description: r.Description, Mode: r.Mode, Count: r.Count}
	if r.Mode == models.GenerationModeImages {
		body.Seeds = p.seeds.Seeds(r.Count)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrGenerationFailed, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrGenerationFailed, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransport("call provider", err)
	}
	defer res.Body.Close()

	if err := classifyStatus(res.StatusCode); err != nil {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, err
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperr.Wrap(apperr.ErrGenerationFailed, "decode response", err)
	}

	switch {
	case out.Images != nil:
		raw := make([]string, len(out.Images))
		for i, img := range out.Images {
			raw[i] = seedString(img.Seed)
		}
		pool := body.Seeds
		if len(pool) < len(raw) {
			pool = p.seeds.Seeds(len(raw))
		}
		seeds := distinctSeeds(raw, pool)

		ideas := make([]models.GeneratedIdea, 0, len(out.Images))
		for i, img := range out.Images {
			prompt := img.Prompt
			if prompt == "" {
				prompt = r.Description
			}
			ideas = append(ideas, models.GeneratedIdea{
				PromptUsed: prompt,
				ImageURL:   img.URL,
				Seed:       seeds[i],
			})
		}
		return ideas, nil

	case out.Ideas != nil:
		lines := SplitIdeas(*out.Ideas, MaxIdeaLines)
		ideas := make([]models.GeneratedIdea, 0, len(lines))
		for i, line := range lines {
			ideas = append(ideas, models.GeneratedIdea{
				PromptUsed: r.Description,
				TextLine:   line,
				Seed:       ideaSeed(i),
			})
		}
		return ideas, nil
	}

	return nil, apperr.Wrap(apperr.ErrGenerationFailed, "response has neither ideas nor images", nil)
}

// distinctSeeds keeps every non-empty first occurrence in raw and fills the
// remaining slots from pool, skipping values already taken. pool must hold at
// least len(raw) distinct seeds.
func distinctSeeds(raw []string, pool []int64) []string {
	out := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, seed := range raw {
		if seed != "" && !taken[seed] {
			out[i] = seed
			taken[seed] = true
		}
	}

	next := 0
	for i := range out {
		if out[i] != "" {
			continue
		}
		for {
			candidate := strconv.FormatInt(pool[next], 10)
			next++
			if !taken[candidate] {
				out[i] = candidate
				taken[candidate] = true
				break
			}
		}
	}
	return out
}
