package models

import "strings"

// SearchQuery is one search submission. It is not modified while the search runs.
type SearchQuery struct {
	Text    string      `json:"query"`
	Filters FilterState `json:"filters"`
}

// Trimmed returns the query text without surrounding whitespace.
func (q SearchQuery) Trimmed() string {
	return strings.TrimSpace(q.Text)
}

// GenerationMode selects what the generative source produces.
type GenerationMode string

const (
	GenerationModeImages GenerationMode = "images"
	GenerationModeIdeas  GenerationMode = "ideas"
)

// GeneratedIdea is an AI-synthesized suggestion. It has no price and cannot be purchased.
// Exactly one of ImageURL and TextLine is set.
type GeneratedIdea struct {
	PromptUsed string `json:"promptUsed"`
	ImageURL   string `json:"imageUrl,omitempty"`
	TextLine   string `json:"textLine,omitempty"`
	Seed       string `json:"seed"`
}

// ResultKind tags a ResultEntry with its provenance.
type ResultKind string

const (
	ResultKindCatalog   ResultKind = "catalog"
	ResultKindGenerated ResultKind = "generated"
)

// ResultEntry is one element of the combined result list. Consumers switch on Kind.
type ResultEntry struct {
	Kind      ResultKind     `json:"kind"`
	Catalog   *CatalogItem   `json:"catalog,omitempty"`
	Generated *GeneratedIdea `json:"generated,omitempty"`
}

// AggregatedResultSet is the snapshot produced by one search. It is replaced
// wholesale by the next search and never patched.
type AggregatedResultSet struct {
	Query      string          `json:"query"`
	ActingRole Role            `json:"actingRole"`
	Catalog    []CatalogItem   `json:"catalog"`
	Generated  []GeneratedIdea `json:"generated"`

	CatalogError        bool `json:"catalogError"`
	GeneratedError      bool `json:"generatedError"`
	GeneratedValidation bool `json:"generatedValidation"`
	// Retryable is set when the generative half failed transiently.
	Retryable bool `json:"retryable"`

	CatalogFailure   string `json:"catalogFailure,omitempty"`
	GeneratedFailure string `json:"generatedFailure,omitempty"`
}

// Total is the number of entries across both halves.
func (r *AggregatedResultSet) Total() int {
	return len(r.Catalog) + len(r.Generated)
}

// Degraded reports whether both halves failed.
func (r *AggregatedResultSet) Degraded() bool {
	return r.CatalogError && r.GeneratedError
}

// Entries returns the tagged union of both halves, catalog first.
func (r *AggregatedResultSet) Entries() []ResultEntry {
	return BuildEntries(r.Catalog, r.Generated)
}

// BuildEntries tags catalog and generated items, catalog first, each half in its given order.
func BuildEntries(catalog []CatalogItem, generated []GeneratedIdea) []ResultEntry {
	entries := make([]ResultEntry, 0, len(catalog)+len(generated))
	for i := range catalog {
		entries = append(entries, ResultEntry{Kind: ResultKindCatalog, Catalog: &catalog[i]})
	}
	for i := range generated {
		entries = append(entries, ResultEntry{Kind: ResultKindGenerated, Generated: &generated[i]})
	}
	return entries
}
