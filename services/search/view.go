package search

import "github.com/Heritage-Craft/artisan-marketplace-backend/models"

const (
	MessageUnavailable      = "search temporarily unavailable"
	MessageDescriptionShort = "describe what you are looking for in a few more words to see inspiration"
)

// View is the display-ready projection of a result set under the current
// filters, sort and view mode. Building it never touches the network.
type View struct {
	Query      string             `json:"query"`
	ActingRole models.Role        `json:"actingRole"`
	Filters    models.FilterState `json:"filters"`
	SortBy     SortOption         `json:"sortBy"`
	ViewMode   models.ViewMode    `json:"viewMode"`

	Catalog   []models.CatalogItem   `json:"catalog"`
	Generated []models.GeneratedIdea `json:"generated"`
	Entries   []models.ResultEntry   `json:"entries"`

	Total        int `json:"total"`
	CatalogTotal int `json:"catalogTotal"`
	Hidden       int `json:"hiddenByFilters"`

	CatalogError        bool   `json:"catalogError"`
	GeneratedError      bool   `json:"generatedError"`
	GeneratedValidation bool   `json:"generatedValidation"`
	CatalogMessage      string `json:"catalogMessage,omitempty"`
	GeneratedMessage    string `json:"generatedMessage,omitempty"`
	Retry               bool   `json:"retry"`
}

// BuildView filters and sorts the catalog half of rs. Generated ideas pass
// through untouched. filters must already be valid.
func BuildView(rs *models.AggregatedResultSet, filters models.FilterState, sortBy SortOption, mode models.ViewMode) View {
	if mode == "" {
		mode = models.ViewModeGrid
	}
	if sortBy == "" {
		sortBy = SortRelevance
	}

	catalog := SortCatalog(MustApplyFilters(rs.Catalog, filters), sortBy)
	generated := rs.Generated
	if generated == nil {
		generated = []models.GeneratedIdea{}
	}

	v := View{
		Query:      rs.Query,
		ActingRole: rs.ActingRole,
		Filters:    filters,
		SortBy:     sortBy,
		ViewMode:   mode,

		Catalog:   catalog,
		Generated: generated,
		Entries:   models.BuildEntries(catalog, generated),

		Total:        len(catalog) + len(generated),
		CatalogTotal: len(rs.Catalog),
		Hidden:       len(rs.Catalog) - len(catalog),

		CatalogError:        rs.CatalogError,
		GeneratedError:      rs.GeneratedError,
		GeneratedValidation: rs.GeneratedValidation,
		Retry:               rs.Degraded() || rs.Retryable,
	}

	if rs.CatalogError {
		v.CatalogMessage = MessageUnavailable
	}
	switch {
	case rs.GeneratedError:
		v.GeneratedMessage = MessageUnavailable
	case rs.GeneratedValidation:
		v.GeneratedMessage = MessageDescriptionShort
	}
	return v
}
