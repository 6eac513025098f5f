package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatedResultSet_Entries(t *testing.T) {
	rs := &AggregatedResultSet{
		Query: "banarasi saree",
		Catalog: []CatalogItem{
			{ID: "p1", Name: "Red Banarasi"},
			{ID: "p2", Name: "Gold Banarasi"},
		},
		Generated: []GeneratedIdea{
			{PromptUsed: "banarasi saree", ImageURL: "https://img/1", Seed: "11"},
		},
	}

	entries := rs.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, rs.Total(), len(entries))

	assert.Equal(t, ResultKindCatalog, entries[0].Kind)
	assert.Equal(t, "p1", entries[0].Catalog.ID)
	assert.Nil(t, entries[0].Generated)

	assert.Equal(t, ResultKindCatalog, entries[1].Kind)
	assert.Equal(t, "p2", entries[1].Catalog.ID)

	assert.Equal(t, ResultKindGenerated, entries[2].Kind)
	assert.Equal(t, "11", entries[2].Generated.Seed)
	assert.Nil(t, entries[2].Catalog)
}

func TestAggregatedResultSet_Degraded(t *testing.T) {
	rs := &AggregatedResultSet{Catalog: []CatalogItem{}, Generated: []GeneratedIdea{}}
	assert.False(t, rs.Degraded())
	assert.Zero(t, rs.Total())

	rs.CatalogError = true
	assert.False(t, rs.Degraded())

	rs.GeneratedError = true
	assert.True(t, rs.Degraded())
	assert.Empty(t, rs.Entries())
}

func TestRole(t *testing.T) {
	for _, r := range []Role{RoleGuest, RoleBuyer, RoleSeller, RoleAdmin} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("root").Valid())
	assert.True(t, RoleAdmin.SeesDrafts())
	assert.False(t, RoleSeller.SeesDrafts())
}
