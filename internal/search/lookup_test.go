package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLookup_MapsEveryID(t *testing.T) {
	records := []Record{fireRecord("b1"), fireRecord("b2")}

	lookup := BuildLookup(records)

	require.Len(t, lookup, 2)
	assert.Equal(t, records[0], lookup["b1"])
	assert.Equal(t, records[1], lookup["b2"])
}

func TestBuildLookup_CollisionLastWriteWins(t *testing.T) {
	first := fireRecord("b1")
	second := fireRecord("b1")
	second.Name = "Replacement"

	lookup := BuildLookup([]Record{first, second})

	require.Len(t, lookup, 1)
	assert.Equal(t, "Replacement", lookup["b1"].Name)
}

func TestBuildAll_IndexesShareRecordList(t *testing.T) {
	records := []Record{
		{
			ID: "b1", Name: "Charizard", Rarity: "Rare Holo",
			Types: []string{"Fire"}, Supertype: "Pokémon",
			Set: SetInfo{ID: "base1", Name: "Base", Series: "Base"},
		},
	}

	idx := BuildAll(records, PrefixOptions{})

	assert.Contains(t, idx.Lookup, "b1")
	assert.Equal(t, []string{"b1"}, idx.Name["charizard"])
	assert.Equal(t, []string{"b1"}, idx.Set["base1"])
	assert.Equal(t, []string{"b1"}, idx.Type["fire"])
	assert.Equal(t, []string{"b1"}, idx.Rarity["rare holo"])
	assert.Equal(t, []string{"b1"}, idx.Supertype["pokémon"])
}

func TestBuildAll_LookupCoversEveryIndexedID(t *testing.T) {
	// Every id referenced by any index must resolve through the lookup.
	records := []Record{
		{ID: "b1", Name: "Charizard", Rarity: "Rare", Types: []string{"Fire"},
			Supertype: "Pokémon", Set: SetInfo{ID: "base1"}},
		{ID: "b2", Name: "Charmander", Rarity: "Common", Types: []string{"Fire"},
			Supertype: "Pokémon", Set: SetInfo{ID: "base1"}},
	}

	idx := BuildAll(records, PrefixOptions{})

	for _, buckets := range []map[string][]string{idx.Name, idx.Set, idx.Type, idx.Rarity, idx.Supertype} {
		for key, ids := range buckets {
			for _, id := range ids {
				assert.Contains(t, idx.Lookup, id, "key %q references unknown id %q", key, id)
			}
		}
	}
}

func TestBuildMetadata_CountsTopLevelKeys(t *testing.T) {
	records := []Record{
		{ID: "b1", Name: "Charizard", Rarity: "Rare Holo", Types: []string{"Fire"},
			Supertype: "Pokémon", Set: SetInfo{ID: "base1"}},
	}
	idx := BuildAll(records, PrefixOptions{})
	files := map[string]string{
		IndexCardLookup: "card-lookup.json",
		IndexName:       "name-index.json",
	}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	meta := BuildMetadata(idx, 3, files, now)

	assert.Equal(t, "2026-03-14T09:26:53Z", meta.CreatedAt)
	assert.Equal(t, 1, meta.TotalCards)
	assert.Equal(t, 3, meta.TotalSets)
	assert.Equal(t, len(idx.Name), meta.Indexes[IndexName].Entries)
	assert.Equal(t, "name-index.json", meta.Indexes[IndexName].File)
	assert.Equal(t, 1, meta.Indexes[IndexCardLookup].Entries)
	require.Len(t, meta.Indexes, len(IndexNames))
}

func TestBuildMetadata_TotalCardsEqualsLookupSize(t *testing.T) {
	records := []Record{fireRecord("b1"), fireRecord("b2"), fireRecord("b3")}
	idx := BuildAll(records, PrefixOptions{})

	meta := BuildMetadata(idx, 1, nil, time.Now())

	assert.Equal(t, len(idx.Lookup), meta.TotalCards)
}
