package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhound/cardindex/internal/catalog"
	"github.com/deckhound/cardindex/internal/errors"
)

var baseSets = map[string]catalog.Set{
	"base1": {ID: "base1", Name: "Base", Series: "Base", ReleaseDate: "1999/01/09"},
}

func charizard() catalog.Card {
	return catalog.Card{
		ID:        "b1",
		Name:      "Charizard",
		Number:    "4",
		Rarity:    "Rare Holo",
		Types:     []string{"Fire"},
		Supertype: "Pokémon",
		Subtypes:  []string{"Stage 2"},
		Set:       catalog.SetRef{ID: "base1"},
	}
}

func TestProject_FullCard(t *testing.T) {
	rec, err := Project(charizard(), baseSets)

	require.NoError(t, err)
	assert.Equal(t, "b1", rec.ID)
	assert.Equal(t, "Charizard", rec.Name)
	assert.Equal(t, "Rare Holo", rec.Rarity)
	assert.Equal(t, SetInfo{ID: "base1", Name: "Base", Series: "Base"}, rec.Set)
	assert.Equal(t, ExactMatches{Name: "charizard", Number: "4", ID: "b1"}, rec.ExactMatches)
}

func TestProject_SearchTextOrder(t *testing.T) {
	// searchText order is fixed: name, id, number, rarity, types,
	// supertype, subtypes, set name, set series.
	rec, err := Project(charizard(), baseSets)

	require.NoError(t, err)
	assert.Equal(t, "charizard b1 4 rare holo fire pokémon stage 2 base base", rec.SearchText)
}

func TestProject_SearchTextDropsEmptyFields(t *testing.T) {
	card := catalog.Card{
		ID:   "b2",
		Name: "Mystery",
		Set:  catalog.SetRef{ID: "base1"},
	}

	rec, err := Project(card, baseSets)

	require.NoError(t, err)
	assert.Equal(t, "mystery b2 base base", rec.SearchText)
}

func TestProject_DefaultsRarityAndSupertype(t *testing.T) {
	card := catalog.Card{ID: "b3", Name: "Plain", Set: catalog.SetRef{ID: "base1"}}

	rec, err := Project(card, baseSets)

	require.NoError(t, err)
	assert.Equal(t, "Unknown", rec.Rarity)
	assert.Equal(t, "Unknown", rec.Supertype)
}

func TestProject_UnknownSetGetsStandIn(t *testing.T) {
	card := charizard()
	card.Set.ID = "future99"

	rec, err := Project(card, baseSets)

	require.NoError(t, err)
	assert.Equal(t, SetInfo{ID: "future99", Name: "Unknown Set", Series: "Unknown Series"}, rec.Set)
}

func TestProject_MissingSetRefGetsUnknownID(t *testing.T) {
	card := charizard()
	card.Set.ID = ""

	rec, err := Project(card, baseSets)

	require.NoError(t, err)
	assert.Equal(t, "unknown", rec.Set.ID)
	assert.Equal(t, "Unknown Set", rec.Set.Name)
}

func TestProject_MissingIDFailsRecord(t *testing.T) {
	card := charizard()
	card.ID = ""

	_, err := Project(card, baseSets)

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCard, errors.GetCode(err))
}

func TestProject_MissingNameFailsRecord(t *testing.T) {
	card := charizard()
	card.Name = ""

	_, err := Project(card, baseSets)

	assert.Error(t, err)
}

func TestProjectAll_SkipsFailedRecordsOnly(t *testing.T) {
	// Given: one valid card between two invalid ones
	cards := []catalog.Card{
		{Name: "No ID", Set: catalog.SetRef{ID: "base1"}},
		charizard(),
		{ID: "b9", Set: catalog.SetRef{ID: "base1"}},
	}

	// When: projecting all
	records, errs := ProjectAll(cards, baseSets)

	// Then: the valid card survives, each invalid card yields one error
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].ID)
	assert.Len(t, errs, 2)
}
