// Package search builds the query-optimized index structures from the raw
// catalog: the card lookup, the name prefix index and four category indexes.
// Builders are pure functions over projected records; nothing here touches
// the filesystem.
package search

import (
	"fmt"
	"strings"

	"github.com/deckhound/cardindex/internal/catalog"
	"github.com/deckhound/cardindex/internal/errors"
)

// unknownValue stands in for absent rarity and supertype values so category
// filters still have a bucket to group these cards under.
const unknownValue = "Unknown"

// SetInfo is the resolved set carried on a search record.
type SetInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Series string `json:"series"`
}

// ExactMatches holds normalized values for exact-match lookups.
type ExactMatches struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	ID     string `json:"id"`
}

// Record is the compact, search-optimized projection of a raw card.
type Record struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Number       string       `json:"number"`
	Rarity       string       `json:"rarity"`
	Types        []string     `json:"types"`
	Supertype    string       `json:"supertype"`
	Subtypes     []string     `json:"subtypes"`
	Set          SetInfo      `json:"set"`
	SearchText   string       `json:"searchText"`
	ExactMatches ExactMatches `json:"exactMatches"`
}

// Project converts a raw card and the known sets into one search record.
// It is a pure function; the only failure mode is a card missing its id or
// name, which fails that single record and never the whole build.
//
// A card whose set reference resolves to no known set gets a stand-in set
// rather than failing: catalogs are partial and a card must not disappear
// from search because its set lagged behind.
func Project(card catalog.Card, sets map[string]catalog.Set) (Record, error) {
	if card.ID == "" {
		return Record{}, errors.New(errors.ErrCodeInvalidCard, "card has no id", nil).
			WithDetail("name", card.Name)
	}
	if card.Name == "" {
		return Record{}, errors.New(errors.ErrCodeInvalidCard,
			fmt.Sprintf("card %s has no name", card.ID), nil).
			WithDetail("card_id", card.ID)
	}

	set := resolveSet(card, sets)

	rarity := card.Rarity
	if rarity == "" {
		rarity = unknownValue
	}
	supertype := card.Supertype
	if supertype == "" {
		supertype = unknownValue
	}

	return Record{
		ID:         card.ID,
		Name:       card.Name,
		Number:     card.Number,
		Rarity:     rarity,
		Types:      card.Types,
		Supertype:  supertype,
		Subtypes:   card.Subtypes,
		Set:        set,
		SearchText: buildSearchText(card, set),
		ExactMatches: ExactMatches{
			Name:   strings.ToLower(card.Name),
			Number: card.Number,
			ID:     strings.ToLower(card.ID),
		},
	}, nil
}

// ProjectAll projects every card, skipping records that fail projection.
// Skips are logged by the caller via the returned errors; order is preserved.
func ProjectAll(cards []catalog.Card, sets map[string]catalog.Set) ([]Record, []error) {
	records := make([]Record, 0, len(cards))
	var errs []error

	for _, card := range cards {
		rec, err := Project(card, sets)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}

// resolveSet looks up the card's set, synthesizing a stand-in when unknown.
func resolveSet(card catalog.Card, sets map[string]catalog.Set) SetInfo {
	if s, ok := sets[card.Set.ID]; ok {
		return SetInfo{ID: s.ID, Name: s.Name, Series: s.Series}
	}

	id := card.Set.ID
	if id == "" {
		id = "unknown"
	}
	return SetInfo{ID: id, Name: "Unknown Set", Series: "Unknown Series"}
}

// buildSearchText joins the card's searchable values, lowercased, in a fixed
// order: name, id, number, rarity, types, supertype, subtypes, set name, set
// series. Empty values are dropped. The order is fixed so identical inputs
// serialize to identical artifacts.
func buildSearchText(card catalog.Card, set SetInfo) string {
	fields := make([]string, 0, 8+len(card.Types)+len(card.Subtypes))
	fields = append(fields, card.Name, card.ID, card.Number, card.Rarity)
	fields = append(fields, card.Types...)
	fields = append(fields, card.Supertype)
	fields = append(fields, card.Subtypes...)
	fields = append(fields, set.Name, set.Series)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		parts = append(parts, strings.ToLower(f))
	}
	return strings.Join(parts, " ")
}
