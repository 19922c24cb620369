package search

import "log/slog"

// BuildLookup maps every record's id to the record itself, used to hydrate
// an index hit into displayable data.
//
// Deduplication upstream guarantees unique ids, so an overwrite here means a
// data-integrity problem slipped through; it is logged rather than silently
// absorbed, and the last write wins.
func BuildLookup(records []Record) map[string]Record {
	lookup := make(map[string]Record, len(records))
	for _, rec := range records {
		if _, exists := lookup[rec.ID]; exists {
			slog.Warn("lookup id collision after dedup, keeping last record",
				slog.String("card_id", rec.ID))
		}
		lookup[rec.ID] = rec
	}
	return lookup
}

// Indexes bundles the six structures one build produces.
type Indexes struct {
	Lookup    map[string]Record
	Name      map[string][]string
	Set       map[string][]string
	Type      map[string][]string
	Rarity    map[string][]string
	Supertype map[string][]string
}

// BuildAll runs every builder over the same projected record list.
// Builders are independent of each other; each sees the full list.
func BuildAll(records []Record, opts PrefixOptions) Indexes {
	return Indexes{
		Lookup:    BuildLookup(records),
		Name:      BuildNameIndex(records, opts),
		Set:       BuildSetIndex(records),
		Type:      BuildTypeIndex(records),
		Rarity:    BuildRarityIndex(records),
		Supertype: BuildSupertypeIndex(records),
	}
}
