package search

import "time"

// Index names used as metadata keys. The artifact layer maps each name to
// its output file.
const (
	IndexCardLookup = "cardLookup"
	IndexName       = "name"
	IndexSet        = "set"
	IndexType       = "type"
	IndexRarity     = "rarity"
	IndexSupertype  = "supertype"
)

// IndexNames lists every index in a stable order.
var IndexNames = []string{
	IndexCardLookup, IndexName, IndexSet, IndexType, IndexRarity, IndexSupertype,
}

// IndexStats describes one index inside the metadata artifact.
type IndexStats struct {
	// Entries is the number of top-level keys, not total id references.
	Entries int `json:"entries"`
	// File is the artifact file holding the index.
	File string `json:"file"`
}

// Metadata is the build summary artifact. Downstream consumers treat the
// artifact set as a generation stamped by CreatedAt.
type Metadata struct {
	CreatedAt  string                `json:"createdAt"`
	TotalCards int                   `json:"totalCards"`
	TotalSets  int                   `json:"totalSets"`
	Indexes    map[string]IndexStats `json:"indexes"`
}

// BuildMetadata aggregates entry counts for every index plus build totals.
// files maps index name to its artifact file name; now becomes the ISO-8601
// createdAt stamp.
func BuildMetadata(idx Indexes, totalSets int, files map[string]string, now time.Time) Metadata {
	entries := map[string]int{
		IndexCardLookup: len(idx.Lookup),
		IndexName:       len(idx.Name),
		IndexSet:        len(idx.Set),
		IndexType:       len(idx.Type),
		IndexRarity:     len(idx.Rarity),
		IndexSupertype:  len(idx.Supertype),
	}

	stats := make(map[string]IndexStats, len(entries))
	for name, count := range entries {
		stats[name] = IndexStats{Entries: count, File: files[name]}
	}

	return Metadata{
		CreatedAt:  now.UTC().Format(time.RFC3339),
		TotalCards: len(idx.Lookup),
		TotalSets:  totalSets,
		Indexes:    stats,
	}
}
