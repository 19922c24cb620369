// Package artifact persists and reloads the serialized index artifacts.
// Each build writes a full artifact generation: the card lookup, five index
// files and the metadata summary.
package artifact

import "github.com/deckhound/cardindex/internal/search"

// Artifact file names within the output directory.
const (
	FileCardLookup     = "card-lookup.json"
	FileNameIndex      = "name-index.json"
	FileSetIndex       = "set-index.json"
	FileTypeIndex      = "type-index.json"
	FileRarityIndex    = "rarity-index.json"
	FileSupertypeIndex = "supertype-index.json"
	FileMetadata       = "index-metadata.json"
)

// lockFile serializes publishes to one output directory across processes.
const lockFile = ".cardindex.lock"

// Files maps each index name to its artifact file.
func Files() map[string]string {
	return map[string]string{
		search.IndexCardLookup: FileCardLookup,
		search.IndexName:       FileNameIndex,
		search.IndexSet:        FileSetIndex,
		search.IndexType:       FileTypeIndex,
		search.IndexRarity:     FileRarityIndex,
		search.IndexSupertype:  FileSupertypeIndex,
	}
}
