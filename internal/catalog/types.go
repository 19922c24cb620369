// Package catalog reads the raw trading-card catalog: a set catalog plus one
// card file per set. Catalogs are produced by an external fetch job and are
// partial by construction, so missing or corrupt per-set files degrade to
// empty card lists instead of failing the build.
package catalog

// Set is a named grouping of cards (an expansion) from the set catalog.
// Read-only input; unknown JSON fields are ignored.
type Set struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"`
}

// SetRef is the set reference embedded in a raw card.
type SetRef struct {
	ID string `json:"id"`
}

// Card is a single raw catalog item. The id is globally unique by contract,
// but the input data is not trusted to uphold that; see Dedupe.
type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Number    string   `json:"number"`
	Rarity    string   `json:"rarity,omitempty"`
	Types     []string `json:"types,omitempty"`
	Supertype string   `json:"supertype,omitempty"`
	Subtypes  []string `json:"subtypes,omitempty"`
	Set       SetRef   `json:"set"`
}
