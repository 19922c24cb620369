package catalog

import (
	"log/slog"
	"strings"
)

// Dedupe removes cards whose id repeats in the input, keeping the first
// occurrence and preserving order. It returns the deduplicated sequence and
// the unique duplicate ids encountered, in first-duplicate order.
//
// Equality is by id only. Duplicates never halt the build; a single
// aggregate warning lists every duplicated id.
func Dedupe(cards []Card) ([]Card, []string) {
	seen := make(map[string]bool, len(cards))
	dupSeen := make(map[string]bool)

	out := make([]Card, 0, len(cards))
	var dups []string

	for _, c := range cards {
		if seen[c.ID] {
			if !dupSeen[c.ID] {
				dupSeen[c.ID] = true
				dups = append(dups, c.ID)
			}
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}

	if len(dups) > 0 {
		slog.Warn("dropped duplicate card ids, keeping first occurrence",
			slog.Int("unique_duplicates", len(dups)),
			slog.Int("dropped", len(cards)-len(out)),
			slog.String("ids", strings.Join(dups, ", ")))
	}

	return out, dups
}
