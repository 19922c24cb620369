package search

import "strings"

// BuildSetIndex maps set id to the ids of cards in that set.
// Set ids are stable slugs already, so keys are not lowercased.
func BuildSetIndex(records []Record) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range records {
		if rec.Set.ID == "" {
			continue
		}
		idx[rec.Set.ID] = append(idx[rec.Set.ID], rec.ID)
	}
	return idx
}

// BuildTypeIndex maps lowercase type to card ids.
// A card with N types appears under each of the N keys.
func BuildTypeIndex(records []Record) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range records {
		for _, typ := range rec.Types {
			if typ == "" {
				continue
			}
			key := strings.ToLower(typ)
			idx[key] = append(idx[key], rec.ID)
		}
	}
	return idx
}

// BuildRarityIndex maps lowercase rarity to card ids.
func BuildRarityIndex(records []Record) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range records {
		if rec.Rarity == "" {
			continue
		}
		key := strings.ToLower(rec.Rarity)
		idx[key] = append(idx[key], rec.ID)
	}
	return idx
}

// BuildSupertypeIndex maps lowercase supertype to card ids.
func BuildSupertypeIndex(records []Record) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range records {
		if rec.Supertype == "" {
			continue
		}
		key := strings.ToLower(rec.Supertype)
		idx[key] = append(idx[key], rec.ID)
	}
	return idx
}
