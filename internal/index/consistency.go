package index

import (
	"fmt"
	"strings"
	"time"

	"github.com/deckhound/cardindex/internal/artifact"
	"github.com/deckhound/cardindex/internal/search"
)

// InconsistencyType categorizes detected issues.
type InconsistencyType int

const (
	// InconsistencyUnknownID indicates an index entry whose card id is
	// missing from the lookup table.
	InconsistencyUnknownID InconsistencyType = iota
	// InconsistencyOverCap indicates a partial-prefix bucket exceeding the cap.
	InconsistencyOverCap
	// InconsistencyKeyNotLower indicates a key that is not lowercased.
	InconsistencyKeyNotLower
	// InconsistencyEmptyBucket indicates a key mapped to an empty id list.
	InconsistencyEmptyBucket
	// InconsistencyCountMismatch indicates metadata counts disagreeing
	// with the actual artifacts.
	InconsistencyCountMismatch
)

// String returns a human-readable description of the inconsistency type.
func (t InconsistencyType) String() string {
	switch t {
	case InconsistencyUnknownID:
		return "unknown_id"
	case InconsistencyOverCap:
		return "over_cap"
	case InconsistencyKeyNotLower:
		return "key_not_lower"
	case InconsistencyEmptyBucket:
		return "empty_bucket"
	case InconsistencyCountMismatch:
		return "count_mismatch"
	default:
		return "unknown"
	}
}

// Inconsistency represents a detected cross-artifact issue.
type Inconsistency struct {
	Type    InconsistencyType
	Index   string
	Key     string
	Details string
}

// CheckResult contains the outcome of a consistency check.
type CheckResult struct {
	// Checked is the number of index entries verified.
	Checked int
	// Inconsistencies contains all detected issues.
	Inconsistencies []Inconsistency
	// Duration is how long the check took.
	Duration time.Duration
}

// OK reports whether the generation passed every check.
func (r *CheckResult) OK() bool {
	return len(r.Inconsistencies) == 0
}

// ConsistencyChecker validates a published artifact generation: every id
// referenced by an index must resolve through the lookup table, category and
// name keys must be lowercased, partial-prefix buckets must respect the cap,
// and metadata counts must match the artifacts.
type ConsistencyChecker struct {
	prefixCap int
}

// NewConsistencyChecker creates a checker enforcing the given prefix cap.
// A non-positive cap falls back to the default.
func NewConsistencyChecker(prefixCap int) *ConsistencyChecker {
	if prefixCap <= 0 {
		prefixCap = search.DefaultPrefixCap
	}
	return &ConsistencyChecker{prefixCap: prefixCap}
}

// Check scans the generation for inconsistencies.
// This is O(n) over the total number of index entries.
func (c *ConsistencyChecker) Check(gen *artifact.Generation) *CheckResult {
	start := time.Now()
	result := &CheckResult{}

	// Full names and words are exempt from the cap. Recompute them from
	// the lookup records, which carry the names the index was built from.
	fullKeys := make(map[string]bool, len(gen.Lookup))
	for _, rec := range gen.Lookup {
		lower := strings.ToLower(rec.Name)
		fullKeys[lower] = true
		for _, w := range strings.Fields(lower) {
			fullKeys[w] = true
		}
	}

	c.checkName(gen, fullKeys, result)
	c.checkCategory(gen, search.IndexSet, gen.Set, false, result)
	c.checkCategory(gen, search.IndexType, gen.Type, true, result)
	c.checkCategory(gen, search.IndexRarity, gen.Rarity, true, result)
	c.checkCategory(gen, search.IndexSupertype, gen.Supertype, true, result)
	c.checkMetadata(gen, result)

	result.Duration = time.Since(start)
	return result
}

func (c *ConsistencyChecker) checkName(gen *artifact.Generation, fullKeys map[string]bool, result *CheckResult) {
	for key, ids := range gen.Name {
		result.Checked += len(ids)

		if key != strings.ToLower(key) {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:  InconsistencyKeyNotLower,
				Index: search.IndexName,
				Key:   key,
			})
		}
		if len(ids) == 0 {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:  InconsistencyEmptyBucket,
				Index: search.IndexName,
				Key:   key,
			})
		}
		if !fullKeys[key] && len(ids) > c.prefixCap {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:    InconsistencyOverCap,
				Index:   search.IndexName,
				Key:     key,
				Details: fmt.Sprintf("%d ids, cap %d", len(ids), c.prefixCap),
			})
		}
		c.checkIDs(gen, search.IndexName, key, ids, result)
	}
}

func (c *ConsistencyChecker) checkCategory(gen *artifact.Generation, name string, idx map[string][]string, lowercased bool, result *CheckResult) {
	for key, ids := range idx {
		result.Checked += len(ids)

		if lowercased && key != strings.ToLower(key) {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:  InconsistencyKeyNotLower,
				Index: name,
				Key:   key,
			})
		}
		if len(ids) == 0 {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:  InconsistencyEmptyBucket,
				Index: name,
				Key:   key,
			})
		}
		c.checkIDs(gen, name, key, ids, result)
	}
}

func (c *ConsistencyChecker) checkIDs(gen *artifact.Generation, index, key string, ids []string, result *CheckResult) {
	for _, id := range ids {
		if _, ok := gen.Lookup[id]; !ok {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:    InconsistencyUnknownID,
				Index:   index,
				Key:     key,
				Details: fmt.Sprintf("card id %q not in lookup", id),
			})
		}
	}
}

func (c *ConsistencyChecker) checkMetadata(gen *artifact.Generation, result *CheckResult) {
	actual := map[string]int{
		search.IndexCardLookup: len(gen.Lookup),
		search.IndexName:       len(gen.Name),
		search.IndexSet:        len(gen.Set),
		search.IndexType:       len(gen.Type),
		search.IndexRarity:     len(gen.Rarity),
		search.IndexSupertype:  len(gen.Supertype),
	}

	for _, name := range search.IndexNames {
		stats, ok := gen.Metadata.Indexes[name]
		if !ok {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:    InconsistencyCountMismatch,
				Index:   name,
				Details: "missing from metadata",
			})
			continue
		}
		if stats.Entries != actual[name] {
			result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
				Type:    InconsistencyCountMismatch,
				Index:   name,
				Details: fmt.Sprintf("metadata reports %d entries, artifact has %d", stats.Entries, actual[name]),
			})
		}
	}

	if gen.Metadata.TotalCards != len(gen.Lookup) {
		result.Inconsistencies = append(result.Inconsistencies, Inconsistency{
			Type:    InconsistencyCountMismatch,
			Index:   search.IndexCardLookup,
			Details: fmt.Sprintf("metadata totalCards %d, lookup has %d", gen.Metadata.TotalCards, len(gen.Lookup)),
		})
	}
}
