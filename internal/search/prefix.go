package search

import (
	"strings"
)

// DefaultPrefixCap is the id cap per partial-prefix bucket.
// Full names and full words are never capped, so exact and whole-word
// lookups always return complete results; the cap only truncates the
// short-prefix buckets that would otherwise grow with every popular card.
const DefaultPrefixCap = 100

// DefaultMinWordLength is the shortest word or prefix registered.
const DefaultMinWordLength = 2

// PrefixOptions tunes name index construction.
type PrefixOptions struct {
	// Cap bounds ids per partial-prefix bucket (default 100).
	Cap int
	// MinWordLength is the shortest word and prefix registered (default 2).
	MinWordLength int
}

func (o PrefixOptions) withDefaults() PrefixOptions {
	if o.Cap <= 0 {
		o.Cap = DefaultPrefixCap
	}
	if o.MinWordLength <= 0 {
		o.MinWordLength = DefaultMinWordLength
	}
	return o
}

// BuildNameIndex builds the autocomplete index over record names.
// Every record with a non-empty name registers, in order:
//
//  1. the full lowercase name (uncapped),
//  2. every proper prefix of the name (capped),
//  3. each whitespace-separated word of at least MinWordLength runes:
//     the full word (uncapped), then every proper prefix of it (capped).
//
// Ids are appended first-come-first-served, so bucket order follows record
// order.
func BuildNameIndex(records []Record, opts PrefixOptions) map[string][]string {
	opts = opts.withDefaults()
	b := newPrefixBuilder(opts.Cap)

	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		name := strings.ToLower(rec.Name)

		b.addFull(name, rec.ID)
		for _, p := range properPrefixes(name, opts.MinWordLength) {
			b.addCapped(p, rec.ID)
		}

		for _, word := range strings.Fields(name) {
			if len([]rune(word)) < opts.MinWordLength {
				continue
			}
			b.addFull(word, rec.ID)
			for _, p := range properPrefixes(word, opts.MinWordLength) {
				b.addCapped(p, rec.ID)
			}
		}
	}

	return b.index
}

// properPrefixes returns every prefix of s from minLen runes up to, but
// excluding, the full length. Prefix boundaries are rune boundaries so
// multibyte names index cleanly.
func properPrefixes(s string, minLen int) []string {
	runes := []rune(s)
	if len(runes) <= minLen {
		return nil
	}

	prefixes := make([]string, 0, len(runes)-minLen)
	for i := minLen; i < len(runes); i++ {
		prefixes = append(prefixes, string(runes[:i]))
	}
	return prefixes
}

// prefixBuilder accumulates id buckets with the cap rule.
type prefixBuilder struct {
	index map[string][]string
	cap   int
}

func newPrefixBuilder(cap int) *prefixBuilder {
	return &prefixBuilder{
		index: make(map[string][]string),
		cap:   cap,
	}
}

// addFull appends id to a full-name or full-word bucket, never capping.
func (b *prefixBuilder) addFull(key, id string) {
	if b.lastIs(key, id) {
		return
	}
	b.index[key] = append(b.index[key], id)
}

// addCapped appends id to a partial-prefix bucket unless the bucket already
// holds cap ids; overflow is dropped silently for that bucket only.
func (b *prefixBuilder) addCapped(key, id string) {
	if b.lastIs(key, id) {
		return
	}
	if len(b.index[key]) >= b.cap {
		return
	}
	b.index[key] = append(b.index[key], id)
}

// lastIs reports whether the bucket's most recent id is id. One record's
// insertions are consecutive, so this suppresses the same card landing twice
// in one bucket: a single-word name registers the same key as full name and
// full word, and a name prefix often coincides with its first word's prefix.
func (b *prefixBuilder) lastIs(key, id string) bool {
	bucket := b.index[key]
	return len(bucket) > 0 && bucket[len(bucket)-1] == id
}
