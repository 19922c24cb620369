package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/deckhound/cardindex/internal/errors"
)

// defaultCacheSize bounds the per-set file cache when no size is given.
const defaultCacheSize = 500

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// SetsFile is the path to the set catalog JSON file.
	SetsFile string
	// CardsDir is the directory holding one <set-id>.json file per set.
	CardsDir string
	// Workers bounds concurrent per-set file reads. Defaults to 4.
	Workers int
	// CacheSize is the number of parsed per-set files kept in memory,
	// keyed by path and modification time. Only effective across repeated
	// loads within one process (watch mode).
	CacheSize int
}

// Loader reads the set catalog and per-set card files.
type Loader struct {
	setsFile string
	cardsDir string
	workers  int

	// cache holds parsed card lists keyed by file path. Entries are
	// invalidated by modification time, evicted by LRU.
	cache *lru.Cache[string, cachedCards]
}

type cachedCards struct {
	modTime time.Time
	cards   []Card
}

// NewLoader creates a Loader. Returns an error if the cache cannot be created.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	cache, err := lru.New[string, cachedCards](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create card file cache: %w", err)
	}

	return &Loader{
		setsFile: opts.SetsFile,
		cardsDir: opts.CardsDir,
		workers:  workers,
		cache:    cache,
	}, nil
}

// LoadSets reads and parses the set catalog.
// Failure here is fatal: without the set catalog the build has no set list.
func (l *Loader) LoadSets() ([]Set, error) {
	data, err := os.ReadFile(l.setsFile)
	if err != nil {
		return nil, errors.New(errors.ErrCodeSetCatalogUnreadable,
			fmt.Sprintf("failed to read set catalog %s", l.setsFile), err).
			WithDetail("path", l.setsFile)
	}

	var sets []Set
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, errors.New(errors.ErrCodeSetCatalogCorrupt,
			fmt.Sprintf("failed to parse set catalog %s", l.setsFile), err).
			WithDetail("path", l.setsFile)
	}

	return sets, nil
}

// LoadCards reads the card file of every set and returns the flat card
// sequence in set-catalog order. Per-set files are read concurrently but
// reassembled in catalog order so repeated builds over the same inputs
// produce identical artifacts.
//
// A missing or corrupt per-set file is recoverable: the set contributes zero
// cards and a warning names the set.
func (l *Loader) LoadCards(ctx context.Context, sets []Set) ([]Card, error) {
	perSet := make([][]Card, len(sets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, set := range sets {
		i, set := i, set
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perSet[i] = l.loadSetCards(set)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cards []Card
	for _, sc := range perSet {
		cards = append(cards, sc...)
	}
	return cards, nil
}

// loadSetCards reads one set's card file, consulting the cache first.
// All failure modes degrade to an empty list.
func (l *Loader) loadSetCards(set Set) []Card {
	path := filepath.Join(l.cardsDir, set.ID+".json")

	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("card file missing, set contributes no cards",
			slog.String("set_id", set.ID),
			slog.String("path", path))
		return nil
	}

	if entry, ok := l.cache.Get(path); ok && entry.modTime.Equal(info.ModTime()) {
		return entry.cards
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("card file unreadable, set contributes no cards",
			slog.String("set_id", set.ID),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		slog.Warn("card file corrupt, set contributes no cards",
			slog.String("set_id", set.ID),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}

	l.cache.Add(path, cachedCards{modTime: info.ModTime(), cards: cards})
	return cards
}
