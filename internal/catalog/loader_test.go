package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhound/cardindex/internal/errors"
)

// writeCatalog writes a set catalog and per-set card files into dir and
// returns a Loader over them.
func writeCatalog(t *testing.T, sets []Set, cardsBySet map[string][]Card) *Loader {
	t.Helper()
	dir := t.TempDir()

	setsPath := filepath.Join(dir, "sets.json")
	data, err := json.Marshal(sets)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(setsPath, data, 0o644))

	cardsDir := filepath.Join(dir, "cards")
	require.NoError(t, os.MkdirAll(cardsDir, 0o755))
	for setID, cards := range cardsBySet {
		data, err := json.Marshal(cards)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(cardsDir, setID+".json"), data, 0o644))
	}

	loader, err := NewLoader(LoaderOptions{SetsFile: setsPath, CardsDir: cardsDir})
	require.NoError(t, err)
	return loader
}

func TestLoadSets_ParsesCatalog(t *testing.T) {
	loader := writeCatalog(t, []Set{
		{ID: "base1", Name: "Base", Series: "Base", ReleaseDate: "1999/01/09"},
		{ID: "neo4", Name: "Neo Destiny", Series: "Neo"},
	}, nil)

	sets, err := loader.LoadSets()

	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "base1", sets[0].ID)
	assert.Equal(t, "Neo Destiny", sets[1].Name)
}

func TestLoadSets_MissingCatalogIsFatal(t *testing.T) {
	loader, err := NewLoader(LoaderOptions{
		SetsFile: filepath.Join(t.TempDir(), "nope.json"),
		CardsDir: t.TempDir(),
	})
	require.NoError(t, err)

	_, err = loader.LoadSets()

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSetCatalogUnreadable, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
}

func TestLoadSets_CorruptCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()
	setsPath := filepath.Join(dir, "sets.json")
	require.NoError(t, os.WriteFile(setsPath, []byte("{not json"), 0o644))
	loader, err := NewLoader(LoaderOptions{SetsFile: setsPath, CardsDir: dir})
	require.NoError(t, err)

	_, err = loader.LoadSets()

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSetCatalogCorrupt, errors.GetCode(err))
}

func TestLoadCards_ConcatenatesInCatalogOrder(t *testing.T) {
	// Given: two sets whose files both exist
	sets := []Set{{ID: "base1", Name: "Base"}, {ID: "base2", Name: "Jungle"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}, {ID: "b2", Name: "Blastoise"}},
		"base2": {{ID: "j1", Name: "Clefable"}},
	})

	// When: loading cards
	cards, err := loader.LoadCards(context.Background(), sets)

	// Then: card order follows set-catalog order, then file order
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"b1", "b2", "j1"},
		[]string{cards[0].ID, cards[1].ID, cards[2].ID})
}

func TestLoadCards_OrderStableUnderParallelism(t *testing.T) {
	// Many sets loaded with several workers must still come back in
	// catalog order.
	var sets []Set
	cardsBySet := make(map[string][]Card)
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8"} {
		sets = append(sets, Set{ID: id, Name: id})
		cardsBySet[id] = []Card{{ID: id + "-1", Name: "Card"}}
	}
	loader := writeCatalog(t, sets, cardsBySet)

	cards, err := loader.LoadCards(context.Background(), sets)

	require.NoError(t, err)
	require.Len(t, cards, 8)
	for i, set := range sets {
		assert.Equal(t, set.ID+"-1", cards[i].ID)
	}
}

func TestLoadCards_MissingSetFileContributesNothing(t *testing.T) {
	sets := []Set{{ID: "base1", Name: "Base"}, {ID: "ghost", Name: "Unfetched"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}},
	})

	cards, err := loader.LoadCards(context.Background(), sets)

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "b1", cards[0].ID)
}

func TestLoadCards_CorruptSetFileContributesNothing(t *testing.T) {
	sets := []Set{{ID: "base1", Name: "Base"}, {ID: "bad", Name: "Corrupt"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}},
	})
	// Corrupt file written by hand, outside the helper.
	require.NoError(t, os.WriteFile(
		filepath.Join(loader.cardsDir, "bad.json"), []byte("[{broken"), 0o644))

	cards, err := loader.LoadCards(context.Background(), sets)

	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestLoadCards_CancelledContext(t *testing.T) {
	sets := []Set{{ID: "base1", Name: "Base"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.LoadCards(ctx, sets)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadCards_CacheServesUnchangedFiles(t *testing.T) {
	sets := []Set{{ID: "base1", Name: "Base"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}},
	})

	first, err := loader.LoadCards(context.Background(), sets)
	require.NoError(t, err)

	// Overwrite the file without changing its mtime; the cached parse wins.
	path := filepath.Join(loader.cardsDir, "base1.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"b9","name":"Other"}]`), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	second, err := loader.LoadCards(context.Background(), sets)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadCards_CacheInvalidatedByModTime(t *testing.T) {
	sets := []Set{{ID: "base1", Name: "Base"}}
	loader := writeCatalog(t, sets, map[string][]Card{
		"base1": {{ID: "b1", Name: "Alakazam"}},
	})

	_, err := loader.LoadCards(context.Background(), sets)
	require.NoError(t, err)

	// Rewrite the file with a newer mtime; the reload must pick it up.
	path := filepath.Join(loader.cardsDir, "base1.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"b9","name":"Other"}]`), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	cards, err := loader.LoadCards(context.Background(), sets)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "b9", cards[0].ID)
}
