package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckhound/cardindex/internal/errors"
	"github.com/deckhound/cardindex/internal/search"
)

// Generation is a full artifact set loaded back from disk, as the search UI
// would see it.
type Generation struct {
	Lookup    map[string]search.Record
	Name      map[string][]string
	Set       map[string][]string
	Type      map[string][]string
	Rarity    map[string][]string
	Supertype map[string][]string
	Metadata  search.Metadata
}

// ReadMetadata loads only the metadata artifact.
func ReadMetadata(dir string) (search.Metadata, error) {
	var meta search.Metadata
	if err := readJSON(filepath.Join(dir, FileMetadata), &meta); err != nil {
		return search.Metadata{}, err
	}
	return meta, nil
}

// ReadGeneration loads every artifact of the current generation.
func ReadGeneration(dir string) (*Generation, error) {
	gen := &Generation{}

	parts := []struct {
		file string
		dst  any
	}{
		{FileCardLookup, &gen.Lookup},
		{FileNameIndex, &gen.Name},
		{FileSetIndex, &gen.Set},
		{FileTypeIndex, &gen.Type},
		{FileRarityIndex, &gen.Rarity},
		{FileSupertypeIndex, &gen.Supertype},
		{FileMetadata, &gen.Metadata},
	}

	for _, p := range parts {
		if err := readJSON(filepath.Join(dir, p.file), p.dst); err != nil {
			return nil, err
		}
	}

	return gen, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeArtifactRead,
			fmt.Sprintf("failed to read artifact %s", filepath.Base(path)), err).
			WithDetail("path", path)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.New(errors.ErrCodeArtifactRead,
			fmt.Sprintf("failed to parse artifact %s", filepath.Base(path)), err).
			WithDetail("path", path)
	}
	return nil
}
