package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/deckhound/cardindex/internal/errors"
	"github.com/deckhound/cardindex/internal/search"
)

// Writer publishes one artifact generation to an output directory.
//
// Artifacts are first written to a staging directory next to the output,
// then moved into place one rename at a time while holding a cross-process
// lock. A failure before publish leaves the previous generation untouched;
// during publish the metadata file is moved last, so readers can treat a
// generation as complete only when the metadata timestamp is the newest of
// the group.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write serializes the six index structures plus metadata and publishes
// them. Any I/O error aborts with a fatal artifact error.
func (w *Writer) Write(idx search.Indexes, meta search.Metadata) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.New(errors.ErrCodeArtifactWrite,
			fmt.Sprintf("failed to create output directory %s", w.dir), err)
	}

	staging, err := os.MkdirTemp(w.dir, ".staging-")
	if err != nil {
		return errors.New(errors.ErrCodeArtifactWrite, "failed to create staging directory", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	files := Files()
	payloads := map[string]any{
		files[search.IndexCardLookup]: idx.Lookup,
		files[search.IndexName]:       idx.Name,
		files[search.IndexSet]:        idx.Set,
		files[search.IndexType]:       idx.Type,
		files[search.IndexRarity]:     idx.Rarity,
		files[search.IndexSupertype]:  idx.Supertype,
		FileMetadata:                  meta,
	}

	for name, payload := range payloads {
		if err := writeJSON(filepath.Join(staging, name), payload); err != nil {
			return errors.New(errors.ErrCodeArtifactWrite,
				fmt.Sprintf("failed to stage artifact %s", name), err).
				WithDetail("file", name)
		}
	}

	return w.publish(staging)
}

// publish moves every staged artifact into the output directory under the
// build lock. Metadata goes last: its timestamp marks the generation done.
func (w *Writer) publish(staging string) error {
	lock := flock.New(filepath.Join(w.dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return errors.New(errors.ErrCodeArtifactPublish, "failed to acquire build lock", err)
	}
	if !locked {
		return errors.New(errors.ErrCodeBuildLocked,
			fmt.Sprintf("another build is publishing to %s", w.dir), nil)
	}
	defer func() { _ = lock.Unlock() }()

	order := make([]string, 0, len(Files())+1)
	for _, name := range Files() {
		order = append(order, name)
	}
	order = append(order, FileMetadata)

	for _, name := range order {
		src := filepath.Join(staging, name)
		dst := filepath.Join(w.dir, name)
		if err := os.Rename(src, dst); err != nil {
			return errors.New(errors.ErrCodeArtifactPublish,
				fmt.Sprintf("failed to publish artifact %s", name), err).
				WithDetail("file", name)
		}
	}

	slog.Info("published artifact generation",
		slog.String("dir", w.dir),
		slog.Int("artifacts", len(order)))
	return nil
}

// writeJSON writes v as JSON and syncs the file before returning, so a
// staged artifact is durable before publish ever starts.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
