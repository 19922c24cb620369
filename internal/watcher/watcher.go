// Package watcher observes the card catalog on disk and emits debounced
// change batches that drive incremental rebuilds in watch mode.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation represents a catalog file operation.
type Operation int

const (
	// OpCreate indicates a new catalog file appeared.
	OpCreate Operation = iota
	// OpModify indicates a catalog file changed.
	OpModify
	// OpDelete indicates a catalog file was removed.
	OpDelete
	// OpSetCatalogChange indicates the set catalog itself changed,
	// which invalidates every set's resolution.
	OpSetCatalogChange
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpSetCatalogChange:
		return "SET_CATALOG_CHANGE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent represents a catalog change.
type FileEvent struct {
	// Path is the absolute path of the changed file.
	Path string

	// Operation is the type of change.
	Operation Operation

	// Timestamp is when the event was detected.
	Timestamp time.Time
}

// Options configures the watcher behavior.
type Options struct {
	// SetsFile is the set catalog path. Changes to it emit
	// OpSetCatalogChange.
	SetsFile string

	// CardsDir is the per-set card file directory. The directory is flat:
	// one <set-id>.json per set, no recursion.
	CardsDir string

	// DebounceWindow is the time to wait before emitting coalesced events.
	// Default: 500ms
	DebounceWindow time.Duration

	// EventBufferSize is the size of the raw event channel buffer.
	// Default: 256
	EventBufferSize int
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	if o.DebounceWindow == 0 {
		o.DebounceWindow = 500 * time.Millisecond
	}
	if o.EventBufferSize == 0 {
		o.EventBufferSize = 256
	}
	return o
}

// CatalogWatcher watches the set catalog and the cards directory with
// fsnotify and emits batches of coalesced events.
type CatalogWatcher struct {
	opts      Options
	debouncer *Debouncer
	errs      chan error

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	stopped bool
}

// New creates a CatalogWatcher. Start must be called before events flow.
func New(opts Options) *CatalogWatcher {
	opts = opts.WithDefaults()
	return &CatalogWatcher{
		opts:      opts,
		debouncer: NewDebouncer(opts.DebounceWindow),
		errs:      make(chan error, 8),
	}
}

// Start begins watching. The watcher runs until Stop is called or the
// context is cancelled.
func (w *CatalogWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if w.fsw != nil {
		return fmt.Errorf("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directories, not the files: editors replace files by
	// rename, which drops file-level watches.
	dirs := map[string]bool{
		filepath.Dir(w.opts.SetsFile): true,
		w.opts.CardsDir:               true,
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.fsw = fsw
	go w.loop(ctx, fsw)

	slog.Info("watching catalog",
		slog.String("sets_file", w.opts.SetsFile),
		slog.String("cards_dir", w.opts.CardsDir),
		slog.Duration("debounce", w.opts.DebounceWindow))
	return nil
}

func (w *CatalogWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if fe, relevant := w.classify(ev); relevant {
				w.debouncer.Add(fe)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
				slog.Warn("watcher error channel full, dropping error",
					slog.String("error", err.Error()))
			}
		}
	}
}

// classify maps an fsnotify event to a catalog event, filtering out
// everything that cannot affect a build.
func (w *CatalogWatcher) classify(ev fsnotify.Event) (FileEvent, bool) {
	if ev.Name == w.opts.SetsFile {
		return FileEvent{
			Path:      ev.Name,
			Operation: OpSetCatalogChange,
			Timestamp: time.Now(),
		}, true
	}

	// Only per-set card files matter.
	if filepath.Dir(ev.Name) != filepath.Clean(w.opts.CardsDir) {
		return FileEvent{}, false
	}
	if !strings.HasSuffix(ev.Name, ".json") {
		return FileEvent{}, false
	}

	var op Operation
	switch {
	case ev.Op.Has(fsnotify.Create):
		op = OpCreate
	case ev.Op.Has(fsnotify.Write):
		op = OpModify
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		op = OpDelete
	default:
		return FileEvent{}, false
	}

	return FileEvent{Path: ev.Name, Operation: op, Timestamp: time.Now()}, true
}

// Batches returns the channel of debounced event batches.
func (w *CatalogWatcher) Batches() <-chan []FileEvent {
	return w.debouncer.Output()
}

// Errors returns the channel of non-fatal watcher errors.
func (w *CatalogWatcher) Errors() <-chan error {
	return w.errs
}

// Stop stops the watcher and releases resources. Safe to call multiple times.
func (w *CatalogWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	if w.fsw != nil {
		_ = w.fsw.Close()
	}
	w.debouncer.Stop()
	close(w.errs)
}
