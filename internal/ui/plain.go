package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// PlainRenderer outputs line-oriented plain text progress.
type PlainRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
	quiet  bool
	errors []ErrorEvent
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	styles := DefaultStyles()
	if cfg.NoColor {
		styles = NoColorStyles()
	}
	return &PlainRenderer{
		out:    cfg.Output,
		styles: styles,
		quiet:  cfg.Quiet,
	}
}

// UpdateProgress implements Renderer.
func (r *PlainRenderer) UpdateProgress(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quiet {
		return
	}

	tag := r.styles.Stage.Render(fmt.Sprintf("[%s]", event.Stage.Icon()))
	if event.Total > 0 {
		_, _ = fmt.Fprintf(r.out, "%s %d/%d - %s\n", tag, event.Current, event.Total, event.Message)
	} else if event.Message != "" {
		_, _ = fmt.Fprintf(r.out, "%s %s\n", tag, event.Message)
	}
}

// AddError implements Renderer.
func (r *PlainRenderer) AddError(event ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, event)

	prefix := r.styles.Error.Render("ERROR")
	if event.IsWarn {
		prefix = r.styles.Warning.Render("WARN")
	}

	if event.CardID != "" {
		_, _ = fmt.Fprintf(r.out, "%s: %s: %v\n", prefix, event.CardID, event.Err)
	} else {
		_, _ = fmt.Fprintf(r.out, "%s: %v\n", prefix, event.Err)
	}
}

// Complete implements Renderer.
func (r *PlainRenderer) Complete(stats CompletionStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := fmt.Sprintf("Complete: %d cards from %d sets indexed in %s",
		stats.Cards, stats.Sets, stats.Duration.Round(100*time.Millisecond))
	_, _ = fmt.Fprintln(r.out, r.styles.Success.Render(summary))

	if stats.Duplicates > 0 || stats.Skipped > 0 || stats.Warnings > 0 {
		detail := fmt.Sprintf("  %d duplicates dropped, %d records skipped, %d warnings",
			stats.Duplicates, stats.Skipped, stats.Warnings)
		_, _ = fmt.Fprintln(r.out, r.styles.Label.Render(detail))
	}
}

// Errors returns the errors recorded during the build.
func (r *PlainRenderer) Errors() []ErrorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ErrorEvent(nil), r.errors...)
}
