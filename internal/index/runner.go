// Package index provides the build pipeline Runner and the consistency
// checker for published artifact generations.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckhound/cardindex/internal/artifact"
	"github.com/deckhound/cardindex/internal/catalog"
	"github.com/deckhound/cardindex/internal/config"
	"github.com/deckhound/cardindex/internal/search"
	"github.com/deckhound/cardindex/internal/ui"
)

// RunnerDependencies contains the injected dependencies for Runner.
type RunnerDependencies struct {
	// Renderer for progress display (required).
	Renderer ui.Renderer

	// Config is the loaded build configuration (required).
	Config *config.Config

	// Loader reads the set catalog and card files. Built from Config
	// when nil.
	Loader *catalog.Loader

	// Writer publishes artifact generations. Built from Config when nil.
	Writer *artifact.Writer
}

// Result contains the outcome of a build.
type Result struct {
	// Sets is the number of sets in the catalog.
	Sets int

	// CardsLoaded is the number of cards read before deduplication.
	CardsLoaded int

	// Duplicates is the number of distinct duplicated card ids dropped.
	Duplicates int

	// Records is the number of search records written.
	Records int

	// Skipped is the number of cards rejected during projection.
	Skipped int

	// Metadata is the published generation metadata.
	Metadata search.Metadata

	// Duration is the total build time.
	Duration time.Duration
}

// Runner executes the build pipeline: load, dedupe, project, index, write.
type Runner struct {
	renderer ui.Renderer
	config   *config.Config
	loader   *catalog.Loader
	writer   *artifact.Writer
}

// NewRunner creates a Runner with injected dependencies.
func NewRunner(deps RunnerDependencies) (*Runner, error) {
	if deps.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	loader := deps.Loader
	if loader == nil {
		var err error
		loader, err = catalog.NewLoader(catalog.LoaderOptions{
			SetsFile:  deps.Config.Catalog.SetsFile,
			CardsDir:  deps.Config.Catalog.CardsDir,
			Workers:   deps.Config.Performance.LoadWorkers,
			CacheSize: deps.Config.Performance.CacheSize,
		})
		if err != nil {
			return nil, err
		}
	}

	writer := deps.Writer
	if writer == nil {
		writer = artifact.NewWriter(deps.Config.Output.Dir)
	}

	return &Runner{
		renderer: deps.Renderer,
		config:   deps.Config,
		loader:   loader,
		writer:   writer,
	}, nil
}

// Run executes the full build pipeline and publishes a new generation.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageLoading,
		Message: "reading set catalog",
	})

	sets, err := r.loader.LoadSets()
	if err != nil {
		return nil, err
	}

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageLoading,
		Current: 0,
		Total:   len(sets),
		Message: "reading card files",
	})

	cards, err := r.loader.LoadCards(ctx, sets)
	if err != nil {
		return nil, err
	}

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageDeduping,
		Message: fmt.Sprintf("%d cards loaded", len(cards)),
	})

	unique, dupIDs := catalog.Dedupe(cards)
	for _, id := range dupIDs {
		r.renderer.AddError(ui.ErrorEvent{
			CardID: id,
			Err:    fmt.Errorf("duplicate card id, keeping first occurrence"),
			IsWarn: true,
		})
	}

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageProjecting,
		Message: fmt.Sprintf("%d cards", len(unique)),
	})

	setsByID := make(map[string]catalog.Set, len(sets))
	for _, s := range sets {
		setsByID[s.ID] = s
	}

	records, projErrs := search.ProjectAll(unique, setsByID)
	for _, perr := range projErrs {
		r.renderer.AddError(ui.ErrorEvent{Err: perr, IsWarn: true})
		slog.Warn("card rejected during projection", slog.String("error", perr.Error()))
	}

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageIndexing,
		Message: fmt.Sprintf("%d records", len(records)),
	})

	indexes := search.BuildAll(records, search.PrefixOptions{
		Cap:           r.config.Index.PrefixCap,
		MinWordLength: r.config.Index.MinWordLength,
	})

	meta := search.BuildMetadata(indexes, len(sets), artifact.Files(), time.Now())

	r.renderer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StageWriting,
		Message: r.config.Output.Dir,
	})

	if err := r.writer.Write(indexes, meta); err != nil {
		return nil, err
	}

	result := &Result{
		Sets:        len(sets),
		CardsLoaded: len(cards),
		Duplicates:  len(dupIDs),
		Records:     len(records),
		Skipped:     len(projErrs),
		Metadata:    meta,
		Duration:    time.Since(start),
	}

	r.renderer.Complete(ui.CompletionStats{
		Sets:       result.Sets,
		Cards:      result.Records,
		Duplicates: result.Duplicates,
		Skipped:    result.Skipped,
		Duration:   result.Duration,
		Warnings:   result.Duplicates + result.Skipped,
	})

	slog.Info("build complete",
		slog.Int("sets", result.Sets),
		slog.Int("cards", result.Records),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration))

	return result, nil
}
