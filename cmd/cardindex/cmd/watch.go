package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deckhound/cardindex/internal/index"
	"github.com/deckhound/cardindex/internal/ui"
	"github.com/deckhound/cardindex/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever the catalog changes",
		Long: `Build the index, then keep watching the set catalog and the card
file directory. Bursts of file changes are coalesced into a single
rebuild. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	addBuildFlags(cmd, opts)
	return cmd
}

func runWatch(cmd *cobra.Command, opts *buildOptions) error {
	cfg, err := loadBuildConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer := ui.NewRenderer(ui.Config{
		Output:  cmd.ErrOrStderr(),
		NoColor: noColor,
		Quiet:   quiet,
	})

	// One runner for the whole session so repeated builds reuse the
	// card file cache.
	runner, err := index.NewRunner(index.RunnerDependencies{
		Renderer: renderer,
		Config:   cfg,
	})
	if err != nil {
		return err
	}

	if _, err := runner.Run(ctx); err != nil {
		return err
	}

	w := watcher.New(watcher.Options{
		SetsFile:       cfg.Catalog.SetsFile,
		CardsDir:       cfg.Catalog.CardsDir,
		DebounceWindow: cfg.WatchDebounce(),
	})
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for catalog changes. Press Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-w.Batches():
			if !ok {
				return nil
			}
			slog.Info("catalog changed, rebuilding",
				slog.Int("changes", len(batch)))
			if _, err := runner.Run(ctx); err != nil {
				// A failed rebuild leaves the prior generation in
				// place, so keep watching.
				slog.Error("rebuild failed", slog.String("error", err.Error()))
				renderer.AddError(ui.ErrorEvent{Err: err})
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			slog.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}
