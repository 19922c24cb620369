package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deckhound/cardindex/internal/config"
	"github.com/deckhound/cardindex/internal/index"
	"github.com/deckhound/cardindex/internal/ui"
)

// buildOptions are the catalog and output overrides shared by build and the
// zero-argument default run.
type buildOptions struct {
	setsFile  string
	cardsDir  string
	outputDir string
	prefixCap int
}

func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build and publish a new index generation",
		Long: `Read the set catalog and per-set card files, project them into
search records, and publish the full artifact set atomically. A prior
generation in the output directory is replaced wholesale.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	addBuildFlags(cmd, opts)
	return cmd
}

func addBuildFlags(cmd *cobra.Command, opts *buildOptions) {
	cmd.Flags().StringVar(&opts.setsFile, "sets", "", "Path to the set catalog JSON file")
	cmd.Flags().StringVar(&opts.cardsDir, "cards", "", "Directory of per-set card files")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Directory to publish artifacts to")
	cmd.Flags().IntVar(&opts.prefixCap, "prefix-cap", 0, "Max ids per partial name prefix (0 = config default)")
}

// loadBuildConfig loads configuration and applies flag overrides.
func loadBuildConfig(opts *buildOptions) (*config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	if opts.setsFile != "" {
		cfg.Catalog.SetsFile = opts.setsFile
	}
	if opts.cardsDir != "" {
		cfg.Catalog.CardsDir = opts.cardsDir
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}
	if opts.prefixCap > 0 {
		cfg.Index.PrefixCap = opts.prefixCap
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	cfg, err := loadBuildConfig(opts)
	if err != nil {
		return err
	}

	renderer := ui.NewRenderer(ui.Config{
		Output:  cmd.ErrOrStderr(),
		NoColor: noColor,
		Quiet:   quiet,
	})

	runner, err := index.NewRunner(index.RunnerDependencies{
		Renderer: renderer,
		Config:   cfg,
	})
	if err != nil {
		return err
	}

	_, err = runner.Run(cmd.Context())
	return err
}
