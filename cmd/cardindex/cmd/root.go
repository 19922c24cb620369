// Package cmd provides the CLI commands for cardindex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/deckhound/cardindex/internal/logging"
	"github.com/deckhound/cardindex/pkg/version"
)

// Persistent flags shared by all commands.
var (
	configDir string
	debugMode bool
	noColor   bool
	quiet     bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the cardindex CLI.
func NewRootCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "cardindex",
		Short: "Build search indexes for trading card catalogs",
		Long: `cardindex reads a card catalog from disk and publishes a set of
JSON search index artifacts: a card lookup table, a name prefix index,
and category indexes over set, type, rarity and supertype.

Just run 'cardindex' in a directory with a catalog to build the index.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runBuild(cmd, opts)
		},
	}

	cmd.SetVersionTemplate("cardindex version {{.Version}}\n")

	addBuildFlags(cmd, opts)

	cmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "Directory containing .cardindex.yaml")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.cardindex/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRun = stopLogging

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug file logging when --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
