package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckhound/cardindex/internal/artifact"
	"github.com/deckhound/cardindex/internal/config"
	"github.com/deckhound/cardindex/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var jsonOutput bool
	var dir string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for the published index",
		Long: `Display the metadata of the current index generation: when it was
built, how many cards and sets it covers, and the entry count of each
index artifact.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, jsonOutput, dir)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to the configured output dir)")

	return cmd
}

func runStats(cmd *cobra.Command, jsonOutput bool, dir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = cfg.Output.Dir
	}

	meta, err := artifact.ReadMetadata(dir)
	if err != nil {
		return fmt.Errorf("no index found in %s\nRun 'cardindex build' to create one: %w", dir, err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	styles := ui.DefaultStyles()
	if noColor || !ui.IsTTY(cmd.OutOrStdout()) {
		styles = ui.NoColorStyles()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Header.Render("Index Statistics"))
	created := meta.CreatedAt
	if ts, parseErr := time.Parse(time.RFC3339, meta.CreatedAt); parseErr == nil {
		created = fmt.Sprintf("%s (%s ago)", meta.CreatedAt, time.Since(ts).Round(time.Second))
	}
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("Created:"), created)
	fmt.Fprintf(out, "%s %d\n", styles.Label.Render("Cards:  "), meta.TotalCards)
	fmt.Fprintf(out, "%s %d\n", styles.Label.Render("Sets:   "), meta.TotalSets)
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render("Indexes"))

	names := make([]string, 0, len(meta.Indexes))
	for name := range meta.Indexes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		stats := meta.Indexes[name]
		fmt.Fprintf(out, "  %-12s %8d entries  %s\n",
			name, stats.Entries, styles.Dim.Render(stats.File))
	}

	return nil
}
