package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckhound/cardindex/internal/artifact"
	"github.com/deckhound/cardindex/internal/config"
	"github.com/deckhound/cardindex/internal/index"
	"github.com/deckhound/cardindex/internal/ui"
)

func newVerifyCmd() *cobra.Command {
	var jsonOutput bool
	var dir string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a published index generation for consistency",
		Long: `Load the artifact set from the output directory and verify it:
every id referenced by an index must resolve through the card lookup,
keys must be normalized, partial name prefixes must respect the cap,
and metadata counts must match the artifacts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, jsonOutput, dir)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to the configured output dir)")

	return cmd
}

// VerifyOutput is the JSON output format for verify results.
type VerifyOutput struct {
	OK      bool          `json:"ok"`
	Checked int           `json:"checked"`
	Issues  []VerifyIssue `json:"issues"`
}

// VerifyIssue describes one detected inconsistency.
type VerifyIssue struct {
	Type    string `json:"type"`
	Index   string `json:"index"`
	Key     string `json:"key,omitempty"`
	Details string `json:"details,omitempty"`
}

func runVerify(cmd *cobra.Command, jsonOutput bool, dir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = cfg.Output.Dir
	}

	gen, err := artifact.ReadGeneration(dir)
	if err != nil {
		return fmt.Errorf("failed to load index from %s: %w", dir, err)
	}

	result := index.NewConsistencyChecker(cfg.Index.PrefixCap).Check(gen)

	if jsonOutput {
		out := VerifyOutput{
			OK:      result.OK(),
			Checked: result.Checked,
			Issues:  make([]VerifyIssue, 0, len(result.Inconsistencies)),
		}
		for _, issue := range result.Inconsistencies {
			out.Issues = append(out.Issues, VerifyIssue{
				Type:    issue.Type.String(),
				Index:   issue.Index,
				Key:     issue.Key,
				Details: issue.Details,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		styles := ui.DefaultStyles()
		if noColor || !ui.IsTTY(cmd.OutOrStdout()) {
			styles = ui.NoColorStyles()
		}

		if result.OK() {
			fmt.Fprintln(cmd.OutOrStdout(),
				styles.Success.Render(fmt.Sprintf("OK: %d entries checked in %s", result.Checked, result.Duration.Round(time.Millisecond))))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(),
				styles.Error.Render(fmt.Sprintf("FAILED: %d issues in %d entries", len(result.Inconsistencies), result.Checked)))
			for _, issue := range result.Inconsistencies {
				line := fmt.Sprintf("  [%s] index=%s key=%q %s", issue.Type, issue.Index, issue.Key, issue.Details)
				fmt.Fprintln(cmd.OutOrStdout(), styles.Label.Render(line))
			}
		}
	}

	if !result.OK() {
		return fmt.Errorf("index is inconsistent: %d issues", len(result.Inconsistencies))
	}
	return nil
}
