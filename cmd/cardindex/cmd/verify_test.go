package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhound/cardindex/internal/artifact"
)

func buildFixtureIndex(t *testing.T) string {
	t.Helper()
	setsFile, cardsDir, outputDir := writeCatalogFixture(t)
	_, err := execute(t, "build", "--quiet",
		"--sets", setsFile, "--cards", cardsDir, "--output", outputDir)
	require.NoError(t, err)
	return outputDir
}

func TestVerifyCmd_CleanIndexPasses(t *testing.T) {
	// Given: a freshly built index
	outputDir := buildFixtureIndex(t)

	// When: verify runs with JSON output
	out, err := execute(t, "verify", "--json", "--dir", outputDir)

	// Then: the index passes
	require.NoError(t, err)
	var result VerifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.OK)
	assert.Empty(t, result.Issues)
	assert.Positive(t, result.Checked)
}

func TestVerifyCmd_DetectsCorruption(t *testing.T) {
	// Given: a generation whose type index references an unknown card
	outputDir := buildFixtureIndex(t)
	typePath := filepath.Join(outputDir, artifact.FileTypeIndex)
	require.NoError(t, os.WriteFile(typePath, []byte(`{"fire": ["ghost-card"]}`), 0o644))

	// When: verify runs
	out, err := execute(t, "verify", "--json", "--dir", outputDir)

	// Then: the run fails and the issue is reported
	require.Error(t, err)
	var result VerifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Issues)
}

func TestVerifyCmd_TextOutputListsIssues(t *testing.T) {
	outputDir := buildFixtureIndex(t)
	typePath := filepath.Join(outputDir, artifact.FileTypeIndex)
	require.NoError(t, os.WriteFile(typePath, []byte(`{"Fire": ["b1-4"]}`), 0o644))

	out, err := execute(t, "verify", "--dir", outputDir)

	require.Error(t, err)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "key_not_lower")
}

func TestVerifyCmd_MissingIndexFails(t *testing.T) {
	_, err := execute(t, "verify", "--dir", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load index")
}
