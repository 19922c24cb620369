package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_HasBuildFlags(t *testing.T) {
	// Given: the watch command
	cmd := newWatchCmd()

	// Then: it shares the build overrides
	for _, name := range []string{"sets", "cards", "output", "prefix-cap"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestWatchCmd_Registered(t *testing.T) {
	root := NewRootCmd()

	watchCmd, _, err := root.Find([]string{"watch"})
	require.NoError(t, err)
	assert.Equal(t, "watch", watchCmd.Name())
	assert.NotEmpty(t, watchCmd.Short)
}

func TestWatchCmd_MissingCatalogFailsFast(t *testing.T) {
	// Given: a catalog that does not exist
	dir := t.TempDir()

	// When: watch starts
	_, err := execute(t, "watch", "--quiet",
		"--sets", dir+"/nope.json", "--cards", dir+"/cards",
		"--output", dir+"/index")

	// Then: the initial build fails and watch exits
	require.Error(t, err)
}
