package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command. Commands share global flag state, so these
// tests never run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func setupConfigDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("VLIST_ITEM_HEIGHT", "")
	t.Setenv("VLIST_DEBUG", "")
	return root
}

func TestConfigCommands(t *testing.T) {
	root := setupConfigDirs(t)

	out, err := run(t, "config", "get", "list.item_height")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = run(t, "config", "set", "list.item_height", "3")
	require.NoError(t, err)
	_, err = run(t, "config", "set", "source.key_field", "id")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "data", "vlist", "vlist.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"list": {"item_height": 3}, "source": {"key_field": "id"}}`, string(data))

	out, err = run(t, "config", "get", "list.item_height")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = run(t, "config", "get", "source")
	require.NoError(t, err)
	assert.Contains(t, out, `"key_field": "id"`)

	_, err = run(t, "config", "get", "list.nope")
	assert.ErrorContains(t, err, "unknown config key")
}

func TestDirsCommand(t *testing.T) {
	root := setupConfigDirs(t)

	out, err := run(t, "dirs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Config directory: "+filepath.Join(root, "config", "vlist"), lines[0])
	assert.Equal(t, "Data directory:   "+filepath.Join(root, "data", "vlist"), lines[1])
}
