package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDirs points the global config locations at temporary directories.
// It uses t.Setenv, so callers must not be parallel.
func setupDirs(t *testing.T) (workingDir string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("VLIST_DEBUG", "")
	t.Setenv("VLIST_ITEM_HEIGHT", "")
	workingDir = filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(workingDir, 0o755))
	return workingDir
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	wd := setupDirs(t)

	cfg, err := Load(wd, false)
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.WorkingDir())
	assert.Equal(t, 1, cfg.List.ItemHeight)
	assert.Equal(t, 2, cfg.List.WheelStep)
	assert.Equal(t, 4096, cfg.List.HeightCacheSize)
	assert.Equal(t, 10_000, cfg.Source.Items)
	assert.False(t, cfg.Options.Debug)
	assert.Equal(t, filepath.Join(wd, ".vlist"), cfg.Options.DataDirectory)
	assert.Equal(t, filepath.Join(wd, ".vlist", "logs", "vlist.log"), cfg.LogFile())
}

func TestLoadMergesFiles(t *testing.T) {
	wd := setupDirs(t)
	writeJSON(t, GlobalConfig(), `{"list": {"item_height": 3, "wheel_step": 5}, "source": {"items": 50}}`)
	writeJSON(t, GlobalConfigData(), `{"source": {"items": 70}}`)
	writeJSON(t, filepath.Join(wd, "vlist.json"), `{"list": {"item_height": 4}}`)
	writeJSON(t, filepath.Join(wd, ".vlist.json"), `{"source": {"key_field": "id"}, "list": {"height_cache_size": -1}}`)

	cfg, err := Load(wd, true)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.List.ItemHeight)
	assert.Equal(t, 5, cfg.List.WheelStep)
	assert.Equal(t, 0, cfg.List.HeightCacheSize, "negative means unbounded")
	assert.Equal(t, 70, cfg.Source.Items)
	assert.Equal(t, "id", cfg.Source.KeyField)
	assert.True(t, cfg.Options.Debug)
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		wd := setupDirs(t)
		writeJSON(t, filepath.Join(wd, "vlist.json"), `{"list": {"item_height": 4}}`)
		t.Setenv("VLIST_ITEM_HEIGHT", "7")
		t.Setenv("VLIST_DEBUG", "true")

		cfg, err := Load(wd, false)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.List.ItemHeight)
		assert.True(t, cfg.Options.Debug)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		wd := setupDirs(t)
		t.Setenv("VLIST_ITEM_HEIGHT", "-2")
		t.Setenv("VLIST_DEBUG", "maybe")

		cfg, err := Load(wd, false)
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.List.ItemHeight)
		assert.False(t, cfg.Options.Debug)
	})
}

func TestLoadInvalidFile(t *testing.T) {
	wd := setupDirs(t)
	writeJSON(t, filepath.Join(wd, "vlist.json"), `{"list": `)

	_, err := Load(wd, false)
	assert.Error(t, err)
}

func TestSetConfigField(t *testing.T) {
	wd := setupDirs(t)

	cfg, err := Load(wd, false)
	require.NoError(t, err)

	require.NoError(t, cfg.SetConfigField("list.wheel_step", 9))
	require.NoError(t, cfg.SetItemHeight(3))
	assert.Equal(t, 3, cfg.List.ItemHeight)
	assert.Error(t, cfg.SetItemHeight(0))

	data, err := os.ReadFile(GlobalConfigData())
	require.NoError(t, err)
	assert.JSONEq(t, `{"list": {"wheel_step": 9, "item_height": 3}}`, string(data))

	reloaded, err := Load(wd, false)
	require.NoError(t, err)
	assert.Equal(t, 9, reloaded.List.WheelStep)
	assert.Equal(t, 3, reloaded.List.ItemHeight)
}

func TestGet(t *testing.T) {
	wd := setupDirs(t)
	writeJSON(t, filepath.Join(wd, "vlist.json"), `{"source": {"file": "items.json"}}`)

	cfg, err := Load(wd, false)
	require.NoError(t, err)

	v, err := cfg.Get("list.item_height")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int())

	v, err = cfg.Get("source.file")
	require.NoError(t, err)
	assert.Equal(t, "items.json", v.String())

	v, err = cfg.Get("source.nope")
	require.NoError(t, err)
	assert.False(t, v.Exists())

	v, err = cfg.Get("")
	require.NoError(t, err)
	assert.True(t, v.IsObject())
}
