package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Chart.Headline)
	assert.Nil(t, cfg.Data.Path)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chart]
headline = "Potholes everywhere"
width = 1200
invalid-count = "error"

[data]
path = "calls.csv"
count-column = "Total"

[serve]
port = 9090
metrics = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Chart.Headline)
	assert.Equal(t, "Potholes everywhere", *cfg.Chart.Headline)
	require.NotNil(t, cfg.Chart.Width)
	assert.Equal(t, 1200, *cfg.Chart.Width)
	require.NotNil(t, cfg.Chart.InvalidCount)
	assert.Equal(t, "error", *cfg.Chart.InvalidCount)
	require.NotNil(t, cfg.Data.Path)
	assert.Equal(t, "calls.csv", *cfg.Data.Path)
	require.NotNil(t, cfg.Data.CountColumn)
	assert.Equal(t, "Total", *cfg.Data.CountColumn)
	assert.Nil(t, cfg.Data.ReasonColumn)
	require.NotNil(t, cfg.Serve.Port)
	assert.Equal(t, 9090, *cfg.Serve.Port)
	require.NotNil(t, cfg.Serve.Metrics)
	assert.False(t, *cfg.Serve.Metrics)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chart]\ncolour = \"red\"\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart.colour")
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "topbars", "config.toml"), DefaultConfigPath())
}
