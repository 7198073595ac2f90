package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/topbars/internal/config"
	"github.com/verte-zerg/topbars/internal/output"
)

const sampleCSV = `reason,Count
Parking Enforcement,41230
Abandoned Vehicles,12345
Street Lights,999
Graffiti,not-a-number
`

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "reasons.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderJSON(t *testing.T) {
	data := setup(t)
	out, err := execute(t, "--data", data, "--format", "json", "--top", "2")
	require.NoError(t, err)

	var g struct {
		Bars []struct {
			Reason string  `json:"reason"`
			Count  float64 `json:"count"`
		} `json:"bars"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Bars, 2)
	assert.Equal(t, "Parking Enforcement", g.Bars[0].Reason)
	assert.Equal(t, "Abandoned Vehicles", g.Bars[1].Reason)
}

func TestRenderToFileInfersFormat(t *testing.T) {
	data := setup(t)
	out := filepath.Join(t.TempDir(), "charts", "top.svg")
	_, err := execute(t, "--data", data, "--out", out, "--width", "800")
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "<?xml"))
	assert.Contains(t, string(content), `viewBox="0 0 800 228"`)
}

func TestRenderLoadFailureWritesFallback(t *testing.T) {
	setup(t)
	out := filepath.Join(t.TempDir(), "page.html")
	_, err := execute(t, "--data", filepath.Join(t.TempDir(), "missing.csv"), "--out", out)
	require.Error(t, err)

	content, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "Failed to load data.")
}

func TestRenderInvalidCountErrorPolicy(t *testing.T) {
	data := setup(t)
	out, err := execute(t, "--data", data, "--format", "json", "--invalid-count", "error")
	require.Error(t, err)
	assert.JSONEq(t, `{"error":"Failed to load data."}`, out)
}

func TestTopCommand(t *testing.T) {
	data := setup(t)
	out, err := execute(t, "top", "--data", data, "--top", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rank  Reason                Count", lines[0])
	assert.Equal(t, "   1  Parking Enforcement  41,230", lines[1])
}

func TestConfigFileAppliesUnlessFlagChanged(t *testing.T) {
	data := setup(t)
	cfgPath := config.DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	content := "[chart]\ntop = 1\nheadline = \"From config\"\n[data]\npath = " + `"` + filepath.ToSlash(data) + `"` + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	out, err := execute(t, "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "- reason:"))

	out, err = execute(t, "--format", "yaml", "--top", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "- reason:"))

	out, err = execute(t, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="main-headline">From config</h1>`)
}

func TestValidation(t *testing.T) {
	data := setup(t)
	_, err := execute(t, "--data", data, "--top", "0")
	assert.ErrorContains(t, err, "--top")
	_, err = execute(t, "--data", data, "--invalid-count", "skip")
	assert.ErrorContains(t, err, "invalid-count")
	_, err = execute(t, "--data", data, "--format", "gif")
	assert.ErrorContains(t, err, "unknown format")
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Chart.Headline)
	assert.Nil(t, cfg.Serve.Port)
}

func TestResolveFormat(t *testing.T) {
	f, err := resolveFormat("", "chart.png")
	require.NoError(t, err)
	assert.Equal(t, output.FormatPNG, f)
	f, err = resolveFormat("text", "chart.png")
	require.NoError(t, err)
	assert.Equal(t, output.FormatText, f)
	f, err = resolveFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, output.FormatHTML, f)
}
