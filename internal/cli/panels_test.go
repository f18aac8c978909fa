package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/config"
	"github.com/roach88/converger/internal/testutil"
)

func TestPanels_YAMLIsLoadable(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "panels", "--preset", "bands")
	require.NoError(t, err)
	assert.Contains(t, out, "preset: bands")
	assert.Contains(t, out, "swept: grid_size")

	cfg, err := config.Load(testutil.WriteFile(t, dir, "bands.yaml", out))
	require.NoError(t, err)
	assert.Equal(t, chart.PresetBands, cfg.Panels)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
}

func TestPanels_FromConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "converger.yaml", "output: custom.png\npreset: bands\n")

	out, err := execute(t, "panels", "--config", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   config.Config `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "custom.png", resp.Data.Output)
	assert.Len(t, resp.Data.Panels, 2)
}

func TestPanels_UnknownPreset(t *testing.T) {
	out, err := execute(t, "panels", "--preset", "fancy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}
