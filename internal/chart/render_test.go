package chart

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/roach88/converger/internal/converge"
)

func fullFigure(t *testing.T) *Figure {
	t.Helper()
	fig, err := Build(parseTable(t, inputsTable), PresetFull, converge.DefaultNoiseFloor)
	require.NoError(t, err)
	return fig
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	size := Size{Width: 6 * vg.Inch, PanelHeight: 3 * vg.Inch}
	require.NoError(t, WritePNG(fullFigure(t), &buf, size))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	// Three panels at 3in and the default 96 dpi; the legend column widens
	// the image beyond the plot width.
	assert.Equal(t, 3*3*96, bounds.Dy())
	assert.Greater(t, bounds.Dx(), 6*96)
}

func TestWritePNG_SignedAndEmptyPanels(t *testing.T) {
	fig, err := Build(parseTable(t, outputsTable), PresetBands, converge.DefaultNoiseFloor)
	require.NoError(t, err)
	fig.Panels = append(fig.Panels, &Panel{Title: "empty", Threshold: 1})

	var buf bytes.Buffer
	require.NoError(t, WritePNG(fig, &buf, DefaultSize))
	_, err = png.Decode(&buf)
	require.NoError(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Si_converger.png")
	require.NoError(t, SavePNG(fullFigure(t), path, DefaultSize))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePNG_Errors(t *testing.T) {
	err := SavePNG(&Figure{}, filepath.Join(t.TempDir(), "x.png"), DefaultSize)
	assert.True(t, errors.Is(err, ErrEmptyFigure))

	err = SavePNG(fullFigure(t), filepath.Join(t.TempDir(), "missing", "x.png"), DefaultSize)
	require.Error(t, err)
	assert.True(t, IsOutputError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(fullFigure(t), &buf))

	html := buf.String()
	assert.Contains(t, html, "Cutoff Convergence")
	assert.Contains(t, html, "Fine Gmax Convergence")
	assert.Contains(t, html, "Energy tolerance")
	assert.Contains(t, html, "Energy (eV/ion), 4x4x4, fGridScale 2")
	assert.True(t, strings.Contains(html, "echarts"))
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Si_converger.html")
	require.NoError(t, SaveHTML(fullFigure(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Kpoint Convergence")

	err = SaveHTML(nil, path)
	assert.True(t, errors.Is(err, ErrEmptyFigure))
}
