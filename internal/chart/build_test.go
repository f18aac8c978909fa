package chart

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

const inputsTable = `Kpoint Cutoff_(eV/ion) fine_Gmax_(1/A) fine_grid_scale Cutoff_run Kpt_run fGmax_run Total_time_(s) Energy_(eV/ion) Force_(eV/A) Stress_(GPa)
4x4x4 200 12 2 T F F 10 1.0 0.10 0.50
4x4x4 300 12 2 T F F 20 1.0002 0.12 0.60
4x4x4 400 12 2 T F F 30 1.00005 0.11 0.55
4x4x4 500 12 2 T F F 40 1.0 0.11 0.55
2x2x2 500 12 2 F T F 5 1.01 0.20 0.90
6x6x6 500 12 2 F T F 60 1.0001 0.11 0.56
8x8x8 500 12 2 F T F 90 1.0 0.11 0.55
4x4x4 500 14 1.5 F F T 45 1.00001 0.11 0.55
4x4x4 500 16 1.5 F F T 50 1.0 0.11 0.55
`

const outputsTable = `Kpoint Cutoff_(eV) Energy_(eV/ion) Force_(eV/A) Stress_(GPa)
4x4x4 200 -107.1 0.02 0.3
4x4x4 300 -107.2 0.01 0.2
4x4x4 400 -107.25 0.00 0.1
2x2x2 400 -107.0 0.05 0.9
6x6x6 400 -107.26 0.00 0.1
`

func parseTable(t *testing.T, src string) *table.Table {
	t.Helper()
	tbl, err := table.Parse(strings.NewReader(src), "Si_converger.dat")
	require.NoError(t, err)
	return tbl
}

func lineLabels(p *Panel) []string {
	labels := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		labels[i] = l.Label
	}
	return labels
}

func TestBuild_PresetFull(t *testing.T) {
	fig, err := Build(parseTable(t, inputsTable), PresetFull, converge.DefaultNoiseFloor)
	require.NoError(t, err)
	require.Len(t, fig.Panels, 3)
	assert.Equal(t, "Si_converger.dat", fig.Source)

	t.Run("cutoff", func(t *testing.T) {
		p := fig.Panels[0]
		assert.Equal(t, "Cutoff Convergence", p.Title)
		assert.Equal(t, "Cutoff (eV)", p.XLabel)
		assert.Equal(t, 1e-6, p.Threshold)
		assert.Equal(t, "Value, diff or absolute\n(log scale for |y|>1.0e-06)", p.YLabel)
		assert.True(t, p.ClampZero)
		assert.Nil(t, p.XTicks)
		assert.Equal(t, []string{"4x4x4"}, p.Groups.Keys())
		assert.Equal(t, []string{
			"Total time (s), 4x4x4, fGridScale 2",
			"Energy (eV/ion), 4x4x4, fGridScale 2",
			"Force (eV/A), 4x4x4, fGridScale 2",
			"Stress (GPa), 4x4x4, fGridScale 2",
		}, lineLabels(p))
		assert.True(t, p.Lines[0].Raw)
		assert.Equal(t, []float64{10, 20, 30, 40}, p.Lines[0].Y)
		assert.InDelta(t, 0.0002, p.Lines[1].Y[1], 1e-12)

		require.Len(t, p.Refs, 3)
		assert.Equal(t, RefLine{Label: "Energy tolerance", Y: 4e-5, Style: StyleDashed}, p.Refs[0])
		assert.Equal(t, RefLine{Label: "Force tolerance", Y: 0.05, Style: StyleDashDot}, p.Refs[1])
		assert.Equal(t, RefLine{Label: "Stress tolerance", Y: 0.1, Style: StyleDotted}, p.Refs[2])
	})

	t.Run("kpoint", func(t *testing.T) {
		p := fig.Panels[1]
		assert.Equal(t, []string{"500"}, p.Groups.Keys())
		assert.Equal(t, "Energy (eV/ion), 500 eV, fGmax 12", p.Lines[1].Label)
		assert.Equal(t, []float64{8, 216, 512}, p.Lines[0].X)
		assert.Equal(t, []XTick{
			{Value: 8, Label: "2x2x2"},
			{Value: 216, Label: "6x6x6"},
			{Value: 512, Label: "8x8x8"},
		}, p.XTicks)
		assert.Equal(t, 1e-6, p.Threshold)
		assert.True(t, strings.HasPrefix(p.YLabel, "|Difference from Maximum|\n"))
	})

	t.Run("fine gmax", func(t *testing.T) {
		p := fig.Panels[2]
		assert.Equal(t, []string{"500"}, p.Groups.Keys())
		assert.Equal(t, "Energy (eV/ion), 500 eV, 4x4x4", p.Lines[1].Label)
		assert.Equal(t, []float64{14, 16}, p.Lines[1].X)
		assert.Equal(t, 1e-6, p.Threshold)
	})
}

func TestBuild_PresetBands(t *testing.T) {
	fig, err := Build(parseTable(t, outputsTable), PresetBands, converge.DefaultNoiseFloor)
	require.NoError(t, err)
	require.Len(t, fig.Panels, 2)

	cutoff := fig.Panels[0]
	assert.Equal(t, converge.ModeSigned, cutoff.Mode)
	assert.False(t, cutoff.ClampZero)
	assert.Equal(t, []string{"4x4x4"}, cutoff.Groups.Keys())
	assert.Equal(t, "Energy (eV/ion), 4x4x4", cutoff.Lines[0].Label)
	assert.InDeltaSlice(t, []float64{0.15, 0.05, 0}, cutoff.Lines[0].Y, 1e-9)
	assert.Equal(t,
		fmt.Sprintf("Difference from Maximum (symlog scale for |y|>%.1e)", cutoff.Threshold),
		cutoff.YLabel)
	assert.LessOrEqual(t, cutoff.Threshold, 1e-3)

	require.Len(t, cutoff.Refs, 6)
	assert.Equal(t, "Energy tolerance", cutoff.Refs[0].Label)
	assert.Equal(t, 4e-5, cutoff.Refs[0].Y)
	assert.Equal(t, "", cutoff.Refs[1].Label)
	assert.Equal(t, -4e-5, cutoff.Refs[1].Y)
	assert.Equal(t, cutoff.Refs[0].Style, cutoff.Refs[1].Style)

	kpt := fig.Panels[1]
	assert.Equal(t, "Kpoint Convergence", kpt.Title)
	assert.Equal(t, []string{"400"}, kpt.Groups.Keys())
	assert.Equal(t, "Energy (eV/ion), 400 eV", kpt.Lines[0].Label)
	assert.Len(t, kpt.XTicks, 3)
}

func TestBuild_SingletonFamilyHasNoLines(t *testing.T) {
	tbl := parseTable(t, `Kpoint Cutoff Energy Force Stress
4x4x4 200 -107.1 0.02 0.3
4x4x4 300 -107.2 0.01 0.2
4x4x4 400 -107.25 0.00 0.1
6x6x6 300 -107.26 0.00 0.1
`)
	fig, err := Build(tbl, PresetBands[:1], converge.DefaultNoiseFloor)
	require.NoError(t, err)
	require.Len(t, fig.Panels, 1)

	p := fig.Panels[0]
	assert.Equal(t, []string{"4x4x4"}, p.Groups.Keys())
	assert.Equal(t, []string{"Energy, 4x4x4", "Force, 4x4x4", "Stress, 4x4x4"}, lineLabels(p))
	for _, l := range p.Lines {
		assert.Equal(t, "4x4x4", l.Group)
		assert.Equal(t, []float64{200, 300, 400}, l.X)
	}
}

func TestBuild_MissingColumn(t *testing.T) {
	_, err := Build(parseTable(t, outputsTable), PresetFull, converge.DefaultNoiseFloor)
	require.Error(t, err)
	assert.Equal(t, table.CodeMissingColumn, table.ErrorCodeOf(err))
	assert.Contains(t, err.Error(), "Cutoff Convergence")
}

func TestBuild_NoGroupsGivesEmptyPanel(t *testing.T) {
	tbl := parseTable(t, `Kpoint Cutoff Energy Force Stress
4x4x4 200 -1.0 0.1 0.1
2x2x2 300 -1.1 0.1 0.1
`)
	fig, err := Build(tbl, []PanelSpec{{
		Fixed:       table.ColGrid,
		Swept:       table.ColCutoff,
		Observables: []table.Column{table.ColEnergy},
	}}, converge.DefaultNoiseFloor)
	require.NoError(t, err)
	require.Len(t, fig.Panels, 1)

	p := fig.Panels[0]
	assert.Empty(t, p.Lines)
	assert.Equal(t, 1.0, p.Threshold)
	assert.Equal(t, "Cutoff Convergence", p.Title)
	assert.Equal(t, "Cutoff", p.XLabel)
	assert.Equal(t, "|Difference from Maximum|\n(log scale for |y|>1.0e+00)", p.YLabel)
}

func TestBuild_CustomTolerance(t *testing.T) {
	tbl := parseTable(t, outputsTable)
	fig, err := Build(tbl, []PanelSpec{{
		Fixed:               table.ColGrid,
		Swept:               table.ColCutoff,
		Observables:         []table.Column{table.ColEnergy},
		Tolerances:          []ToleranceSpec{{Observable: table.ColEnergy, Value: 2e-8, Label: "tight"}},
		ScaleWithTolerances: true,
	}}, converge.DefaultNoiseFloor)
	require.NoError(t, err)

	p := fig.Panels[0]
	require.Len(t, p.Refs, 1)
	assert.Equal(t, RefLine{Label: "tight", Y: 2e-8, Style: StyleDashed}, p.Refs[0])
	assert.Equal(t, 1e-9, p.Threshold)
}
