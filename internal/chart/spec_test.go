package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

func TestPreset(t *testing.T) {
	assert.Equal(t, []string{"bands", "full"}, PresetNames())

	full, err := Preset("full")
	require.NoError(t, err)
	assert.Len(t, full, 3)

	// A copy: editing it leaves the preset intact.
	full[0].Title = "changed"
	assert.Equal(t, "Cutoff Convergence", PresetFull[0].Title)

	_, err = Preset("nope")
	assert.Error(t, err)
}

func TestPresets_Validate(t *testing.T) {
	for _, name := range PresetNames() {
		specs, err := Preset(name)
		require.NoError(t, err)
		for _, spec := range specs {
			assert.NoError(t, spec.Validate(), "%s: %s", name, spec.Title)
		}
	}
}

func TestPanelSpec_Validate(t *testing.T) {
	base := PanelSpec{
		Title:       "p",
		Fixed:       table.ColGrid,
		Swept:       table.ColCutoff,
		Observables: []table.Column{table.ColEnergy},
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*PanelSpec)
	}{
		{"bad mode", func(s *PanelSpec) { s.Mode = "log" }},
		{"unknown column", func(s *PanelSpec) { s.Fixed = "pressure" }},
		{"no observables", func(s *PanelSpec) { s.Observables = nil }},
		{"bad annotation", func(s *PanelSpec) { s.Annotate = "colour" }},
		{"negative tolerance", func(s *PanelSpec) {
			s.Tolerances = []ToleranceSpec{{Observable: table.ColEnergy, Value: -1}}
		}},
		{"tolerance without default", func(s *PanelSpec) {
			s.Tolerances = []ToleranceSpec{{Observable: table.ColTotalTime}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			spec.Observables = append([]table.Column(nil), base.Observables...)
			tt.mutate(&spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestPanelSpec_Sweep(t *testing.T) {
	sweep, err := PresetFull[2].Sweep()
	require.NoError(t, err)
	assert.Equal(t, table.ColCutoff, sweep.Fixed)
	assert.Equal(t, table.ColFineGmax, sweep.Swept)
	assert.Equal(t, table.ColGrid, sweep.DuplicateOn)
	assert.Equal(t, converge.ModeAbsolute, sweep.Mode)

	sweep, err = PresetBands[0].Sweep()
	require.NoError(t, err)
	assert.Equal(t, converge.ModeSigned, sweep.Mode)

	assert.Contains(t, PresetFull[0].Columns(), table.ColFineGridScale)
	assert.NotContains(t, PresetBands[0].Columns(), table.ColFineGridScale)
}
