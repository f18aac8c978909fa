package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

func testFigure() *chart.Figure {
	return &chart.Figure{
		Source: "Si_converger.dat",
		Panels: []*chart.Panel{
			{
				Spec:      chart.PanelSpec{Fixed: table.ColGrid, Swept: table.ColCutoff},
				Title:     "Cutoff Convergence",
				Mode:      converge.ModeAbsolute,
				Threshold: 0.01,
				Groups: converge.Groups{
					{
						Key:       "4x4x4",
						X:         []float64{200, 300, 400},
						Reference: 2,
						Diffs: []converge.Series{
							{Column: table.ColEnergy, Values: []float64{0.5, 0.25, 0}},
							{Column: table.ColForce, Values: []float64{0.125, math.NaN(), 0}},
						},
						Raw: []converge.Series{
							{Column: table.ColTotalTime, Values: []float64{10, 20, 30}},
						},
					},
				},
			},
			{
				Spec:      chart.PanelSpec{Fixed: table.ColCutoff, Swept: table.ColGridSize},
				Title:     "Kpoint Convergence",
				Mode:      converge.ModeSigned,
				Threshold: 1,
			},
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestNew(t *testing.T) {
	r := New("run-0001", testFigure())

	assert.Equal(t, "run-0001", r.RunID)
	assert.Equal(t, "Si_converger.dat", r.Input)
	require.Len(t, r.Panels, 2)
	assert.Equal(t, "absolute", r.Panels[0].Mode)
	assert.Equal(t, Value(400), r.Panels[0].Groups[0].Reference)
	assert.NotNil(t, r.Panels[1].Groups)
	assert.Empty(t, r.Panels[1].Groups)
	assert.Equal(t, 1, r.GroupCount())
}

func TestReport_JSON(t *testing.T) {
	data, err := json.MarshalIndent(New("run-0001", testFigure()), "", "  ")
	require.NoError(t, err)
	golden(t).Assert(t, "report_json", append(data, '\n'))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, New("run-0001", testFigure())))
	golden(t).Assert(t, "report_text", buf.Bytes())
}

var errClosed = errors.New("closed")

// limitedWriter accepts n writes and fails every write after that.
type limitedWriter struct {
	n      int
	writes int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.n {
		return 0, errClosed
	}
	return len(p), nil
}

func TestWriteText_WriteErrors(t *testing.T) {
	r := New("run-0001", testFigure())
	counter := &limitedWriter{n: math.MaxInt}
	require.NoError(t, WriteText(counter, r))
	require.Greater(t, counter.writes, 2)

	for n := 0; n < counter.writes; n++ {
		err := WriteText(&limitedWriter{n: n}, r)
		assert.ErrorIs(t, err, errClosed, "failing after %d write(s)", n)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		v    Value
		json string
		text string
	}{
		{0, "0", "0"},
		{2e-4, "0.0002", "0.0002"},
		{1e-21, "1e-21", "1e-21"},
		{-0.15, "-0.15", "-0.15"},
		{Value(math.NaN()), "null", "-"},
		{Value(math.Inf(1)), "null", "+Inf"},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.v)
		require.NoError(t, err)
		assert.Equal(t, tt.json, string(data))
		assert.Equal(t, tt.text, tt.v.String())
	}
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	var gen IDGenerator = UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14])
}
