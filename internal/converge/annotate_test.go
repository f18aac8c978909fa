package converge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/converger/internal/table"
)

func fineRows(pairs ...[2]float64) []table.Row {
	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		rows[i] = table.Row{Grid: "4x4x4", FineGmax: p[0], FineGridScale: p[1]}
	}
	return rows
}

func TestFineGridLabel(t *testing.T) {
	tests := []struct {
		name   string
		rows   []table.Row
		want   string
		strict string
	}{
		{
			name:   "constant scale",
			rows:   fineRows([2]float64{12, 2}, [2]float64{14, 2}, [2]float64{16, 2}),
			want:   "fGridScale 2",
			strict: "fGridScale 2",
		},
		{
			name:   "constant scale and gmax",
			rows:   fineRows([2]float64{12, 2}, [2]float64{12, 2}),
			want:   "fGridScale 2",
			strict: "fGmax 12",
		},
		{
			name:   "varying scale",
			rows:   fineRows([2]float64{18, 2}, [2]float64{18, 1.5}, [2]float64{12, 3}),
			want:   "fGmax 18",
			strict: "fGmax 18",
		},
		{
			name:   "tied gmax takes smallest",
			rows:   fineRows([2]float64{20, 1}, [2]float64{12.5, 2}),
			want:   "fGmax 12.5",
			strict: "fGmax 12.5",
		},
		{
			name:   "missing fine grid",
			rows:   fineRows([2]float64{math.NaN(), math.NaN()}),
			want:   "",
			strict: "",
		},
		{name: "no rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FineGridLabel(tt.rows))
			assert.Equal(t, tt.strict, StrictFineGridLabel(tt.rows))
		})
	}
}

func TestGridLabel(t *testing.T) {
	assert.Equal(t, "", GridLabel(nil))
	assert.Equal(t, "6x6x6", GridLabel([]table.Row{{Grid: "6x6x6"}, {Grid: "4x4x4"}}))
}

func TestToleranceFor(t *testing.T) {
	tol, ok := ToleranceFor(table.ColEnergy)
	assert.True(t, ok)
	assert.Equal(t, 4e-5, tol.Value)

	tol, ok = ToleranceFor(table.ColForce)
	assert.True(t, ok)
	assert.Equal(t, 0.05, tol.Value)

	_, ok = ToleranceFor(table.ColTotalTime)
	assert.False(t, ok)
}
