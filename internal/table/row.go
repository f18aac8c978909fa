package table

import (
	"math"
	"strconv"
)

// Row is one calculation of the convergence table.
type Row struct {
	Line int // source line, 1-based

	Grid          string  // k-point grid specifier, "" when missing
	GridSize      float64 // product of Grid segments, NaN when missing
	Cutoff        float64
	FineGmax      float64
	FineGridScale float64

	TotalTime float64
	Energy    float64
	Force     float64
	Stress    float64

	CutoffRun   bool
	KptRun      bool
	FineGmaxRun bool
}

// Number returns the numeric value of c. ok is false for text and flag columns.
func (r Row) Number(c Column) (v float64, ok bool) {
	switch c {
	case ColGridSize:
		return r.GridSize, true
	case ColCutoff:
		return r.Cutoff, true
	case ColFineGmax:
		return r.FineGmax, true
	case ColFineGridScale:
		return r.FineGridScale, true
	case ColTotalTime:
		return r.TotalTime, true
	case ColEnergy:
		return r.Energy, true
	case ColForce:
		return r.Force, true
	case ColStress:
		return r.Stress, true
	}
	return math.NaN(), false
}

// Flag returns the value of a flag column; false for any other column.
func (r Row) Flag(c Column) bool {
	switch c {
	case ColCutoffRun:
		return r.CutoffRun
	case ColKptRun:
		return r.KptRun
	case ColFineGmaxRun:
		return r.FineGmaxRun
	}
	return false
}

// Key formats the value of c for grouping and labels. Missing values give "".
func (r Row) Key(c Column) string {
	switch c.Kind() {
	case KindText:
		return r.Grid
	case KindFlag:
		if r.Flag(c) {
			return "T"
		}
		return "F"
	}
	v, _ := r.Number(c)
	if math.IsNaN(v) {
		return ""
	}
	return FormatNumber(v)
}

// FormatNumber renders v in the shortest form that round-trips ("500", "12.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (r *Row) setNumber(c Column, v float64) {
	switch c {
	case ColCutoff:
		r.Cutoff = v
	case ColFineGmax:
		r.FineGmax = v
	case ColFineGridScale:
		r.FineGridScale = v
	case ColTotalTime:
		r.TotalTime = v
	case ColEnergy:
		r.Energy = v
	case ColForce:
		r.Force = v
	case ColStress:
		r.Stress = v
	}
}

func (r *Row) setFlag(c Column, v bool) {
	switch c {
	case ColCutoffRun:
		r.CutoffRun = v
	case ColKptRun:
		r.KptRun = v
	case ColFineGmaxRun:
		r.FineGmaxRun = v
	}
}

// emptyRow has every optional numeric field NaN so absent columns never
// read as a genuine zero.
func emptyRow(line int) Row {
	nan := math.NaN()
	return Row{
		Line:          line,
		GridSize:      nan,
		Cutoff:        nan,
		FineGmax:      nan,
		FineGridScale: nan,
		TotalTime:     nan,
		Energy:        nan,
		Force:         nan,
		Stress:        nan,
	}
}
