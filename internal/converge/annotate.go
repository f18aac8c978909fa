package converge

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/roach88/converger/internal/table"
)

// FineGridLabel describes how the fine FFT grid was set for a group, for the
// legend. A fine grid scale shared by every row gives "fGridScale <scale>";
// otherwise fine G-max was used as a lower bound and the label is
// "fGmax <most common G-max>".
func FineGridLabel(rows []table.Row) string {
	return fineGridLabel(rows, false)
}

// StrictFineGridLabel is FineGridLabel, except that the scale label also
// requires fine G-max to vary across the group. Used for sweeps over the
// k-point grid, where a constant G-max with a constant scale means G-max
// was pinned.
func StrictFineGridLabel(rows []table.Row) string {
	return fineGridLabel(rows, true)
}

func fineGridLabel(rows []table.Row, strict bool) string {
	if len(rows) == 0 {
		return ""
	}
	scales := make([]float64, len(rows))
	gmaxes := make([]float64, len(rows))
	for i, r := range rows {
		scales[i] = r.FineGridScale
		gmaxes[i] = r.FineGmax
	}

	scaleValue, scaleCount := modeOf(scales)
	_, gmaxCount := modeOf(gmaxes)
	useScale := scaleCount == len(rows)
	if strict {
		useScale = useScale && gmaxCount != len(rows)
	}
	if useScale {
		return "fGridScale " + table.FormatNumber(scaleValue)
	}

	gmax, count := modeOf(gmaxes)
	if count == 0 {
		return ""
	}
	return "fGmax " + table.FormatNumber(gmax)
}

// GridLabel returns the k-point grid of the group's first row.
func GridLabel(rows []table.Row) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Grid
}

// modeOf returns the most common non-NaN value and how often it occurs.
// Among equally common values the smallest is returned.
func modeOf(values []float64) (float64, int) {
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN(), 0
	}
	_, count := stat.Mode(clean, nil)

	sort.Float64s(clean)
	run := 0
	for i, v := range clean {
		if i > 0 && v == clean[i-1] {
			run++
		} else {
			run = 1
		}
		if float64(run) == count {
			return v, run
		}
	}
	return clean[0], 1
}
