package converge

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultNoiseFloor is the magnitude at or below which a value is treated as
// numerical noise when picking a symlog threshold.
const DefaultNoiseFloor = 1e-21

// DefaultThreshold is returned when no value survives filtering.
const DefaultThreshold = 1.0

// SymlogThreshold returns the linear threshold of a symmetric-log axis for
// the given values: one decade below the smallest magnitude strictly greater
// than noiseFloor, i.e. 10^(floor(log10(min|v|)) - 1).
//
// Arrays are used as given; pass DifferenceSeries.Candidates to exclude the
// reference rows. Comparison is by magnitude only, so the result does not
// depend on sign or on the order of the arrays. When nothing survives the
// noise floor the result is DefaultThreshold.
func SymlogThreshold(arrays [][]float64, noiseFloor float64) float64 {
	smallest := math.Inf(1)
	for _, arr := range arrays {
		for _, v := range arr {
			m := math.Abs(v)
			if math.IsNaN(m) || math.IsInf(m, 0) || m <= noiseFloor {
				continue
			}
			if m < smallest {
				smallest = m
			}
		}
	}
	if math.IsInf(smallest, 1) {
		return DefaultThreshold
	}
	return math.Pow10(int(math.Floor(math.Log10(smallest))) - 1)
}

// PanelThreshold folds the per-series thresholds of one panel into the
// panel's linear threshold: the smallest of them, or DefaultThreshold when
// the panel has none.
func PanelThreshold(thresholds []float64) float64 {
	if len(thresholds) == 0 {
		return DefaultThreshold
	}
	return floats.Min(thresholds)
}
