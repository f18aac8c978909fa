package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// SymLogScale is a symmetric-log axis normalizer: linear for |x| <= Threshold
// and logarithmic beyond, continuous at the threshold.
type SymLogScale struct {
	Threshold float64
}

var _ plot.Normalizer = SymLogScale{}

func (s SymLogScale) transform(x float64) float64 {
	t := s.Threshold
	if t <= 0 {
		t = 1
	}
	a := math.Abs(x)
	if a <= t {
		return x / t
	}
	return math.Copysign(1+math.Log10(a/t), x)
}

// Normalize implements plot.Normalizer.
func (s SymLogScale) Normalize(min, max, x float64) float64 {
	lo, hi := s.transform(min), s.transform(max)
	if hi == lo {
		return 0.5
	}
	return (s.transform(x) - lo) / (hi - lo)
}

// SymLogTicks places a major tick at zero and at every signed power of ten
// at or above Threshold, with minor ticks at 2..9 times each decade.
type SymLogTicks struct {
	Threshold float64
}

var _ plot.Ticker = SymLogTicks{}

// maxDecades bounds the tick count for pathological ranges.
const maxDecades = 40

// Ticks implements plot.Ticker.
func (s SymLogTicks) Ticks(min, max float64) []plot.Tick {
	t := s.Threshold
	if t <= 0 {
		t = 1
	}
	var ticks []plot.Tick
	if min <= 0 && max >= 0 {
		ticks = append(ticks, plot.Tick{Value: 0, Label: "0"})
	}

	top := math.Max(math.Abs(min), math.Abs(max))
	if top < t {
		return ticks
	}
	first := int(math.Floor(math.Log10(t)))
	last := int(math.Ceil(math.Log10(top)))
	if last-first > maxDecades {
		first = last - maxDecades
	}

	var positive []plot.Tick
	for k := first; k <= last; k++ {
		decade := math.Pow10(k)
		if decade >= t {
			positive = append(positive, plot.Tick{Value: decade, Label: tickLabel(decade)})
		}
		for m := 2; m <= 9; m++ {
			if v := float64(m) * decade; v > t {
				positive = append(positive, plot.Tick{Value: v})
			}
		}
	}

	for _, tk := range positive {
		if tk.Value >= min && tk.Value <= max {
			ticks = append(ticks, tk)
		}
		if neg := -tk.Value; neg >= min && neg <= max {
			label := tk.Label
			if label != "" {
				label = "-" + label
			}
			ticks = append(ticks, plot.Tick{Value: neg, Label: label})
		}
	}
	return ticks
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
