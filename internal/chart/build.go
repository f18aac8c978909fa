package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

// LineStyle is the stroke pattern of a reference line.
type LineStyle int

const (
	StyleDashed LineStyle = iota
	StyleDashDot
	StyleDotted
)

// Line is one plotted series.
type Line struct {
	Label  string
	Group  string       // key of the group the series belongs to
	Column table.Column // observable
	Raw    bool         // plotted undifferenced
	X, Y   []float64
}

// RefLine is a horizontal reference line. Lines with an empty Label are the
// negative half of a tolerance band and get no legend entry.
type RefLine struct {
	Label string
	Y     float64
	Style LineStyle
}

// XTick is a custom x-axis tick label.
type XTick struct {
	Value float64
	Label string
}

// Panel is one fully resolved subplot.
type Panel struct {
	Spec      PanelSpec
	Title     string
	XLabel    string
	YLabel    string
	Mode      converge.Mode
	Threshold float64
	ClampZero bool
	Lines     []Line
	Refs      []RefLine
	XTicks    []XTick // nil keeps the default numeric ticks
	Groups    converge.Groups
}

// Figure is the complete chart, ready to render.
type Figure struct {
	Source string // input table path
	Panels []*Panel
}

// Build resolves every panel spec against t.
func Build(t *table.Table, specs []PanelSpec, noiseFloor float64) (*Figure, error) {
	fig := &Figure{Source: t.Path}
	for i, spec := range specs {
		p, err := buildPanel(t, spec, noiseFloor)
		if err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i+1, spec.TitleFor(t), err)
		}
		fig.Panels = append(fig.Panels, p)
	}
	return fig, nil
}

// TitleFor returns the panel title, defaulting to "<swept name> Convergence".
func (s PanelSpec) TitleFor(t *table.Table) string {
	if s.Title != "" {
		return s.Title
	}
	return t.Name(s.Swept) + " Convergence"
}

func buildPanel(t *table.Table, spec PanelSpec, noiseFloor float64) (*Panel, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	sweep, err := spec.Sweep()
	if err != nil {
		return nil, err
	}
	groups, err := converge.DifferenceGroups(t, sweep)
	if err != nil {
		return nil, err
	}

	p := &Panel{
		Spec:      spec,
		Title:     spec.TitleFor(t),
		XLabel:    spec.XLabel,
		Mode:      sweep.Mode,
		ClampZero: sweep.Mode == converge.ModeAbsolute,
		Groups:    groups,
	}
	if p.XLabel == "" {
		p.XLabel = t.Label(spec.Swept)
	}

	var thresholds []float64
	for _, g := range groups {
		suffix := annotation(spec.Annotate, g.Rows)
		series := append(append([]converge.Series{}, g.Raw...), g.Diffs...)
		candidates := g.Candidates()
		for i, s := range series {
			raw := i < len(g.Raw)
			p.Lines = append(p.Lines, Line{
				Label:  seriesLabel(t, s.Column, g.Key+spec.KeySuffix, suffix),
				Group:  g.Key,
				Column: s.Column,
				Raw:    raw,
				X:      g.X,
				Y:      s.Values,
			})
			thresholds = append(thresholds, converge.SymlogThreshold([][]float64{candidates[i]}, noiseFloor))
		}
	}

	for i, ts := range spec.Tolerances {
		tol := resolveTolerance(ts)
		style := LineStyle(i % 3)
		p.Refs = append(p.Refs, RefLine{Label: tol.Label, Y: tol.Value, Style: style})
		if sweep.Mode == converge.ModeSigned {
			p.Refs = append(p.Refs, RefLine{Y: -tol.Value, Style: style})
		}
		if spec.ScaleWithTolerances {
			thresholds = append(thresholds, converge.SymlogThreshold([][]float64{{tol.Value}}, noiseFloor))
		}
	}

	p.Threshold = converge.PanelThreshold(thresholds)
	p.YLabel = yLabel(spec.YLabel, sweep.Mode, p.Threshold)
	if spec.GridTicks {
		p.XTicks = gridTicks(groups)
	}
	return p, nil
}

func resolveTolerance(ts ToleranceSpec) converge.Tolerance {
	tol, _ := converge.ToleranceFor(ts.Observable)
	tol.Observable = ts.Observable
	if ts.Value != 0 {
		tol.Value = ts.Value
	}
	if ts.Label != "" {
		tol.Label = ts.Label
	}
	if tol.Label == "" {
		tol.Label = table.ColumnTitle(ts.Observable) + " tolerance"
	}
	return tol
}

func annotation(a Annotation, rows []table.Row) string {
	switch a {
	case AnnotateFineGrid:
		return converge.FineGridLabel(rows)
	case AnnotateFineGridStrict:
		return converge.StrictFineGridLabel(rows)
	case AnnotateGrid:
		return converge.GridLabel(rows)
	}
	return ""
}

// seriesLabel renders "Energy (eV/ion), 4x4x4, fGridScale 2".
func seriesLabel(t *table.Table, c table.Column, key, suffix string) string {
	parts := []string{t.Label(c), key}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, ", ")
}

func yLabel(prefix string, mode converge.Mode, threshold float64) string {
	if mode == converge.ModeSigned {
		if prefix == "" {
			prefix = "Difference from Maximum"
		}
		return fmt.Sprintf("%s (symlog scale for |y|>%.1e)", prefix, threshold)
	}
	if prefix == "" {
		prefix = "|Difference from Maximum|"
	}
	return fmt.Sprintf("%s\n(log scale for |y|>%.1e)", prefix, threshold)
}

// gridTicks labels every grid-size position with its grid specifier. The
// first specifier seen at a position wins.
func gridTicks(groups converge.Groups) []XTick {
	seen := make(map[float64]bool)
	var ticks []XTick
	for _, g := range groups {
		for _, r := range g.Rows {
			if r.Grid == "" || math.IsNaN(r.GridSize) || seen[r.GridSize] {
				continue
			}
			seen[r.GridSize] = true
			ticks = append(ticks, XTick{Value: r.GridSize, Label: r.Grid})
		}
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return ticks
}
