// Package report summarises a built figure as data: per panel and group, the
// swept values and the plotted series. The diff command prints it as text or
// JSON.
package report

import (
	"math"
	"strconv"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/table"
)

// Value is a float that encodes NaN and infinities as JSON null.
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (v Value) String() string {
	if math.IsNaN(float64(v)) {
		return "-"
	}
	return table.FormatNumber(float64(v))
}

// Report is the result of one diff run.
type Report struct {
	RunID  string        `json:"run_id"`
	Input  string        `json:"input"`
	Panels []PanelReport `json:"panels"`
}

// PanelReport describes one panel.
type PanelReport struct {
	Title     string        `json:"title"`
	Fixed     table.Column  `json:"fixed"`
	Swept     table.Column  `json:"swept"`
	Mode      string        `json:"mode"`
	Threshold Value         `json:"threshold"`
	Groups    []GroupReport `json:"groups"`
}

// GroupReport is one qualifying group of a panel.
type GroupReport struct {
	Key       string         `json:"key"`
	Reference Value          `json:"reference"`
	Swept     []Value        `json:"swept"`
	Diffs     []SeriesReport `json:"diffs"`
	Raw       []SeriesReport `json:"raw,omitempty"`
}

// SeriesReport is one observable of a group, aligned with GroupReport.Swept.
type SeriesReport struct {
	Column table.Column `json:"column"`
	Values []Value      `json:"values"`
}

// New summarises fig under runID.
func New(runID string, fig *chart.Figure) *Report {
	r := &Report{
		RunID:  runID,
		Input:  fig.Source,
		Panels: make([]PanelReport, 0, len(fig.Panels)),
	}
	for _, p := range fig.Panels {
		pr := PanelReport{
			Title:     p.Title,
			Fixed:     p.Spec.Fixed,
			Swept:     p.Spec.Swept,
			Mode:      p.Mode.String(),
			Threshold: Value(p.Threshold),
			Groups:    make([]GroupReport, 0, len(p.Groups)),
		}
		for _, g := range p.Groups {
			gr := GroupReport{
				Key:       g.Key,
				Reference: Value(g.X[g.Reference]),
				Swept:     values(g.X),
				Diffs:     make([]SeriesReport, 0, len(g.Diffs)),
			}
			for _, s := range g.Diffs {
				gr.Diffs = append(gr.Diffs, SeriesReport{Column: s.Column, Values: values(s.Values)})
			}
			for _, s := range g.Raw {
				gr.Raw = append(gr.Raw, SeriesReport{Column: s.Column, Values: values(s.Values)})
			}
			pr.Groups = append(pr.Groups, gr)
		}
		r.Panels = append(r.Panels, pr)
	}
	return r
}

func values(fs []float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Value(f)
	}
	return out
}

// GroupCount returns the number of qualifying groups in every panel.
func (r *Report) GroupCount() int {
	n := 0
	for _, p := range r.Panels {
		n += len(p.Groups)
	}
	return n
}
