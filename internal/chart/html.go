package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SaveHTML writes fig as an interactive HTML page at path.
func SaveHTML(fig *Figure, path string) (err error) {
	if fig == nil || len(fig.Panels) == 0 {
		return ErrEmptyFigure
	}
	f, err := os.Create(path)
	if err != nil {
		return &OutputError{Path: path, Format: "html", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &OutputError{Path: path, Format: "html", Err: cerr}
		}
	}()

	if err := WriteHTML(fig, f); err != nil {
		return &OutputError{Path: path, Format: "html", Err: err}
	}
	return nil
}

// WriteHTML renders one line chart per panel on a single page. The y axes
// are linear; zooming replaces the symmetric-log scale of the PNG.
func WriteHTML(fig *Figure, w io.Writer) error {
	if fig == nil || len(fig.Panels) == 0 {
		return ErrEmptyFigure
	}
	page := components.NewPage()
	page.SetPageTitle("Convergence: " + filepath.Base(fig.Source))
	for _, p := range fig.Panels {
		page.AddCharts(lineChart(p))
	}
	return page.Render(w)
}

var refLineTypes = map[LineStyle]string{
	StyleDashed:  "dashed",
	StyleDashDot: "dashed",
	StyleDotted:  "dotted",
}

func lineChart(p *Panel) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title,
			Subtitle: fmt.Sprintf("%s, threshold %.1e", p.Mode, p.Threshold),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:  "value",
			Name:  p.XLabel,
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: strings.ReplaceAll(p.YLabel, "\n", " "),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			XAxisIndex: []int{0},
		}),
	)

	for _, l := range p.Lines {
		data := make([]opts.LineData, 0, len(l.X))
		for i := range l.X {
			if i >= len(l.Y) || !finite(l.X[i]) || !finite(l.Y[i]) {
				continue
			}
			data = append(data, opts.LineData{Value: []interface{}{l.X[i], l.Y[i]}})
		}
		line.AddSeries(l.Label, data, charts.WithLineChartOpts(opts.LineChart{
			Symbol:     "emptyCircle",
			ShowSymbol: opts.Bool(true),
		}))
	}

	for i := 0; i < len(p.Refs); {
		ref := p.Refs[i]
		items := []opts.MarkLineNameYAxisItem{{Name: ref.Label, YAxis: ref.Y}}
		i++
		for i < len(p.Refs) && p.Refs[i].Label == "" {
			items = append(items, opts.MarkLineNameYAxisItem{Name: ref.Label, YAxis: p.Refs[i].Y})
			i++
		}
		line.AddSeries(ref.Label, nil,
			charts.WithMarkLineNameYAxisItemOpts(items...),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol:    []string{"none", "none"},
				LineStyle: &opts.LineStyle{Color: "black", Type: refLineTypes[ref.Style]},
			}),
		)
	}
	return line
}
