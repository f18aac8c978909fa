package chart

import (
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size is the PNG geometry: the plot width and the height of each panel.
// The legend column is added to the right of Width.
type Size struct {
	Width       vg.Length
	PanelHeight vg.Length
}

// DefaultSize matches a 10 inch wide figure with 4 inches per panel.
var DefaultSize = Size{Width: 10 * vg.Inch, PanelHeight: 4 * vg.Inch}

const (
	panelGap     = 12 // points between stacked panels
	legendMargin = 8  // points around the legend column
)

// SavePNG renders fig to a PNG file at path.
func SavePNG(fig *Figure, path string, size Size) (err error) {
	if fig == nil || len(fig.Panels) == 0 {
		return ErrEmptyFigure
	}
	f, err := os.Create(path)
	if err != nil {
		return &OutputError{Path: path, Format: "png", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &OutputError{Path: path, Format: "png", Err: cerr}
		}
	}()

	if err := WritePNG(fig, f, size); err != nil {
		return &OutputError{Path: path, Format: "png", Err: err}
	}
	return nil
}

// WritePNG renders fig as a PNG image to w: panels stacked top to bottom,
// each with its legend to the right.
func WritePNG(fig *Figure, w io.Writer, size Size) error {
	if fig == nil || len(fig.Panels) == 0 {
		return ErrEmptyFigure
	}
	if size.Width <= 0 || size.PanelHeight <= 0 {
		size = DefaultSize
	}

	plots := make([]*plot.Plot, len(fig.Panels))
	legends := make([]plot.Legend, len(fig.Panels))
	var legendWidth vg.Length
	for i, p := range fig.Panels {
		pl, leg, err := newPlot(p)
		if err != nil {
			return err
		}
		plots[i], legends[i] = pl, leg
		r := leg.Rectangle(draw.Canvas{})
		if lw := r.Max.X - r.Min.X; lw > legendWidth {
			legendWidth = lw
		}
	}
	legendWidth += 2 * vg.Points(legendMargin)

	n := len(fig.Panels)
	img := vgimg.New(size.Width+legendWidth, size.PanelHeight*vg.Length(n))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      n,
		Cols:      1,
		PadY:      vg.Points(panelGap),
		PadTop:    vg.Points(panelGap / 2),
		PadBottom: vg.Points(panelGap / 2),
	}
	for i := range plots {
		c := tiles.At(dc, 0, i)
		width := c.Max.X - c.Min.X
		plots[i].Draw(draw.Crop(c, 0, -legendWidth, 0, 0))
		drawLegend(&legends[i], draw.Crop(c, width-legendWidth, 0, 0, 0))
	}

	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

// drawLegend centres the legend vertically in c.
func drawLegend(leg *plot.Legend, c draw.Canvas) {
	r := leg.Rectangle(c)
	leg.Top = true
	leg.YOffs = -((c.Max.Y - c.Min.Y) - (r.Max.Y - r.Min.Y)) / 2
	leg.Draw(draw.Crop(c, vg.Points(legendMargin), -vg.Points(legendMargin), 0, 0))
}

func newPlot(p *Panel) (*plot.Plot, plot.Legend, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Y.Scale = SymLogScale{Threshold: p.Threshold}
	pl.Y.Tick.Marker = SymLogTicks{Threshold: p.Threshold}

	grid := plotter.NewGrid()
	grid.Vertical.Width = vg.Points(0.4)
	grid.Horizontal.Width = vg.Points(0.4)
	pl.Add(grid)

	leg := plot.NewLegend()
	leg.Left = true

	for i, line := range p.Lines {
		xys := finitePoints(line.X, line.Y)
		if len(xys) == 0 {
			continue
		}
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, leg, err
		}
		c := plotutil.Color(i)
		l.LineStyle.Color = c
		s.GlyphStyle.Color = c
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(4)
		pl.Add(l, s)
		leg.Add(line.Label, l, s)
	}

	for _, ref := range p.Refs {
		y := ref.Y
		fn := plotter.NewFunction(func(float64) float64 { return y })
		fn.LineStyle.Color = color.Black
		fn.LineStyle.Width = vg.Points(1)
		fn.LineStyle.Dashes = dashes(ref.Style)
		pl.Add(fn)
		// Functions carry no data range.
		pl.Y.Min = math.Min(pl.Y.Min, y)
		pl.Y.Max = math.Max(pl.Y.Max, y)
		if ref.Label != "" {
			leg.Add(ref.Label, fn)
		}
	}

	if math.IsInf(pl.X.Min, 0) || math.IsInf(pl.X.Max, 0) {
		pl.X.Min, pl.X.Max = 0, 1
	}
	if math.IsInf(pl.Y.Min, 0) || math.IsInf(pl.Y.Max, 0) {
		pl.Y.Min, pl.Y.Max = 0, 1
	}
	if p.ClampZero {
		pl.Y.Min = 0
	}
	if pl.Y.Max <= pl.Y.Min {
		pl.Y.Max = pl.Y.Min + p.Threshold
	}

	if p.XTicks != nil {
		ticks := make(plot.ConstantTicks, len(p.XTicks))
		for i, t := range p.XTicks {
			ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
		}
		pl.X.Tick.Marker = ticks
		pl.X.Tick.Label.Rotation = math.Pi / 2
		pl.X.Tick.Label.XAlign = draw.XRight
		pl.X.Tick.Label.YAlign = draw.YCenter
	}
	return pl, leg, nil
}

func finitePoints(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i >= len(y) || !finite(x[i]) || !finite(y[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
	}
	return xys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func dashes(s LineStyle) []vg.Length {
	switch s {
	case StyleDashDot:
		return []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	case StyleDotted:
		return []vg.Length{vg.Points(1.5), vg.Points(3)}
	default:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	}
}
