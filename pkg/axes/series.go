package axes

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/binning"
	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/errors"
)

// Series defaults.
const (
	defaultMarkerRadius = 3    // points
	defaultEdgeWidth    = 0.25 // points
	defaultLineWidth    = 3    // points
	refLineWidth        = 1    // points
	rugWidth            = 0.5  // points
	rugExtent           = 0.015
)

// ScatterOptions override the scatter defaults. Zero values keep them.
type ScatterOptions struct {
	// Color of the markers. Defaults to the next cycle color.
	Color color.Color
	// Alpha in (0, 1]. Defaults to binning.Alpha of the point count.
	Alpha float64
	// Radius of the markers.
	Radius vg.Length
	// Shape replaces the edged circle.
	Shape draw.GlyphDrawer
	// EdgeColor of the markers. Defaults to almost black.
	EdgeColor color.Color
	EdgeWidth vg.Length
	Label     string
}

// Scatter draws points as markers.
func (a *Axes) Scatter(xys plotter.XYer, opts ScatterOptions) (*plotter.Scatter, error) {
	return a.scatter(xys, opts, ZMarker)
}

func (a *Axes) scatter(xys plotter.XYer, opts ScatterOptions, z int) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "scatter")
	}
	fill := opts.Color
	if fill == nil {
		fill = a.NextColor()
	}
	alpha := opts.Alpha
	if !(alpha > 0 && alpha <= 1) {
		alpha = binning.Alpha(xys.Len())
	}
	edge := draw.LineStyle{Color: opts.EdgeColor, Width: opts.EdgeWidth}
	if edge.Color == nil {
		edge.Color = colors.MustParse(colors.AlmostBlack)
	}
	if edge.Width <= 0 {
		edge.Width = vg.Points(defaultEdgeWidth)
	}
	radius := opts.Radius
	if radius <= 0 {
		radius = vg.Points(defaultMarkerRadius)
	}

	var shape draw.GlyphDrawer = edgedCircle{edge: edge}
	if opts.Shape != nil {
		shape = opts.Shape
	}
	s.GlyphStyle = draw.GlyphStyle{Color: colors.WithAlpha(fill, alpha), Radius: radius, Shape: shape}
	if e, ok := shape.(edgedCircle); ok {
		e.edge.Color = colors.WithAlpha(e.edge.Color, alpha)
		s.GlyphStyle.Shape = e
	}
	a.Add(z, s)

	proxy := draw.GlyphStyle{Color: colors.WithAlpha(fill, 1), Radius: radius, Shape: shape}
	a.addEntry(opts.Label, markerThumb{glyph: proxy})
	return s, nil
}

// edgedCircle is a filled circle with an outline.
type edgedCircle struct {
	edge draw.LineStyle
}

func (g edgedCircle) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	p := make(vg.Path, 0, 3)
	p.Move(vg.Point{X: pt.X + sty.Radius, Y: pt.Y})
	p.Arc(pt, sty.Radius, 0, 2*math.Pi)
	p.Close()
	c.Fill(p)
	if g.edge.Width > 0 && g.edge.Color != nil {
		c.SetLineStyle(g.edge)
		c.Stroke(p)
	}
}

// LineOptions override the line defaults. Zero values keep them.
type LineOptions struct {
	Color  color.Color
	Width  vg.Length
	Dashes []vg.Length
	Label  string
}

// Line draws a polyline through xys, 3 points wide by default.
func (a *Axes) Line(xys plotter.XYer, opts LineOptions) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "line")
	}
	l.LineStyle = a.lineStyle(opts, defaultLineWidth, nil)
	a.Add(ZLine, l)
	a.addEntry(opts.Label, lineThumb{line: l.LineStyle})
	return l, nil
}

func (a *Axes) lineStyle(opts LineOptions, width float64, fallback color.Color) draw.LineStyle {
	sty := draw.LineStyle{Color: opts.Color, Width: opts.Width, Dashes: opts.Dashes}
	if sty.Color == nil {
		sty.Color = fallback
	}
	if sty.Color == nil {
		sty.Color = a.NextColor()
	}
	if sty.Width <= 0 {
		sty.Width = vg.Points(width)
	}
	return sty
}

// ErrorBarOptions override the error bar defaults. Zero values keep them.
type ErrorBarOptions struct {
	Color     color.Color
	Radius    vg.Length
	LineWidth vg.Length
	EdgeColor color.Color
	Label     string
}

// ErrorBar draws markers at xys with symmetric vertical error bars of
// half-length yerr. Bars have no caps and markers an almost black edge.
func (a *Axes) ErrorBar(xys plotter.XYer, yerr []float64, opts ErrorBarOptions) (*plotter.YErrorBars, *plotter.Scatter, error) {
	if len(yerr) != xys.Len() {
		return nil, nil, errors.New(errors.ErrCodeInvalidArgument, "got %d errors for %d points", len(yerr), xys.Len())
	}
	pts, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "errorbar")
	}
	errs := make(plotter.YErrors, len(yerr))
	for i, e := range yerr {
		errs[i].Low, errs[i].High = math.Abs(e), math.Abs(e)
	}
	bars, err := plotter.NewYErrorBars(struct {
		plotter.XYs
		plotter.YErrors
	}{pts, errs})
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "errorbar")
	}

	col := opts.Color
	if col == nil {
		col = a.NextColor()
	}
	bars.LineStyle = draw.LineStyle{Color: col, Width: opts.LineWidth}
	if bars.LineStyle.Width <= 0 {
		bars.LineStyle.Width = vg.Points(1)
	}
	bars.CapWidth = 0
	a.Add(ZLine, bars)

	markers, err := a.Scatter(pts, ScatterOptions{
		Color:     col,
		Alpha:     1,
		Radius:    opts.Radius,
		EdgeColor: opts.EdgeColor,
		Label:     opts.Label,
	})
	if err != nil {
		return nil, nil, err
	}
	return bars, markers, nil
}

// AxHLine draws a horizontal reference line at y across the whole axes.
func (a *Axes) AxHLine(y float64, opts LineOptions) *RefLine {
	l := &RefLine{Value: y, Horizontal: true, End: 1, LineStyle: a.lineStyle(opts, refLineWidth, colors.MustParse(colors.AlmostBlack))}
	a.Add(ZLine, l)
	a.addEntry(opts.Label, lineThumb{line: l.LineStyle})
	return l
}

// AxVLine draws a vertical reference line at x across the whole axes.
func (a *Axes) AxVLine(x float64, opts LineOptions) *RefLine {
	l := &RefLine{Value: x, End: 1, LineStyle: a.lineStyle(opts, refLineWidth, colors.MustParse(colors.AlmostBlack))}
	a.Add(ZLine, l)
	a.addEntry(opts.Label, lineThumb{line: l.LineStyle})
	return l
}

// DataTicks marks every x value on the bottom border and every y value on
// the left border with a short tick, a rug plot. The ticks have the same
// physical length on both axes: extent of the data area height.
func (a *Axes) DataTicks(xs, ys []float64, opts LineOptions) {
	sty := a.lineStyle(opts, rugWidth, colors.MustParse(colors.AlmostBlack))
	for _, x := range xs {
		a.Add(ZLine, &RefLine{Value: x, End: rugExtent, LineStyle: sty})
	}
	for _, y := range ys {
		a.Add(ZLine, &RefLine{Value: y, Horizontal: true, End: rugExtent, LineStyle: sty, Physical: true})
	}
}

// RefLine is a line at a fixed data value spanning part of the axes, from
// Start to End as fractions of the data area.
type RefLine struct {
	Value      float64
	Horizontal bool
	Start, End float64
	// Physical measures Start and End as fractions of the data area height
	// on both axes.
	Physical bool
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (l *RefLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	size := c.Size()
	if l.Horizontal {
		y := trY(l.Value)
		span := size.X
		if l.Physical {
			span = size.Y
		}
		x0 := c.Min.X + vg.Length(l.Start)*span
		x1 := c.Min.X + vg.Length(l.End)*span
		c.StrokeLines(l.LineStyle, c.ClipLinesY([]vg.Point{{X: x0, Y: y}, {X: x1, Y: y}})...)
		return
	}
	x := trX(l.Value)
	y0 := c.Min.Y + vg.Length(l.Start)*size.Y
	y1 := c.Min.Y + vg.Length(l.End)*size.Y
	c.StrokeLines(l.LineStyle, c.ClipLinesX([]vg.Point{{X: x, Y: y0}, {X: x, Y: y1}})...)
}

// DataRange implements plot.DataRanger. Only the fixed coordinate counts.
func (l *RefLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	if l.Horizontal {
		return math.Inf(1), math.Inf(-1), l.Value, l.Value
	}
	return l.Value, l.Value, math.Inf(1), math.Inf(-1)
}
