// Package axes wraps a gonum plot in a facade that applies the betterplot
// style defaults.
//
// An Axes owns a *plot.Plot rather than embedding it. Series added through
// the facade pick up the style's color cycle, marker, alpha and edge colors
// unless the caller sets them, and the convenience operations (spine and tick
// removal, anchored text, the single-marker legend, density contours) are
// implemented on top of the plot at draw time.
//
// Every surface is created from an explicit [style.Config]:
//
//	ax, err := axes.New(style.Current())
//	ax.Scatter(points, axes.ScatterOptions{Label: "data"})
//	ax.RemoveSpines("top", "right")
//	ax.Legend(axes.LegendOptions{})
//	err = ax.Save("scatter.pdf")
package axes

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/style"
)

// Default layer order. Higher layers draw on top.
const (
	ZBackground = -10
	ZGrid       = -5
	ZImage      = 0
	ZPatch      = 1
	ZLine       = 2
	ZMarker     = 3
)

const (
	spineWidth = 0.8 // points
	tickLength = 3.5 // points
)

type layer struct {
	z       int
	plotter plot.Plotter
}

type limits struct {
	min, max *float64
}

// Axes is a single plotting area.
type Axes struct {
	plot  *plot.Plot
	theme *style.Theme

	layers []layer
	cycle  int

	spines     map[string]bool
	ticks      map[string]bool
	xlim, ylim limits
	equal      bool

	texts   []annotation
	entries []legendEntry
	legend  *LegendOptions
	twins   []*twin
}

// New creates an empty Axes styled by cfg.
func New(cfg style.Config) (*Axes, error) {
	th, err := cfg.Theme()
	if err != nil {
		return nil, err
	}
	return newAxes(th), nil
}

func newAxes(th *style.Theme) *Axes {
	p := plot.New()
	p.BackgroundColor = th.Background
	p.TextHandler = th.Handler

	p.Title.TextStyle = th.TextStyle(th.Title, th.Text)
	p.Title.TextStyle.XAlign = draw.XCenter
	p.Title.TextStyle.YAlign = draw.YTop
	p.Title.Padding = vg.Points(6)

	styleAxis(&p.X, th, draw.XCenter, draw.YTop)
	styleAxis(&p.Y, th, draw.XRight, draw.YCenter)

	return &Axes{
		plot:   p,
		theme:  th,
		spines: map[string]bool{SideTop: true, SideBottom: true, SideLeft: true, SideRight: true},
		ticks:  map[string]bool{SideBottom: true, SideLeft: true},
	}
}

func styleAxis(ax *plot.Axis, th *style.Theme, xalign draw.XAlignment, yalign draw.YAlignment) {
	// Spines are drawn by the facade; the gonum axis line stays invisible.
	ax.LineStyle = draw.LineStyle{Color: color.Transparent}
	ax.Padding = 0

	ax.Label.TextStyle = th.TextStyle(th.AxisLabel, th.Label)
	ax.Label.TextStyle.XAlign = draw.XCenter
	ax.Label.TextStyle.YAlign = draw.YBottom
	ax.Label.Padding = vg.Points(4)

	ax.Tick.Label = th.TextStyle(th.TickLabel, th.Tick)
	ax.Tick.Label.XAlign = xalign
	ax.Tick.Label.YAlign = yalign
	ax.Tick.LineStyle = draw.LineStyle{Color: th.Tick, Width: vg.Points(spineWidth)}
	ax.Tick.Length = vg.Points(tickLength)
}

// Plot returns the wrapped gonum plot for operations the facade does not
// forward. Plotters must be added through Add so they take part in layering.
func (a *Axes) Plot() *plot.Plot { return a.plot }

// Theme returns the resolved style of the axes.
func (a *Axes) Theme() *style.Theme { return a.theme }

// Add adds plotters at layer z. Plotters in the same layer draw in the order
// they were added.
func (a *Axes) Add(z int, ps ...plot.Plotter) {
	for _, p := range ps {
		a.layers = append(a.layers, layer{z: z, plotter: p})
	}
}

// NextColor returns the next color of the style's color cycle.
func (a *Axes) NextColor() color.Color {
	c := a.theme.CycleColor(a.cycle)
	a.cycle++
	return c
}

// AddLabels sets the axis labels and the title. Empty arguments leave the
// current text in place.
func (a *Axes) AddLabels(x, y, title string) {
	if x != "" {
		a.plot.X.Label.Text = x
	}
	if y != "" {
		a.plot.Y.Label.Text = y
	}
	if title != "" {
		a.plot.Title.Text = title
	}
}

// SetLimits fixes the data range of the axes. Nil bounds stay automatic.
func (a *Axes) SetLimits(xmin, xmax, ymin, ymax *float64) {
	if xmin != nil {
		a.xlim.min = xmin
	}
	if xmax != nil {
		a.xlim.max = xmax
	}
	if ymin != nil {
		a.ylim.min = ymin
	}
	if ymax != nil {
		a.ylim.max = ymax
	}
}

// Limits reports the data range the axes would be drawn with.
func (a *Axes) Limits() (xmin, xmax, ymin, ymax float64) {
	p := a.assemble()
	sanitize(&p.X)
	sanitize(&p.Y)
	return p.X.Min, p.X.Max, p.Y.Min, p.Y.Max
}

// LogScale switches an axis ("x" or "y") to a logarithmic scale.
func (a *Axes) LogScale(axis string) {
	switch axis {
	case "x":
		a.plot.X.Scale = plot.LogScale{}
		a.plot.X.Tick.Marker = plot.LogTicks{Prec: -1}
	case "y":
		a.plot.Y.Scale = plot.LogScale{}
		a.plot.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
}

// assemble returns a copy of the wrapped plot holding the layered plotters
// and the fixed limits.
func (a *Axes) assemble() *plot.Plot {
	p := *a.plot
	sorted := make([]layer, len(a.layers))
	copy(sorted, a.layers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].z < sorted[j].z })
	for _, l := range sorted {
		p.Add(l.plotter)
	}
	if a.xlim.min != nil {
		p.X.Min = *a.xlim.min
	}
	if a.xlim.max != nil {
		p.X.Max = *a.xlim.max
	}
	if a.ylim.min != nil {
		p.Y.Min = *a.ylim.min
	}
	if a.ylim.max != nil {
		p.Y.Max = *a.ylim.max
	}
	return &p
}

// sanitize mirrors the range cleanup gonum applies before drawing.
func sanitize(ax *plot.Axis) {
	if math.IsInf(ax.Min, 0) {
		ax.Min = 0
	}
	if math.IsInf(ax.Max, 0) {
		ax.Max = 0
	}
	if ax.Min > ax.Max {
		ax.Min, ax.Max = ax.Max, ax.Min
	}
	if ax.Min == ax.Max {
		ax.Min--
		ax.Max++
	}
}

// Draw renders the axes into c.
func (a *Axes) Draw(c draw.Canvas) {
	if a.theme.Background != nil {
		c.SetColor(a.theme.Background)
		c.Fill(c.Rectangle.Path())
	}
	l := a.layout(c)
	l.plot.Draw(l.area)

	a.drawSpines(l.data)
	for _, t := range a.twins {
		t.draw(l.data)
	}
	a.drawTexts(l.plot, l.data)
	if a.legend != nil {
		a.drawLegend(c, l.data, l.margin)
	}
}

type layout struct {
	plot   *plot.Plot
	area   draw.Canvas // handed to the gonum plot
	data   draw.Canvas // data area inside the axes
	margin vg.Length   // left edge of an outside legend
}

func (a *Axes) layout(c draw.Canvas) layout {
	p := a.assemble()
	area := c
	if a.legend != nil && a.legend.Location == LocationOutside && len(a.entries) > 0 {
		w, _ := a.legendSize(c)
		area = draw.Crop(c, 0, -(w + 2*a.legendPad()), 0, 0)
	}
	margin := area.Max.X
	for _, t := range a.twins {
		area = t.reserve(area)
	}
	if a.equal {
		area = a.equalize(p, area)
	}
	return layout{plot: p, area: area, data: p.DataCanvas(area), margin: margin}
}

// equalize shrinks area so that one data unit spans the same length on both
// axes.
func (a *Axes) equalize(p *plot.Plot, area draw.Canvas) draw.Canvas {
	q := *p
	sanitize(&q.X)
	sanitize(&q.Y)
	dc := q.DataCanvas(area)
	w, h := dc.Max.X-dc.Min.X, dc.Max.Y-dc.Min.Y
	dx, dy := q.X.Max-q.X.Min, q.Y.Max-q.Y.Min
	if w <= 0 || h <= 0 || dx <= 0 || dy <= 0 {
		return area
	}
	sx, sy := w/vg.Length(dx), h/vg.Length(dy)
	if sx > sy {
		trim := (w - sy*vg.Length(dx)) / 2
		return draw.Crop(area, trim, -trim, 0, 0)
	}
	trim := (h - sx*vg.Length(dy)) / 2
	return draw.Crop(area, 0, 0, trim, -trim)
}
