package axes

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/colors"
)

// Sides of the axes.
const (
	SideTop    = "top"
	SideBottom = "bottom"
	SideLeft   = "left"
	SideRight  = "right"
	SideAll    = "all"
)

var allSides = []string{SideTop, SideBottom, SideLeft, SideRight}

// expandSides resolves "all" and drops unknown names.
func expandSides(sides []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range sides {
		switch s {
		case SideAll:
			for _, a := range allSides {
				add(a)
			}
		case SideTop, SideBottom, SideLeft, SideRight:
			add(s)
		}
	}
	return out
}

// RemoveSpines hides the border lines on the given sides together with
// their ticks. "all" selects every side; unknown names are ignored and no
// sides is a no-op.
func (a *Axes) RemoveSpines(sides ...string) {
	sides = expandSides(sides)
	for _, s := range sides {
		a.spines[s] = false
	}
	a.RemoveTicks(sides...)
}

// RemoveTicks clears the tick marks on the given sides. Tick labels stay.
func (a *Axes) RemoveTicks(sides ...string) {
	for _, s := range expandSides(sides) {
		a.ticks[s] = false
		switch s {
		case SideBottom:
			a.plot.X.Tick.Length = 0
		case SideLeft:
			a.plot.Y.Tick.Length = 0
		}
	}
}

// RemoveLabels clears the tick labels of "x", "y" or "both" axes, along
// with their ticks. Other names are ignored.
func (a *Axes) RemoveLabels(axes string) {
	if axes == "x" || axes == "both" {
		a.plot.X.Tick.Marker = unlabeled(a.plot.X.Tick.Marker)
		a.RemoveTicks(SideBottom, SideTop)
	}
	if axes == "y" || axes == "both" {
		a.plot.Y.Tick.Marker = unlabeled(a.plot.Y.Tick.Marker)
		a.RemoveTicks(SideLeft, SideRight)
	}
}

// unlabeled keeps the tick positions of t and drops their labels. Ticks
// without labels are minor ticks to gonum and take no room.
func unlabeled(t plot.Ticker) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := t.Ticks(min, max)
		for i := range ticks {
			ticks[i].Label = ""
		}
		return ticks
	})
}

// SpineVisible reports whether the spine on side is drawn.
func (a *Axes) SpineVisible(side string) bool { return a.spines[side] }

// TicksVisible reports whether tick marks are drawn on side.
func (a *Axes) TicksVisible(side string) bool { return a.ticks[side] }

// EqualScale makes one data unit span the same length on both axes. The data
// area shrinks on one axis to keep the current ranges.
func (a *Axes) EqualScale() { a.equal = true }

// MakeDark gives the axes a light gray face with a white grid and no spines.
func (a *Axes) MakeDark() {
	a.Add(ZBackground, face{color: colors.MustParse(colors.LightGray)})

	g := plotter.NewGrid()
	g.Vertical = draw.LineStyle{Color: colors.MustParse(colors.White), Width: vg.Points(0.5)}
	g.Horizontal = g.Vertical
	a.Add(ZGrid, g)

	a.RemoveSpines(SideAll)
}

func (a *Axes) drawSpines(dc draw.Canvas) {
	sty := draw.LineStyle{Color: a.theme.AxesEdge, Width: vg.Points(spineWidth)}
	if a.spines[SideBottom] {
		dc.StrokeLine2(sty, dc.Min.X, dc.Min.Y, dc.Max.X, dc.Min.Y)
	}
	if a.spines[SideTop] {
		dc.StrokeLine2(sty, dc.Min.X, dc.Max.Y, dc.Max.X, dc.Max.Y)
	}
	if a.spines[SideLeft] {
		dc.StrokeLine2(sty, dc.Min.X, dc.Min.Y, dc.Min.X, dc.Max.Y)
	}
	if a.spines[SideRight] {
		dc.StrokeLine2(sty, dc.Max.X, dc.Min.Y, dc.Max.X, dc.Max.Y)
	}
}

// face fills the whole data area.
type face struct {
	color color.Color
}

func (f face) Plot(c draw.Canvas, _ *plot.Plot) {
	c.SetColor(f.color)
	c.Fill(c.Rectangle.Path())
}
