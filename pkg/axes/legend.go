package axes

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LocationOutside places the legend to the right of the data area, which
// shrinks to make room.
const LocationOutside = "outside"

const defaultLegendLocation = "upper right"

// LegendOptions configure Legend.
type LegendOptions struct {
	// Location is an anchor name, a keypad digit or LocationOutside.
	Location string
	// FontSize overrides the style's legend size.
	FontSize vg.Length
	// TextColor overrides the style's text color.
	TextColor color.Color
}

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// Legend shows a frameless legend of the labelled series. Scatter series are
// represented by a single opaque marker however many points they hold.
func (a *Axes) Legend(opts LegendOptions) error {
	loc := strings.ToLower(strings.TrimSpace(opts.Location))
	if loc == "" {
		loc = defaultLegendLocation
	}
	if loc != LocationOutside {
		if _, err := lookupAnchor(loc); err != nil {
			return err
		}
	}
	opts.Location = loc
	a.legend = &opts
	return nil
}

// LegendLabels returns the labels the legend would show, in order.
func (a *Axes) LegendLabels() []string {
	labels := make([]string, len(a.entries))
	for i, e := range a.entries {
		labels[i] = e.label
	}
	return labels
}

func (a *Axes) addEntry(label string, thumb plot.Thumbnailer) {
	if label == "" {
		return
	}
	a.entries = append(a.entries, legendEntry{label: label, thumb: thumb})
}

func (a *Axes) legendFontSize() vg.Length {
	if a.legend != nil && a.legend.FontSize > 0 {
		return a.legend.FontSize
	}
	return a.theme.Legend.Size
}

// legendPad is the gap between the legend and the axes border.
func (a *Axes) legendPad() vg.Length {
	return vg.Length(a.theme.Config.Legend.BorderPad) * a.legendFontSize()
}

func (a *Axes) newLegend() plot.Legend {
	size := a.legendFontSize()
	l := plot.NewLegend()
	l.TextStyle = a.theme.TextStyle(a.theme.Legend, a.theme.Text)
	l.TextStyle.Font.Size = size
	if a.legend != nil && a.legend.TextColor != nil {
		l.TextStyle.Color = a.legend.TextColor
	}
	l.Padding = size * 0.3
	l.ThumbnailWidth = size * 1.5
	l.Left, l.Top = true, true
	l.YPosition = draw.PosCenter
	for _, e := range a.entries {
		l.Add(e.label, e.thumb)
	}
	return l
}

func (a *Axes) legendSize(c draw.Canvas) (w, h vg.Length) {
	l := a.newLegend()
	s := l.Rectangle(c).Size()
	return s.X, s.Y
}

// drawLegend draws the legend inside dc, or for the outside location in the
// strip of c right of margin.
func (a *Axes) drawLegend(c, dc draw.Canvas, margin vg.Length) {
	if len(a.entries) == 0 {
		return
	}
	l := a.newLegend()
	w, h := a.legendSize(dc)
	pad := a.legendPad()

	if a.legend.Location == LocationOutside {
		region := draw.Canvas{Canvas: c.Canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: margin, Y: dc.Min.Y},
			Max: vg.Point{X: c.Max.X, Y: dc.Max.Y},
		}}
		l.XOffs = pad
		l.YOffs = -(region.Size().Y - h) / 2
		l.Draw(region)
		return
	}

	an, _ := lookupAnchor(a.legend.Location)
	size := dc.Size()
	// Alignments run from 0 to -1; they double as the fraction of free
	// space left of (or above) the legend.
	fromLeft := vg.Length(-an.xalign)
	fromTop := vg.Length(1 + an.yalign)
	l.XOffs = pad + fromLeft*(size.X-w-2*pad)
	l.YOffs = -(pad + fromTop*(size.Y-h-2*pad))
	l.Draw(dc)
}

// markerThumb draws one marker in the middle of the legend icon.
type markerThumb struct {
	glyph draw.GlyphStyle
}

func (t markerThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyphNoClip(t.glyph, c.Center())
}

// lineThumb draws a horizontal stroke across the legend icon.
type lineThumb struct {
	line draw.LineStyle
}

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.line, c.Min.X, y, c.Max.X, y)
}

// patchThumb draws a filled box with an optional outline.
type patchThumb struct {
	fill color.Color
	edge draw.LineStyle
}

func (t patchThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if t.fill != nil {
		c.FillPolygon(t.fill, pts)
	}
	if t.edge.Color != nil && t.edge.Width > 0 {
		c.StrokeLines(t.edge, append(pts, pts[0]))
	}
}
