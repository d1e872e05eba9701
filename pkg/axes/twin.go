package axes

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// twin is a secondary scale drawn on the top (for x) or right (for y)
// border. It maps the border linearly or logarithmically onto [min, max]
// and does not affect the data.
type twin struct {
	axis     string
	min, max float64
	label    string
	scale    plot.Normalizer
	ticker   plot.Ticker

	tick   text.Style
	title  text.Style
	line   draw.LineStyle
	length vg.Length
	pad    vg.Length
}

// TwinAxis adds a secondary scale to the opposite border of axis ("x" puts
// it on top, "y" on the right) running from lower to upper. With log the
// scale is logarithmic and both limits must be positive.
func (a *Axes) TwinAxis(axis string, lower, upper float64, label string, log bool) error {
	if axis != "x" && axis != "y" {
		return errors.New(errors.ErrCodeInvalidArgument, "twin axis must be \"x\" or \"y\", got %q", axis)
	}
	if err := errors.ValidateFinite("lower limit", lower); err != nil {
		return err
	}
	if err := errors.ValidateFinite("upper limit", upper); err != nil {
		return err
	}
	if lower == upper {
		return errors.New(errors.ErrCodeInvalidArgument, "twin axis limits must differ, got %v twice", lower)
	}
	t := &twin{
		axis:   axis,
		min:    lower,
		max:    upper,
		label:  label,
		scale:  plot.LinearScale{},
		ticker: plot.DefaultTicks{},
		tick:   a.theme.TextStyle(a.theme.TickLabel, a.theme.Tick),
		title:  a.theme.TextStyle(a.theme.AxisLabel, a.theme.Label),
		line:   draw.LineStyle{Color: a.theme.Tick, Width: vg.Points(spineWidth)},
		length: vg.Points(tickLength),
		pad:    vg.Points(4),
	}
	if log {
		if lower <= 0 || upper <= 0 {
			return errors.New(errors.ErrCodeInvalidArgument, "log twin axis needs positive limits, got [%v, %v]", lower, upper)
		}
		t.scale = plot.LogScale{}
		t.ticker = plot.LogTicks{Prec: -1}
	}
	if axis == "x" {
		t.tick.XAlign, t.tick.YAlign = draw.XCenter, draw.YBottom
		t.title.XAlign, t.title.YAlign = draw.XCenter, draw.YBottom
		a.ticks[SideTop] = true
	} else {
		t.tick.XAlign, t.tick.YAlign = draw.XLeft, draw.YCenter
		t.title.Rotation = math.Pi / 2
		t.title.XAlign, t.title.YAlign = draw.XCenter, draw.YTop
		a.ticks[SideRight] = true
	}
	a.twins = append(a.twins, t)
	return nil
}

func (t *twin) marks() []plot.Tick {
	lo, hi := math.Min(t.min, t.max), math.Max(t.min, t.max)
	var out []plot.Tick
	for _, m := range t.ticker.Ticks(lo, hi) {
		if m.Value >= lo && m.Value <= hi {
			out = append(out, m)
		}
	}
	return out
}

// extent is the room the twin needs outside the data area.
func (t *twin) extent() vg.Length {
	var labels vg.Length
	for _, m := range t.marks() {
		if m.IsMinor() {
			continue
		}
		var s vg.Length
		if t.axis == "x" {
			s = t.tick.Height(m.Label)
		} else {
			s = t.tick.Width(m.Label)
		}
		labels = vg.Length(math.Max(float64(labels), float64(s)))
	}
	e := t.length + t.pad + labels
	if t.label != "" {
		e += t.pad + t.title.Height(t.label)
	}
	return e
}

func (t *twin) reserve(area draw.Canvas) draw.Canvas {
	if t.axis == "x" {
		return draw.Crop(area, 0, 0, 0, -t.extent())
	}
	return draw.Crop(area, 0, -t.extent(), 0, 0)
}

func (t *twin) draw(dc draw.Canvas) {
	var widest vg.Length
	for _, m := range t.marks() {
		f := t.scale.Normalize(t.min, t.max, m.Value)
		length := t.length
		if m.IsMinor() {
			length /= 2
		}
		if t.axis == "x" {
			x := dc.X(f)
			dc.StrokeLine2(t.line, x, dc.Max.Y, x, dc.Max.Y+length)
			if !m.IsMinor() {
				dc.FillText(t.tick, vg.Point{X: x, Y: dc.Max.Y + t.length + t.pad}, m.Label)
				widest = vg.Length(math.Max(float64(widest), float64(t.tick.Height(m.Label))))
			}
			continue
		}
		y := dc.Y(f)
		dc.StrokeLine2(t.line, dc.Max.X, y, dc.Max.X+length, y)
		if !m.IsMinor() {
			dc.FillText(t.tick, vg.Point{X: dc.Max.X + t.length + t.pad, Y: y}, m.Label)
			widest = vg.Length(math.Max(float64(widest), float64(t.tick.Width(m.Label))))
		}
	}
	if t.label == "" {
		return
	}
	off := t.length + t.pad + widest + t.pad
	if t.axis == "x" {
		dc.FillText(t.title, vg.Point{X: dc.Center().X, Y: dc.Max.Y + off}, t.label)
		return
	}
	dc.FillText(t.title, vg.Point{X: dc.Max.X + off, Y: dc.Center().Y}, t.label)
}
