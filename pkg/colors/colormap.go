package colors

import (
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Colormap is a piecewise-linear colormap over evenly spaced color stops.
// It implements [palette.ColorMap] so it can drive gonum heat maps and
// contour plots directly.
type Colormap struct {
	name     string
	stops    []colorful.Color
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*Colormap)(nil)

// NewColormap builds a colormap through the given hex stops. At least one
// stop is required.
func NewColormap(name string, hexStops ...string) (*Colormap, error) {
	if len(hexStops) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "colormap %q needs at least one color", name)
	}
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := Parse(h)
		if err != nil {
			return nil, err
		}
		stops[i], _ = split(c)
	}
	return &Colormap{name: name, stops: stops, min: 0, max: 1, alpha: 1}, nil
}

// Name returns the registered name of the colormap.
func (m *Colormap) Name() string { return m.name }

// At returns the color for v, which must lie within [Min, Max].
func (m *Colormap) At(v float64) (color.Color, error) {
	if v < m.min || v > m.max {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "value %v outside colormap range [%v, %v]", v, m.min, m.max)
	}
	t := 0.0
	if m.max > m.min {
		t = (v - m.min) / (m.max - m.min)
	}
	return m.at(t), nil
}

func (m *Colormap) at(t float64) color.Color {
	a := uint8(clamp01(m.alpha)*255 + 0.5)
	if len(m.stops) == 1 || t <= 0 {
		return toNRGBA(m.stops[0], a)
	}
	if t >= 1 {
		return toNRGBA(m.stops[len(m.stops)-1], a)
	}
	pos := t * float64(len(m.stops)-1)
	lo := int(pos)
	return toNRGBA(m.stops[lo].BlendRgb(m.stops[lo+1], pos-float64(lo)), a)
}

// Max returns the value mapped to the last stop.
func (m *Colormap) Max() float64 { return m.max }

// SetMax sets the value mapped to the last stop.
func (m *Colormap) SetMax(v float64) { m.max = v }

// Min returns the value mapped to the first stop.
func (m *Colormap) Min() float64 { return m.min }

// SetMin sets the value mapped to the first stop.
func (m *Colormap) SetMin(v float64) { m.min = v }

// Alpha returns the opacity applied to every color.
func (m *Colormap) Alpha() float64 { return m.alpha }

// SetAlpha sets the opacity applied to every color. It panics outside
// [0, 1], as palette.ColorMap implementations do.
func (m *Colormap) SetAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		panic("colors: alpha out of range")
	}
	m.alpha = alpha
}

// Palette samples n evenly spaced colors from the colormap, first to last.
func (m *Colormap) Palette(n int) palette.Palette {
	out := make(colorList, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = m.at(t)
	}
	return out
}

// Clone returns an independent copy with the same stops and range.
func (m *Colormap) Clone() *Colormap {
	c := *m
	c.stops = append([]colorful.Color(nil), m.stops...)
	return &c
}

type colorList []color.Color

func (l colorList) Colors() []color.Color { return l }

// colormaps holds the stops of the built-in colormaps.
var colormaps = map[string][]string{
	"viridis": {
		"#440154", "#482374", "#404387", "#345e8d", "#29788e", "#20908c",
		"#22a784", "#44be70", "#79d151", "#bdde26", "#fde725",
	},
	"greys":           {"#ffffff", "#000000"},
	"modified_greys":  {LightGray, "#000000"},
	"white":           {White},
	"background_grey": {LightGray},
}

// LookupColormap returns a fresh instance of the named colormap. Unknown
// names fail with NOT_FOUND.
func LookupColormap(name string) (*Colormap, error) {
	stops, ok := colormaps[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown colormap: %q", name)
	}
	return NewColormap(name, stops...)
}

// ColormapNames returns the built-in colormap names in sorted order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Viridis returns a new viridis colormap.
func Viridis() *Colormap {
	m, _ := LookupColormap("viridis")
	return m
}

// Greys runs from white to black.
func Greys() *Colormap {
	m, _ := LookupColormap("greys")
	return m
}

// ModifiedGreys is Greys starting at light gray, so empty regions of a
// shaded density stay visible against a white figure.
func ModifiedGreys() *Colormap {
	m, _ := LookupColormap("modified_greys")
	return m
}
