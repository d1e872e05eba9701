package axes

import (
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Coordinate systems for AddText.
const (
	CoordsData = "data"
	CoordsAxes = "axes"
)

// anchorInset is the distance, in axes fractions, between an anchor and the
// axes border.
const anchorInset = 0.04

type anchor struct {
	x, y   float64
	xalign draw.XAlignment
	yalign draw.YAlignment
}

var anchors = map[string]anchor{
	"upper left":   {anchorInset, 1 - anchorInset, draw.XLeft, draw.YTop},
	"upper center": {0.5, 1 - anchorInset, draw.XCenter, draw.YTop},
	"upper right":  {1 - anchorInset, 1 - anchorInset, draw.XRight, draw.YTop},
	"center left":  {anchorInset, 0.5, draw.XLeft, draw.YCenter},
	"center":       {0.5, 0.5, draw.XCenter, draw.YCenter},
	"center right": {1 - anchorInset, 0.5, draw.XRight, draw.YCenter},
	"lower left":   {anchorInset, anchorInset, draw.XLeft, draw.YBottom},
	"lower center": {0.5, anchorInset, draw.XCenter, draw.YBottom},
	"lower right":  {1 - anchorInset, anchorInset, draw.XRight, draw.YBottom},
}

// keypad maps the digits of a numeric keypad onto the anchors.
var keypad = map[string]string{
	"1": "lower left", "2": "lower center", "3": "lower right",
	"4": "center left", "5": "center", "6": "center right",
	"7": "upper left", "8": "upper center", "9": "upper right",
}

// Locations returns the anchor names accepted by EasyAddText and Legend.
func Locations() []string {
	names := make([]string, 0, len(anchors))
	for n := range anchors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupAnchor(location string) (anchor, error) {
	loc := strings.ToLower(strings.TrimSpace(location))
	if name, ok := keypad[loc]; ok {
		loc = name
	}
	an, ok := anchors[loc]
	if !ok {
		return anchor{}, errors.New(errors.ErrCodeInvalidArgument,
			"unknown location %q: use one of %s or 1-9", location, strings.Join(Locations(), ", "))
	}
	return an, nil
}

// TextOptions style annotations. Zero values use the style's body font and
// text color.
type TextOptions struct {
	Color color.Color
	Size  vg.Length
}

type annotation struct {
	text   string
	x, y   float64
	coords string
	style  text.Style
}

// EasyAddText places txt at one of the nine anchors, addressed by name
// ("upper left", "center", "lower right", ...) or by keypad digit "1"-"9".
// Unknown locations fail with INVALID_ARGUMENT.
func (a *Axes) EasyAddText(txt, location string, opts TextOptions) error {
	an, err := lookupAnchor(location)
	if err != nil {
		return err
	}
	sty := a.textStyle(opts)
	sty.XAlign, sty.YAlign = an.xalign, an.yalign
	a.texts = append(a.texts, annotation{text: txt, x: an.x, y: an.y, coords: CoordsAxes, style: sty})
	return nil
}

// AddText places txt centered at (x, y) in data or axes coordinates.
func (a *Axes) AddText(x, y float64, txt, coords string, opts TextOptions) error {
	switch coords {
	case "", CoordsData:
		coords = CoordsData
	case CoordsAxes:
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "coords must be %q or %q, got %q", CoordsData, CoordsAxes, coords)
	}
	if err := errors.ValidateFinite("x", x); err != nil {
		return err
	}
	if err := errors.ValidateFinite("y", y); err != nil {
		return err
	}
	sty := a.textStyle(opts)
	sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
	a.texts = append(a.texts, annotation{text: txt, x: x, y: y, coords: coords, style: sty})
	return nil
}

func (a *Axes) textStyle(opts TextOptions) text.Style {
	sty := a.theme.TextStyle(a.theme.Body, a.theme.Text)
	if opts.Color != nil {
		sty.Color = opts.Color
	}
	if opts.Size > 0 {
		sty.Font.Size = opts.Size
	}
	return sty
}

func (a *Axes) drawTexts(p *plot.Plot, dc draw.Canvas) {
	trX, trY := p.Transforms(&dc)
	for _, t := range a.texts {
		pt := vg.Point{X: dc.X(t.x), Y: dc.Y(t.y)}
		if t.coords == CoordsData {
			pt = vg.Point{X: trX(t.x), Y: trY(t.y)}
		}
		dc.FillText(t.style, pt, t.text)
	}
}
