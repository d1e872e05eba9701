// Package colors provides the betterplot palette: a handful of named colors,
// the default color cycle, fading helpers and the colormaps used for density
// plots.
//
// Colors are exchanged as [image/color.Color] so they can be handed straight
// to gonum/plot. Parsing, blending and HSV math go through go-colorful.
package colors

import (
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Named colors.
const (
	AlmostBlack = "#262626"
	LightGray   = "#E5E5E5"
	SteelBlue   = "#3F5D7D"
	// ParksCanadaHeritageGreen is the green of the Canadian national park
	// road signs.
	ParksCanadaHeritageGreen = "#284734"
	White                    = "#FFFFFF"
	Black                    = "#000000"
)

var named = map[string]string{
	"almost_black":                AlmostBlack,
	"light_gray":                  LightGray,
	"light_grey":                  LightGray,
	"steel_blue":                  SteelBlue,
	"parks_canada_heritage_green": ParksCanadaHeritageGreen,
	"pchg":                        ParksCanadaHeritageGreen,
	"white":                       White,
	"w":                           White,
	"black":                       Black,
	"k":                           Black,
	"yellow":                      "#FFFF00",
	"y":                           "#FFFF00",
}

// cycle is the default color cycle, in the order series consume it.
var cycle = []string{
	"#4b5387",
	"#9bcfb3",
	"#919191",
	"#ac4649",
	"#d5b130",
	"#5b8070",
	"#ce9269",
	"#8b77a5",
}

// Lookup returns the named color. Unknown names fail with NOT_FOUND.
func Lookup(name string) (color.Color, error) {
	hex, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown color: %q", name)
	}
	return mustHex(hex), nil
}

// Names returns the known color names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Cycle returns a copy of the default color cycle.
func Cycle() []color.Color {
	out := make([]color.Color, len(cycle))
	for i, h := range cycle {
		out[i] = mustHex(h)
	}
	return out
}

// CycleHex returns the default color cycle as hex strings.
func CycleHex() []string {
	return append([]string(nil), cycle...)
}

// Parse resolves a color given either by name or as a "#rgb" or "#rrggbb"
// hex string. "none" yields a fully transparent color.
func Parse(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, "none"):
		return color.Transparent, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid hex color %q", s)
		}
		return toNRGBA(c, 0xff), nil
	default:
		return Lookup(s)
	}
}

// MustParse is like Parse but panics on error. It is meant for package-level
// tables of known-good colors.
func MustParse(s string) color.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders c as "#rrggbb", dropping alpha.
func Hex(c color.Color) string {
	cf, _ := split(c)
	return cf.Hex()
}

// WithAlpha returns c with its opacity replaced by alpha in [0, 1].
func WithAlpha(c color.Color, alpha float64) color.Color {
	cf, _ := split(c)
	return toNRGBA(cf, uint8(clamp01(alpha)*255+0.5))
}

func mustHex(h string) color.NRGBA {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return toNRGBA(c, 0xff)
}

// split separates a color into straight (non premultiplied) RGB and alpha.
func split(c color.Color) (colorful.Color, uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}, 0
	}
	return cf, n.A
}

func toNRGBA(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func toNRGBA64(c colorful.Color, a uint16) color.NRGBA64 {
	c = c.Clamped()
	ch := func(v float64) uint16 { return uint16(v*0xffff + 0.5) }
	return color.NRGBA64{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: a}
}

func alpha16(c color.Color) uint16 {
	return color.NRGBA64Model.Convert(c).(color.NRGBA64).A
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
