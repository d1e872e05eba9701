// Package fonts resolves style font families to the faces bundled with
// gonum/plot.
//
// Only the Liberation collection ships with the binary, so family names from
// style files ("Helvetica Neue", "serif", "Courier", ...) are mapped onto the
// metric-compatible Liberation variant. The shared cache is built once on
// first use.
package fonts

import (
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Typeface is the typeface of every bundled face.
const Typeface font.Typeface = "Liberation"

// Variants of the bundled typeface.
const (
	VariantSerif font.Variant = "Serif"
	VariantSans  font.Variant = "Sans"
	VariantMono  font.Variant = "Mono"
)

// Text handler names accepted by Handler.
const (
	HandlerPlain = "plain"
	HandlerLatex = "latex"
)

var families = map[string]font.Variant{
	"sans-serif":       VariantSans,
	"sans":             VariantSans,
	"helvetica neue":   VariantSans,
	"helvetica":        VariantSans,
	"arial":            VariantSans,
	"liberation sans":  VariantSans,
	"serif":            VariantSerif,
	"times":            VariantSerif,
	"times new roman":  VariantSerif,
	"computer modern":  VariantSerif,
	"cmu serif":        VariantSerif,
	"liberation serif": VariantSerif,
	"monospace":        VariantMono,
	"mono":             VariantMono,
	"courier":          VariantMono,
	"courier new":      VariantMono,
	"liberation mono":  VariantMono,
}

var (
	cache     *font.Cache
	cacheOnce sync.Once
)

// Cache returns the font cache holding the Liberation collection. It is
// shared by every text handler returned from Handler.
func Cache() *font.Cache {
	cacheOnce.Do(func() {
		cache = font.NewCache(liberation.Collection())
	})
	return cache
}

// ParseWeight maps a weight name ("normal", "bold", "light", ...) to an
// x/image font weight.
func ParseWeight(name string) (xfont.Weight, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal", "regular":
		return xfont.WeightNormal, nil
	case "bold":
		return xfont.WeightBold, nil
	case "light":
		return xfont.WeightLight, nil
	case "medium":
		return xfont.WeightMedium, nil
	case "semibold":
		return xfont.WeightSemiBold, nil
	case "black", "heavy":
		return xfont.WeightBlack, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown font weight %q", name)
}

// ParseStyle maps "normal" or "italic" to an x/image font style.
func ParseStyle(name string) (xfont.Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return xfont.StyleNormal, nil
	case "italic", "oblique":
		return xfont.StyleItalic, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown font style %q", name)
}

// Resolve returns the bundled font standing in for family at the given
// weight and size. Unknown families fall back to the sans variant and
// report ok=false.
func Resolve(family string, weight xfont.Weight, size vg.Length) (f font.Font, ok bool) {
	v, ok := families[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		v = VariantSans
	}
	// The collection only carries regular and bold cuts.
	w := xfont.WeightNormal
	if weight >= xfont.WeightSemiBold {
		w = xfont.WeightBold
	}
	return font.Font{Typeface: Typeface, Variant: v, Weight: w, Size: size}, ok
}

// Handler returns the text handler with the given name, backed by Cache.
func Handler(name string) (text.Handler, error) {
	switch strings.ToLower(name) {
	case "", HandlerPlain:
		return text.Plain{Fonts: Cache()}, nil
	case HandlerLatex:
		return &text.Latex{Fonts: Cache()}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown text handler %q", name)
}

// Families returns the recognised family names.
func Families() []string {
	out := make([]string, 0, len(families))
	for f := range families {
		out = append(out, f)
	}
	return out
}
