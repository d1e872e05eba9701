package colors

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/betterplot/pkg/errors"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Fade moves c toward white by amount in [0, 1]. Fade(c, 0) is c and
// Fade(c, 1) is white. Alpha is preserved. The result has 16 bits per
// channel so that Unfade can recover c even for amounts close to 1.
func Fade(c color.Color, amount float64) (color.Color, error) {
	if err := errors.ValidateAmount(amount); err != nil {
		return nil, err
	}
	cf, _ := split(c)
	return toNRGBA64(fade(cf, amount), alpha16(c)), nil
}

// Unfade reverses Fade for the same amount. Unfade(c, 1) returns c unchanged:
// a fully faded color is white whatever it started as.
func Unfade(c color.Color, amount float64) (color.Color, error) {
	if err := errors.ValidateAmount(amount); err != nil {
		return nil, err
	}
	cf, _ := split(c)
	return toNRGBA64(unfade(cf, amount), alpha16(c)), nil
}

func fade(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(white, amount)
}

func unfade(c colorful.Color, amount float64) colorful.Color {
	if amount >= 1 {
		return c
	}
	k := 1 / (1 - amount)
	return colorful.Color{
		R: 1 - (1-c.R)*k,
		G: 1 - (1-c.G)*k,
		B: 1 - (1-c.B)*k,
	}.Clamped()
}

// FadeHSV produces the washed-out companion of c used for secondary series:
// saturation drops to a third and value moves three quarters of the way to
// full brightness.
func FadeHSV(c color.Color) color.Color {
	cf, a := split(c)
	h, s, v := cf.Hsv()
	return toNRGBA(colorful.Hsv(h, s/3, v+(1-v)*0.75), a)
}

// UnfadeHSV undoes FadeHSV. Colors with saturation above 1/3 cannot have been
// produced by FadeHSV and fail with INVALID_ARGUMENT.
func UnfadeHSV(c color.Color) (color.Color, error) {
	cf, a := split(c)
	h, s, v := cf.Hsv()
	if s > 1.0/3.0+1e-9 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "color %s is too saturated to be unfaded", cf.Hex())
	}
	return toNRGBA(colorful.Hsv(h, s*3, v-3*(1-v)).Clamped(), a), nil
}
