package colors

import (
	"image/color"
	"testing"

	"github.com/matzehuels/betterplot/pkg/errors"
)

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func within(a, b color.Color, tol uint8) bool {
	an := color.NRGBAModel.Convert(a).(color.NRGBA)
	bn := color.NRGBAModel.Convert(b).(color.NRGBA)
	d := func(x, y uint8) uint8 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return d(an.R, bn.R) <= tol && d(an.G, bn.G) <= tol && d(an.B, bn.B) <= tol && an.A == bn.A
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"almost_black", "#262626"},
		{"light_gray", "#e5e5e5"},
		{"light_grey", "#e5e5e5"},
		{"steel_blue", "#3f5d7d"},
		{"pchg", "#284734"},
		{"parks_canada_heritage_green", "#284734"},
		{"Almost_Black", "#262626"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.name, err)
			}
			if got := Hex(c); got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("mauve")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Lookup(mauve) error = %v, want NOT_FOUND", err)
	}
}

func TestCycleStable(t *testing.T) {
	first := Cycle()
	if len(first) != 8 {
		t.Fatalf("len(Cycle()) = %d, want 8", len(first))
	}
	first[0] = color.Black

	second := Cycle()
	if Hex(second[0]) != "#4b5387" {
		t.Errorf("Cycle()[0] = %s after mutating a copy, want #4b5387", Hex(second[0]))
	}
	for i, h := range CycleHex() {
		if Hex(second[i]) != h {
			t.Errorf("Cycle()[%d] = %s, CycleHex()[%d] = %s", i, Hex(second[i]), i, h)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr errors.Code
	}{
		{"long hex", "#ac4649", "#ac4649", ""},
		{"short hex", "#fff", "#ffffff", ""},
		{"name", "steel_blue", "#3f5d7d", ""},
		{"single letter", "w", "#ffffff", ""},
		{"bad hex", "#zzz", "", errors.ErrCodeInvalidFormat},
		{"unknown name", "ultraviolet", "", errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %s", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got := Hex(c); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNone(t *testing.T) {
	c, err := Parse("none")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := c.RGBA(); a != 0 {
		t.Errorf("Parse(none) alpha = %d, want 0", a)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(MustParse("#ac4649"), 0.5)
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A != 128 {
		t.Errorf("alpha = %d, want 128", n.A)
	}
	if Hex(c) != "#ac4649" {
		t.Errorf("Hex = %s, want #ac4649", Hex(c))
	}
}
