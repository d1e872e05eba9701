package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/errors"
)

func TestBuiltinsValidate(t *testing.T) {
	for _, c := range builtins() {
		t.Run(c.Name, func(t *testing.T) {
			if err := c.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if _, err := c.Theme(); err != nil {
				t.Errorf("Theme() = %v", err)
			}
		})
	}
}

func TestUseIdempotent(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })

	for _, name := range []string{Default, Presentation, White, Latex} {
		t.Run(name, func(t *testing.T) {
			if err := Use(name); err != nil {
				t.Fatal(err)
			}
			once := Current()
			if err := Use(name); err != nil {
				t.Fatal(err)
			}
			twice := Current()
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("Use(%q) twice differs from once (-once +twice):\n%s", name, diff)
			}
		})
	}
}

func TestUseRestoresDefaultColors(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })

	if err := Use(Default); err != nil {
		t.Fatal(err)
	}
	before := Current()
	if err := Use(White); err != nil {
		t.Fatal(err)
	}
	if Current().Colors.Text != colors.White {
		t.Errorf("white style text = %q, want %q", Current().Colors.Text, colors.White)
	}
	if err := Use(Default); err != nil {
		t.Fatal(err)
	}
	after := Current()

	if after.Colors.Text != colors.AlmostBlack {
		t.Errorf("text color = %q, want %q", after.Colors.Text, colors.AlmostBlack)
	}
	if after.Colors.PatchEdge != colors.AlmostBlack {
		t.Errorf("patch edge color = %q, want %q", after.Colors.PatchEdge, colors.AlmostBlack)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("default -> white -> default mismatch (-before +after):\n%s", diff)
	}
}

func TestUseUnknown(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })
	_ = Use(Presentation)

	err := Use("comic")
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("Use(comic) error = %v, want INVALID_ARGUMENT", err)
	}
	if Current().Name != Presentation {
		t.Errorf("failed Use changed the current style to %q", Current().Name)
	}
}

func TestCurrentIsCopy(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })
	_ = Use(Default)

	c := Current()
	c.Colors.Cycle[0] = "#000000"
	c.Font.Size = 99
	if got := Current(); got.Colors.Cycle[0] == "#000000" || got.Font.Size == 99 {
		t.Error("mutating the value returned by Current changed the global style")
	}
}

func TestSetCurrent(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })

	c := Current()
	c.Name = "custom"
	c.Font.Size = 11
	if err := SetCurrent(c); err != nil {
		t.Fatal(err)
	}
	if Current().Font.Size != 11 {
		t.Errorf("Font.Size = %v, want 11", Current().Font.Size)
	}

	c.Colors.Text = "not-a-color"
	if err := SetCurrent(c); err == nil {
		t.Error("SetCurrent accepted an invalid color")
	}
}

func TestPresetValues(t *testing.T) {
	tests := []struct {
		name      string
		titleSize float64
		tickSize  float64
		text      string
		cycleLen  int
		handler   string
	}{
		{Default, 16, 12, colors.AlmostBlack, 8, "plain"},
		{Presentation, 20, 16, colors.AlmostBlack, 8, "plain"},
		{White, 20, 16, colors.White, 10, "plain"},
		{Latex, 16, 12, colors.AlmostBlack, 8, "latex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if c.Font.TitleSize != tt.titleSize || c.Font.TickSize != tt.tickSize {
				t.Errorf("sizes = %v/%v, want %v/%v", c.Font.TitleSize, c.Font.TickSize, tt.titleSize, tt.tickSize)
			}
			if c.Colors.Text != tt.text {
				t.Errorf("text = %q, want %q", c.Colors.Text, tt.text)
			}
			if len(c.Colors.Cycle) != tt.cycleLen {
				t.Errorf("len(cycle) = %d, want %d", len(c.Colors.Cycle), tt.cycleLen)
			}
			if c.Font.Handler != tt.handler {
				t.Errorf("handler = %q, want %q", c.Font.Handler, tt.handler)
			}
			if c.Figure.Width != 10 || c.Figure.Height != 7 || c.Figure.SaveFormat != "pdf" {
				t.Errorf("figure = %+v", c.Figure)
			}
			if c.Legend.ScatterPoints != 1 {
				t.Errorf("legend scatter points = %d, want 1", c.Legend.ScatterPoints)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base, _ := Get(Default)
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"empty name", func(c *Config) { c.Name = "" }, errors.ErrCodeInvalidArgument},
		{"zero width", func(c *Config) { c.Figure.Width = 0 }, errors.ErrCodeInvalidArgument},
		{"bad format", func(c *Config) { c.Figure.SaveFormat = "gif" }, errors.ErrCodeInvalidFormat},
		{"zero dpi", func(c *Config) { c.Figure.DPI = 0 }, errors.ErrCodeInvalidArgument},
		{"negative font", func(c *Config) { c.Font.TickSize = -1 }, errors.ErrCodeInvalidArgument},
		{"bad weight", func(c *Config) { c.Font.Weight = "chunky" }, errors.ErrCodeInvalidArgument},
		{"bad handler", func(c *Config) { c.Font.Handler = "html" }, errors.ErrCodeInvalidArgument},
		{"bad color", func(c *Config) { c.Colors.Grid = "#12" }, errors.ErrCodeInvalidArgument},
		{"empty cycle", func(c *Config) { c.Colors.Cycle = nil }, errors.ErrCodeInvalidArgument},
		{"bad colormap", func(c *Config) { c.Colors.Colormap = "jet" }, errors.ErrCodeNotFound},
		{"no scatter points", func(c *Config) { c.Legend.ScatterPoints = 0 }, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base.Clone()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRegistryLoadTOML(t *testing.T) {
	r := NewRegistry()
	src := `
name = "poster"
base = "presentation"

[font]
title_size = 32

[colors]
cycle = ["#ac4649", "steel_blue"]
`
	c, err := r.LoadTOML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if c.Font.TitleSize != 32 {
		t.Errorf("TitleSize = %v, want 32", c.Font.TitleSize)
	}
	if c.Font.TickSize != 16 {
		t.Errorf("TickSize = %v, want 16 inherited from presentation", c.Font.TickSize)
	}
	if diff := cmp.Diff([]string{"#ac4649", "steel_blue"}, c.Colors.Cycle); diff != "" {
		t.Errorf("cycle mismatch (-want +got):\n%s", diff)
	}

	got, err := r.Get("poster")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("registered style mismatch (-loaded +registered):\n%s", diff)
	}
	if diff := cmp.Diff([]string{Default, Latex, "poster", Presentation, White}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryLoadTOMLErrors(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", `name = `, errors.ErrCodeInvalidFormat},
		{"missing name", `[font]
size = 10`, errors.ErrCodeInvalidArgument},
		{"unknown base", `name = "x"
base = "nope"`, errors.ErrCodeInvalidArgument},
		{"builtin name", `name = "default"`, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.LoadTOML([]byte(tt.src)); !errors.Is(err, tt.code) {
				t.Errorf("LoadTOML() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	c, _ := Get(White)
	c.Name = "white-copy"
	c.Base = ""

	var buf bytes.Buffer
	if err := c.WriteTOML(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `name = "white-copy"`) {
		t.Errorf("encoded style lacks name:\n%s", buf.String())
	}

	r := NewRegistry()
	back, err := r.LoadTOML(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTheme(t *testing.T) {
	c, _ := Get(White)
	th, err := c.Theme()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := th.Background.RGBA(); a != 0 {
		t.Errorf("white style background alpha = %d, want transparent", a)
	}
	if colors.Hex(th.CycleColor(0)) != "#ffffff" {
		t.Errorf("first cycle color = %s, want white", colors.Hex(th.CycleColor(0)))
	}
	if colors.Hex(th.CycleColor(len(th.Cycle))) != "#ffffff" {
		t.Error("CycleColor does not wrap around")
	}
	if th.Title.Size != 20 {
		t.Errorf("title size = %v, want 20pt", th.Title.Size)
	}
	if th.Width != 720 {
		t.Errorf("width = %v, want 720pt", th.Width)
	}
}

func TestApplyReturnsCurrent(t *testing.T) {
	t.Cleanup(func() { _ = Use(Default) })

	got, err := Apply(Presentation)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Current(), got); diff != "" {
		t.Errorf("Apply result differs from Current (-current +applied):\n%s", diff)
	}
	if _, err := Apply("comic"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Apply(comic) error = %v, want INVALID_ARGUMENT", err)
	}
	if Current().Name != Presentation {
		t.Errorf("failed Apply changed current style to %q", Current().Name)
	}
}
