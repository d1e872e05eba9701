// Package style defines the named style presets and the explicit
// configuration object that plot surfaces are created with.
//
// A Config is plain data (strings and numbers) so it can be stored in TOML
// files and compared. Theme resolves it into colors, fonts and a text
// handler ready for gonum/plot.
package style

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/errors"
	"github.com/matzehuels/betterplot/pkg/fonts"
)

// Config is a complete set of rendering parameters.
type Config struct {
	Name   string       `toml:"name"`
	Base   string       `toml:"base,omitempty"`
	Figure FigureConfig `toml:"figure"`
	Font   FontConfig   `toml:"font"`
	Colors ColorConfig  `toml:"colors"`
	Legend LegendConfig `toml:"legend"`
}

// FigureConfig holds canvas size and output settings.
type FigureConfig struct {
	Width      float64 `toml:"width"`  // inches
	Height     float64 `toml:"height"` // inches
	Background string  `toml:"background"`
	SaveFormat string  `toml:"save_format"`
	DPI        int     `toml:"dpi"` // raster output only
}

// FontConfig holds the font family, weights and sizes in points.
type FontConfig struct {
	Family      string  `toml:"family"`
	Weight      string  `toml:"weight"`
	LabelWeight string  `toml:"label_weight"`
	TitleWeight string  `toml:"title_weight"`
	Handler     string  `toml:"handler"`
	Size        float64 `toml:"size"`
	TitleSize   float64 `toml:"title_size"`
	LabelSize   float64 `toml:"label_size"`
	TickSize    float64 `toml:"tick_size"`
	LegendSize  float64 `toml:"legend_size"`
}

// ColorConfig holds colors as names or hex strings.
type ColorConfig struct {
	Text      string   `toml:"text"`
	Label     string   `toml:"label"`
	AxesEdge  string   `toml:"axes_edge"`
	PatchEdge string   `toml:"patch_edge"`
	Tick      string   `toml:"tick"`
	Grid      string   `toml:"grid"`
	Cycle     []string `toml:"cycle"`
	Colormap  string   `toml:"colormap"`
}

// LegendConfig holds legend defaults.
type LegendConfig struct {
	ScatterPoints int     `toml:"scatter_points"`
	BorderPad     float64 `toml:"border_pad"` // in units of the legend font size
	Frame         bool    `toml:"frame"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Colors.Cycle = append([]string(nil), c.Colors.Cycle...)
	return c
}

// Validate checks every field can be resolved.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "style name cannot be empty")
	}
	if !(c.Figure.Width > 0) || !(c.Figure.Height > 0) {
		return errors.New(errors.ErrCodeInvalidArgument, "style %q: figure size must be positive", c.Name)
	}
	if c.Figure.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "style %q: dpi must be positive", c.Name)
	}
	if !ValidSaveFormats[c.Figure.SaveFormat] {
		return errors.New(errors.ErrCodeInvalidFormat, "style %q: unsupported save format %q", c.Name, c.Figure.SaveFormat)
	}
	for _, s := range []float64{c.Font.Size, c.Font.TitleSize, c.Font.LabelSize, c.Font.TickSize, c.Font.LegendSize} {
		if !(s > 0) {
			return errors.New(errors.ErrCodeInvalidArgument, "style %q: font sizes must be positive", c.Name)
		}
	}
	for _, w := range []string{c.Font.Weight, c.Font.LabelWeight, c.Font.TitleWeight} {
		if _, err := fonts.ParseWeight(w); err != nil {
			return err
		}
	}
	if _, err := fonts.Handler(c.Font.Handler); err != nil {
		return err
	}
	for _, s := range append([]string{c.Figure.Background, c.Colors.Text, c.Colors.Label, c.Colors.AxesEdge,
		c.Colors.PatchEdge, c.Colors.Tick, c.Colors.Grid}, c.Colors.Cycle...) {
		if _, err := colors.Parse(s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "style %q", c.Name)
		}
	}
	if len(c.Colors.Cycle) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "style %q: color cycle cannot be empty", c.Name)
	}
	if _, err := colors.LookupColormap(c.Colors.Colormap); err != nil {
		return err
	}
	if c.Legend.ScatterPoints < 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "style %q: legend scatter points must be at least 1", c.Name)
	}
	return nil
}

// ValidSaveFormats lists the output formats figures can be saved in.
var ValidSaveFormats = map[string]bool{
	"pdf":  true,
	"svg":  true,
	"eps":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tif":  true,
	"tiff": true,
}

// WriteTOML encodes c as a style file.
func (c Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode style %q", c.Name)
	}
	return nil
}
