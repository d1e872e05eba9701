// Package pipeline turns a data file into a styled plot.
//
// A run has three stages:
//
//  1. Load: read points from CSV, TSV or JSON (package io)
//  2. Density: bin and smooth the points for the density kinds, memoised in
//     a cache keyed by the data and options
//  3. Render: draw onto an axes styled by the chosen preset and encode it
//
// The CLI drives it through a Runner:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:   pipeline.KindContourScatter,
//	    Input:  "points.csv",
//	    Format: "png",
//	})
//	os.WriteFile("points.png", res.Artifact, 0o644)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/betterplot/pkg/cache"
	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/errors"
	"github.com/matzehuels/betterplot/pkg/style"
)

// Plot kinds.
const (
	KindScatter        = "scatter"
	KindLine           = "line"
	KindHist           = "hist"
	KindContour        = "contour"
	KindContourf       = "contourf"
	KindContourScatter = "contour-scatter"
	KindDensity        = "density"
)

// ValidKinds is the set of supported plot kinds.
var ValidKinds = map[string]bool{
	KindScatter:        true,
	KindLine:           true,
	KindHist:           true,
	KindContour:        true,
	KindContourf:       true,
	KindContourScatter: true,
	KindDensity:        true,
}

// Kinds lists the plot kinds in the order the CLI documents them.
var Kinds = []string{KindScatter, KindLine, KindHist, KindContour, KindContourf, KindContourScatter, KindDensity}

// Defaults.
const (
	DefaultKind      = KindScatter
	DefaultGridBins  = 50
	DefaultFillColor = "white"
)

// Options configure one run.
type Options struct {
	// Load
	Input string `json:"input"`

	// Style: a preset name, or a TOML style file that wins over it.
	Style     string `json:"style,omitempty"`
	StyleFile string `json:"style_file,omitempty"`

	// Plot
	Kind   string `json:"kind,omitempty"`
	Title  string `json:"title,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
	Label  string `json:"label,omitempty"`
	// Legend is an anchor name, a keypad digit or "outside". Empty hides it.
	Legend     string   `json:"legend,omitempty"`
	Spines     []string `json:"remove_spines,omitempty"`
	Dark       bool     `json:"dark,omitempty"`
	EqualScale bool     `json:"equal_scale,omitempty"`
	Text       string   `json:"text,omitempty"`
	TextAt     string   `json:"text_at,omitempty"`

	// Histogram
	Bins    int     `json:"bins,omitempty"`
	BinSize float64 `json:"bin_size,omitempty"`
	RelFreq bool    `json:"rel_freq,omitempty"`
	Step    bool    `json:"step,omitempty"`

	// Density
	Method    string    `json:"method,omitempty"`
	GridBins  int       `json:"grid_bins,omitempty"`
	Smoothing float64   `json:"smoothing,omitempty"`
	Fractions []float64 `json:"fractions,omitempty"`
	Fill      string    `json:"fill,omitempty"`
	LogShade  bool      `json:"log_shade,omitempty"`
	Refresh   bool      `json:"refresh,omitempty"`

	// Output
	Format string `json:"format,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	Artifact []byte
	Format   string
	// Grid and Levels are set for the density kinds.
	Grid   *density.Grid
	Levels []float64
	// Outside holds the points ContourScatter drew individually.
	Outside int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings and sizes.
type Stats struct {
	Points      int
	LoadTime    time.Duration
	DensityTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	DensityHit bool
}

// ValidateKind checks that kind is supported.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid kind %q (must be one of: %s)", kind, strings.Join(Kinds, ", "))
	}
	return nil
}

// ValidateFormat checks that format can be rendered.
func ValidateFormat(format string) error {
	if !style.ValidSaveFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "input is required")
	}
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Style == "" && o.StyleFile == "" {
		o.Style = style.Default
	}
	if o.Format != "" {
		if err := ValidateFormat(o.Format); err != nil {
			return err
		}
	}
	if o.Bins < 0 || o.GridBins < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "bin counts must be positive")
	}
	if o.GridBins == 0 {
		o.GridBins = DefaultGridBins
	}
	if o.Method == "" {
		o.Method = string(density.MethodHistogram)
	}
	if o.Fill == "" {
		o.Fill = DefaultFillColor
	}
	for _, f := range o.Fractions {
		if err := errors.ValidateFraction(f); err != nil {
			return err
		}
	}
	if o.Text != "" && o.TextAt == "" {
		o.TextAt = "upper left"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// NeedsDensity reports whether the kind draws a density estimate.
func (o *Options) NeedsDensity() bool {
	switch o.Kind {
	case KindContour, KindContourf, KindContourScatter, KindDensity:
		return true
	}
	return false
}

// NeedsY reports whether the kind plots two columns.
func (o *Options) NeedsY() bool {
	return o.Kind != KindHist
}

// DensityOptions returns the density estimator settings.
func (o *Options) DensityOptions(weights []float64) density.Options {
	return density.Options{
		Binning:   density.BinCount(o.GridBins),
		Smoothing: o.Smoothing,
		Padding:   -1,
		Weights:   weights,
		Method:    density.Method(o.Method),
	}
}

// GridKeyOpts returns the cache key options for the density grid.
func (o *Options) GridKeyOpts(weighted bool) cache.GridKeyOpts {
	return cache.GridKeyOpts{
		Method:    o.Method,
		Bins:      o.GridBins,
		Smoothing: o.Smoothing,
		Padding:   -1,
		Weighted:  weighted,
	}
}

// Config resolves the style the plot is drawn in.
func (o *Options) Config() (style.Config, error) {
	if o.StyleFile != "" {
		return style.LoadFile(o.StyleFile)
	}
	return style.Get(o.Style)
}
