package axes

import (
	"image/color"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/binning"
	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/errors"
)

const fallbackBins = 10

// HistOptions select the binning and look of Hist. Bins, Edges and BinSize
// are mutually exclusive; with none set the bin width is the rounded
// Freedman-Diaconis width and edges sit on multiples of it.
type HistOptions struct {
	Bins    int
	Edges   []float64
	BinSize float64

	// RelFreq weights every value by 1/n. It cannot be combined with
	// Weights or Density.
	RelFreq bool
	// Density normalizes the bars to unit area.
	Density bool
	Weights []float64

	// Step draws outlines only, in the series color.
	Step      bool
	Color     color.Color
	Alpha     float64
	EdgeColor color.Color
	LineWidth vg.Length
	Label     string
}

// HistResult is the binned data Hist drew.
type HistResult struct {
	Edges   []float64
	Counts  []float64
	Plotter *plotter.Histogram
}

// Hist draws a histogram of values. Bars are filled in the next cycle color
// with white edges unless Step is set.
func (a *Axes) Hist(values []float64, opts HistOptions) (*HistResult, error) {
	if err := opts.validate(len(values)); err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := errors.ValidateFinite("value", v); err != nil {
			return nil, err
		}
	}
	edges, err := histEdges(values, opts)
	if err != nil {
		return nil, err
	}

	weights := opts.Weights
	if opts.RelFreq {
		weights = make([]float64, len(values))
		for i := range weights {
			weights[i] = 1 / float64(len(values))
		}
	}
	counts, err := binning.Counts(values, weights, edges)
	if err != nil {
		return nil, err
	}
	if opts.Density {
		total := floats.Sum(counts)
		for i := range counts {
			if total > 0 {
				counts[i] /= total * (edges[i+1] - edges[i])
			}
		}
	}

	h := &plotter.Histogram{Bins: make([]plotter.HistogramBin, len(counts))}
	for i, n := range counts {
		h.Bins[i] = plotter.HistogramBin{Min: edges[i], Max: edges[i+1], Weight: n}
	}
	h.Width = edges[1] - edges[0]

	col := opts.Color
	if col == nil {
		col = a.NextColor()
	}
	alpha := opts.Alpha
	if !(alpha > 0 && alpha <= 1) {
		alpha = 1
	}
	width := opts.LineWidth
	if opts.Step {
		if width <= 0 {
			width = vg.Points(2)
		}
		edge := opts.EdgeColor
		if edge == nil {
			edge = col
		}
		h.LineStyle = draw.LineStyle{Color: colors.WithAlpha(edge, alpha), Width: width}
	} else {
		if width <= 0 {
			width = vg.Points(0.5)
		}
		edge := opts.EdgeColor
		if edge == nil {
			edge = colors.MustParse(colors.White)
		}
		h.FillColor = colors.WithAlpha(col, alpha)
		h.LineStyle = draw.LineStyle{Color: edge, Width: width}
	}
	a.Add(ZPatch, h)
	a.addEntry(opts.Label, patchThumb{fill: h.FillColor, edge: h.LineStyle})

	return &HistResult{Edges: edges, Counts: counts, Plotter: h}, nil
}

func (o HistOptions) validate(n int) error {
	if n == 0 {
		return errors.New(errors.ErrCodeInsufficientData, "histogram of an empty sample")
	}
	if o.Bins < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "bin count must be positive, got %d", o.Bins)
	}
	if o.BinSize < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "bin size must be positive, got %v", o.BinSize)
	}
	set := 0
	for _, b := range []bool{o.Bins > 0, o.Edges != nil, o.BinSize > 0} {
		if b {
			set++
		}
	}
	if set > 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "bins, edges and bin size cannot be combined")
	}
	if o.RelFreq && o.Weights != nil {
		return errors.New(errors.ErrCodeInvalidArgument, "relative frequency works by setting the weights; drop one of them")
	}
	if o.RelFreq && o.Density {
		return errors.New(errors.ErrCodeInvalidArgument, "relative frequency cannot be combined with density")
	}
	if o.Weights != nil && len(o.Weights) != n {
		return errors.New(errors.ErrCodeInvalidArgument, "got %d weights for %d values", len(o.Weights), n)
	}
	return nil
}

func histEdges(values []float64, o HistOptions) ([]float64, error) {
	switch {
	case o.Edges != nil:
		if err := binning.CheckEdges(o.Edges); err != nil {
			return nil, err
		}
		return append([]float64(nil), o.Edges...), nil
	case o.Bins > 0:
		lo, hi := stats.Bounds(values)
		return binning.EvenEdges(lo, hi, o.Bins)
	case o.BinSize > 0:
		return binning.Make(values, o.BinSize, 0)
	}
	edges, err := binning.Make(values, 0, 0)
	if errors.Is(err, errors.ErrCodeInvalidArgument) {
		// No spread to estimate a width from.
		lo, hi := stats.Bounds(values)
		return binning.EvenEdges(lo, hi, fallbackBins)
	}
	return edges, err
}
