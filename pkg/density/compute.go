// Package density estimates binned 2D densities of point clouds and derives
// the contour levels that enclose given fractions of the total mass.
package density

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/binning"
	"github.com/matzehuels/betterplot/pkg/errors"
)

// Method selects how point mass is spread over the grid.
type Method string

const (
	// MethodHistogram counts points per cell, optionally followed by a
	// gaussian filter.
	MethodHistogram Method = "histogram"
	// MethodKDE evaluates a gaussian kernel density estimate at the cell
	// centers.
	MethodKDE Method = "kde"
)

type binKind int

const (
	binAuto binKind = iota
	binCount
	binEdges
	binSize
)

// Binning describes how the grid is laid out. The zero value picks a rounded
// Freedman-Diaconis bin size per axis.
type Binning struct {
	kind   binKind
	nx, ny int
	xEdges []float64
	yEdges []float64
	sx, sy float64
}

// BinCount spans the data extent with n equal bins on both axes.
func BinCount(n int) Binning { return Binning{kind: binCount, nx: n, ny: n} }

// BinCounts is BinCount with separate x and y counts.
func BinCounts(nx, ny int) Binning { return Binning{kind: binCount, nx: nx, ny: ny} }

// BinEdges uses the given edges as they are.
func BinEdges(x, y []float64) Binning { return Binning{kind: binEdges, xEdges: x, yEdges: y} }

// BinSize uses bins of the given widths aligned on multiples of the width.
func BinSize(x, y float64) Binning { return Binning{kind: binSize, sx: x, sy: y} }

// Options control Compute.
type Options struct {
	Binning Binning
	// Smoothing is the standard deviation, in data units, of the gaussian
	// used to smooth the histogram, or the KDE bandwidth. Zero disables
	// smoothing for histograms and selects Scott's rule for KDE.
	Smoothing float64
	// Padding extends the grid beyond the data extent on each side. A
	// negative value selects DefaultPadding. Ignored for explicit edges.
	Padding float64
	// Weights per point; nil means unit weights.
	Weights []float64
	Method  Method
}

// DefaultPadding is the margin left around the data so that contours are not
// clipped: three smoothing lengths, or two Freedman-Diaconis widths when no
// smoothing is applied. Zero when neither can be computed.
func DefaultPadding(values []float64, smoothing float64) float64 {
	if smoothing > 0 {
		return 3 * smoothing
	}
	w, err := binning.FreedmanDiaconis(values)
	if err != nil {
		return 0
	}
	return 2 * w
}

// Compute bins points into a density grid. With no smoothing the grid sums
// to the total weight of the points that fall inside it; smoothing spreads
// mass between cells without changing the total.
func Compute(points plotter.XYer, opts Options) (*Grid, error) {
	n := points.Len()
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInsufficientData, "density estimation needs at least 2 points, got %d", n)
	}
	if opts.Weights != nil && len(opts.Weights) != n {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "got %d weights for %d points", len(opts.Weights), n)
	}
	if math.IsNaN(opts.Smoothing) || opts.Smoothing < 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "smoothing must be non-negative, got %v", opts.Smoothing)
	}
	method := opts.Method
	if method == "" {
		method = MethodHistogram
	}
	if method != MethodHistogram && method != MethodKDE {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown density method %q", method)
	}

	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		x, y := points.XY(i)
		if err := errors.ValidateFinite("x", x); err != nil {
			return nil, err
		}
		if err := errors.ValidateFinite("y", y); err != nil {
			return nil, err
		}
		xs[i], ys[i] = x, y
	}

	xEdges, yEdges, err := layout(xs, ys, opts)
	if err != nil {
		return nil, err
	}
	g, err := NewGrid(xEdges, yEdges, nil)
	if err != nil {
		return nil, err
	}

	switch method {
	case MethodKDE:
		err = kde(g, xs, ys, opts.Weights, opts.Smoothing)
	default:
		histogram(g, xs, ys, opts.Weights)
		if opts.Smoothing > 0 {
			smooth(g, opts.Smoothing)
		}
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func layout(xs, ys []float64, opts Options) (xEdges, yEdges []float64, err error) {
	b := opts.Binning
	padX, padY := opts.Padding, opts.Padding
	if opts.Padding < 0 {
		padX = DefaultPadding(xs, opts.Smoothing)
		padY = DefaultPadding(ys, opts.Smoothing)
	}

	switch b.kind {
	case binEdges:
		if err := binning.CheckEdges(b.xEdges); err != nil {
			return nil, nil, err
		}
		if err := binning.CheckEdges(b.yEdges); err != nil {
			return nil, nil, err
		}
		return b.xEdges, b.yEdges, nil

	case binCount:
		if b.nx <= 0 || b.ny <= 0 {
			return nil, nil, errors.New(errors.ErrCodeInvalidArgument, "bin count must be positive, got %dx%d", b.nx, b.ny)
		}
		xlo, xhi := stats.Bounds(xs)
		ylo, yhi := stats.Bounds(ys)
		if xEdges, err = binning.EvenEdges(xlo-padX, xhi+padX, b.nx); err != nil {
			return nil, nil, err
		}
		if yEdges, err = binning.EvenEdges(ylo-padY, yhi+padY, b.ny); err != nil {
			return nil, nil, err
		}
		return xEdges, yEdges, nil

	case binSize:
		if !(b.sx > 0) || !(b.sy > 0) {
			return nil, nil, errors.New(errors.ErrCodeInvalidArgument, "bin size must be positive, got %vx%v", b.sx, b.sy)
		}
		if xEdges, err = binning.Make(xs, b.sx, padX); err != nil {
			return nil, nil, err
		}
		if yEdges, err = binning.Make(ys, b.sy, padY); err != nil {
			return nil, nil, err
		}
		return xEdges, yEdges, nil

	default:
		if xEdges, err = binning.Make(xs, 0, padX); err != nil {
			return nil, nil, err
		}
		if yEdges, err = binning.Make(ys, 0, padY); err != nil {
			return nil, nil, err
		}
		return xEdges, yEdges, nil
	}
}

func histogram(g *Grid, xs, ys, weights []float64) {
	for i := range xs {
		c, r, ok := g.Cell(xs[i], ys[i])
		if !ok {
			continue
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		g.z.Set(r, c, g.z.At(r, c)+w)
	}
}

// kde evaluates a product gaussian kernel at every cell center and rescales
// the result so the grid carries the total weight of the points.
func kde(g *Grid, xs, ys, weights []float64, bandwidth float64) error {
	hx, hy := bandwidth, bandwidth
	if bandwidth == 0 {
		hx = stats.BandwidthScott(stats.Sample{Xs: xs, Weights: weights})
		hy = stats.BandwidthScott(stats.Sample{Xs: ys, Weights: weights})
	}
	if !(hx > 0) || !(hy > 0) {
		return errors.New(errors.ErrCodeInvalidArgument, "points have no spread, pass a smoothing bandwidth")
	}

	kx := distuv.Normal{Mu: 0, Sigma: hx}
	ky := distuv.Normal{Mu: 0, Sigma: hy}
	cols, rows := g.Dims()
	total := 0.0
	for i := range xs {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		total += w
		px := make([]float64, cols)
		for c := range px {
			px[c] = kx.Prob(g.X(c) - xs[i])
		}
		for r := 0; r < rows; r++ {
			py := w * ky.Prob(g.Y(r)-ys[i])
			if py == 0 {
				continue
			}
			row := g.z.RawRowView(r)
			for c := range row {
				row[c] += py * px[c]
			}
		}
	}

	if sum := g.Sum(); sum > 0 {
		g.z.Scale(total/sum, g.z)
	}
	return nil
}
