// Package binning chooses histogram bins that line up with axis ticks.
//
// Bin widths default to the Freedman-Diaconis estimate rounded to 1, 2, 5 or
// 10 times a power of ten, and bin edges are integer multiples of the width
// so that histograms symmetric about zero stay symmetric.
package binning

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/betterplot/pkg/errors"
)

const (
	// DefaultAlphaThreshold is the sample size below which scatter points
	// are drawn fully opaque.
	DefaultAlphaThreshold = 30
	// DefaultAlphaScale controls how fast opacity falls off with sample size.
	DefaultAlphaScale = 2000.0
	// MaxBins bounds the number of bins along one axis.
	MaxBins = 1 << 20
)

// Alpha guesses a scatter opacity for n points using the default threshold
// and scale.
func Alpha(n int) float64 {
	return AlphaWith(n, DefaultAlphaThreshold, DefaultAlphaScale)
}

// AlphaWith returns 1 for n below threshold and 0.99/(1+n/scale) otherwise.
func AlphaWith(n, threshold int, scale float64) float64 {
	if n < threshold {
		return 1
	}
	return 0.99 / (1 + float64(n)/scale)
}

// FreedmanDiaconis returns 2·IQR·n^(-1/3).
func FreedmanDiaconis(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New(errors.ErrCodeInsufficientData, "Freedman-Diaconis binning needs at least one value")
	}
	s := stats.Sample{Xs: values}
	iqr := s.IQR()
	if !(iqr > 0) {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "data has zero interquartile range, pass a bin size")
	}
	return 2 * iqr * math.Pow(float64(len(values)), -1.0/3.0), nil
}

// RoundToNice rounds a positive width to the closest of 1, 2, 5 or 10 times
// the power of ten just below it: 9 and 11 become 10, 0.004 becomes 0.005.
func RoundToNice(width float64) (float64, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "bin width must be positive, got %v", width)
	}
	base := math.Pow(10, math.Floor(math.Log10(width)))
	best, bestDiff := base, math.Inf(1)
	for _, m := range []float64{1, 2, 5, 10} {
		if d := math.Abs(width - m*base); d < bestDiff {
			best, bestDiff = m*base, d
		}
	}
	return best, nil
}

// RoundedBinWidth is the Freedman-Diaconis width of values rounded with
// RoundToNice.
func RoundedBinWidth(values []float64) (float64, error) {
	w, err := FreedmanDiaconis(values)
	if err != nil {
		return 0, err
	}
	return RoundToNice(w)
}

// Edges returns bin edges of the given size covering [min-pad, max+pad].
// Every edge is an integer multiple of size. When min-pad falls exactly on
// a multiple an extra bin is added below it so that the minimum is never on
// the outer edge.
func Edges(min, max, size, pad float64) ([]float64, error) {
	switch {
	case !(size > 0):
		return nil, errors.New(errors.ErrCodeInvalidArgument, "bin size must be positive, got %v", size)
	case !(pad >= 0):
		return nil, errors.New(errors.ErrCodeInvalidArgument, "padding must be non-negative, got %v", pad)
	case min > max:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "min (%v) must not exceed max (%v)", min, max)
	}
	for _, v := range []float64{min, max, size, pad} {
		if err := errors.ValidateFinite("bin bound", v); err != nil {
			return nil, err
		}
	}

	lower := math.Floor((min - pad) / size)
	upper := math.Floor((max+pad)/size) + 1
	if math.Abs(floorMod(min-pad, size)) <= 1e-8 {
		lower--
	}
	if upper-lower > MaxBins {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "bin size %v over [%v, %v] gives more than %d bins", size, min-pad, max+pad, MaxBins)
	}

	n := int(upper-lower) + 1
	edges := make([]float64, n)
	for i := range edges {
		edges[i] = (lower + float64(i)) * size
	}
	return edges, nil
}

// floorMod is the remainder of a/b with the sign of b.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// EvenEdges splits [min, max] into n equal bins. A degenerate range is
// widened by half a unit on both sides.
func EvenEdges(min, max float64, n int) ([]float64, error) {
	if n <= 0 || n > MaxBins {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "bin count must be in [1, %d], got %d", MaxBins, n)
	}
	if min > max {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "min (%v) must not exceed max (%v)", min, max)
	}
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return floats.Span(make([]float64, n+1), min, max), nil
}

// Centers returns the midpoint of each pair of adjacent edges.
func Centers(edges []float64) ([]float64, error) {
	if len(edges) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "need at least two edges to calculate centers, got %d", len(edges))
	}
	centers := make([]float64, len(edges)-1)
	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}
	return centers, nil
}

// Make returns edges for values with the given bin size and padding. A zero
// size selects RoundedBinWidth.
func Make(values []float64, size, pad float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInsufficientData, "cannot bin an empty sample")
	}
	if size == 0 {
		w, err := RoundedBinWidth(values)
		if err != nil {
			return nil, err
		}
		size = w
	}
	lo, hi := stats.Bounds(values)
	return Edges(lo, hi, size, pad)
}

// CheckEdges verifies edges are finite and strictly increasing.
func CheckEdges(edges []float64) error {
	if len(edges) < 2 {
		return errors.New(errors.ErrCodeInvalidArgument, "need at least two bin edges, got %d", len(edges))
	}
	for i, e := range edges {
		if err := errors.ValidateFinite("bin edge", e); err != nil {
			return err
		}
		if i > 0 && !(e > edges[i-1]) {
			return errors.New(errors.ErrCodeInvalidArgument, "bin edges must be strictly increasing")
		}
	}
	return nil
}

// Locate returns the bin index holding v, or -1 when v lies outside the
// edges. Bins are half open except the last, which includes its right edge.
func Locate(edges []float64, v float64) int {
	last := len(edges) - 1
	if last < 1 || v < edges[0] || v > edges[last] || math.IsNaN(v) {
		return -1
	}
	if v == edges[last] {
		return last - 1
	}
	return sort.SearchFloat64s(edges, math.Nextafter(v, math.Inf(1))) - 1
}

// Counts bins values into edges. Weights may be nil for unit weights;
// values outside the edges are dropped.
func Counts(values, weights, edges []float64) ([]float64, error) {
	if err := CheckEdges(edges); err != nil {
		return nil, err
	}
	if weights != nil && len(weights) != len(values) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "got %d weights for %d values", len(weights), len(values))
	}
	counts := make([]float64, len(edges)-1)
	for i, v := range values {
		idx := Locate(edges, v)
		if idx < 0 {
			continue
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		counts[idx] += w
	}
	return counts, nil
}
