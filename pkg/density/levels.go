package density

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// DefaultFractions are the enclosed-mass fractions drawn when the caller
// does not choose any.
var DefaultFractions = []float64{0.25, 0.5, 0.75, 0.95}

// ContourLevels returns, for each fraction, the density threshold whose
// super-level set holds that fraction of the grid's mass. Cells are taken in
// order of decreasing density and the level is the density of the cell at
// which the running mass first reaches the fraction. Levels come back in the
// order the fractions were given; a larger fraction never has a larger level.
func ContourLevels(g *Grid, fractions []float64) ([]float64, error) {
	if err := validateFractions(fractions); err != nil {
		return nil, err
	}
	vals, total, err := sortedMass(g)
	if err != nil {
		return nil, err
	}

	cum := make([]float64, len(vals))
	floats.CumSum(cum, vals)

	levels := make([]float64, len(fractions))
	for i, f := range fractions {
		target := f * total * (1 - 1e-12)
		idx := sort.SearchFloat64s(cum, target)
		if idx >= len(vals) {
			idx = len(vals) - 1
		}
		levels[i] = vals[idx]
	}
	return levels, nil
}

// ScanLevels is the coarse variant of ContourLevels: it tries 1000 evenly
// spaced thresholds between zero and the grid maximum and keeps, for each
// fraction, the one whose strictly-greater mass is closest to it.
func ScanLevels(g *Grid, fractions []float64) ([]float64, error) {
	if err := validateFractions(fractions); err != nil {
		return nil, err
	}
	vals, total, err := sortedMass(g)
	if err != nil {
		return nil, err
	}

	const steps = 1000
	candidates := floats.Span(make([]float64, steps), 0, vals[0])
	above := make([]float64, steps)
	for i, l := range candidates {
		for _, v := range vals {
			if v <= l {
				break
			}
			above[i] += v
		}
		above[i] /= total
	}

	levels := make([]float64, len(fractions))
	for i, f := range fractions {
		best := math.Inf(1)
		for j, frac := range above {
			if d := math.Abs(f - frac); d <= best {
				best = d
				levels[i] = candidates[j]
			}
		}
	}
	return levels, nil
}

func validateFractions(fractions []float64) error {
	if len(fractions) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "at least one fraction is required")
	}
	for _, f := range fractions {
		if err := errors.ValidateFraction(f); err != nil {
			return err
		}
	}
	return nil
}

// sortedMass returns the finite, positive cell values in descending order
// along with their total.
func sortedMass(g *Grid) ([]float64, float64, error) {
	raw := g.Values()
	vals := raw[:0]
	for _, v := range raw {
		if v > 0 && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, 0, errors.New(errors.ErrCodeInsufficientData, "density grid has no mass")
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	return vals, floats.Sum(vals), nil
}

// Outside reports, for each point, whether it lies outside the contour at
// level: either beyond the grid or in a cell whose density is below level.
func Outside(points plotter.XYer, g *Grid, level float64) []bool {
	out := make([]bool, points.Len())
	for i := range out {
		x, y := points.XY(i)
		out[i] = g.At(x, y) < level
	}
	return out
}

// Split partitions points into those inside and outside the contour at
// level.
func Split(points plotter.XYer, g *Grid, level float64) (inside, outside plotter.XYs) {
	for i, o := range Outside(points, g, level) {
		x, y := points.XY(i)
		if o {
			outside = append(outside, plotter.XY{X: x, Y: y})
		} else {
			inside = append(inside, plotter.XY{X: x, Y: y})
		}
	}
	return inside, outside
}
