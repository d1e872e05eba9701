package density

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/errors"
)

func threeCells(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid([]float64{0, 1, 2, 3}, []float64{0, 1}, []float64{1, 2, 7})
	require.NoError(t, err)
	return g
}

func TestContourLevelsKnownGrid(t *testing.T) {
	g := threeCells(t)
	tests := []struct {
		fractions []float64
		want      []float64
	}{
		{[]float64{0.5}, []float64{7}},
		{[]float64{0.7}, []float64{7}},
		{[]float64{0.8}, []float64{2}},
		{[]float64{0.95, 1}, []float64{1, 1}},
		{[]float64{0.95, 0.5, 0.8}, []float64{1, 7, 2}},
	}
	for _, tt := range tests {
		got, err := ContourLevels(g, tt.fractions)
		require.NoError(t, err)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ContourLevels(%v) mismatch (-want +got):\n%s", tt.fractions, diff)
		}
	}
}

func TestContourLevelsMonotone(t *testing.T) {
	g, err := Compute(gaussianCloud(3000), Options{Binning: BinSize(0.2, 0.2), Smoothing: 0.2})
	require.NoError(t, err)

	fractions := []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99}
	levels, err := ContourLevels(g, fractions)
	require.NoError(t, err)
	for i := 1; i < len(levels); i++ {
		assert.LessOrEqual(t, levels[i], levels[i-1], "level(%v) > level(%v)", fractions[i], fractions[i-1])
	}

	pair, err := ContourLevels(g, []float64{0.5, 0.95})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pair[0], pair[1])
}

func TestContourLevelsEnclosedMass(t *testing.T) {
	g, err := Compute(gaussianCloud(3000), Options{Binning: BinSize(0.1, 0.1), Smoothing: 0.15})
	require.NoError(t, err)
	levels, err := ContourLevels(g, []float64{0.5})
	require.NoError(t, err)

	enclosed := 0.0
	for _, v := range g.Values() {
		if v >= levels[0] {
			enclosed += v
		}
	}
	assert.GreaterOrEqual(t, enclosed/g.Sum(), 0.5)
	assert.Less(t, enclosed/g.Sum(), 0.52)
}

func TestContourLevelsErrors(t *testing.T) {
	g := threeCells(t)
	for _, fr := range [][]float64{nil, {0}, {-0.1}, {1.2}, {0.5, 2}} {
		_, err := ContourLevels(g, fr)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "fractions %v: %v", fr, err)
	}

	empty, err := NewGrid([]float64{0, 1}, []float64{0, 1}, nil)
	require.NoError(t, err)
	_, err = ContourLevels(empty, []float64{0.5})
	assert.True(t, errors.Is(err, errors.ErrCodeInsufficientData), "got %v", err)
}

func TestScanLevels(t *testing.T) {
	g := threeCells(t)
	levels, err := ScanLevels(g, []float64{0.5, 0.97})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, levels[0], 2.0)
	assert.Less(t, levels[0], 7.0)
	assert.GreaterOrEqual(t, levels[1], 0.0)
	assert.Less(t, levels[1], 1.0)
}

func TestScanLevelsAgreesWithExact(t *testing.T) {
	g, err := Compute(gaussianCloud(3000), Options{Binning: BinSize(0.1, 0.1), Smoothing: 0.2})
	require.NoError(t, err)
	fractions := []float64{0.5, 0.9}
	exact, err := ContourLevels(g, fractions)
	require.NoError(t, err)
	scanned, err := ScanLevels(g, fractions)
	require.NoError(t, err)
	if diff := cmp.Diff(exact, scanned, cmpopts.EquateApprox(0.1, 0.02*g.Max())); diff != "" {
		t.Errorf("levels differ (-exact +scanned):\n%s", diff)
	}
}

func TestOutside(t *testing.T) {
	g := threeCells(t)
	pts := plotter.XYs{{X: 0.5, Y: 0.5}, {X: 2.5, Y: 0.5}, {X: 10, Y: 0}, {X: 1.5, Y: 0.2}}
	assert.Equal(t, []bool{true, false, true, false}, Outside(pts, g, 2))

	inside, outside := Split(pts, g, 2)
	assert.Len(t, inside, 2)
	assert.Len(t, outside, 2)
	assert.Equal(t, plotter.XY{X: 10, Y: 0}, outside[1])
}
