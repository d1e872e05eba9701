package axes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/errors"
)

func testDensity() density.Options {
	return density.Options{Binning: density.BinCount(20), Smoothing: 0.3, Padding: -1}
}

func TestDensityContourLevels(t *testing.T) {
	a := newTestAxes(t)
	res, err := a.DensityContour(cloud(2000), ContourOptions{Density: testDensity(), Labels: true})
	require.NoError(t, err)

	assert.Equal(t, density.DefaultFractions, res.Fractions)
	require.Len(t, res.Levels, len(res.Fractions))
	for i := 1; i < len(res.Levels); i++ {
		assert.LessOrEqual(t, res.Levels[i], res.Levels[i-1])
	}
	assert.Equal(t, []string{"25.0%", "50.0%", "75.0%", "95.0%"}, a.LegendLabels())
	require.Len(t, a.layers, 1)
	assert.Equal(t, ZMarker, a.layers[0].z)
	assert.NotEmpty(t, render(a).Actions)
}

func TestDensityContourKeepsRequestOrder(t *testing.T) {
	a := newTestAxes(t)
	fractions := []float64{0.9, 0.3, 0.6}
	res, err := a.DensityContour(cloud(1000), ContourOptions{Density: testDensity(), Fractions: fractions})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.9, 0.3, 0.6}, fractions)
	assert.GreaterOrEqual(t, res.Levels[1], res.Levels[2])
	assert.GreaterOrEqual(t, res.Levels[2], res.Levels[0])
}

func TestDensityContourErrors(t *testing.T) {
	a := newTestAxes(t)
	_, err := a.DensityContour(cloud(1), ContourOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInsufficientData), "got %v", err)

	_, err = a.DensityContour(cloud(100), ContourOptions{Density: testDensity(), Fractions: []float64{0, 0.5}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "got %v", err)

	_, err = a.DensityContour(cloud(100), ContourOptions{Density: testDensity(), Fractions: []float64{1.5}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "got %v", err)
	assert.Empty(t, a.layers)
}

func TestLevelColors(t *testing.T) {
	cm := newTestAxes(t).Theme().Colormap
	cols := levelColors([]float64{1, 2, 3}, cm)
	require.Len(t, cols, 3)
	assert.NotEqual(t, cols[0], cols[2])

	same := levelColors([]float64{2, 2}, cm)
	assert.Equal(t, same[0], same[1])
}

func TestContourScatter(t *testing.T) {
	points := cloud(2000)
	a := newTestAxes(t)
	res, err := a.ContourScatter(points, ContourScatterOptions{Contour: ContourOptions{Density: testDensity()}})
	require.NoError(t, err)

	outermost := res.Levels[len(res.Levels)-1]
	require.NotEmpty(t, res.Outside)
	assert.Less(t, len(res.Outside), points.Len()/2)
	for _, p := range res.Outside {
		assert.Less(t, res.Grid.At(p.X, p.Y), outermost)
	}

	// Fill, contour lines and the outlying points.
	require.Len(t, a.layers, 3)
	assert.Equal(t, ZImage, a.layers[0].z)
	assert.Equal(t, ZMarker, a.layers[1].z)
	assert.Equal(t, ZPatch, a.layers[2].z)
	assert.NotEmpty(t, render(a).Actions)
}

func TestContourScatterOptions(t *testing.T) {
	a := newTestAxes(t)
	_, err := a.ContourScatter(cloud(500), ContourScatterOptions{
		Contour: ContourOptions{Density: testDensity()},
		Fill:    "none",
	})
	require.NoError(t, err)
	assert.Len(t, a.layers, 2)

	b := newTestAxes(t)
	_, err = b.ContourScatter(cloud(500), ContourScatterOptions{
		Contour:   ContourOptions{Density: testDensity()},
		Fill:      "modified_greys",
		NoScatter: true,
	})
	require.NoError(t, err)
	assert.Len(t, b.layers, 2)

	c := newTestAxes(t)
	_, err = c.ContourScatter(cloud(500), ContourScatterOptions{
		Contour: ContourOptions{Density: testDensity()},
		Fill:    "plaid",
	})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestDensityContourf(t *testing.T) {
	a := newTestAxes(t)
	res, err := a.DensityContourf(cloud(1000), ContourOptions{Density: testDensity()})
	require.NoError(t, err)
	require.Len(t, a.layers, 1)

	b := bands{Grid: res.Grid, levels: []float64{res.Levels[0], res.Levels[3]}}
	c, r := res.Grid.Dims()
	var peak float64
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			peak = max(peak, b.Z(i, j))
		}
	}
	assert.Equal(t, 2.0, peak)
	assert.NotEmpty(t, render(a).Actions)
}

func TestShadedDensity(t *testing.T) {
	a := newTestAxes(t)
	h, g, err := a.ShadedDensity(cloud(1000), ShadedOptions{Density: testDensity()})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, h.Min, g.Min())
	assert.Less(t, h.Min, h.Max)
	assert.Equal(t, g.Max(), h.Max)
	assert.NotNil(t, h.Underflow)

	_, _, err = a.ShadedDensity(cloud(1000), ShadedOptions{Density: testDensity(), Log: true})
	require.NoError(t, err)
	assert.Len(t, a.layers, 2)
	assert.NotEmpty(t, render(a).Actions)
}
