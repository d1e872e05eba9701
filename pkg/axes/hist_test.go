package axes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/errors"
)

func ramp(n int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64(i)
	}
	return vs
}

func TestHistDefaultBinning(t *testing.T) {
	a := newTestAxes(t)
	res, err := a.Hist(ramp(100), HistOptions{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, floats.Sum(res.Counts))
	assert.Len(t, res.Counts, len(res.Edges)-1)
	assert.LessOrEqual(t, res.Edges[0], 0.0)
	assert.GreaterOrEqual(t, res.Edges[len(res.Edges)-1], 99.0)

	// Edges sit on multiples of the width.
	w := res.Edges[1] - res.Edges[0]
	for _, e := range res.Edges {
		assert.InDelta(t, math.Round(e/w), e/w, 1e-9)
	}
}

func TestHistNormalization(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 1.5, 1.6, 2.9}

	a := newTestAxes(t)
	res, err := a.Hist(values, HistOptions{Bins: 3, RelFreq: true})
	require.NoError(t, err)
	assert.InDelta(t, 1, floats.Sum(res.Counts), 1e-12)
	assert.InDelta(t, 0.5, res.Counts[0], 1e-12)

	res, err = a.Hist(values, HistOptions{Edges: []float64{0, 1, 3}, Density: true})
	require.NoError(t, err)
	var area float64
	for i, c := range res.Counts {
		area += c * (res.Edges[i+1] - res.Edges[i])
	}
	assert.InDelta(t, 1, area, 1e-12)

	res, err = a.Hist(values, HistOptions{BinSize: 1, Weights: []float64{2, 2, 2, 1, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 2, 1}, res.Counts[len(res.Counts)-3:])
}

func TestHistErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		opts   HistOptions
		code   errors.Code
	}{
		{"empty", nil, HistOptions{}, errors.ErrCodeInsufficientData},
		{"negative bins", ramp(5), HistOptions{Bins: -1}, errors.ErrCodeInvalidArgument},
		{"negative size", ramp(5), HistOptions{BinSize: -1}, errors.ErrCodeInvalidArgument},
		{"bins and edges", ramp(5), HistOptions{Bins: 3, Edges: []float64{0, 5}}, errors.ErrCodeInvalidArgument},
		{"bins and size", ramp(5), HistOptions{Bins: 3, BinSize: 1}, errors.ErrCodeInvalidArgument},
		{"relfreq and weights", ramp(3), HistOptions{RelFreq: true, Weights: []float64{1, 1, 1}}, errors.ErrCodeInvalidArgument},
		{"relfreq and density", ramp(3), HistOptions{RelFreq: true, Density: true}, errors.ErrCodeInvalidArgument},
		{"weights length", ramp(3), HistOptions{Weights: []float64{1}}, errors.ErrCodeInvalidArgument},
		{"decreasing edges", ramp(3), HistOptions{Edges: []float64{2, 1}}, errors.ErrCodeInvalidArgument},
		{"nan", []float64{1, 2, math.NaN()}, HistOptions{}, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAxes(t)
			_, err := a.Hist(tt.values, tt.opts)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.Empty(t, a.layers)
		})
	}
}

func TestHistConstantData(t *testing.T) {
	a := newTestAxes(t)
	res, err := a.Hist([]float64{3, 3, 3, 3}, HistOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Counts, fallbackBins)
	assert.Equal(t, 4.0, floats.Sum(res.Counts))
}

func TestHistLook(t *testing.T) {
	a := newTestAxes(t)
	bars, err := a.Hist(ramp(50), HistOptions{Label: "bars"})
	require.NoError(t, err)
	h := bars.Plotter
	assert.Equal(t, colors.Hex(a.Theme().Cycle[0]), colors.Hex(h.FillColor))
	assert.Equal(t, "#ffffff", colors.Hex(h.LineStyle.Color))

	step, err := a.Hist(ramp(50), HistOptions{Step: true})
	require.NoError(t, err)
	h = step.Plotter
	assert.Nil(t, h.FillColor)
	assert.Equal(t, colors.Hex(a.Theme().Cycle[1]), colors.Hex(h.LineStyle.Color))

	assert.Equal(t, []string{"bars"}, a.LegendLabels())
	for _, l := range a.layers {
		assert.Equal(t, ZPatch, l.z)
	}
	assert.NotEmpty(t, render(a).Actions)
}
