package density

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/betterplot/pkg/errors"
)

func TestNewGridErrors(t *testing.T) {
	_, err := NewGrid([]float64{0}, []float64{0, 1}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	_, err = NewGrid([]float64{0, 1}, []float64{0, 1}, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}

func TestNewGridTooLarge(t *testing.T) {
	edges := make([]float64, 4001)
	for i := range edges {
		edges[i] = float64(i)
	}
	_, err := NewGrid(edges, edges, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "got %v", err)
}

func TestGridAt(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.0, g.At(1.5, 0.5))
	assert.Equal(t, 3.0, g.At(0.5, 1.5))
	assert.Equal(t, 4.0, g.At(2, 2))
	assert.Equal(t, 0.0, g.At(-1, 0))
	assert.Equal(t, 2.0, g.Z(1, 0))
}

func TestGridLog10(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1}, []float64{0, 100})
	require.NoError(t, err)
	l := g.Log10()
	assert.True(t, math.IsNaN(l.Z(0, 0)))
	assert.InDelta(t, 2.0, l.Z(1, 0), 1e-12)
	assert.Equal(t, 0.0, g.Z(0, 0), "Log10 must not modify the receiver")
}

func TestGridJSON(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1}, []float64{3, 4})
	require.NoError(t, err)
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x_edges":[0,1,2],"y_edges":[0,1],"z":[[3,4]]}`, string(data))

	var back Grid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g.Values(), back.Values())

	err = json.Unmarshal([]byte(`{"x_edges":[0,1,2],"y_edges":[0,1],"z":[[3]]}`), &back)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
