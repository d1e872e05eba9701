package density

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/binning"
	"github.com/matzehuels/betterplot/pkg/errors"
)

// Grid is a binned 2D density. Rows run along y and columns along x; X and
// Y report bin centers so a Grid can be handed to gonum contour and heat map
// plotters as is.
type Grid struct {
	xEdges, yEdges     []float64
	xCenters, yCenters []float64
	z                  *mat.Dense
}

var _ plotter.GridXYZ = (*Grid)(nil)

// MaxCells bounds the number of cells in a grid.
const MaxCells = 10_000_000

// NewGrid builds a grid from bin edges and row-major values, where row r
// holds the cells between yEdges[r] and yEdges[r+1].
func NewGrid(xEdges, yEdges, values []float64) (*Grid, error) {
	if err := binning.CheckEdges(xEdges); err != nil {
		return nil, err
	}
	if err := binning.CheckEdges(yEdges); err != nil {
		return nil, err
	}
	cols, rows := len(xEdges)-1, len(yEdges)-1
	if cols*rows > MaxCells {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "%dx%d grid exceeds %d cells", cols, rows, MaxCells)
	}
	if values == nil {
		values = make([]float64, rows*cols)
	}
	if len(values) != rows*cols {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "grid needs %d values, got %d", rows*cols, len(values))
	}
	xc, _ := binning.Centers(xEdges)
	yc, _ := binning.Centers(yEdges)
	return &Grid{
		xEdges:   append([]float64(nil), xEdges...),
		yEdges:   append([]float64(nil), yEdges...),
		xCenters: xc,
		yCenters: yc,
		z:        mat.NewDense(rows, cols, append([]float64(nil), values...)),
	}, nil
}

// Dims returns the number of columns (x bins) and rows (y bins).
func (g *Grid) Dims() (c, r int) {
	r, c = g.z.Dims()
	return c, r
}

// Z returns the density of cell (c, r).
func (g *Grid) Z(c, r int) float64 { return g.z.At(r, c) }

// X returns the center of column c.
func (g *Grid) X(c int) float64 { return g.xCenters[c] }

// Y returns the center of row r.
func (g *Grid) Y(r int) float64 { return g.yCenters[r] }

// XEdges returns a copy of the column edges.
func (g *Grid) XEdges() []float64 { return append([]float64(nil), g.xEdges...) }

// YEdges returns a copy of the row edges.
func (g *Grid) YEdges() []float64 { return append([]float64(nil), g.yEdges...) }

// Sum is the total mass of the grid.
func (g *Grid) Sum() float64 { return mat.Sum(g.z) }

// Max is the largest cell value.
func (g *Grid) Max() float64 { return mat.Max(g.z) }

// Min is the smallest cell value.
func (g *Grid) Min() float64 { return mat.Min(g.z) }

// Values returns the cells flattened in row-major order.
func (g *Grid) Values() []float64 {
	r, c := g.z.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, g.z.RawRowView(i)...)
	}
	return out
}

// Cell returns the column and row holding (x, y).
func (g *Grid) Cell(x, y float64) (c, r int, ok bool) {
	c = binning.Locate(g.xEdges, x)
	r = binning.Locate(g.yEdges, y)
	return c, r, c >= 0 && r >= 0
}

// At returns the density of the cell holding (x, y), or zero outside the
// grid.
func (g *Grid) At(x, y float64) float64 {
	c, r, ok := g.Cell(x, y)
	if !ok {
		return 0
	}
	return g.z.At(r, c)
}

// Map returns a new grid with f applied to every cell.
func (g *Grid) Map(f func(float64) float64) *Grid {
	out := g.clone()
	out.z.Apply(func(_, _ int, v float64) float64 { return f(v) }, g.z)
	return out
}

// Log10 returns the base-10 logarithm of the grid. Empty cells become NaN
// so heat maps leave them blank.
func (g *Grid) Log10() *Grid {
	return g.Map(func(v float64) float64 {
		if v <= 0 {
			return math.NaN()
		}
		return math.Log10(v)
	})
}

func (g *Grid) clone() *Grid {
	return &Grid{
		xEdges:   g.xEdges,
		yEdges:   g.yEdges,
		xCenters: g.xCenters,
		yCenters: g.yCenters,
		z:        mat.DenseCopyOf(g.z),
	}
}

type gridJSON struct {
	XEdges []float64   `json:"x_edges"`
	YEdges []float64   `json:"y_edges"`
	Z      [][]float64 `json:"z"`
}

// MarshalJSON encodes the grid as edges plus a row-major matrix.
func (g *Grid) MarshalJSON() ([]byte, error) {
	r, _ := g.z.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = append([]float64(nil), g.z.RawRowView(i)...)
	}
	return json.Marshal(gridJSON{XEdges: g.xEdges, YEdges: g.yEdges, Z: rows})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode density grid")
	}
	var flat []float64
	for _, row := range raw.Z {
		if len(row) != len(raw.XEdges)-1 {
			return errors.New(errors.ErrCodeInvalidFormat, "density grid row has %d cells, want %d", len(row), len(raw.XEdges)-1)
		}
		flat = append(flat, row...)
	}
	ng, err := NewGrid(raw.XEdges, raw.YEdges, flat)
	if err != nil {
		return err
	}
	*g = *ng
	return nil
}
