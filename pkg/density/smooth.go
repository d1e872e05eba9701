package density

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// truncate is the kernel half-width in standard deviations.
const truncate = 4.0

// smooth applies a separable gaussian filter with the given standard
// deviation in data units. Each cell spreads its mass over its neighbours
// and mass that would leave the grid is reflected back at the border, so
// the total is unchanged.
func smooth(g *Grid, sigma float64) {
	cols, rows := g.Dims()
	sx := sigma / meanWidth(g.xEdges)
	sy := sigma / meanWidth(g.yEdges)

	kx := kernel(sx, cols)
	buf := make([]float64, cols)
	for r := 0; r < rows; r++ {
		row := g.z.RawRowView(r)
		spread(buf, row, kx)
		copy(row, buf)
	}

	ky := kernel(sy, rows)
	col := make([]float64, rows)
	out := make([]float64, rows)
	for c := 0; c < cols; c++ {
		for r := range col {
			col[r] = g.z.At(r, c)
		}
		spread(out, col, ky)
		for r, v := range out {
			g.z.Set(r, c, v)
		}
	}
}

// kernel returns normalized gaussian weights for offsets -h..h, where h is
// the truncated half-width in cells, at most n.
func kernel(sigma float64, n int) []float64 {
	if !(sigma > 0) {
		return []float64{1}
	}
	h := n
	if hw := truncate*sigma + 0.5; hw < float64(n) {
		h = int(hw)
	}
	norm := distuv.Normal{Mu: 0, Sigma: sigma}
	w := make([]float64, 2*h+1)
	for i := range w {
		w[i] = norm.Prob(float64(i - h))
	}
	floats.Scale(1/floats.Sum(w), w)
	return w
}

// spread distributes every src cell over dst with weights k centered on it.
func spread(dst, src, k []float64) {
	for i := range dst {
		dst[i] = 0
	}
	h := len(k) / 2
	for i, v := range src {
		if v == 0 {
			continue
		}
		for j, w := range k {
			dst[reflect(i+j-h, len(src))] += v * w
		}
	}
}

// reflect maps an out-of-range index back into [0, n) by mirroring about
// the borders (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

func meanWidth(edges []float64) float64 {
	return (edges[len(edges)-1] - edges[0]) / float64(len(edges)-1)
}
