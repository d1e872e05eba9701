package axes

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/errors"
)

const (
	contourWidth   = 2 // points
	shadedQuantile = 0.01
)

// ContourOptions configure the density contour operations.
type ContourOptions struct {
	Density density.Options
	// Fractions of the total mass enclosed by each contour. Defaults to
	// density.DefaultFractions.
	Fractions []float64
	// Colormap colors the levels, denser levels toward its upper end.
	// Defaults to the style's colormap.
	Colormap *colors.Colormap
	// Color draws every level in one color instead of the colormap.
	Color     color.Color
	LineWidth vg.Length
	// Labels adds a legend entry per level naming the enclosed percentage.
	Labels bool
}

// ContourResult describes the contours that were drawn.
type ContourResult struct {
	Grid      *density.Grid
	Fractions []float64
	// Levels holds the density threshold of each fraction, in the same
	// order.
	Levels []float64
}

func (o ContourOptions) fractions() []float64 {
	if len(o.Fractions) == 0 {
		return append([]float64(nil), density.DefaultFractions...)
	}
	return o.Fractions
}

func (a *Axes) contourLevels(points plotter.XYer, opts ContourOptions) (*ContourResult, error) {
	g, err := density.Compute(points, opts.Density)
	if err != nil {
		return nil, err
	}
	return contourLevelsOf(g, opts)
}

func contourLevelsOf(g *density.Grid, opts ContourOptions) (*ContourResult, error) {
	fr := opts.fractions()
	levels, err := density.ContourLevels(g, fr)
	if err != nil {
		return nil, err
	}
	return &ContourResult{Grid: g, Fractions: fr, Levels: levels}, nil
}

// DensityContour estimates the density of points and draws contours
// enclosing the requested fractions of the mass.
func (a *Axes) DensityContour(points plotter.XYer, opts ContourOptions) (*ContourResult, error) {
	res, err := a.contourLevels(points, opts)
	if err != nil {
		return nil, err
	}
	a.drawContours(res, opts)
	return res, nil
}

// DensityContourGrid draws contours of an already computed grid.
func (a *Axes) DensityContourGrid(g *density.Grid, opts ContourOptions) (*ContourResult, error) {
	res, err := contourLevelsOf(g, opts)
	if err != nil {
		return nil, err
	}
	a.drawContours(res, opts)
	return res, nil
}

func (a *Axes) drawContours(res *ContourResult, opts ContourOptions) {
	cm := opts.Colormap
	if cm == nil {
		cm = a.theme.Colormap
	}
	width := opts.LineWidth
	if width <= 0 {
		width = vg.Points(contourWidth)
	}

	cols := levelColors(res.Levels, cm)
	styles := make([]draw.LineStyle, len(res.Levels))
	for i := range res.Levels {
		styles[i] = draw.LineStyle{Color: cols[i], Width: width}
		if opts.Color != nil {
			styles[i].Color = opts.Color
		}
	}

	// The contour plotter sorts its levels in place, so hand it ascending
	// levels with matching styles.
	order := make([]int, len(res.Levels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return res.Levels[order[i]] < res.Levels[order[j]] })
	levels := make([]float64, len(order))
	sorted := make([]draw.LineStyle, len(order))
	for i, o := range order {
		levels[i], sorted[i] = res.Levels[o], styles[o]
	}

	c := plotter.NewContour(res.Grid, levels, nil)
	c.LineStyles = sorted
	a.Add(ZMarker, c)

	if opts.Labels {
		for i, f := range res.Fractions {
			a.addEntry(fmt.Sprintf("%.1f%%", f*100), lineThumb{line: styles[i]})
		}
	}
}

// levelColors maps each level through cm, with the colormap range padded by
// a tenth of the level span on both sides.
func levelColors(levels []float64, cm *colors.Colormap) []color.Color {
	cm = cm.Clone()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range levels {
		lo, hi = math.Min(lo, l), math.Max(hi, l)
	}
	span := hi - lo
	cm.SetMin(lo - 0.1*span)
	cm.SetMax(hi + 0.1*span)

	out := make([]color.Color, len(levels))
	for i, l := range levels {
		if span == 0 {
			cm.SetMin(0)
			cm.SetMax(1)
			l = 0.5
		}
		c, err := cm.At(l)
		if err != nil {
			c = colors.MustParse(colors.AlmostBlack)
		}
		out[i] = c
	}
	return out
}

// DensityContourf fills the bands between density contours. The region
// outside the outermost contour stays empty.
func (a *Axes) DensityContourf(points plotter.XYer, opts ContourOptions) (*ContourResult, error) {
	res, err := a.contourLevels(points, opts)
	if err != nil {
		return nil, err
	}
	a.fillContours(res, opts.Colormap, ZImage)
	return res, nil
}

// DensityContourfGrid fills the bands of an already computed grid.
func (a *Axes) DensityContourfGrid(g *density.Grid, opts ContourOptions) (*ContourResult, error) {
	res, err := contourLevelsOf(g, opts)
	if err != nil {
		return nil, err
	}
	a.fillContours(res, opts.Colormap, ZImage)
	return res, nil
}

func (a *Axes) fillContours(res *ContourResult, cm *colors.Colormap, z int) {
	if cm == nil {
		cm = a.theme.Colormap
	}
	levels := append([]float64(nil), res.Levels...)
	sort.Sort(sort.Reverse(sort.Float64Slice(levels)))
	k := len(levels)

	pal := make(bandPalette, k+1)
	for i := 0; i < k; i++ {
		t := 0.5
		if k > 1 {
			t = float64(i) / float64(k-1)
		}
		c := cm.Clone()
		c.SetMin(0)
		c.SetMax(1)
		pal[i], _ = c.At(t)
	}
	pal[k] = pal[k-1]

	h := plotter.NewHeatMap(bands{Grid: res.Grid, levels: levels}, pal)
	h.Min, h.Max = 1, float64(k+1)
	h.Underflow = nil
	a.Add(z, h)
}

// bands reports, for each cell, how many contour levels its density reaches.
type bands struct {
	*density.Grid
	levels []float64 // descending
}

func (b bands) Z(c, r int) float64 {
	v := b.Grid.Z(c, r)
	n := 0
	for _, l := range b.levels {
		if v >= l {
			n++
		}
	}
	return float64(n)
}

func (b bands) Min() float64 { return 0 }
func (b bands) Max() float64 { return float64(len(b.levels)) }

type bandPalette []color.Color

func (p bandPalette) Colors() []color.Color { return p }

// ContourScatterOptions configure ContourScatter.
type ContourScatterOptions struct {
	Contour ContourOptions
	// Fill names the colormap filling the contour bands: "white",
	// "background_grey", "modified_greys" or any colormap name. "none"
	// disables the fill.
	Fill    string
	Scatter ScatterOptions
	// NoScatter hides the outlying points.
	NoScatter bool
}

// ContourScatterResult adds the outlying points to the contour result.
type ContourScatterResult struct {
	*ContourResult
	Outside plotter.XYs
}

// ContourScatter draws density contours over the bulk of points and
// scatters only the points outside the outermost contour. A point is outside
// when the density of its grid cell lies below the outermost level.
func (a *Axes) ContourScatter(points plotter.XYer, opts ContourScatterOptions) (*ContourScatterResult, error) {
	g, err := density.Compute(points, opts.Contour.Density)
	if err != nil {
		return nil, err
	}
	return a.ContourScatterGrid(points, g, opts)
}

// ContourScatterGrid is ContourScatter over an already computed grid of
// points.
func (a *Axes) ContourScatterGrid(points plotter.XYer, g *density.Grid, opts ContourScatterOptions) (*ContourScatterResult, error) {
	res, err := contourLevelsOf(g, opts.Contour)
	if err != nil {
		return nil, err
	}

	fill := opts.Fill
	if fill == "" {
		fill = "white"
	}
	if fill != "none" {
		cm, err := colors.LookupColormap(fill)
		if err != nil {
			return nil, err
		}
		a.fillContours(res, cm, ZImage)
	}
	a.drawContours(res, opts.Contour)

	outermost := math.Inf(1)
	for _, l := range res.Levels {
		outermost = math.Min(outermost, l)
	}
	_, outside := density.Split(points, res.Grid, outermost)
	out := &ContourScatterResult{ContourResult: res, Outside: outside}
	if opts.NoScatter || len(outside) == 0 {
		return out, nil
	}

	so := opts.Scatter
	if so.Color == nil {
		so.Color = colors.MustParse(colors.AlmostBlack)
	}
	if so.Alpha == 0 {
		so.Alpha = 1
	}
	if so.Radius == 0 {
		so.Radius = vg.Points(math.Sqrt(10 / math.Pi))
	}
	if _, err := a.scatter(outside, so, ZPatch); err != nil {
		return nil, err
	}
	return out, nil
}

// ShadedOptions configure ShadedDensity.
type ShadedOptions struct {
	Density density.Options
	// Colormap defaults to greys.
	Colormap *colors.Colormap
	// Log shades by the base 10 logarithm of the density.
	Log bool
}

// ShadedDensity draws the density of points as a heat map. The color scale
// starts at the 1st percentile of the cell values; lower cells get the
// lowest color.
func (a *Axes) ShadedDensity(points plotter.XYer, opts ShadedOptions) (*plotter.HeatMap, *density.Grid, error) {
	g, err := density.Compute(points, opts.Density)
	if err != nil {
		return nil, nil, err
	}
	h, err := a.ShadedDensityGrid(g, opts)
	if err != nil {
		return nil, nil, err
	}
	return h, g, nil
}

// ShadedDensityGrid shades an already computed grid.
func (a *Axes) ShadedDensityGrid(g *density.Grid, opts ShadedOptions) (*plotter.HeatMap, error) {
	shade := g
	if opts.Log {
		shade = g.Log10()
	}

	var vals []float64
	for _, v := range shade.Values() {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, errors.New(errors.ErrCodeInsufficientData, "density grid has no finite cells to shade")
	}
	sort.Float64s(vals)
	vmin := stat.Quantile(shadedQuantile, stat.Empirical, vals, nil)
	vmax := vals[len(vals)-1]
	if vmax <= vmin {
		vmax = vmin + 1
	}

	cm := opts.Colormap
	if cm == nil {
		cm = colors.Greys()
	}
	pal := cm.Palette(256)
	h := plotter.NewHeatMap(shade, pal)
	h.Min, h.Max = vmin, vmax
	h.Underflow = pal.Colors()[0]
	a.Add(ZImage, h)
	return h, nil
}

var _ palette.Palette = bandPalette(nil)
