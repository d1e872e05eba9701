package bpl

import (
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/axes"
	"github.com/matzehuels/betterplot/pkg/density"
)

// with runs f on the current axes.
func with(f func(*axes.Axes) error) error {
	ax, err := Gca()
	if err != nil {
		return err
	}
	return f(ax)
}

// Scatter draws points on the current axes.
func Scatter(xys plotter.XYer, opts axes.ScatterOptions) (s *plotter.Scatter, err error) {
	err = with(func(ax *axes.Axes) error {
		s, err = ax.Scatter(xys, opts)
		return err
	})
	return s, err
}

// Line draws a polyline on the current axes.
func Line(xys plotter.XYer, opts axes.LineOptions) (l *plotter.Line, err error) {
	err = with(func(ax *axes.Axes) error {
		l, err = ax.Line(xys, opts)
		return err
	})
	return l, err
}

// Hist draws a histogram on the current axes.
func Hist(values []float64, opts axes.HistOptions) (res *axes.HistResult, err error) {
	err = with(func(ax *axes.Axes) error {
		res, err = ax.Hist(values, opts)
		return err
	})
	return res, err
}

// ErrorBar draws markers with vertical error bars on the current axes.
func ErrorBar(xys plotter.XYer, yerr []float64, opts axes.ErrorBarOptions) error {
	return with(func(ax *axes.Axes) error {
		_, _, err := ax.ErrorBar(xys, yerr, opts)
		return err
	})
}

// AxHLine draws a horizontal reference line on the current axes.
func AxHLine(y float64, opts axes.LineOptions) error {
	return with(func(ax *axes.Axes) error {
		ax.AxHLine(y, opts)
		return nil
	})
}

// AxVLine draws a vertical reference line on the current axes.
func AxVLine(x float64, opts axes.LineOptions) error {
	return with(func(ax *axes.Axes) error {
		ax.AxVLine(x, opts)
		return nil
	})
}

// DataTicks draws a rug of xs and ys on the current axes.
func DataTicks(xs, ys []float64, opts axes.LineOptions) error {
	return with(func(ax *axes.Axes) error {
		ax.DataTicks(xs, ys, opts)
		return nil
	})
}

// DensityContour draws density contours on the current axes.
func DensityContour(points plotter.XYer, opts axes.ContourOptions) (res *axes.ContourResult, err error) {
	err = with(func(ax *axes.Axes) error {
		res, err = ax.DensityContour(points, opts)
		return err
	})
	return res, err
}

// DensityContourf fills density contour bands on the current axes.
func DensityContourf(points plotter.XYer, opts axes.ContourOptions) (res *axes.ContourResult, err error) {
	err = with(func(ax *axes.Axes) error {
		res, err = ax.DensityContourf(points, opts)
		return err
	})
	return res, err
}

// ContourScatter draws contours over the bulk of points and scatters the
// rest on the current axes.
func ContourScatter(points plotter.XYer, opts axes.ContourScatterOptions) (res *axes.ContourScatterResult, err error) {
	err = with(func(ax *axes.Axes) error {
		res, err = ax.ContourScatter(points, opts)
		return err
	})
	return res, err
}

// ShadedDensity draws a density heat map on the current axes.
func ShadedDensity(points plotter.XYer, opts axes.ShadedOptions) (g *density.Grid, err error) {
	err = with(func(ax *axes.Axes) error {
		_, g, err = ax.ShadedDensity(points, opts)
		return err
	})
	return g, err
}
