package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/betterplot/pkg/axes"
	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/io"
	"github.com/matzehuels/betterplot/pkg/observability"
)

func (r *Runner) render(ctx context.Context, data *io.Dataset, grid *density.Grid, opts Options, result *Result) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	format := opts.Format
	if format == "" {
		format = cfg.Figure.SaveFormat
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Kind, format)
	start := time.Now()

	artifact, err := func() ([]byte, error) {
		a, err := axes.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := Draw(a, data, grid, opts, result); err != nil {
			return nil, err
		}
		return a.Figure().Render(format)
	}()
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, format, result.Stats.RenderTime, err)
	if err != nil {
		return err
	}
	result.Artifact = artifact
	result.Format = format
	return nil
}

// Draw plots data onto a as opts.Kind and applies the decorations opts
// asks for. grid is the density of data for the density kinds; when nil it
// is computed. The levels and outlying point count land in result.
func Draw(a *axes.Axes, data *io.Dataset, grid *density.Grid, opts Options, result *Result) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.Dark {
		a.MakeDark()
	}
	if opts.NeedsDensity() && grid == nil {
		g, err := density.Compute(data, opts.DensityOptions(data.Weights))
		if err != nil {
			return err
		}
		grid = g
	}

	labels := opts.Legend != ""
	contour := axes.ContourOptions{Fractions: opts.Fractions, Labels: labels}

	switch opts.Kind {
	case KindScatter:
		if _, err := a.Scatter(data, axes.ScatterOptions{Label: opts.Label}); err != nil {
			return err
		}
	case KindLine:
		if _, err := a.Line(data, axes.LineOptions{Label: opts.Label}); err != nil {
			return err
		}
	case KindHist:
		if _, err := a.Hist(data.X, axes.HistOptions{
			Bins:    opts.Bins,
			BinSize: opts.BinSize,
			RelFreq: opts.RelFreq,
			Weights: data.Weights,
			Step:    opts.Step,
			Label:   opts.Label,
		}); err != nil {
			return err
		}
	case KindContour:
		res, err := a.DensityContourGrid(grid, contour)
		if err != nil {
			return err
		}
		result.Levels = res.Levels
	case KindContourf:
		res, err := a.DensityContourfGrid(grid, contour)
		if err != nil {
			return err
		}
		result.Levels = res.Levels
	case KindContourScatter:
		res, err := a.ContourScatterGrid(data, grid, axes.ContourScatterOptions{
			Contour: contour,
			Fill:    opts.Fill,
			Scatter: axes.ScatterOptions{Label: opts.Label},
		})
		if err != nil {
			return err
		}
		result.Levels = res.Levels
		result.Outside = len(res.Outside)
	case KindDensity:
		if _, err := a.ShadedDensityGrid(grid, axes.ShadedOptions{Log: opts.LogShade}); err != nil {
			return err
		}
	default:
		return ValidateKind(opts.Kind)
	}
	if opts.Kind == KindHist && data.Len() <= rugMax {
		a.DataTicks(data.X, nil, axes.LineOptions{})
	}
	return decorate(a, opts)
}

// Histograms of at most rugMax values get a rug of the values.
const rugMax = 50

func decorate(a *axes.Axes, opts Options) error {
	a.AddLabels(opts.XLabel, opts.YLabel, opts.Title)
	if len(opts.Spines) > 0 {
		a.RemoveSpines(opts.Spines...)
	}
	if opts.EqualScale {
		a.EqualScale()
	}
	if opts.Text != "" {
		if err := a.EasyAddText(opts.Text, opts.TextAt, axes.TextOptions{}); err != nil {
			return err
		}
	}
	if opts.Legend != "" {
		return a.Legend(axes.LegendOptions{Location: opts.Legend})
	}
	return nil
}
