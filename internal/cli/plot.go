package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/pipeline"
	"github.com/matzehuels/betterplot/pkg/style"
)

// plotCommand creates the plot command, the main entry point: data file in,
// styled figure out.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Kind: pipeline.DefaultKind}

	cmd := &cobra.Command{
		Use:   "plot [data file]",
		Short: "Plot a CSV, TSV or JSON data file",
		Long: `Plot a CSV, TSV or JSON data file.

The first column is x, the second y and an optional third column weights
each point. Histograms need only the x column.

Kinds:
  scatter          markers with transparency scaled to the point count
  line             a thick polyline through the points
  hist             a histogram of x with Freedman-Diaconis bins
  contour          density contours enclosing fractions of the points
  contourf         filled density bands
  contour-scatter  contours over the bulk, markers for the outliers
  density          a shaded density image

Density kinds are cached locally, keyed by the data and the grid options.`,
		Example: `  betterplot plot points.csv
  betterplot plot points.csv -k contour-scatter --levels 0.5,0.9 -f png
  betterplot plot values.txt -k hist --rel-freq --style presentation -o hist.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runPlot(cmd.Context(), opts, output, noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	f.BoolVar(&noCache, "no-cache", false, "disable the density cache")
	f.BoolVar(&opts.Refresh, "refresh", false, "recompute the density even when cached")

	f.StringVarP(&opts.Kind, "kind", "k", opts.Kind, "plot kind: "+strings.Join(pipeline.Kinds, ", "))
	f.StringVarP(&opts.Format, "format", "f", "", "output format: pdf, svg, eps, png, jpg, tiff (default: from the style)")
	f.StringVarP(&opts.Style, "style", "s", "", "style preset (default: default)")
	f.StringVar(&opts.StyleFile, "style-file", "", "TOML style file, overrides --style")

	f.StringVar(&opts.Title, "title", "", "plot title")
	f.StringVar(&opts.XLabel, "xlabel", "", "x axis label")
	f.StringVar(&opts.YLabel, "ylabel", "", "y axis label")
	f.StringVar(&opts.Label, "label", "", "legend label of the series")
	f.StringVar(&opts.Legend, "legend", "", `legend location: "upper right", 1-9 or "outside"`)
	f.StringSliceVar(&opts.Spines, "remove-spines", nil, "spines to hide: top, bottom, left, right, all")
	f.BoolVar(&opts.Dark, "dark", false, "dark background with a white grid")
	f.BoolVar(&opts.EqualScale, "equal", false, "one unit is the same length on both axes")
	f.StringVar(&opts.Text, "text", "", "annotation text")
	f.StringVar(&opts.TextAt, "text-at", "", "annotation location (default: upper left)")

	f.IntVar(&opts.Bins, "bins", 0, "histogram bin count (default: Freedman-Diaconis)")
	f.Float64Var(&opts.BinSize, "bin-size", 0, "histogram bin width")
	f.BoolVar(&opts.RelFreq, "rel-freq", false, "histogram of relative frequencies")
	f.BoolVar(&opts.Step, "step", false, "outline-only histogram")

	f.StringVar(&opts.Method, "method", "", "density method: histogram (default), kde")
	f.IntVar(&opts.GridBins, "grid-bins", 0, fmt.Sprintf("density grid cells per axis (default: %d)", pipeline.DefaultGridBins))
	f.Float64Var(&opts.Smoothing, "smoothing", 0, "gaussian smoothing in data units (kde: bandwidth)")
	f.Float64SliceVar(&opts.Fractions, "levels", nil, "fractions of the points enclosed by each contour")
	f.StringVar(&opts.Fill, "fill", "", `contour-scatter fill colormap, or "none" (default: white)`)
	f.BoolVar(&opts.LogShade, "log", false, "shade the log of the density")

	_ = cmd.RegisterFlagCompletionFunc("kind", completeFrom(func() []string { return pipeline.Kinds }))
	_ = cmd.RegisterFlagCompletionFunc("style", completeFrom(style.Presets().Names))
	_ = cmd.RegisterFlagCompletionFunc("fill", completeFrom(func() []string { return append(colors.ColormapNames(), "none") }))

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if output != "" && opts.Format == "" {
		if f := formatFromPath(output); f != "" {
			opts.Format = f
		}
	}
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Plot failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = outputPath(opts.Input, result.Format)
	}
	if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("Plotted " + opts.Kind)

	printSuccess(c.Out, "Plotted %s as %s", StyleHighlight.Render(opts.Input), opts.Kind)
	var extra []string
	if len(result.Levels) > 0 {
		extra = append(extra, fmt.Sprintf("%d levels", len(result.Levels)))
	}
	if opts.Kind == pipeline.KindContourScatter {
		extra = append(extra, fmt.Sprintf("%d outside", result.Outside))
	}
	printStats(c.Out, result.Stats.Points, extra, result.CacheInfo.DensityHit)
	printFile(c.Out, output)
	return nil
}

// formatFromPath returns the save format an output path's extension names,
// or "".
func formatFromPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	ext := strings.ToLower(path[i+1:])
	if style.ValidSaveFormats[ext] {
		return ext
	}
	return ""
}
