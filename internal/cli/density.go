package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/io"
	"github.com/matzehuels/betterplot/pkg/pipeline"
)

// densityCommand estimates a 2D density and reports its contour levels,
// optionally exporting the grid as JSON.
func (c *CLI) densityCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Kind: pipeline.KindContour}

	cmd := &cobra.Command{
		Use:   "density [data file]",
		Short: "Estimate the density of 2D points and print its contour levels",
		Long: `Estimate the density of 2D points and print its contour levels.

Each level is the density threshold whose contour encloses the given fraction
of the points. With -o the binned grid is written as JSON (x and y edges plus
row-major values). Results are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runDensity(cmd.Context(), opts, output, noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "write the grid as JSON to this file")
	f.BoolVar(&noCache, "no-cache", false, "disable the density cache")
	f.BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	f.StringVar(&opts.Method, "method", "", "density method: histogram (default), kde")
	f.IntVar(&opts.GridBins, "grid-bins", 0, fmt.Sprintf("grid cells per axis (default: %d)", pipeline.DefaultGridBins))
	f.Float64Var(&opts.Smoothing, "smoothing", 0, "gaussian smoothing in data units (kde: bandwidth)")
	f.Float64SliceVar(&opts.Fractions, "levels", nil, "enclosed fractions (default: 0.25,0.5,0.75,0.95)")

	return cmd
}

func (c *CLI) runDensity(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
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
	data, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	g, hit, err := runner.DensityWithCacheInfo(ctx, data, opts)
	if err != nil {
		return err
	}
	fractions := opts.Fractions
	if len(fractions) == 0 {
		fractions = density.DefaultFractions
	}
	levels, err := density.ContourLevels(g, fractions)
	if err != nil {
		return err
	}
	prog.done("Estimated density")

	cols, rows := g.Dims()
	printSuccess(c.Out, "Density of %s", StyleHighlight.Render(opts.Input))
	printStats(c.Out, data.Len(), []string{fmt.Sprintf("%dx%d grid", cols, rows), opts.Method}, hit)
	fmt.Fprintln(c.Out, levelTable(fractions, levels))

	if output != "" {
		if err := io.ExportGrid(output, g); err != nil {
			return err
		}
		printFile(c.Out, output)
	}
	return nil
}

// levelTable renders the fraction and level columns.
func levelTable(fractions, levels []float64) string {
	rows := make([][]string, len(levels))
	for i := range levels {
		rows[i] = []string{
			strconv.FormatFloat(fractions[i]*100, 'f', 1, 64) + "%",
			strconv.FormatFloat(levels[i], 'g', 6, 64),
		}
	}
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Enclosed", "Level").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
