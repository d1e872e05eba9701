package cli

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/axes"
	"github.com/matzehuels/betterplot/pkg/bpl"
	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/style"
)

// stylesCommand groups the style preset commands.
func (c *CLI) stylesCommand() *cobra.Command {
	var styleFiles []string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List, inspect, preview and pick style presets",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installLogHooks(c.Logger)
			return loadStyleFiles(styleFiles)
		},
	}
	cmd.PersistentFlags().StringSliceVar(&styleFiles, "style-file", nil, "register TOML style files before running")

	cmd.AddCommand(c.stylesListCommand())
	cmd.AddCommand(c.stylesShowCommand())
	cmd.AddCommand(c.stylesPreviewCommand())
	cmd.AddCommand(c.stylesPickCommand())
	return cmd
}

func loadStyleFiles(paths []string) error {
	for _, p := range paths {
		if _, err := style.LoadFile(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) stylesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := styleTable(style.Presets().Names(), -1)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, t)
			return nil
		},
	}
}

func (c *CLI) stylesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show [style]",
		Short:             "Print a style as TOML",
		Long:              "Print a style as TOML. The output is a valid style file to start a custom style from.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFrom(style.Presets().Names),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := style.Get(args[0])
			if err != nil {
				return err
			}
			return cfg.WriteTOML(c.Out)
		},
	}
}

func (c *CLI) stylesPreviewCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:               "preview [style]",
		Short:             "Render a sample figure in a style",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFrom(style.Presets().Names),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[0] + "-preview.png"
			}
			if err := renderPreview(args[0], output); err != nil {
				return err
			}
			printSuccess(c.Out, "Previewed %s", StyleHighlight.Render(args[0]))
			printFile(c.Out, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <style>-preview.png)")
	return cmd
}

// renderPreview draws two clouds with a legend beside a histogram, in the
// named style, and saves the figure.
func renderPreview(name, output string) error {
	prev := style.Current()
	defer func() {
		bpl.Close()
		_ = style.SetCurrent(prev)
	}()
	if err := bpl.Use(name); err != nil {
		return err
	}
	_, grid, err := bpl.Subplots(1, 2)
	if err != nil {
		return err
	}

	r := rand.New(rand.NewPCG(1, 1))
	cloud := func(n int, dx float64) plotter.XYs {
		pts := make(plotter.XYs, n)
		for i := range pts {
			pts[i].X = r.NormFloat64() + dx
			pts[i].Y = r.NormFloat64() + dx/2
		}
		return pts
	}

	if err := bpl.Sca(grid[0][0]); err != nil {
		return err
	}
	for i, dx := range []float64{0, 3} {
		if _, err := bpl.Scatter(cloud(300, dx), axes.ScatterOptions{Label: "sample " + strconv.Itoa(i+1)}); err != nil {
			return err
		}
	}
	if err := bpl.AddLabels("x", "y", name); err != nil {
		return err
	}
	if err := bpl.Legend(axes.LegendOptions{Location: "upper left"}); err != nil {
		return err
	}

	if err := bpl.Sca(grid[0][1]); err != nil {
		return err
	}
	values := make([]float64, 1000)
	for i := range values {
		values[i] = r.NormFloat64()
	}
	if _, err := bpl.Hist(values, axes.HistOptions{}); err != nil {
		return err
	}
	if err := bpl.RemoveSpines("top", "right"); err != nil {
		return err
	}
	if err := bpl.AddLabels("value", "count", ""); err != nil {
		return err
	}
	return bpl.Savefig(output)
}

func (c *CLI) stylesPickCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a style interactively and save it as an editable TOML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := tea.NewProgram(NewStyleListModel(style.Presets().Names()), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			picked := m.(StyleListModel).Selected
			if picked == "" {
				printInfo(c.Out, "No style picked")
				return nil
			}
			path, err := savePicked(picked, output)
			if err != nil {
				return err
			}
			printSuccess(c.Out, "Saved %s", StyleHighlight.Render(picked))
			printFile(c.Out, path)
			printNextStep(c.Out, "Use it with", "betterplot plot data.csv --style-file "+path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "style file to write (default: in the config directory)")
	return cmd
}

// savePicked writes the named style as a TOML file based on it, renamed so
// it can be registered next to the built-ins.
func savePicked(name, output string) (string, error) {
	cfg, err := style.Get(name)
	if err != nil {
		return "", err
	}
	if style.IsBuiltin(name) {
		cfg.Base = name
		cfg.Name = "my-" + name
	}
	if output == "" {
		dir, err := configDir()
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		output = filepath.Join(dir, cfg.Name+".toml")
	}
	f, err := os.Create(output)
	if err != nil {
		return "", err
	}
	if err := cfg.WriteTOML(f); err != nil {
		f.Close()
		return "", err
	}
	return output, f.Close()
}

// styleTable summarizes styles, highlighting the row at cursor (-1 for none).
func styleTable(names []string, cursor int) (string, error) {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		cfg, err := style.Get(n)
		if err != nil {
			return "", err
		}
		kind := "file"
		if style.IsBuiltin(n) {
			kind = "built-in"
		}
		rows = append(rows, []string{
			n,
			kind,
			fmt.Sprintf("%s %s %gpt", cfg.Font.Family, cfg.Font.Weight, cfg.Font.Size),
			fmt.Sprintf("%gx%g in", cfg.Figure.Width, cfg.Figure.Height),
			cfg.Figure.SaveFormat,
			cycleSwatches(cfg.Colors.Cycle),
		})
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Style", "Source", "Font", "Size", "Format", "Colors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return header.Padding(0, 1)
			case row == cursor:
				return base.Foreground(colorGreen).Bold(true)
			case col == 1:
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render(), nil
}

func cycleSwatches(cycle []string) string {
	var cs []color.Color
	for _, s := range cycle {
		if c, err := colors.Parse(s); err == nil && c != nil {
			cs = append(cs, c)
		}
	}
	return ramp(cs)
}
