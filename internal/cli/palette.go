package cli

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/betterplot/pkg/colors"
)

// paletteCommand prints the named colors and colormaps with swatches.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		fade   float64
		unfade float64
	)
	cmd := &cobra.Command{
		Use:   "palette [name...]",
		Short: "Show the named colors and colormaps",
		Long: `Show the named colors and colormaps.

Without arguments every named color is listed followed by every colormap.
With --fade or --unfade the colors are shown blended toward or away from
white by that amount in [0, 1].`,
		ValidArgsFunction: completeFrom(func() []string { return append(colors.Names(), colors.ColormapNames()...) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = append(colors.Names(), colors.ColormapNames()...)
			}
			t, err := paletteTable(names, fade, unfade)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, t)
			return nil
		},
	}
	cmd.Flags().Float64Var(&fade, "fade", 0, "blend colors toward white by this amount")
	cmd.Flags().Float64Var(&unfade, "unfade", 0, "undo a fade of this amount")
	return cmd
}

// paletteTable renders one row per name. Names that are neither a color nor
// a colormap fail with NOT_FOUND.
func paletteTable(names []string, fade, unfade float64) (string, error) {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		if cm, err := colors.LookupColormap(n); err == nil {
			rows = append(rows, []string{n, "colormap", "", ramp(cm.Palette(16).Colors())})
			continue
		}
		col, err := colors.Lookup(n)
		if err != nil {
			return "", err
		}
		if col, err = adjust(col, fade, unfade); err != nil {
			return "", err
		}
		rows = append(rows, []string{n, "color", colors.Hex(col), swatch(col)})
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Kind", "Hex", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			if col == 1 || col == 2 {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(colorDim)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render(), nil
}

func adjust(c color.Color, fade, unfade float64) (color.Color, error) {
	var err error
	if fade != 0 {
		if c, err = colors.Fade(c, fade); err != nil {
			return nil, err
		}
	}
	if unfade != 0 {
		if c, err = colors.Unfade(c, unfade); err != nil {
			return nil, err
		}
	}
	return c, nil
}
