package style

import "github.com/matzehuels/betterplot/pkg/colors"

// Built-in preset names.
const (
	Default      = "default"
	Presentation = "presentation"
	White        = "white"
	Latex        = "latex"
)

// common holds the settings every preset starts from.
func common() Config {
	return Config{
		Figure: FigureConfig{
			Width:      10,
			Height:     7,
			Background: colors.White,
			SaveFormat: "pdf",
			DPI:        500,
		},
		Font: FontConfig{
			Family:      "Helvetica Neue",
			Weight:      "bold",
			LabelWeight: "bold",
			TitleWeight: "bold",
			Handler:     "plain",
		},
		Colors: ColorConfig{
			Cycle:    colors.CycleHex(),
			Colormap: "viridis",
		},
		Legend: LegendConfig{
			ScatterPoints: 1,
			BorderPad:     0.75,
		},
	}
}

func inkColors(c *Config, ink string) {
	c.Colors.Text = ink
	c.Colors.Label = ink
	c.Colors.AxesEdge = ink
	c.Colors.PatchEdge = ink
	c.Colors.Tick = ink
	c.Colors.Grid = ink
}

func normalSizes(c *Config) {
	c.Font.TitleSize = 16
	c.Font.Size = 14
	c.Font.LabelSize = 14
	c.Font.TickSize = 12
	c.Font.LegendSize = 13
}

func largeSizes(c *Config) {
	c.Font.TitleSize = 20
	c.Font.Size = 18
	c.Font.LabelSize = 18
	c.Font.TickSize = 16
	c.Font.LegendSize = 17
}

func defaultPreset() Config {
	c := common()
	c.Name = Default
	normalSizes(&c)
	inkColors(&c, colors.AlmostBlack)
	return c
}

// presentationPreset is the default preset with larger text for slides.
func presentationPreset() Config {
	c := common()
	c.Name = Presentation
	largeSizes(&c)
	inkColors(&c, colors.AlmostBlack)
	return c
}

// whitePreset draws white ink on a transparent background for dark slides.
// White and yellow lead the color cycle since they read best there.
func whitePreset() Config {
	c := common()
	c.Name = White
	largeSizes(&c)
	inkColors(&c, colors.White)
	c.Figure.Background = "none"
	c.Colors.Cycle = append([]string{"w", "y"}, colors.CycleHex()...)
	return c
}

// latexPreset matches the body text of a LaTeX document: regular-weight
// serif type and math markup in labels.
func latexPreset() Config {
	c := common()
	c.Name = Latex
	normalSizes(&c)
	inkColors(&c, colors.AlmostBlack)
	c.Font.Family = "Computer Modern"
	c.Font.Weight = "normal"
	c.Font.LabelWeight = "normal"
	c.Font.TitleWeight = "normal"
	c.Font.Handler = "latex"
	return c
}

func builtins() []Config {
	return []Config{defaultPreset(), presentationPreset(), whitePreset(), latexPreset()}
}
