package style

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/betterplot/pkg/colors"
	"github.com/matzehuels/betterplot/pkg/fonts"
)

// Theme is a Config resolved into values gonum/plot understands.
type Theme struct {
	Config Config

	Width, Height vg.Length
	Background    color.Color

	Text, Label, AxesEdge, PatchEdge, Tick, Grid color.Color
	Cycle                                        []color.Color
	Colormap                                     *colors.Colormap

	Handler                           text.Handler
	Body, Title, AxisLabel, TickLabel font.Font
	Legend                            font.Font
}

// Theme resolves c. It fails when c does not validate.
func (c Config) Theme() (*Theme, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	h, _ := fonts.Handler(c.Font.Handler)
	cm, _ := colors.LookupColormap(c.Colors.Colormap)

	t := &Theme{
		Config:     c.Clone(),
		Width:      vg.Length(c.Figure.Width) * vg.Inch,
		Height:     vg.Length(c.Figure.Height) * vg.Inch,
		Background: colors.MustParse(c.Figure.Background),
		Text:       colors.MustParse(c.Colors.Text),
		Label:      colors.MustParse(c.Colors.Label),
		AxesEdge:   colors.MustParse(c.Colors.AxesEdge),
		PatchEdge:  colors.MustParse(c.Colors.PatchEdge),
		Tick:       colors.MustParse(c.Colors.Tick),
		Grid:       colors.MustParse(c.Colors.Grid),
		Colormap:   cm,
		Handler:    h,
	}
	for _, s := range c.Colors.Cycle {
		t.Cycle = append(t.Cycle, colors.MustParse(s))
	}

	t.Body = c.font(c.Font.Weight, c.Font.Size)
	t.Title = c.font(c.Font.TitleWeight, c.Font.TitleSize)
	t.AxisLabel = c.font(c.Font.LabelWeight, c.Font.LabelSize)
	t.TickLabel = c.font(c.Font.Weight, c.Font.TickSize)
	t.Legend = c.font(c.Font.Weight, c.Font.LegendSize)
	return t, nil
}

func (c Config) font(weight string, size float64) font.Font {
	w, err := fonts.ParseWeight(weight)
	if err != nil {
		w = xfont.WeightNormal
	}
	f, _ := fonts.Resolve(c.Font.Family, w, vg.Points(size))
	return f
}

// CycleColor returns the i-th color of the cycle, wrapping around.
func (t *Theme) CycleColor(i int) color.Color {
	return t.Cycle[i%len(t.Cycle)]
}

// TextStyle returns a text style in the theme's ink and handler.
func (t *Theme) TextStyle(f font.Font, c color.Color) text.Style {
	return text.Style{Color: c, Font: f, Handler: t.Handler}
}
