package axes

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/betterplot/pkg/errors"
	"github.com/matzehuels/betterplot/pkg/style"
)

// Figure is a grid of axes sharing one canvas.
type Figure struct {
	theme *style.Theme
	rows  int
	cols  int
	axes  []*Axes

	Width, Height vg.Length
}

// NewFigure creates a rows by cols figure styled by cfg, sized to the
// style's figure size.
func NewFigure(cfg style.Config, rows, cols int) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "figure needs at least one row and column, got %dx%d", rows, cols)
	}
	th, err := cfg.Theme()
	if err != nil {
		return nil, err
	}
	f := &Figure{theme: th, rows: rows, cols: cols, Width: th.Width, Height: th.Height}
	for i := 0; i < rows*cols; i++ {
		f.axes = append(f.axes, newAxes(th))
	}
	return f, nil
}

// Subplots creates a figure and returns its axes row by row.
func Subplots(cfg style.Config, rows, cols int) (*Figure, [][]*Axes, error) {
	f, err := NewFigure(cfg, rows, cols)
	if err != nil {
		return nil, nil, err
	}
	grid := make([][]*Axes, rows)
	for r := range grid {
		grid[r] = f.axes[r*cols : (r+1)*cols]
	}
	return f, grid, nil
}

// Axes returns the axes at row r, column c.
func (f *Figure) Axes(r, c int) *Axes {
	if r < 0 || r >= f.rows || c < 0 || c >= f.cols {
		return nil
	}
	return f.axes[r*f.cols+c]
}

// Dims returns the number of rows and columns.
func (f *Figure) Dims() (rows, cols int) { return f.rows, f.cols }

// Draw renders every axes into its tile of c.
func (f *Figure) Draw(c draw.Canvas) {
	if f.theme.Background != nil {
		c.SetColor(f.theme.Background)
		c.Fill(c.Rectangle.Path())
	}
	pad := vg.Length(f.theme.Config.Font.Size) * 0.75
	tiles := draw.Tiles{
		Rows: f.rows, Cols: f.cols,
		PadTop: pad, PadBottom: pad, PadLeft: pad, PadRight: pad,
		PadX: 2 * pad, PadY: 2 * pad,
	}
	for r := 0; r < f.rows; r++ {
		for col := 0; col < f.cols; col++ {
			f.Axes(r, col).Draw(tiles.At(c, col, r))
		}
	}
}

// Format returns the output format for path: its extension when it names a
// supported format, the style's save format otherwise.
func (f *Figure) Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if style.ValidSaveFormats[ext] {
		return ext
	}
	return f.theme.Config.Figure.SaveFormat
}

// WriterTo renders the figure in the given format.
func (f *Figure) WriterTo(format string) (io.WriterTo, error) {
	w, h := f.Width, f.Height
	var (
		cv vg.CanvasSizer
		wt io.WriterTo
	)
	switch strings.ToLower(format) {
	case "pdf":
		c := vgpdf.New(w, h)
		cv, wt = c, c
	case "svg":
		c := vgsvg.New(w, h)
		cv, wt = c, c
	case "eps":
		c := vgeps.New(w, h)
		cv, wt = c, c
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.theme.Config.Figure.DPI))
		cv = c
		switch strings.ToLower(format) {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}
	f.Draw(draw.New(cv))
	return wt, nil
}

// Render returns the figure encoded in format.
func (f *Figure) Render(format string) ([]byte, error) {
	wt, err := f.WriterTo(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// Save writes the figure to path in the format its extension names.
func (f *Figure) Save(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := f.Render(f.Format(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// Save writes a figure holding only a to path.
func (a *Axes) Save(path string) error {
	return a.Figure().Save(path)
}

// Figure wraps a in a one-tile figure of the style's size.
func (a *Axes) Figure() *Figure {
	return &Figure{theme: a.theme, rows: 1, cols: 1, axes: []*Axes{a}, Width: a.theme.Width, Height: a.theme.Height}
}
