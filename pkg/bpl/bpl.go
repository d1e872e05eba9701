// Package bpl keeps a current figure and current axes so that scripts can
// plot without passing surfaces around:
//
//	bpl.Use(style.Presentation)
//	bpl.Scatter(points, axes.ScatterOptions{Label: "data"})
//	bpl.Legend(axes.LegendOptions{})
//	bpl.Savefig("scatter.png")
//
// It is a thin layer over package axes. New surfaces take the process-wide
// style from [style.Current] at the moment they are created; code that needs
// more than one style at a time should use axes directly.
package bpl

import (
	"sync"

	"github.com/matzehuels/betterplot/pkg/axes"
	"github.com/matzehuels/betterplot/pkg/errors"
	"github.com/matzehuels/betterplot/pkg/style"
)

var (
	mu  sync.Mutex
	fig *axes.Figure
	cur *axes.Axes
)

// Use makes the named preset the process-wide style. Figures that already
// exist keep the style they were created with.
func Use(name string) error {
	return style.Use(name)
}

// Figure starts a new one-axes figure and makes it current.
func Figure() (*axes.Figure, error) {
	f, _, err := Subplots(1, 1)
	return f, err
}

// Subplots starts a rows by cols figure and makes its upper left axes
// current.
func Subplots(rows, cols int) (*axes.Figure, [][]*axes.Axes, error) {
	f, grid, err := axes.Subplots(style.Current(), rows, cols)
	if err != nil {
		return nil, nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	fig, cur = f, grid[0][0]
	return f, grid, nil
}

// Gcf returns the current figure, creating one if there is none.
func Gcf() (*axes.Figure, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := ensure(); err != nil {
		return nil, err
	}
	return fig, nil
}

// Gca returns the current axes, creating a figure if there is none.
func Gca() (*axes.Axes, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := ensure(); err != nil {
		return nil, err
	}
	return cur, nil
}

// Sca makes ax the current axes. An axes outside the current figure gets a
// figure of its own.
func Sca(ax *axes.Axes) error {
	if ax == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot make nil axes current")
	}
	mu.Lock()
	defer mu.Unlock()
	if fig == nil || !contains(fig, ax) {
		fig = ax.Figure()
	}
	cur = ax
	return nil
}

// Close drops the current figure.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	fig, cur = nil, nil
}

// Savefig writes the current figure to path.
func Savefig(path string) error {
	f, err := Gcf()
	if err != nil {
		return err
	}
	return f.Save(path)
}

func ensure() error {
	if cur != nil {
		return nil
	}
	f, grid, err := axes.Subplots(style.Current(), 1, 1)
	if err != nil {
		return err
	}
	fig, cur = f, grid[0][0]
	return nil
}

func contains(f *axes.Figure, ax *axes.Axes) bool {
	rows, cols := f.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if f.Axes(r, c) == ax {
				return true
			}
		}
	}
	return false
}
