package bpl

import "github.com/matzehuels/betterplot/pkg/axes"

// AddLabels sets the labels and title of the current axes.
func AddLabels(x, y, title string) error {
	return with(func(ax *axes.Axes) error {
		ax.AddLabels(x, y, title)
		return nil
	})
}

// EasyAddText places text at a named location of the current axes.
func EasyAddText(txt, location string, opts axes.TextOptions) error {
	return with(func(ax *axes.Axes) error {
		return ax.EasyAddText(txt, location, opts)
	})
}

// AddText places text at x, y on the current axes.
func AddText(x, y float64, txt, coords string, opts axes.TextOptions) error {
	return with(func(ax *axes.Axes) error {
		return ax.AddText(x, y, txt, coords, opts)
	})
}

// Legend shows the legend of the current axes.
func Legend(opts axes.LegendOptions) error {
	return with(func(ax *axes.Axes) error {
		return ax.Legend(opts)
	})
}

// RemoveSpines hides spines of the current axes.
func RemoveSpines(sides ...string) error {
	return with(func(ax *axes.Axes) error {
		ax.RemoveSpines(sides...)
		return nil
	})
}

// RemoveTicks hides tick marks of the current axes.
func RemoveTicks(sides ...string) error {
	return with(func(ax *axes.Axes) error {
		ax.RemoveTicks(sides...)
		return nil
	})
}

// RemoveLabels hides tick labels of the current axes.
func RemoveLabels(axis string) error {
	return with(func(ax *axes.Axes) error {
		ax.RemoveLabels(axis)
		return nil
	})
}

// EqualScale gives both axes of the current axes the same unit length.
func EqualScale() error {
	return with(func(ax *axes.Axes) error {
		ax.EqualScale()
		return nil
	})
}

// MakeDark gives the current axes a grey background with a white grid.
func MakeDark() error {
	return with(func(ax *axes.Axes) error {
		ax.MakeDark()
		return nil
	})
}

// SetLimits fixes the data range of the current axes.
func SetLimits(xmin, xmax, ymin, ymax *float64) error {
	return with(func(ax *axes.Axes) error {
		ax.SetLimits(xmin, xmax, ymin, ymax)
		return nil
	})
}

// LogScale makes an axis of the current axes logarithmic.
func LogScale(axis string) error {
	return with(func(ax *axes.Axes) error {
		ax.LogScale(axis)
		return nil
	})
}

// TwinAxis adds a secondary scale to the current axes.
func TwinAxis(axis string, lower, upper float64, label string, log bool) error {
	return with(func(ax *axes.Axes) error {
		return ax.TwinAxis(axis, lower, upper, label, log)
	})
}
