// Package pkg holds the betterplot libraries.
//
// # Overview
//
// betterplot is a stylistic layer over gonum/plot: named style presets, a
// curated palette, and an axes facade whose defaults produce clean figures
// without per-plot tweaking. The packages fall into three groups:
//
//  1. Styling: [style] (presets and TOML style files), [colors] (named colors,
//     the color cycle, fades and colormaps) and [fonts].
//  2. Plotting: [axes] (the facade and figures), [bpl] (a current-axes layer
//     over axes) and the numeric core it draws on, [binning] and [density].
//  3. Plumbing for the CLI: [io] (data files), [pipeline] (load → density →
//     render), [cache], [observability], [errors] and [buildinfo].
//
// # Data flow
//
// The CLI runs:
//
//	CSV / TSV / JSON
//	       ↓
//	   [io] Dataset
//	       ↓
//	[density] Grid  ←→  [cache]
//	       ↓
//	 [axes] styled by [style]
//	       ↓
//	PDF / SVG / EPS / PNG
//
// Library users skip the pipeline and call axes directly:
//
//	cfg, _ := style.Get(style.Presentation)
//	ax, _ := axes.New(cfg)
//	ax.Scatter(points, axes.ScatterOptions{Label: "trial 1"})
//	ax.Legend(axes.LegendOptions{})
//	ax.Save("trial.pdf")
//
// [style]: github.com/matzehuels/betterplot/pkg/style
// [colors]: github.com/matzehuels/betterplot/pkg/colors
// [fonts]: github.com/matzehuels/betterplot/pkg/fonts
// [axes]: github.com/matzehuels/betterplot/pkg/axes
// [bpl]: github.com/matzehuels/betterplot/pkg/bpl
// [binning]: github.com/matzehuels/betterplot/pkg/binning
// [density]: github.com/matzehuels/betterplot/pkg/density
// [io]: github.com/matzehuels/betterplot/pkg/io
// [pipeline]: github.com/matzehuels/betterplot/pkg/pipeline
// [cache]: github.com/matzehuels/betterplot/pkg/cache
// [observability]: github.com/matzehuels/betterplot/pkg/observability
// [errors]: github.com/matzehuels/betterplot/pkg/errors
// [buildinfo]: github.com/matzehuels/betterplot/pkg/buildinfo
package pkg
