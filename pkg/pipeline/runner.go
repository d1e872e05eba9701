package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/betterplot/pkg/cache"
	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/errors"
	"github.com/matzehuels/betterplot/pkg/io"
	"github.com/matzehuels/betterplot/pkg/observability"
)

// Runner executes pipelines, memoising density grids in Cache.
//
// The Runner holds no per-run state, so one Runner can serve concurrent runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// selects the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → density → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: Load
	start := time.Now()
	data, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.Points = data.Len()
	result.Stats.LoadTime = time.Since(start)
	opts.Logger.Info("loaded data", "points", data.Len(), "weighted", data.Weights != nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Density
	var grid *density.Grid
	if opts.NeedsDensity() {
		start := time.Now()
		g, hit, err := r.DensityWithCacheInfo(ctx, data, opts)
		if err != nil {
			return nil, err
		}
		grid = g
		result.Grid = g
		result.Stats.DensityTime = time.Since(start)
		result.CacheInfo.DensityHit = hit
		c, rows := g.Dims()
		opts.Logger.Info("computed density", "grid", [2]int{c, rows}, "cached", hit, "duration", result.Stats.DensityTime)

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	// Stage 3: Render
	if err := r.render(ctx, data, grid, opts, result); err != nil {
		return nil, err
	}
	opts.Logger.Info("rendered plot", "kind", opts.Kind, "format", result.Format, "bytes", len(result.Artifact), "duration", result.Stats.RenderTime)
	return result, nil
}

// Load reads and validates the input data set.
func (r *Runner) Load(ctx context.Context, opts Options) (*io.Dataset, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()

	data, err := io.Import(opts.Input)
	if err == nil && opts.NeedsY() && !data.HasY() {
		err = errors.New(errors.ErrCodeInvalidFormat, "%s: %s plots need an x and a y column", opts.Input, opts.Kind)
	}
	points := 0
	if data != nil {
		points = data.Len()
	}
	hooks.OnLoadComplete(ctx, opts.Input, points, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DensityWithCacheInfo estimates the density of data, reusing a cached grid
// for the same data and options unless opts.Refresh is set. The boolean
// reports a cache hit.
func (r *Runner) DensityWithCacheInfo(ctx context.Context, data *io.Dataset, opts Options) (*density.Grid, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnDensityStart(ctx, opts.Method, data.Len())
	start := time.Now()

	g, hit, err := r.density(ctx, data, opts)
	hooks.OnDensityComplete(ctx, opts.Method, hit, time.Since(start), err)
	return g, hit, err
}

func (r *Runner) density(ctx context.Context, data *io.Dataset, opts Options) (*density.Grid, bool, error) {
	cacheKey := r.Keyer.GridKey(cache.HashFloats(data.X, data.Y, data.Weights), opts.GridKeyOpts(data.Weights != nil))

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var g density.Grid
			if err := json.Unmarshal(raw, &g); err == nil {
				return &g, true, nil
			}
			r.Logger.Debug("discarding unreadable cached grid", "key", cacheKey)
		}
	}

	g, err := density.Compute(data, opts.DensityOptions(data.Weights))
	if err != nil {
		return nil, false, err
	}
	if raw, err := json.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, raw, cache.TTLGrid); err != nil {
			r.Logger.Warn("caching density grid failed", "error", err)
		}
	}
	return g, false, nil
}

// Density is DensityWithCacheInfo without the cache hit report.
func (r *Runner) Density(ctx context.Context, data *io.Dataset, opts Options) (*density.Grid, error) {
	g, _, err := r.DensityWithCacheInfo(ctx, data, opts)
	return g, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
