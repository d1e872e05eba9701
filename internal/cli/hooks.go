package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/betterplot/pkg/observability"
)

// logHooks reports pipeline stages and cache traffic at debug level, so
// --verbose shows where a run spends its time.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("loading", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, points int, d time.Duration, err error) {
	h.done("load", d, err, "source", source, "points", points)
}

func (h logHooks) OnDensityStart(_ context.Context, method string, points int) {
	h.logger.Debug("estimating density", "method", method, "points", points)
}

func (h logHooks) OnDensityComplete(_ context.Context, method string, cached bool, d time.Duration, err error) {
	h.done("density", d, err, "method", method, "cached", cached)
}

func (h logHooks) OnRenderStart(_ context.Context, kind, format string) {
	h.logger.Debug("rendering", "kind", kind, "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.done("render", d, err, "format", format)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "error", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)
