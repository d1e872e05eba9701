package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recorder counts cache events.
type recorder struct {
	NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
}

func (r *recorder) OnCacheHit(_ context.Context, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits[kind]++
}

type renders struct {
	NoopPipelineHooks
	formats []string
}

func (r *renders) OnRenderStart(_ context.Context, _, format string) {
	r.formats = append(r.formats, format)
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "points.csv")
	p.OnLoadComplete(ctx, "points.csv", 100, time.Second, nil)
	p.OnDensityStart(ctx, "histogram", 100)
	p.OnDensityComplete(ctx, "histogram", true, time.Second, nil)
	p.OnRenderStart(ctx, "scatter", "pdf")
	p.OnRenderComplete(ctx, "pdf", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "grid")
	c.OnCacheMiss(ctx, "grid")
	c.OnCacheSet(ctx, "grid", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}

	rec := &recorder{hits: map[string]int{}}
	SetCacheHooks(rec)
	SetCacheHooks(nil)
	Cache().OnCacheHit(context.Background(), "grid")
	Cache().OnCacheHit(context.Background(), "grid")
	if rec.hits["grid"] != 2 {
		t.Errorf("recorded %d grid hits, want 2", rec.hits["grid"])
	}

	r := &renders{}
	SetPipelineHooks(r)
	Pipeline().OnRenderStart(context.Background(), "hist", "svg")
	if len(r.formats) != 1 || r.formats[0] != "svg" {
		t.Errorf("render formats = %v, want [svg]", r.formats)
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore the no-op cache hooks")
	}
}

func TestHooksConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(NoopCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheMiss(context.Background(), "grid")
		}()
	}
	wg.Wait()
}
