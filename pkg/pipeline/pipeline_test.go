package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/betterplot/pkg/cache"
	"github.com/matzehuels/betterplot/pkg/errors"
)

// writeCloud writes n gaussian points as CSV and returns the path.
func writeCloud(t *testing.T, n int, cols int) string {
	t.Helper()
	r := rand.New(rand.NewPCG(7, 11))
	var buf bytes.Buffer
	buf.WriteString("# generated\n")
	for i := 0; i < n; i++ {
		switch cols {
		case 1:
			fmt.Fprintf(&buf, "%g\n", r.NormFloat64())
		default:
			fmt.Fprintf(&buf, "%g,%g\n", r.NormFloat64(), 2*r.NormFloat64())
		}
	}
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateKind(t *testing.T) {
	for _, k := range Kinds {
		if err := ValidateKind(k); err != nil {
			t.Errorf("ValidateKind(%q) = %v", k, err)
		}
	}
	for _, k := range []string{"", "pie", "Scatter"} {
		if err := ValidateKind(k); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("ValidateKind(%q) = %v, want INVALID_ARGUMENT", k, err)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"eps", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "points.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Kind != DefaultKind {
		t.Errorf("Kind = %q, want %q", opts.Kind, DefaultKind)
	}
	if opts.GridBins != DefaultGridBins {
		t.Errorf("GridBins = %d, want %d", opts.GridBins, DefaultGridBins)
	}
	if opts.Style != "default" || opts.Fill != DefaultFillColor || opts.Method != "histogram" {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}

	// Idempotent: a validated copy keeps its values.
	opts.GridBins = 7
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.GridBins != 7 {
		t.Errorf("second call changed options: %v, GridBins = %d", err, opts.GridBins)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code string
	}{
		{"no input", Options{}, errors.ErrCodeInvalidArgument},
		{"bad kind", Options{Input: "a.csv", Kind: "pie"}, errors.ErrCodeInvalidArgument},
		{"bad format", Options{Input: "a.csv", Format: "gif"}, errors.ErrCodeInvalidFormat},
		{"negative bins", Options{Input: "a.csv", Bins: -1}, errors.ErrCodeInvalidArgument},
		{"zero fraction", Options{Input: "a.csv", Fractions: []float64{0.5, 0}}, errors.ErrCodeInvalidArgument},
		{"fraction above one", Options{Input: "a.csv", Fractions: []float64{1.5}}, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNeedsDensity(t *testing.T) {
	want := map[string]bool{
		KindScatter:        false,
		KindLine:           false,
		KindHist:           false,
		KindContour:        true,
		KindContourf:       true,
		KindContourScatter: true,
		KindDensity:        true,
	}
	for kind, w := range want {
		o := Options{Kind: kind}
		if got := o.NeedsDensity(); got != w {
			t.Errorf("NeedsDensity(%q) = %v, want %v", kind, got, w)
		}
	}
}

func TestExecuteKinds(t *testing.T) {
	path := writeCloud(t, 300, 2)
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			r := NewRunner(nil, nil, nil)
			res, err := r.Execute(context.Background(), Options{
				Input:    path,
				Kind:     kind,
				Format:   "svg",
				GridBins: 20,
				Title:    kind,
				Legend:   "upper left",
				Label:    "points",
			})
			if err != nil {
				t.Fatalf("Execute() = %v", err)
			}
			if res.Format != "svg" || !bytes.Contains(res.Artifact, []byte("<svg")) {
				t.Errorf("artifact is not svg (format %q, %d bytes)", res.Format, len(res.Artifact))
			}
			if res.Stats.Points != 300 {
				t.Errorf("Points = %d, want 300", res.Stats.Points)
			}
			o := Options{Kind: kind}
			if o.NeedsDensity() != (res.Grid != nil) {
				t.Errorf("Grid set = %v, want %v", res.Grid != nil, o.NeedsDensity())
			}
			for i := 1; i < len(res.Levels); i++ {
				if res.Levels[i] > res.Levels[i-1] {
					t.Errorf("levels increase at %d: %v", i, res.Levels)
				}
			}
		})
	}
}

func TestExecuteDefaultFormatFromStyle(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: writeCloud(t, 50, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Format != "pdf" || !bytes.HasPrefix(res.Artifact, []byte("%PDF")) {
		t.Errorf("got format %q, want the default style's pdf", res.Format)
	}
}

func TestExecuteStyleFile(t *testing.T) {
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "tiny.toml")
	src := "name = \"pipeline-tiny\"\nbase = \"white\"\n\n[figure]\ndpi = 20\nsave_format = \"png\"\n"
	if err := os.WriteFile(stylePath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: writeCloud(t, 50, 2), StyleFile: stylePath})
	if err != nil {
		t.Fatal(err)
	}
	if res.Format != "png" || !bytes.HasPrefix(res.Artifact, []byte("\x89PNG")) {
		t.Errorf("got format %q, want png from the style file", res.Format)
	}
}

func TestExecuteCachesDensity(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()
	opts := Options{Input: writeCloud(t, 200, 2), Kind: KindContour, Format: "svg", GridBins: 15}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.DensityHit {
		t.Error("first run hit the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.DensityHit {
		t.Error("second run missed the cache")
	}
	if len(first.Levels) != len(second.Levels) {
		t.Fatalf("levels differ: %v vs %v", first.Levels, second.Levels)
	}
	for i := range first.Levels {
		if d := first.Levels[i] - second.Levels[i]; d > 1e-12 || d < -1e-12 {
			t.Errorf("level %d: %v vs %v", i, first.Levels[i], second.Levels[i])
		}
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.DensityHit {
		t.Error("refresh run hit the cache")
	}

	opts.Refresh = false
	opts.GridBins = 16
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.DensityHit {
		t.Error("different grid options shared a cache entry")
	}
}

func TestExecuteErrors(t *testing.T) {
	oneCol := writeCloud(t, 30, 1)
	tests := []struct {
		name string
		opts Options
		code string
	}{
		{"missing file", Options{Input: filepath.Join(t.TempDir(), "nope.csv")}, errors.ErrCodeFileNotFound},
		{"scatter needs y", Options{Input: oneCol, Kind: KindScatter}, errors.ErrCodeInvalidFormat},
		{"contour needs y", Options{Input: oneCol, Kind: KindContour}, errors.ErrCodeInvalidFormat},
		{"unknown style", Options{Input: writeCloud(t, 10, 2), Style: "neon"}, errors.ErrCodeInvalidArgument},
		{"bad legend", Options{Input: writeCloud(t, 10, 2), Format: "svg", Legend: "middle earth"}, errors.ErrCodeInvalidArgument},
		{"bad text location", Options{Input: writeCloud(t, 10, 2), Format: "svg", Text: "n=10", TextAt: "above"}, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteSinglePointDensity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Input: path, Kind: KindContour})
	if !errors.Is(err, errors.ErrCodeInsufficientData) {
		t.Errorf("Execute() = %v, want INSUFFICIENT_DATA", err)
	}
}

func TestExecuteHistogramOneColumn(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Input:  writeCloud(t, 40, 1),
		Kind:   KindHist,
		Format: "svg",
		XLabel: "value",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(res.Artifact), "value") {
		t.Error("x label missing from svg")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Input: writeCloud(t, 10, 2), Format: "svg"})
	if err != context.Canceled {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
}
