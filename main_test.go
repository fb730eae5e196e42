package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/output"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// quietLogger discards progress output
type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{OutputDir: t.TempDir(), Seed: 42}
}

func TestParseOptions_Defaults(t *testing.T) {
	cfg := testConfig(t)
	opts, err := parseOptions(nil, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if opts.Scene != "default" || opts.Format != output.FormatPPM || opts.Workers != 1 || opts.Passes != 1 {
		t.Errorf("Unexpected defaults %+v", opts)
	}
	if opts.Seed != 42 || opts.OutputDir != cfg.OutputDir {
		t.Errorf("Expected seed and output dir from config, got %+v", opts)
	}
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"-format", "gif"}},
		{"negative width", []string{"-width", "-1"}},
		{"zero passes", []string{"-passes", "0"}},
		{"negative thumb", []string{"-thumb", "-5"}},
		{"passes with single worker", []string{"-passes", "3"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseOptions(tt.args, testConfig(t)); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestParseOptions_PassesWithTiledRenderer(t *testing.T) {
	for _, workers := range []string{"0", "4"} {
		opts, err := parseOptions([]string{"-workers", workers, "-passes", "3"}, testConfig(t))
		if err != nil {
			t.Fatalf("workers=%s: unexpected error: %v", workers, err)
		}
		if opts.Passes != 3 {
			t.Errorf("workers=%s: expected 3 passes, got %d", workers, opts.Passes)
		}
	}
}

func TestRenderScene_SingleThreadedUsesSceneDefaults(t *testing.T) {
	// Zero samples and depth fall back to the scene's own sampling config
	opts := &Options{Scene: "default", Width: 4, Height: 2, Seed: 3, Workers: 1, Passes: 1}
	sceneObj, err := scene.Create(opts.Scene)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, stats, err := renderScene(context.Background(), sceneObj, opts, quietLogger{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	expected := 4 * 2 * sceneObj.SamplingConfig.SamplesPerPixel
	if stats.TotalSamples != expected {
		t.Errorf("Expected %d samples from scene defaults, got %d", expected, stats.TotalSamples)
	}

	opts.Samples = 2
	_, stats, err = renderScene(context.Background(), sceneObj, opts, quietLogger{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stats.TotalSamples != 16 {
		t.Errorf("Expected explicit samples to override the scene, got %d", stats.TotalSamples)
	}
}

func TestResolveScene(t *testing.T) {
	opts := &Options{Scene: "default", Width: 40}
	sceneObj, err := resolveScene(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sceneObj.Name != "default" {
		t.Errorf("Expected default scene, got %q", sceneObj.Name)
	}
	if opts.Width != 40 || opts.Height != 200 || opts.Samples != 50 || opts.Depth != 50 {
		t.Errorf("Expected explicit width kept and scene defaults filled, got %+v", opts)
	}

	if _, err := resolveScene(&Options{Scene: "cornell"}); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestRun_WritesPPMAndThumbnail(t *testing.T) {
	cfg := testConfig(t)
	opts, err := parseOptions([]string{"-width", "24", "-height", "12", "-samples", "2", "-depth", "4", "-thumb", "8"}, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := run(context.Background(), cfg, opts, quietLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	images, _ := filepath.Glob(filepath.Join(cfg.OutputDir, "default", "render_*.ppm"))
	if len(images) != 1 {
		t.Fatalf("Expected one PPM, found %v", images)
	}
	data, err := os.ReadFile(images[0])
	if err != nil {
		t.Fatalf("Failed to read render: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n24 12\n255\n") {
		t.Errorf("Unexpected PPM header in %d bytes of output", len(data))
	}
	if lines := strings.Count(string(data), "\n"); lines != 3+24*12 {
		t.Errorf("Expected %d lines, got %d", 3+24*12, lines)
	}

	thumbs, _ := filepath.Glob(filepath.Join(cfg.OutputDir, "default", "render_*_thumb.png"))
	if len(thumbs) != 1 {
		t.Fatalf("Expected one thumbnail, found %v", thumbs)
	}
	file, err := os.Open(thumbs[0])
	if err != nil {
		t.Fatalf("Failed to open thumbnail: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Invalid thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 8x4 thumbnail, got %v", img.Bounds())
	}
}

func TestRenderScene_ParallelMatchesAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) []byte {
		opts := &Options{Scene: "metal", Width: 16, Height: 8, Samples: 3, Depth: 5, Seed: 1, Workers: workers, Passes: 2, Format: output.FormatPPM}
		sceneObj, err := resolveScene(opts)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		frame, stats, err := renderScene(context.Background(), sceneObj, opts, quietLogger{})
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if stats.MinSamples != 3 {
			t.Errorf("Expected 3 samples everywhere, got %+v", stats)
		}
		data, err := output.EncodeBytes(frame, output.FormatPPM)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		return data
	}

	if string(render(2)) != string(render(5)) {
		t.Error("Expected identical images for 2 and 5 workers")
	}
}

func TestRun_PublishWithoutBucketFails(t *testing.T) {
	cfg := testConfig(t)
	opts := &Options{Scene: "default", Width: 8, Height: 4, Samples: 1, Depth: 2, Workers: 1, Passes: 1, Format: output.FormatPNG, OutputDir: cfg.OutputDir, Publish: true}

	if err := run(context.Background(), cfg, opts, quietLogger{}); err == nil {
		t.Error("Expected publish to fail without a configured bucket")
	}
}
