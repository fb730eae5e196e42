package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/output"
	"github.com/df07/go-path-tracer/pkg/publish"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Options holds the parsed command line
type Options struct {
	Scene     string
	Width     int // 0 = scene default
	Height    int // 0 = scene default
	Samples   int // 0 = scene default
	Depth     int // 0 = scene default
	Seed      int64
	Workers   int // 1 = single-threaded reference order, 0 = one per CPU
	Passes    int
	Format    output.Format
	OutputDir string
	Thumb     uint // Thumbnail bounding box, 0 = none
	Publish   bool
	Help      bool
}

// errHelp signals that usage was printed and nothing should render
var errHelp = errors.New("help requested")

func parseOptions(args []string, cfg *config.Config) (*Options, error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)

	opts := &Options{}
	var format string
	var thumb int
	fs.StringVar(&opts.Scene, "scene", scene.DefaultSceneName, "Scene name (see -help for the list)")
	fs.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.Int64Var(&opts.Seed, "seed", cfg.Seed, "Random seed")
	fs.IntVar(&opts.Workers, "workers", 1, "Worker goroutines (1 = single-threaded, 0 = one per CPU)")
	fs.IntVar(&opts.Passes, "passes", 1, "Progressive passes (requires -workers other than 1)")
	fs.StringVar(&format, "format", string(output.FormatPPM), "Output format: ppm, png or bmp")
	fs.StringVar(&opts.OutputDir, "out", cfg.OutputDir, "Output directory")
	fs.IntVar(&thumb, "thumb", 0, "Also write a PNG thumbnail fitting in NxN pixels")
	fs.BoolVar(&opts.Publish, "publish", false, "Upload the render to the configured S3 bucket")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.Help {
		printUsage(fs)
		return opts, errHelp
	}

	var err error
	if opts.Format, err = output.ParseFormat(format); err != nil {
		return nil, err
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Samples < 0 || opts.Depth < 0 {
		return nil, fmt.Errorf("width, height, samples and depth must not be negative")
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if opts.Passes < 1 {
		return nil, fmt.Errorf("passes must be at least 1, got %d", opts.Passes)
	}
	if opts.Passes > 1 && opts.Workers == 1 {
		return nil, fmt.Errorf("-passes %d needs the tiled renderer; set -workers to 0 or more than 1", opts.Passes)
	}
	if thumb < 0 {
		return nil, fmt.Errorf("thumb must not be negative, got %d", thumb)
	}
	opts.Thumb = uint(thumb)

	return opts, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.<format>")
}

// resolveScene builds the scene and fills unset size and sampling options from it
func resolveScene(opts *Options) (*scene.Scene, error) {
	sceneObj, err := scene.Create(opts.Scene)
	if err != nil {
		return nil, err
	}

	defaults := sceneObj.SamplingConfig
	if opts.Width == 0 {
		opts.Width = defaults.Width
	}
	if opts.Height == 0 {
		opts.Height = defaults.Height
	}
	if opts.Samples == 0 {
		opts.Samples = defaults.SamplesPerPixel
	}
	if opts.Depth == 0 {
		opts.Depth = defaults.MaxDepth
	}
	return sceneObj, nil
}

// renderScene renders with the single-threaded raytracer when one worker is
// requested, otherwise with the tiled progressive raytracer
func renderScene(ctx context.Context, sceneObj *scene.Scene, opts *Options, logger core.Logger) (*renderer.Frame, renderer.RenderStats, error) {
	if opts.Workers == 1 {
		raytracer := renderer.NewRaytracer(sceneObj, opts.Width, opts.Height)
		raytracer.SetSamplingConfig(sceneObj.GetRendererSamplingConfig())
		raytracer.MergeSamplingConfig(renderer.SamplingConfig{
			SamplesPerPixel: opts.Samples,
			MaxDepth:        opts.Depth,
		})
		raytracer.SetSeed(opts.Seed)
		frame, stats := raytracer.RenderPass()
		return frame, stats, nil
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = opts.Samples
	config.MaxPasses = opts.Passes
	config.MaxDepth = opts.Depth
	config.NumWorkers = opts.Workers
	config.Seed = opts.Seed

	var last renderer.PassResult
	progressive := renderer.NewProgressiveRaytracer(sceneObj, opts.Width, opts.Height, config, logger)
	err := progressive.RenderProgressive(ctx, func(result renderer.PassResult) error {
		last = result
		return nil
	})
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return last.Frame, last.Stats, nil
}

// renderOutputs names and encodes the image and optional thumbnail
type renderOutputs struct {
	imagePath string
	imageData []byte
	thumbPath string
	thumbData []byte
}

func encodeOutputs(frame *renderer.Frame, opts *Options, dir, base string) (*renderOutputs, error) {
	outputs := &renderOutputs{
		imagePath: filepath.Join(dir, base+"."+opts.Format.Extension()),
	}

	var err error
	if outputs.imageData, err = output.EncodeBytes(frame, opts.Format); err != nil {
		return nil, err
	}

	if opts.Thumb > 0 {
		thumb := output.Thumbnail(output.ToRGBA(frame), opts.Thumb, opts.Thumb)
		if outputs.thumbData, err = output.EncodePNG(thumb); err != nil {
			return nil, err
		}
		outputs.thumbPath = filepath.Join(dir, base+"_thumb.png")
	}

	return outputs, nil
}

func publishOutputs(ctx context.Context, cfg *config.Config, opts *Options, outputs *renderOutputs, timestamp time.Time) error {
	publisher, err := publish.NewS3Publisher(cfg)
	if err != nil {
		return err
	}

	key := publish.RenderKey(publisher.Prefix(), opts.Scene, timestamp, opts.Format.Extension())
	if err := publisher.Upload(ctx, key, outputs.imageData, opts.Format.ContentType()); err != nil {
		return err
	}

	if outputs.thumbData != nil {
		thumbKey := publish.ThumbnailKey(publisher.Prefix(), opts.Scene, timestamp)
		if err := publisher.Upload(ctx, thumbKey, outputs.thumbData, output.FormatPNG.ContentType()); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, opts *Options, logger core.Logger) error {
	sceneObj, err := resolveScene(opts)
	if err != nil {
		return err
	}

	logger.Printf("Rendering %s at %dx%d, %d samples, depth %d, seed %d\n",
		opts.Scene, opts.Width, opts.Height, opts.Samples, opts.Depth, opts.Seed)

	startTime := time.Now()
	frame, stats, err := renderScene(ctx, sceneObj, opts, logger)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	outputDir := filepath.Join(opts.OutputDir, opts.Scene)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now()
	base := fmt.Sprintf("render_%s", timestamp.Format("20060102_150405"))
	outputs, err := encodeOutputs(frame, opts, outputDir, base)
	if err != nil {
		return err
	}

	if err := output.SaveFile(outputs.imagePath, outputs.imageData); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputs.imagePath)

	if outputs.thumbData != nil {
		if err := output.SaveFile(outputs.thumbPath, outputs.thumbData); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", outputs.thumbPath)
	}

	if opts.Publish {
		if err := publishOutputs(ctx, cfg, opts, outputs, timestamp); err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}
	}

	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts, err := parseOptions(os.Args[1:], cfg)
	if errors.Is(err, errHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	if err := run(context.Background(), cfg, opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
