package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile
	InitialSamples     int   // Samples for first pass
	MaxSamplesPerPixel int   // Maximum total samples per pixel
	MaxPasses          int   // Maximum number of passes
	MaxDepth           int   // Maximum ray bounce depth
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for the per-tile random streams
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 50,
		MaxPasses:          7, // 1, then evenly spread up to 50
		MaxDepth:           50,
		NumWorkers:         0,
		Seed:               42,
	}
}

// normalize clamps the config into a schedule that always makes progress
func (c ProgressiveConfig) normalize() ProgressiveConfig {
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.MaxSamplesPerPixel <= 0 {
		c.MaxSamplesPerPixel = 1
	}
	c.InitialSamples = max(1, min(c.InitialSamples, c.MaxSamplesPerPixel))
	c.MaxPasses = max(1, min(c.MaxPasses, c.MaxSamplesPerPixel))
	return c
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber  int
	TotalPasses int
	Frame       *Frame
	Stats       RenderStats
	Duration    time.Duration
	IsLast      bool
}

// ProgressiveRaytracer manages progressive rendering with multiple passes
type ProgressiveRaytracer struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	pixelStats    [][]PixelStats // Shared pixel statistics array (row 0 at the top)
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene Scene, width, height int, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	config = config.normalize()
	if logger == nil {
		logger = NewDefaultLogger()
	}

	tiles := NewTileGrid(width, height, config.TileSize, config.Seed)

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	sampling := SamplingConfig{SamplesPerPixel: config.MaxSamplesPerPixel, MaxDepth: config.MaxDepth}
	workerPool := NewWorkerPool(scene, width, height, len(tiles), config.NumWorkers, sampling)

	return &ProgressiveRaytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     config,
		tiles:      tiles,
		pixelStats: pixelStats,
		workerPool: workerPool,
		logger:     logger,
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		return pr.config.MaxSamplesPerPixel
	}

	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return pr.config.InitialSamples + (passNumber-1)*samplesPerPass
}

// renderPass submits every tile for one pass and waits for all of them
func (pr *ProgressiveRaytracer) renderPass(passNumber int) (*Frame, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Drain every result so no worker is still writing when the frame is assembled
	var firstErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		pr.tiles[result.TaskID].PassesCompleted++
	}
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	frame, stats := pr.assembleCurrentFrame(targetSamples)
	return frame, stats, nil
}

// RenderProgressive renders passes of increasing sample counts, handing each
// finished pass to callback. It stops early when ctx is cancelled or the
// callback returns an error.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, callback func(PassResult) error) error {
	pr.workerPool.Start(ctx)
	defer pr.workerPool.Stop()

	pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

	for pass := 1; pass <= pr.config.MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
			return err
		}

		startTime := time.Now()
		frame, stats, err := pr.renderPass(pass)
		if err != nil {
			return fmt.Errorf("pass %d: %w", pass, err)
		}
		passTime := time.Since(startTime)

		pr.logger.Printf("Pass %d completed in %v (actual: %.1f samples/pixel)\n",
			pass, passTime, stats.AverageSamples)

		isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.config.MaxSamplesPerPixel
		if callback != nil {
			result := PassResult{
				PassNumber:  pass,
				TotalPasses: pr.config.MaxPasses,
				Frame:       frame,
				Stats:       stats,
				Duration:    passTime,
				IsLast:      isLast,
			}
			if err := callback(result); err != nil {
				return err
			}
		}

		if isLast {
			break
		}
	}

	return nil
}

// assembleCurrentFrame averages the shared pixel stats into a new frame
// and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentFrame(targetSamples int) (*Frame, RenderStats) {
	frame := NewFrame(pr.width, pr.height)
	stats := newRenderStats(pr.width*pr.height, targetSamples)

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			frame.Set(x, y, pixel.GetColor())
			stats.addPixel(pixel.SampleCount)
		}
	}

	stats.finalize()
	return frame, stats
}
