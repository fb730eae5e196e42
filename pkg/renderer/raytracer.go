package renderer

import (
	"image"
	"log"
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/integrator"
)

// DefaultLogger implements core.Logger on top of the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the reference 50 samples and 50 bounces
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Shape
	GetBackground() core.Background
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	random     *rand.Rand
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     DefaultSamplingConfig(),
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground()),
		random:     rand.New(rand.NewSource(42)), // Deterministic for testing
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// MergeSamplingConfig applies the non-zero fields of updates
func (rt *Raytracer) MergeSamplingConfig(updates SamplingConfig) {
	if updates.SamplesPerPixel != 0 {
		rt.config.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth != 0 {
		rt.config.MaxDepth = updates.MaxDepth
	}
}

// SetSeed reseeds the raytracer's own random stream
func (rt *Raytracer) SetSeed(seed int64) {
	rt.random = rand.New(rand.NewSource(seed))
}

// samplePixel traces one jittered sample through pixel column i, scanline j.
// Scanline 0 is the bottom of the image.
func (rt *Raytracer) samplePixel(camera *Camera, i, j int, random *rand.Rand) core.Vec3 {
	u := (float64(i) + random.Float64()) / float64(rt.width)
	v := (float64(j) + random.Float64()) / float64(rt.height)
	ray := camera.GetRay(u, v)
	return rt.integrator.RayColor(ray, rt.scene.GetWorld(), rt.config.MaxDepth, random)
}

// RenderPass renders the whole image single-threaded, scanning from the top
// scanline down, and returns the averaged linear colors
func (rt *Raytracer) RenderPass() (*Frame, RenderStats) {
	frame := NewFrame(rt.width, rt.height)
	camera := rt.scene.GetCamera()
	stats := newRenderStats(rt.width*rt.height, rt.config.SamplesPerPixel)

	for j := rt.height - 1; j >= 0; j-- {
		for i := 0; i < rt.width; i++ {
			var pixel PixelStats
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				pixel.AddSample(rt.samplePixel(camera, i, j, rt.random))
			}

			frame.Set(i, rt.height-1-j, pixel.GetColor())
			stats.addPixel(pixel.SampleCount)
		}
	}

	stats.finalize()
	return frame, stats
}

// RenderBounds tops up every pixel in bounds to targetSamples samples.
// Bounds are in image coordinates with row 0 at the top.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) RenderStats {
	camera := rt.scene.GetCamera()
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples {
				ps.AddSample(rt.samplePixel(camera, x, j, random))
			}
			stats.addPixel(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}
