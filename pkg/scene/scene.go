package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene, scanned in order
	Background     core.Background
	SamplingConfig SamplingConfig
	CameraConfig   renderer.CameraConfig
}

// SamplingConfig contains the scene's preferred image size and sampling budget
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene builds an empty scene, applying the first camera override if given
func newScene(name string, cameraConfig renderer.CameraConfig, sampling SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:           name,
		Camera:         renderer.NewCamera(cameraConfig),
		World:          geometry.NewHittableList(),
		Background:     core.DefaultBackground(),
		SamplingConfig: sampling,
		CameraConfig:   cameraConfig,
	}
}

// AddSphere appends a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, material core.Material) {
	s.World.Add(geometry.NewSphere(center, radius, material))
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the root shape of the scene
func (s *Scene) GetWorld() core.Shape {
	return s.World
}

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() core.Background {
	return s.Background
}

// GetRendererSamplingConfig returns the subset of the sampling config the raytracer uses
func (s *Scene) GetRendererSamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
	}
}

// GetPrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
