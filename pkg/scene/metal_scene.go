package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// NewMetalScene creates a diffuse sphere flanked by a silver and a brushed gold sphere
func NewMetalScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("metal", renderer.DefaultCameraConfig(), samplingConfig, cameraOverrides)

	lambertianCenter := material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8))
	metalGold := material.NewFuzzyMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertianCenter)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)

	return s
}
