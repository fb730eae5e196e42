package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// NewDefaultScene creates two diffuse spheres resting on a huge ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}

	s := newScene("default", renderer.DefaultCameraConfig(), samplingConfig, cameraOverrides)

	lambertianRed := material.NewLambertian(core.NewVec3(0.8, 0.1, 0.1))
	lambertianWhite := material.NewLambertian(core.NewVec3(1.0, 1.0, 1.0))
	lambertianGround := material.NewLambertian(core.NewVec3(0.3, 0.8, 0.1))

	s.AddSphere(core.NewVec3(0, 0, -1.5), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(0.7, 0, -1.5), 0.3, lambertianWhite)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)

	return s
}
