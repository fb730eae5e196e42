package scene

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a grid of small spheres on the ground sphere,
// hue varying across x and material cycling along the diagonal
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Origin = core.NewVec3(0, 0.4, 0.5) // Slightly above the grid

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 50,
		MaxDepth:        40,
	}

	s := newScene("spheregrid", cameraConfig, samplingConfig, cameraOverrides)

	groundY := -0.5
	s.AddSphere(core.NewVec3(0, groundY-1000, -1), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	gridSize := 6
	spacing := 0.6
	sphereRadius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := (float64(i) - float64(gridSize-1)/2.0) * spacing
			z := -1.0 - float64(j)*spacing
			position := core.NewVec3(x, groundY+sphereRadius, z)

			// Hue across x, chroma rising with distance
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := 0.05 + (float64(j)/float64(gridSize-1))*0.20
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat core.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewLambertian(color)
			case 1:
				mat = material.NewMetal(color)
			default:
				mat = material.NewFuzzyMetal(color, 0.4)
			}

			s.AddSphere(position, sphereRadius, mat)
		}
	}

	return s
}
