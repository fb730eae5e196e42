package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// depth budget and no russian roulette
type PathTracingIntegrator struct {
	background core.Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background core.Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		background: background,
	}
}

// EstimateRadiance traces ray against world under the default sky
func EstimateRadiance(ray core.Ray, world core.Shape, maxDepth int, random *rand.Rand) core.Vec3 {
	return NewPathTracingIntegrator(core.DefaultBackground()).RayColor(ray, world, maxDepth, random)
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Zeros()
	}

	hit, isHit := world.Hit(ray, math.Inf(1))
	if !isHit {
		return pt.background.Evaluate(ray.Direction)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray
		return core.Zeros()
	}

	incoming := pt.RayColor(scatter.Scattered, world, depth-1, random)
	return scatter.Attenuation.MultiplyVec(incoming)
}

// Background returns the gradient used for escaping rays
func (pt *PathTracingIntegrator) Background() core.Background {
	return pt.background
}
