package integrator

import (
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from the world,
	// following at most depth bounces
	RayColor(ray core.Ray, world core.Shape, depth int, random *rand.Rand) core.Vec3
}
