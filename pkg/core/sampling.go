package core

import (
	"math"
	"math/rand"
)

// RandomInRange returns a uniform float64 in [lo, hi)
func RandomInRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// RandomInUnitSphere returns a uniformly distributed point strictly inside the
// unit sphere, found by rejection sampling the [-1,1)³ cube.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: RandomInRange(random, -1, 1),
			Y: RandomInRange(random, -1, 1),
			Z: RandomInRange(random, -1, 1),
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a direction uniformly distributed over the unit
// sphere surface: uniform azimuth in [0, 2π) and uniform height z in [-1, 1).
func RandomUnitVector(random *rand.Rand) Vec3 {
	a := RandomInRange(random, 0, 2*math.Pi)
	z := RandomInRange(random, -1, 1)
	r := math.Sqrt(1 - z*z)

	return Vec3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
}
