package material

import (
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
)

// DefaultFuzz gives metals a slightly glossy rather than mirror-sharp reflection
const DefaultFuzz = 0.1

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material with DefaultFuzz
func NewMetal(albedo core.Vec3) *Metal {
	return NewFuzzyMetal(albedo, DefaultFuzz)
}

// NewFuzzyMetal creates a metal material with an explicit fuzz radius
func NewFuzzyMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering.
// Rays fuzzed below the surface are still returned.
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Reflect(hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzzness))

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}
