package core

import "math/rand"

// HitEpsilon is the smallest ray parameter accepted as a hit. It keeps a ray
// scattered from a surface from re-hitting that surface due to rounding.
const HitEpsilon = 0.001

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection.
// Records are transient: produced by a hit test and consumed by the integrator.
type HitRecord struct {
	T        float64  // Parameter t along the ray
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Outward unit normal, never flipped for back faces
	Material Material // Material of the hit object, owned by the shape
}

// Shape is anything a ray can hit. Hit reports the nearest intersection with
// HitEpsilon < t < tMax, or (nil, false).
type Shape interface {
	Hit(ray Ray, tMax float64) (*HitRecord, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing ray
	Attenuation Vec3 // Color attenuation (albedo)
}

// Material interface for surfaces that scatter rays
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}
