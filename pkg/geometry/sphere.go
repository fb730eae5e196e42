package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere.
// Only the near root is considered; a ray starting inside the sphere misses
// unless the near root still lies in (HitEpsilon, tMax).
func (s *Sphere) Hit(ray core.Ray, tMax float64) (*core.HitRecord, bool) {
	// |o + td - c|² = R²  =>  (d·d)t² + 2d·(o-c)t + (o-c)·(o-c) - R² = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return nil, false
	}

	root := (-b - math.Sqrt(discriminant)) / (2.0 * a)
	if root <= core.HitEpsilon || root >= tMax {
		return nil, false
	}

	point := ray.At(root)
	return &core.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Unit(),
		Material: s.Material,
	}, true
}
