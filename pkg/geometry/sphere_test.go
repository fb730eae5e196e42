package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

// stubMaterial is a Material that never scatters; tests use it to check the
// hit record carries the sphere's material.
type stubMaterial struct{ name string }

func (m *stubMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit != nil {
		t.Errorf("Expected nil record on miss, got %+v", hit)
	}
}

func TestSphere_Hit_Exactness(t *testing.T) {
	tests := []struct {
		name      string
		center    core.Vec3
		radius    float64
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{"unit sphere ahead", core.NewVec3(0, 0, -1), 0.5, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0.5},
		{"unnormalized direction", core.NewVec3(0, 0, -1), 0.5, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2), 0.25},
		{"offset origin", core.NewVec3(3, 2, 1), 2, core.NewVec3(3, 2, 10), core.NewVec3(0, 0, -1), 7},
		{"ground sphere", core.NewVec3(0, -100.5, -1), 100, core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0), 100.5 - math.Sqrt(9999)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, nil)
			ray := core.NewRay(tt.origin, tt.direction)

			hit, isHit := sphere.Hit(ray, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			dist := ray.At(hit.T).Subtract(tt.center).Length()
			if math.Abs(dist-tt.radius) > 1e-4 {
				t.Errorf("Hit point is %f from center, expected radius %f", dist, tt.radius)
			}
			if hit.Point != ray.At(hit.T) {
				t.Errorf("Expected point %v, got %v", ray.At(hit.T), hit.Point)
			}
		})
	}
}

func TestSphere_Hit_OutwardNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)
	random := rand.New(rand.NewSource(42))

	hits := 0
	for i := 0; i < 500; i++ {
		// Rays from the origin toward jittered points around the sphere
		target := core.NewVec3(
			core.RandomInRange(random, -0.6, 0.6),
			core.RandomInRange(random, -0.6, 0.6),
			-1,
		)
		ray := core.NewRay(core.NewVec3(0, 0, 0), target)
		hit, isHit := sphere.Hit(ray, math.Inf(1))
		if !isHit {
			continue
		}
		hits++

		outward := hit.Point.Subtract(sphere.Center)
		if hit.Normal.Dot(outward) <= 0 {
			t.Errorf("Normal %v does not point outward at %v", hit.Normal, hit.Point)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Errorf("Normal %v is not unit length", hit.Normal)
		}
	}

	if hits == 0 {
		t.Fatal("Expected some rays to hit the sphere")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Near root is t=1
	if hit, isHit := sphere.Hit(ray, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, 1.0); isHit {
		t.Errorf("Expected miss when tMax equals the root, but got hit at t=%f", hit.T)
	}
	if _, isHit := sphere.Hit(ray, 1.0+1e-9); !isHit {
		t.Error("Expected hit just inside tMax")
	}
}

func TestSphere_Hit_EpsilonGuard(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	// Origin on the surface heading inward: near root is 0
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if hit, isHit := sphere.Hit(ray, math.Inf(1)); isHit {
		t.Errorf("Expected surface self-hit to be suppressed, got t=%f", hit.T)
	}

	// A root just above epsilon is accepted
	ray = core.NewRay(core.NewVec3(0, 0, 1.002), core.NewVec3(0, 0, -1))
	if _, isHit := sphere.Hit(ray, math.Inf(1)); !isHit {
		t.Error("Expected hit for root just above epsilon")
	}
}

func TestSphere_Hit_FromInsideUsesNearRootOnly(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	// Near root is t=-1; the far root is never tried
	if hit, isHit := sphere.Hit(ray, math.Inf(1)); isHit {
		t.Errorf("Expected miss from inside the sphere, got t=%f", hit.T)
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	// Discriminant is exactly zero
	if hit, isHit := sphere.Hit(ray, math.Inf(1)); isHit {
		t.Errorf("Expected tangent ray to miss, got t=%f", hit.T)
	}
}

func TestSphere_Hit_AttachesMaterial(t *testing.T) {
	mat := &stubMaterial{name: "red"}
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit to reference the sphere's material, got %v", hit.Material)
	}
}
