package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewFuzzyMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}

	if NewMetal(albedo).Fuzzness != DefaultFuzz {
		t.Errorf("Expected default fuzz %f, got %f", DefaultFuzz, NewMetal(albedo).Fuzzness)
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewFuzzyMetal(albedo, 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees, unnormalized
	rayIn := core.NewRay(core.NewVec3(0, 2, 2), core.NewVec3(0, -2, -2))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, random)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -2, 2)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Scattered.Origin != hit.Point {
		t.Errorf("Expected origin %v, got %v", hit.Point, scatter.Scattered.Origin)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	metal := NewMetal(albedo)
	random := rand.New(rand.NewSource(42))
	replay := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	mirror := core.NewVec3(0, 0, 1)

	directions := make([]core.Vec3, 10)
	for i := range directions {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction

		expected := mirror.Add(core.RandomInUnitSphere(replay).Multiply(DefaultFuzz))
		if directions[i] != expected {
			t.Errorf("Expected %v, got %v", expected, directions[i])
		}
		if directions[i].Subtract(mirror).Length() > DefaultFuzz+1e-12 {
			t.Errorf("Fuzz offset %v exceeds radius %f", directions[i].Subtract(mirror), DefaultFuzz)
		}
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if directions[i] != directions[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_BelowSurfaceNotRejected(t *testing.T) {
	metal := NewFuzzyMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	random := rand.New(rand.NewSource(123))

	// Grazing ray: with full fuzz some reflections land below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	below := 0
	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatal("Metal should scatter even when the fuzzed ray points into the surface")
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			below++
		}
	}

	if below == 0 {
		t.Error("Expected some fuzzed rays below the surface at a grazing angle")
	}
}
