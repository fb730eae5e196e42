package renderer

import (
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestPixelStats_GetColor(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black before any sample, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	expected := core.NewVec3(0.5, 0.5, 0.5)
	if ps.GetColor() != expected {
		t.Errorf("Expected mean %v, got %v", expected, ps.GetColor())
	}
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
}

func TestFrame_RowMajor(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(2, 1, core.NewVec3(1, 2, 3))

	if frame.Pixels[5] != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected pixel (2,1) at index 5, got %v", frame.Pixels)
	}
	if frame.At(2, 1) != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected At to read back the stored color, got %v", frame.At(2, 1))
	}
}

func TestRenderStats_Finalize(t *testing.T) {
	stats := newRenderStats(3, 10)
	stats.addPixel(2)
	stats.addPixel(4)
	stats.addPixel(6)
	stats.finalize()

	if stats.TotalSamples != 12 || stats.AverageSamples != 4 {
		t.Errorf("Expected 12 samples averaging 4, got %+v", stats)
	}
	if stats.MinSamples != 2 || stats.MaxSamplesUsed != 6 || stats.MaxSamples != 10 {
		t.Errorf("Unexpected bounds %+v", stats)
	}
}
