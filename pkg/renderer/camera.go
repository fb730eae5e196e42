package renderer

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking down -z
type CameraConfig struct {
	Origin         core.Vec3 // Eye position
	ViewportWidth  float64   // Width of the image plane in world units
	ViewportHeight float64   // Height of the image plane in world units
	Depth          float64   // Offset of the image plane along z (negative is in front)
}

// DefaultCameraConfig returns a 2:1 viewport one unit in front of the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:         core.NewVec3(0, 0, 0),
		ViewportWidth:  4.0,
		ViewportHeight: 2.0,
		Depth:          -1.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Origin != (core.Vec3{}) {
		result.Origin = override.Origin
	}
	if override.ViewportWidth != 0 {
		result.ViewportWidth = override.ViewportWidth
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.Depth != 0 {
		result.Depth = override.Depth
	}
	return result
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a simple camera
func NewCamera(config CameraConfig) *Camera {
	horizontal := core.NewVec3(config.ViewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := config.Origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Add(core.NewVec3(0, 0, config.Depth))

	return &Camera{
		origin:          config.Origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1
// and (0,0) is the lower-left corner of the viewport
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
