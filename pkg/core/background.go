package core

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Top    Vec3 // Color looking straight up
	Bottom Vec3 // Color looking straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    NewVec3(0.5, 0.7, 1.0),
		Bottom: NewVec3(1.0, 1.0, 1.0),
	}
}

// Evaluate returns the background radiance along direction.
// The direction's unit y in [-1,1] maps to t in [0,1], bottom to top.
func (b Background) Evaluate(direction Vec3) Vec3 {
	t := 0.5 * (direction.Unit().Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}
