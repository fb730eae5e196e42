package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// HittableList is an ordered collection of shapes tested by linear scan.
// It is itself a Shape, so lists can nest.
type HittableList struct {
	Shapes []core.Shape
}

// NewHittableList creates a list holding the given shapes in order
func NewHittableList(shapes ...core.Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends shapes to the end of the scan order
func (l *HittableList) Add(shapes ...core.Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest hit with t < tMax across all shapes.
// Every accepted hit narrows tMax for the shapes after it, and since shapes
// only accept t strictly below tMax, equal distances resolve to the earlier shape.
func (l *HittableList) Hit(ray core.Ray, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// HitNearest runs an unbounded nearest-hit query
func (l *HittableList) HitNearest(ray core.Ray) (*core.HitRecord, bool) {
	return l.Hit(ray, math.Inf(1))
}
