package core

import "math"

// Infinity is the default maximum search distance for rays
var Infinity = math.Inf(1)

// Ray represents a ray with an origin, direction and maximum search distance.
// Rays are immutable for the duration of an intersection query.
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	MaxDistance float64
}

// NewRay creates a new ray with an unbounded search distance
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MaxDistance: Infinity}
}

// NewRayBounded creates a new ray with a maximum search distance
func NewRayBounded(origin, direction Vec3, maxDistance float64) Ray {
	return Ray{Origin: origin, Direction: direction, MaxDistance: maxDistance}
}

// At returns the point along the ray at parameter t
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform returns the ray mapped through the given affine transform.
// The direction is not renormalized so that parameter t keeps its meaning.
func (r Ray) Transform(m Transform) Ray {
	return Ray{
		Origin:      m.Point(r.Origin),
		Direction:   m.Direction(r.Direction),
		MaxDistance: r.MaxDistance,
	}
}
