package core

import "math"

// Intersection describes a single ray/surface hit. Points are stored in
// world space together with the transforms that were active at hit time so
// that callers can move between frames without re-deriving them.
type Intersection struct {
	T          float64   // Ray distance to the hit
	Point      Vec3      // Hit point in world space
	InnerPoint Vec3      // Point displaced to the interior side of the surface
	OuterPoint Vec3      // Point displaced to the exterior side of the surface
	Normal     Vec3      // Unit outward surface normal in world space
	Exiting    bool      // True when the ray leaves the solid at this hit
	ToLocal    Transform // World to primitive-local transform at hit time
	ToWorld    Transform // Primitive-local to world transform at hit time
	Primitive  Primitive // The primitive that produced the hit
}

// NewIntersection builds an Intersection from local-frame hit data.
// localNormal must be the geometric outward normal; the exiting flag is
// derived from its orientation against the local ray direction.
func NewIntersection(t float64, localPoint, localNormal Vec3, localRay Ray, toLocal, toWorld Transform, prim Primitive) *Intersection {
	exiting := localRay.Direction.Dot(localNormal) >= 0

	point := toWorld.Point(localPoint)
	normal := toLocal.Normal(localNormal).Normalize()

	// Displace by a scale-relative amount so that follow-up rays started
	// from the displaced points cannot re-hit the same surface
	delta := HitPointPadding * math.Max(1.0, point.Length())
	offset := normal.Multiply(delta)

	return &Intersection{
		T:          t,
		Point:      point,
		InnerPoint: point.Subtract(offset),
		OuterPoint: point.Add(offset),
		Normal:     normal,
		Exiting:    exiting,
		ToLocal:    toLocal,
		ToWorld:    toWorld,
		Primitive:  prim,
	}
}

// HitPointPadding is the relative displacement used for inner/outer points
const HitPointPadding = 1e-9
