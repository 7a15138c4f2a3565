package core

import "math"

// BoxPadding is the absolute padding applied to local-space bounding boxes
// to tolerate floating-point error at primitive boundaries
const BoxPadding = 1e-9

// SpherePadding is the relative padding applied to bounding sphere radii
const SpherePadding = 1.0 + 1e-9

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Pad returns the box expanded by delta on every side
func (aabb AABB) Pad(delta float64) AABB {
	d := NewVec3(delta, delta, delta)
	return AABB{Min: aabb.Min.Subtract(d), Max: aabb.Max.Add(d)}
}

// Union returns the smallest box containing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: NewVec3(
			math.Min(aabb.Min.X, other.Min.X),
			math.Min(aabb.Min.Y, other.Min.Y),
			math.Min(aabb.Min.Z, other.Min.Z),
		),
		Max: NewVec3(
			math.Max(aabb.Max.X, other.Max.X),
			math.Max(aabb.Max.Y, other.Max.Y),
			math.Max(aabb.Max.Z, other.Max.Z),
		),
	}
}

// Intersection returns the overlap of both boxes.
// A box with inverted extents means the boxes do not overlap.
func (aabb AABB) Intersection(other AABB) AABB {
	return AABB{
		Min: NewVec3(
			math.Max(aabb.Min.X, other.Min.X),
			math.Max(aabb.Min.Y, other.Min.Y),
			math.Max(aabb.Min.Z, other.Min.Z),
		),
		Max: NewVec3(
			math.Min(aabb.Max.X, other.Max.X),
			math.Min(aabb.Max.Y, other.Max.Y),
			math.Min(aabb.Max.Z, other.Max.Z),
		),
	}
}

// Center returns the center point of the box
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Contains reports whether the point lies inside the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Transformed returns the box that bounds this box mapped through m
func (aabb AABB) Transformed(m Transform) AABB {
	corners := []Vec3{
		{aabb.Min.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Max.Z},
	}
	for i, c := range corners {
		corners[i] = m.Point(c)
	}
	return NewAABBFromPoints(corners...)
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0:
			min, max = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			min, max = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			min, max = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		// Ray parallel to this axis pair of slabs
		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMax < tMin {
			return false
		}
	}
	return true
}

// BoundingSphere represents a bounding sphere
type BoundingSphere struct {
	Center Vec3
	Radius float64
}

// EnclosingSphere returns a sphere bounding the given box, with relative padding
func EnclosingSphere(box AABB) BoundingSphere {
	center := box.Center()
	return BoundingSphere{
		Center: center,
		Radius: box.Max.Subtract(center).Length() * SpherePadding,
	}
}
