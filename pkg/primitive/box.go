package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Box is a solid axis-aligned box spanning [lower, upper] in local
// coordinates.
type Box struct {
	core.Node
	lower core.Vec3
	upper core.Vec3
	cache farHit
}

// NewBox creates a box spanning the given local corners
func NewBox(lower, upper core.Vec3, name string, material core.Material) (*Box, error) {
	if upper.X <= lower.X || upper.Y <= lower.Y || upper.Z <= lower.Z {
		return nil, core.NewValidationError("extent", 0, "upper corner must exceed lower corner on every axis")
	}
	b := &Box{Node: core.NewNode(name, material), lower: lower, upper: upper}
	b.Bind(b)
	return b, nil
}

// Corners returns the local lower and upper corners
func (b *Box) Corners() (core.Vec3, core.Vec3) { return b.lower, b.upper }

// SetCorners replaces the corners. The intersection cache is invalidated
// and the scene graph notified in the same call.
func (b *Box) SetCorners(lower, upper core.Vec3) error {
	if upper.X <= lower.X || upper.Y <= lower.Y || upper.Z <= lower.Z {
		return core.NewValidationError("extent", 0, "upper corner must exceed lower corner on every axis")
	}
	b.lower = lower
	b.upper = upper
	b.cache.clear()
	b.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (b *Box) SetTransform(m core.Transform) {
	b.cache.clear()
	b.Node.SetTransform(m)
}

// slabInterval intersects the ray against the box using the slab method,
// also reporting which axis bounds the interval on each side
func (b *Box) slabInterval(local core.Ray) (tNear, tFar float64, axisNear, axisFar int, ok bool) {
	tNear, tFar = math.Inf(-1), math.Inf(1)
	axisNear, axisFar = -1, -1

	lo := [3]float64{b.lower.X, b.lower.Y, b.lower.Z}
	hi := [3]float64{b.upper.X, b.upper.Y, b.upper.Z}
	origin := [3]float64{local.Origin.X, local.Origin.Y, local.Origin.Z}
	direction := [3]float64{local.Direction.X, local.Direction.Y, local.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(direction[axis]) < parallelEpsilon {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, 0, -1, -1, false
			}
			continue
		}
		inv := 1.0 / direction[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, axisNear = t1, axis
		}
		if t2 < tFar {
			tFar, axisFar = t2, axis
		}
		if tFar < tNear {
			return 0, 0, -1, -1, false
		}
	}
	return tNear, tFar, axisNear, axisFar, true
}

// faceNormal returns the outward normal of the face crossed on the given axis
func (b *Box) faceNormal(axis int, p core.Vec3) core.Vec3 {
	center := b.lower.Add(b.upper).Multiply(0.5)
	var n core.Vec3
	switch axis {
	case 0:
		n = core.NewVec3(1, 0, 0)
		if p.X < center.X {
			n.X = -1
		}
	case 1:
		n = core.NewVec3(0, 1, 0)
		if p.Y < center.Y {
			n.Y = -1
		}
	case 2:
		n = core.NewVec3(0, 0, 1)
		if p.Z < center.Z {
			n.Z = -1
		}
	}
	return n
}

// Hit returns the nearest intersection along the ray, caching the farther
// face crossing for NextIntersection when the ray passes through the box
func (b *Box) Hit(ray core.Ray) (*core.Intersection, bool) {
	b.cache.clear()
	local := ray.Transform(b.ToLocal())

	tNear, tFar, axisNear, axisFar, ok := b.slabInterval(local)
	if !ok {
		return nil, false
	}

	validNear := tNear >= 0 && tNear <= local.MaxDistance && axisNear >= 0
	validFar := tFar >= 0 && tFar <= local.MaxDistance && axisFar >= 0

	switch {
	case validNear && validFar:
		pFar := local.At(tFar)
		b.cache = farHit{pending: true, t: tFar, point: pFar, normal: b.faceNormal(axisFar, pFar), ray: local}
		p := local.At(tNear)
		return core.NewIntersection(tNear, p, b.faceNormal(axisNear, p), local, b.ToLocal(), b.Transform(), b.Self()), true
	case validNear:
		p := local.At(tNear)
		return core.NewIntersection(tNear, p, b.faceNormal(axisNear, p), local, b.ToLocal(), b.Transform(), b.Self()), true
	case validFar:
		p := local.At(tFar)
		return core.NewIntersection(tFar, p, b.faceNormal(axisFar, p), local, b.ToLocal(), b.Transform(), b.Self()), true
	}
	return nil, false
}

// NextIntersection returns the cached farther crossing exactly once
func (b *Box) NextIntersection() (*core.Intersection, bool) {
	hit, ok := b.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, b.ToLocal(), b.Transform(), b.Self()), true
}

// Contains reports whether the world-space point lies inside the box
func (b *Box) Contains(p core.Vec3) bool {
	local := b.ToLocal().Point(p)
	return local.X >= b.lower.X && local.X <= b.upper.X &&
		local.Y >= b.lower.Y && local.Y <= b.upper.Y &&
		local.Z >= b.lower.Z && local.Z <= b.upper.Z
}

// BoundingBox returns the padded world-space bounding box
func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.lower, b.upper).Transformed(b.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (b *Box) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(b.BoundingBox())
}
