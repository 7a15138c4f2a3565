package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Cylinder is a solid capped cylinder. Its axis runs along local z from
// z=0 to z=height with the given radius.
type Cylinder struct {
	core.Node
	radius float64
	height float64
	cache  farHit
}

// NewCylinder creates a cylinder with the given radius and height
func NewCylinder(radius, height float64, name string, material core.Material) (*Cylinder, error) {
	if radius <= 0 {
		return nil, core.NewValidationError("radius", radius, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	c := &Cylinder{Node: core.NewNode(name, material), radius: radius, height: height}
	c.Bind(c)
	return c, nil
}

// Radius returns the cylinder's radius
func (c *Cylinder) Radius() float64 { return c.radius }

// Height returns the cylinder's height
func (c *Cylinder) Height() float64 { return c.height }

// SetRadius replaces the radius. The intersection cache is invalidated and
// the scene graph notified in the same call.
func (c *Cylinder) SetRadius(radius float64) error {
	if radius <= 0 {
		return core.NewValidationError("radius", radius, "must be positive")
	}
	c.radius = radius
	c.cache.clear()
	c.NotifyGeometryChange()
	return nil
}

// SetHeight replaces the height. The intersection cache is invalidated and
// the scene graph notified in the same call.
func (c *Cylinder) SetHeight(height float64) error {
	if height <= 0 {
		return core.NewValidationError("height", height, "must be positive")
	}
	c.height = height
	c.cache.clear()
	c.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (c *Cylinder) SetTransform(m core.Transform) {
	c.cache.clear()
	c.Node.SetTransform(m)
}

// surfaceHit is one candidate boundary crossing in the local frame
type surfaceHit struct {
	t      float64
	point  core.Vec3
	normal core.Vec3
}

// Hit returns the nearest intersection along the ray, caching the farther
// crossing for NextIntersection when the ray passes through the solid
func (c *Cylinder) Hit(ray core.Ray) (*core.Intersection, bool) {
	c.cache.clear()
	local := ray.Transform(c.ToLocal())

	hits := make([]surfaceHit, 0, 2)

	// Lateral surface: quadratic in the x-y plane
	a := local.Direction.X*local.Direction.X + local.Direction.Y*local.Direction.Y
	if a > parallelEpsilon {
		halfB := local.Origin.X*local.Direction.X + local.Origin.Y*local.Direction.Y
		cc := local.Origin.X*local.Origin.X + local.Origin.Y*local.Origin.Y - c.radius*c.radius
		discriminant := halfB*halfB - a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			for _, t := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
				if t < 0 || t > local.MaxDistance {
					continue
				}
				p := local.At(t)
				if p.Z < 0 || p.Z > c.height {
					continue
				}
				normal := core.NewVec3(p.X/c.radius, p.Y/c.radius, 0)
				hits = append(hits, surfaceHit{t: t, point: p, normal: normal})
			}
		}
	}

	// End caps
	if math.Abs(local.Direction.Z) > parallelEpsilon {
		for _, end := range []struct {
			z      float64
			normal core.Vec3
		}{
			{z: 0, normal: core.NewVec3(0, 0, -1)},
			{z: c.height, normal: core.NewVec3(0, 0, 1)},
		} {
			t := (end.z - local.Origin.Z) / local.Direction.Z
			if t < 0 || t > local.MaxDistance {
				continue
			}
			p := local.At(t)
			if p.X*p.X+p.Y*p.Y > c.radius*c.radius {
				continue
			}
			hits = append(hits, surfaceHit{t: t, point: p, normal: end.normal})
		}
	}

	near, far, n := closestTwo(hits)
	if n == 0 {
		return nil, false
	}
	if n > 1 {
		c.cache = farHit{pending: true, t: far.t, point: far.point, normal: far.normal, ray: local}
	}
	return core.NewIntersection(near.t, near.point, near.normal, local, c.ToLocal(), c.Transform(), c.Self()), true
}

// closestTwo selects the nearest and farthest candidate crossings
func closestTwo(hits []surfaceHit) (near, far surfaceHit, n int) {
	if len(hits) == 0 {
		return surfaceHit{}, surfaceHit{}, 0
	}
	near, far = hits[0], hits[0]
	for _, h := range hits[1:] {
		if h.t < near.t {
			near = h
		}
		if h.t > far.t {
			far = h
		}
	}
	if far.t == near.t {
		return near, far, 1
	}
	return near, far, 2
}

// NextIntersection returns the cached farther crossing exactly once
func (c *Cylinder) NextIntersection() (*core.Intersection, bool) {
	hit, ok := c.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, c.ToLocal(), c.Transform(), c.Self()), true
}

// Contains reports whether the world-space point lies inside the cylinder
func (c *Cylinder) Contains(p core.Vec3) bool {
	local := c.ToLocal().Point(p)
	if local.Z < 0 || local.Z > c.height {
		return false
	}
	return local.X*local.X+local.Y*local.Y <= c.radius*c.radius
}

// BoundingBox returns the padded world-space bounding box
func (c *Cylinder) BoundingBox() core.AABB {
	local := core.NewAABB(
		core.NewVec3(-c.radius, -c.radius, 0),
		core.NewVec3(c.radius, c.radius, c.height),
	)
	return local.Transformed(c.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (c *Cylinder) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(c.BoundingBox())
}
