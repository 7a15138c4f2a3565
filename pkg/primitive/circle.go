package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Circle is a flat disk of zero height lying in the local z=0 plane,
// centered on the origin with its normal along +z.
type Circle struct {
	core.Node
	radius float64
}

// NewCircle creates a circle with the given radius
func NewCircle(radius float64, name string, material core.Material) (*Circle, error) {
	if radius <= 0 {
		return nil, core.NewValidationError("radius", radius, "must be positive")
	}
	c := &Circle{Node: core.NewNode(name, material), radius: radius}
	c.Bind(c)
	return c, nil
}

// Radius returns the circle's radius
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius replaces the radius, invalidating stale bounding volumes
func (c *Circle) SetRadius(radius float64) error {
	if radius <= 0 {
		return core.NewValidationError("radius", radius, "must be positive")
	}
	c.radius = radius
	c.NotifyGeometryChange()
	return nil
}

// Hit returns the ray's intersection with the disk, if any.
// A flat primitive never has a second hit.
func (c *Circle) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(c.ToLocal())

	if math.Abs(local.Direction.Z) < parallelEpsilon {
		return nil, false
	}

	t := -local.Origin.Z / local.Direction.Z
	if t < 0 || t > local.MaxDistance {
		return nil, false
	}

	p := local.At(t)
	if p.X*p.X+p.Y*p.Y > c.radius*c.radius {
		return nil, false
	}

	normal := core.NewVec3(0, 0, 1)
	return core.NewIntersection(t, p, normal, local, c.ToLocal(), c.Transform(), c.Self()), true
}

// NextIntersection always reports no further hit
func (c *Circle) NextIntersection() (*core.Intersection, bool) {
	return nil, false
}

// Contains reports membership on the disk surface in local coordinates
func (c *Circle) Contains(p core.Vec3) bool {
	local := c.ToLocal().Point(p)
	if math.Abs(local.Z) > containEpsilon {
		return false
	}
	return local.X*local.X+local.Y*local.Y <= c.radius*c.radius
}

// BoundingBox returns the padded world-space bounding box
func (c *Circle) BoundingBox() core.AABB {
	local := core.NewAABB(
		core.NewVec3(-c.radius, -c.radius, 0),
		core.NewVec3(c.radius, c.radius, 0),
	)
	return local.Transformed(c.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (c *Circle) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(c.BoundingBox())
}
