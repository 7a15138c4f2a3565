package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Rectangle is a flat axis-aligned rectangle of zero height in the local
// z=0 plane, centered on the origin with its normal along +z.
type Rectangle struct {
	core.Node
	width  float64 // extent along local x
	height float64 // extent along local y
}

// NewRectangle creates a rectangle with the given width and height
func NewRectangle(width, height float64, name string, material core.Material) (*Rectangle, error) {
	if width <= 0 {
		return nil, core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	r := &Rectangle{Node: core.NewNode(name, material), width: width, height: height}
	r.Bind(r)
	return r, nil
}

// Width returns the extent along local x
func (r *Rectangle) Width() float64 { return r.width }

// Height returns the extent along local y
func (r *Rectangle) Height() float64 { return r.height }

// SetSize replaces both extents, invalidating stale bounding volumes
func (r *Rectangle) SetSize(width, height float64) error {
	if width <= 0 {
		return core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return core.NewValidationError("height", height, "must be positive")
	}
	r.width = width
	r.height = height
	r.NotifyGeometryChange()
	return nil
}

// Hit returns the ray's intersection with the rectangle, if any
func (r *Rectangle) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(r.ToLocal())

	if math.Abs(local.Direction.Z) < parallelEpsilon {
		return nil, false
	}

	t := -local.Origin.Z / local.Direction.Z
	if t < 0 || t > local.MaxDistance {
		return nil, false
	}

	p := local.At(t)
	if math.Abs(p.X) > r.width*0.5 || math.Abs(p.Y) > r.height*0.5 {
		return nil, false
	}

	normal := core.NewVec3(0, 0, 1)
	return core.NewIntersection(t, p, normal, local, r.ToLocal(), r.Transform(), r.Self()), true
}

// NextIntersection always reports no further hit
func (r *Rectangle) NextIntersection() (*core.Intersection, bool) {
	return nil, false
}

// Contains reports membership on the rectangle surface in local coordinates
func (r *Rectangle) Contains(p core.Vec3) bool {
	local := r.ToLocal().Point(p)
	if math.Abs(local.Z) > containEpsilon {
		return false
	}
	return math.Abs(local.X) <= r.width*0.5 && math.Abs(local.Y) <= r.height*0.5
}

// BoundingBox returns the padded world-space bounding box
func (r *Rectangle) BoundingBox() core.AABB {
	local := core.NewAABB(
		core.NewVec3(-r.width*0.5, -r.height*0.5, 0),
		core.NewVec3(r.width*0.5, r.height*0.5, 0),
	)
	return local.Transformed(r.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (r *Rectangle) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(r.BoundingBox())
}
