package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Triangle is a flat triangle of zero height defined by three vertices in
// local coordinates. The outward normal follows the winding of the
// vertices (right-hand rule).
type Triangle struct {
	core.Node
	v0, v1, v2 core.Vec3

	// Cached derived values
	normal  core.Vec3 // unit normal
	edge1   core.Vec3 // v1 - v0
	edge2   core.Vec3 // v2 - v0
	area2   float64   // twice the signed area magnitude
	degener bool
}

// NewTriangle creates a triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, name string, material core.Material) (*Triangle, error) {
	t := &Triangle{Node: core.NewNode(name, material), v0: v0, v1: v1, v2: v2}
	t.computeDerived()
	if t.degener {
		return nil, core.NewValidationError("area", 0, "vertices are collinear")
	}
	t.Bind(t)
	return t, nil
}

func (t *Triangle) computeDerived() {
	t.edge1 = t.v1.Subtract(t.v0)
	t.edge2 = t.v2.Subtract(t.v0)
	cross := t.edge1.Cross(t.edge2)
	t.area2 = cross.Length()
	t.degener = t.area2 < 1e-15
	if !t.degener {
		t.normal = cross.Multiply(1.0 / t.area2)
	}
}

// Vertices returns the three vertices in local coordinates
func (t *Triangle) Vertices() (core.Vec3, core.Vec3, core.Vec3) {
	return t.v0, t.v1, t.v2
}

// SetVertices replaces the vertices, invalidating stale bounding volumes
func (t *Triangle) SetVertices(v0, v1, v2 core.Vec3) error {
	old0, old1, old2 := t.v0, t.v1, t.v2
	t.v0, t.v1, t.v2 = v0, v1, v2
	t.computeDerived()
	if t.degener {
		t.v0, t.v1, t.v2 = old0, old1, old2
		t.computeDerived()
		return core.NewValidationError("area", 0, "vertices are collinear")
	}
	t.NotifyGeometryChange()
	return nil
}

// barycentric returns the (u, v) coordinates of a point already known to
// lie in the triangle's plane, computed from the edge vectors and the
// twice-signed-area
func (t *Triangle) barycentric(p core.Vec3) (u, v float64) {
	d := p.Subtract(t.v0)
	// Signed sub-areas against the full area
	u = t.edge1.Cross(d).Dot(t.normal) / t.area2 // weight of v2
	v = d.Cross(t.edge2).Dot(t.normal) / t.area2 // weight of v1
	return u, v
}

// Hit returns the ray's intersection with the triangle, if any
func (t *Triangle) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(t.ToLocal())

	denom := t.normal.Dot(local.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return nil, false
	}

	dist := t.normal.Dot(t.v0.Subtract(local.Origin)) / denom
	if dist < 0 || dist > local.MaxDistance {
		return nil, false
	}

	p := local.At(dist)
	u, v := t.barycentric(p)
	if u < 0 || v < 0 || u+v > 1 {
		return nil, false
	}

	return core.NewIntersection(dist, p, t.normal, local, t.ToLocal(), t.Transform(), t.Self()), true
}

// NextIntersection always reports no further hit
func (t *Triangle) NextIntersection() (*core.Intersection, bool) {
	return nil, false
}

// Contains reports membership on the triangle surface in local coordinates
func (t *Triangle) Contains(p core.Vec3) bool {
	local := t.ToLocal().Point(p)
	if math.Abs(local.Subtract(t.v0).Dot(t.normal)) > containEpsilon {
		return false
	}
	u, v := t.barycentric(local)
	return u >= 0 && v >= 0 && u+v <= 1
}

// BoundingBox returns the padded world-space bounding box
func (t *Triangle) BoundingBox() core.AABB {
	local := core.NewAABBFromPoints(t.v0, t.v1, t.v2)
	return local.Transformed(t.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (t *Triangle) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(t.BoundingBox())
}
