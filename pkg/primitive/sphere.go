package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Sphere is a solid sphere of the given radius centered on the local origin.
type Sphere struct {
	core.Node
	radius float64
	cache  farHit
}

// NewSphere creates a sphere with the given radius
func NewSphere(radius float64, name string, material core.Material) (*Sphere, error) {
	if radius <= 0 {
		return nil, core.NewValidationError("radius", radius, "must be positive")
	}
	s := &Sphere{Node: core.NewNode(name, material), radius: radius}
	s.Bind(s)
	return s, nil
}

// Radius returns the sphere's radius
func (s *Sphere) Radius() float64 { return s.radius }

// SetRadius replaces the radius. The intersection cache is invalidated and
// the scene graph notified in the same call.
func (s *Sphere) SetRadius(radius float64) error {
	if radius <= 0 {
		return core.NewValidationError("radius", radius, "must be positive")
	}
	s.radius = radius
	s.cache.clear()
	s.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (s *Sphere) SetTransform(m core.Transform) {
	s.cache.clear()
	s.Node.SetTransform(m)
}

// Hit returns the nearest intersection along the ray, caching the farther
// root for NextIntersection when both roots are valid
func (s *Sphere) Hit(ray core.Ray) (*core.Intersection, bool) {
	s.cache.clear()
	local := ray.Transform(s.ToLocal())

	// Quadratic equation coefficients: at² + bt + c = 0
	a := local.Direction.LengthSquared()
	halfB := local.Origin.Dot(local.Direction)
	c := local.Origin.LengthSquared() - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-halfB - sqrtD) / a
	t1 := (-halfB + sqrtD) / a

	valid0 := t0 >= 0 && t0 <= local.MaxDistance
	valid1 := t1 >= 0 && t1 <= local.MaxDistance

	switch {
	case valid0 && valid1:
		s.cacheRoot(t1, local)
		return s.intersection(t0, local), true
	case valid0:
		return s.intersection(t0, local), true
	case valid1:
		return s.intersection(t1, local), true
	}
	return nil, false
}

func (s *Sphere) normalAt(p core.Vec3) core.Vec3 {
	return p.Multiply(1.0 / s.radius)
}

func (s *Sphere) intersection(t float64, local core.Ray) *core.Intersection {
	p := local.At(t)
	return core.NewIntersection(t, p, s.normalAt(p), local, s.ToLocal(), s.Transform(), s.Self())
}

func (s *Sphere) cacheRoot(t float64, local core.Ray) {
	p := local.At(t)
	s.cache = farHit{pending: true, t: t, point: p, normal: s.normalAt(p), ray: local}
}

// NextIntersection returns the cached farther root exactly once
func (s *Sphere) NextIntersection() (*core.Intersection, bool) {
	hit, ok := s.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, s.ToLocal(), s.Transform(), s.Self()), true
}

// Contains reports whether the world-space point lies inside the sphere
func (s *Sphere) Contains(p core.Vec3) bool {
	return s.ToLocal().Point(p).LengthSquared() <= s.radius*s.radius
}

// BoundingBox returns the padded world-space bounding box
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	local := core.NewAABB(r.Negate(), r)
	return local.Transformed(s.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (s *Sphere) BoundingSphere() core.BoundingSphere {
	return core.BoundingSphere{
		Center: s.Transform().Point(core.NewVec3(0, 0, 0)),
		Radius: s.radius * core.SpherePadding,
	}
}
