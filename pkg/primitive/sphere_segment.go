package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// SphereSegment is a spherical cap: the part of a sphere of the given
// curvature radius lying between local z=0 and z=curveThickness. The cap's
// vertex sits at the origin and the sphere's center at (0, 0, R), so the
// cap opens toward +z.
type SphereSegment struct {
	core.Node
	curvatureRadius float64
	curveThickness  float64
	cache           farHit
}

// NewSphereSegment creates a spherical cap.
// Requires 0 <= curveThickness <= curvatureRadius.
func NewSphereSegment(curvatureRadius, curveThickness float64, name string, material core.Material) (*SphereSegment, error) {
	if err := validateSegment(curvatureRadius, curveThickness); err != nil {
		return nil, err
	}
	s := &SphereSegment{
		Node:            core.NewNode(name, material),
		curvatureRadius: curvatureRadius,
		curveThickness:  curveThickness,
	}
	s.Bind(s)
	return s, nil
}

func validateSegment(curvatureRadius, curveThickness float64) error {
	if curvatureRadius <= 0 {
		return core.NewValidationError("curvatureRadius", curvatureRadius, "must be positive")
	}
	if curveThickness < 0 {
		return core.NewValidationError("curveThickness", curveThickness, "must not be negative")
	}
	if curveThickness > curvatureRadius {
		return core.NewValidationError("curveThickness", curveThickness, "must not exceed the curvature radius")
	}
	return nil
}

// CurvatureRadius returns the sphere's radius
func (s *SphereSegment) CurvatureRadius() float64 { return s.curvatureRadius }

// CurveThickness returns the cap's axial extent
func (s *SphereSegment) CurveThickness() float64 { return s.curveThickness }

// ApertureRadius returns the radius of the cap's rim circle at z=curveThickness
func (s *SphereSegment) ApertureRadius() float64 {
	return math.Sqrt(s.curveThickness * (2.0*s.curvatureRadius - s.curveThickness))
}

// SetDimensions replaces both parameters. The intersection cache is
// invalidated and the scene graph notified in the same call.
func (s *SphereSegment) SetDimensions(curvatureRadius, curveThickness float64) error {
	if err := validateSegment(curvatureRadius, curveThickness); err != nil {
		return err
	}
	s.curvatureRadius = curvatureRadius
	s.curveThickness = curveThickness
	s.cache.clear()
	s.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (s *SphereSegment) SetTransform(m core.Transform) {
	s.cache.clear()
	s.Node.SetTransform(m)
}

// Hit returns the nearest intersection of the ray with the cap surface.
// Roots falling outside the cap's height window are rejected; when both
// roots land on the cap, the farther one is cached for NextIntersection.
func (s *SphereSegment) Hit(ray core.Ray) (*core.Intersection, bool) {
	s.cache.clear()
	local := ray.Transform(s.ToLocal())

	// Sphere centered at (0, 0, R)
	oc := local.Origin.Subtract(core.NewVec3(0, 0, s.curvatureRadius))
	a := local.Direction.LengthSquared()
	halfB := oc.Dot(local.Direction)
	c := oc.LengthSquared() - s.curvatureRadius*s.curvatureRadius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	hits := make([]surfaceHit, 0, 2)
	for _, t := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if t < 0 || t > local.MaxDistance {
			continue
		}
		p := local.At(t)
		if p.Z < 0 || p.Z > s.curveThickness {
			continue
		}
		hits = append(hits, surfaceHit{t: t, point: p, normal: s.normalAt(p)})
	}

	near, far, n := closestTwo(hits)
	if n == 0 {
		return nil, false
	}
	if n > 1 {
		s.cache = farHit{pending: true, t: far.t, point: far.point, normal: far.normal, ray: local}
	}
	return core.NewIntersection(near.t, near.point, near.normal, local, s.ToLocal(), s.Transform(), s.Self()), true
}

func (s *SphereSegment) normalAt(p core.Vec3) core.Vec3 {
	return p.Subtract(core.NewVec3(0, 0, s.curvatureRadius)).Multiply(1.0 / s.curvatureRadius)
}

// NextIntersection returns the cached farther root exactly once
func (s *SphereSegment) NextIntersection() (*core.Intersection, bool) {
	hit, ok := s.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, s.ToLocal(), s.Transform(), s.Self()), true
}

// Contains reports whether the world-space point lies inside the cap solid:
// within the sphere and inside the height window
func (s *SphereSegment) Contains(p core.Vec3) bool {
	local := s.ToLocal().Point(p)
	if local.Z < 0 || local.Z > s.curveThickness {
		return false
	}
	oc := local.Subtract(core.NewVec3(0, 0, s.curvatureRadius))
	return oc.LengthSquared() <= s.curvatureRadius*s.curvatureRadius
}

// BoundingBox returns the padded world-space bounding box
func (s *SphereSegment) BoundingBox() core.AABB {
	r := s.ApertureRadius()
	local := core.NewAABB(
		core.NewVec3(-r, -r, 0),
		core.NewVec3(r, r, s.curveThickness),
	)
	return local.Transformed(s.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (s *SphereSegment) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(s.BoundingBox())
}
