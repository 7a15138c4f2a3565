package primitive

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// CylinderSegment is a cylindrical cap: the part of a cylinder of the
// given curvature radius lying between local z=0 and z=curveThickness.
// The cylinder's axis runs parallel to local y through (0, 0, R), so the
// cap's vertex line sits on the y axis and the cap curves only in x.
// The segment extends length/2 to both sides along y.
type CylinderSegment struct {
	core.Node
	curvatureRadius float64
	curveThickness  float64
	length          float64
	cache           farHit
}

// NewCylinderSegment creates a cylindrical cap.
// Requires 0 <= curveThickness <= curvatureRadius and a positive length.
func NewCylinderSegment(curvatureRadius, curveThickness, length float64, name string, material core.Material) (*CylinderSegment, error) {
	if err := validateSegment(curvatureRadius, curveThickness); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, core.NewValidationError("length", length, "must be positive")
	}
	c := &CylinderSegment{
		Node:            core.NewNode(name, material),
		curvatureRadius: curvatureRadius,
		curveThickness:  curveThickness,
		length:          length,
	}
	c.Bind(c)
	return c, nil
}

// CurvatureRadius returns the cylinder's radius
func (c *CylinderSegment) CurvatureRadius() float64 { return c.curvatureRadius }

// CurveThickness returns the cap's axial extent
func (c *CylinderSegment) CurveThickness() float64 { return c.curveThickness }

// Length returns the segment's extent along the cylinder axis
func (c *CylinderSegment) Length() float64 { return c.length }

// ApertureHalfWidth returns the half-width of the cap's rim at z=curveThickness,
// measured perpendicular to the cylinder axis
func (c *CylinderSegment) ApertureHalfWidth() float64 {
	return math.Sqrt(c.curveThickness * (2.0*c.curvatureRadius - c.curveThickness))
}

// SetDimensions replaces all parameters. The intersection cache is
// invalidated and the scene graph notified in the same call.
func (c *CylinderSegment) SetDimensions(curvatureRadius, curveThickness, length float64) error {
	if err := validateSegment(curvatureRadius, curveThickness); err != nil {
		return err
	}
	if length <= 0 {
		return core.NewValidationError("length", length, "must be positive")
	}
	c.curvatureRadius = curvatureRadius
	c.curveThickness = curveThickness
	c.length = length
	c.cache.clear()
	c.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (c *CylinderSegment) SetTransform(m core.Transform) {
	c.cache.clear()
	c.Node.SetTransform(m)
}

// Hit returns the nearest intersection of the ray with the cap surface.
// Roots outside the height window or the axial extent are rejected; when
// both roots land on the cap, the farther one is cached.
func (c *CylinderSegment) Hit(ray core.Ray) (*core.Intersection, bool) {
	c.cache.clear()
	local := ray.Transform(c.ToLocal())

	// Cylinder of radius R around the axis {x=0, z=R}
	oz := local.Origin.Z - c.curvatureRadius
	a := local.Direction.X*local.Direction.X + local.Direction.Z*local.Direction.Z
	if a < parallelEpsilon {
		return nil, false
	}
	halfB := local.Origin.X*local.Direction.X + oz*local.Direction.Z
	cc := local.Origin.X*local.Origin.X + oz*oz - c.curvatureRadius*c.curvatureRadius

	discriminant := halfB*halfB - a*cc
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
		if p.Z < 0 || p.Z > c.curveThickness || math.Abs(p.Y) > c.length*0.5 {
			continue
		}
		hits = append(hits, surfaceHit{t: t, point: p, normal: c.normalAt(p)})
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

func (c *CylinderSegment) normalAt(p core.Vec3) core.Vec3 {
	return core.NewVec3(p.X/c.curvatureRadius, 0, (p.Z-c.curvatureRadius)/c.curvatureRadius)
}

// NextIntersection returns the cached farther root exactly once
func (c *CylinderSegment) NextIntersection() (*core.Intersection, bool) {
	hit, ok := c.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, c.ToLocal(), c.Transform(), c.Self()), true
}

// Contains reports whether the world-space point lies inside the cap solid
func (c *CylinderSegment) Contains(p core.Vec3) bool {
	local := c.ToLocal().Point(p)
	if local.Z < 0 || local.Z > c.curveThickness || math.Abs(local.Y) > c.length*0.5 {
		return false
	}
	oz := local.Z - c.curvatureRadius
	return local.X*local.X+oz*oz <= c.curvatureRadius*c.curvatureRadius
}

// BoundingBox returns the padded world-space bounding box
func (c *CylinderSegment) BoundingBox() core.AABB {
	w := c.ApertureHalfWidth()
	local := core.NewAABB(
		core.NewVec3(-w, -c.length*0.5, 0),
		core.NewVec3(w, c.length*0.5, c.curveThickness),
	)
	return local.Transformed(c.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (c *CylinderSegment) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(c.BoundingBox())
}
