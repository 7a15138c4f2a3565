package primitive

import (
	"math"
	"sort"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/polynomial"
)

// Torus is a solid torus centered on the local origin with its rotation
// axis along y. radiusMajor is the radius of the tube's central circle in
// the x-z plane, radiusMinor the tube radius.
type Torus struct {
	core.Node
	radiusMajor float64
	radiusMinor float64

	// A ray can pierce the tube up to four times; the queue holds the
	// crossings beyond the first for NextIntersection
	pending    []float64
	pendingRay core.Ray
}

// NewTorus creates a torus with the given major and minor radii
func NewTorus(radiusMajor, radiusMinor float64, name string, material core.Material) (*Torus, error) {
	if radiusMajor <= 0 {
		return nil, core.NewValidationError("radiusMajor", radiusMajor, "must be positive")
	}
	if radiusMinor <= 0 {
		return nil, core.NewValidationError("radiusMinor", radiusMinor, "must be positive")
	}
	t := &Torus{Node: core.NewNode(name, material), radiusMajor: radiusMajor, radiusMinor: radiusMinor}
	t.Bind(t)
	return t, nil
}

// RadiusMajor returns the central circle radius
func (t *Torus) RadiusMajor() float64 { return t.radiusMajor }

// RadiusMinor returns the tube radius
func (t *Torus) RadiusMinor() float64 { return t.radiusMinor }

// SetRadii replaces both radii. The intersection cache is invalidated and
// the scene graph notified in the same call.
func (t *Torus) SetRadii(radiusMajor, radiusMinor float64) error {
	if radiusMajor <= 0 {
		return core.NewValidationError("radiusMajor", radiusMajor, "must be positive")
	}
	if radiusMinor <= 0 {
		return core.NewValidationError("radiusMinor", radiusMinor, "must be positive")
	}
	t.radiusMajor = radiusMajor
	t.radiusMinor = radiusMinor
	t.pending = nil
	t.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (t *Torus) SetTransform(m core.Transform) {
	t.pending = nil
	t.Node.SetTransform(m)
}

// torusQuartic returns the coefficients of the intersection quartic for a
// ray against a torus centered on the origin with its axis along y
func torusQuartic(origin, direction core.Vec3, radiusMajor, radiusMinor float64) (a, b, c, d, e float64) {
	o2x, o2y, o2z := origin.X*origin.X, origin.Y*origin.Y, origin.Z*origin.Z
	d2x, d2y, d2z := direction.X*direction.X, direction.Y*direction.Y, direction.Z*direction.Z

	r2maj := radiusMajor * radiusMajor
	r2min := radiusMinor * radiusMinor
	xi := r2maj - r2min
	ix := r2maj + r2min

	alpha := d2x + d2y + d2z
	beta := origin.X*direction.X + origin.Y*direction.Y + origin.Z*direction.Z
	gamma := o2x + o2y + o2z
	delta := gamma + xi
	sigma := gamma - ix

	a = alpha * alpha
	b = 4.0 * alpha * beta
	c = 2.0*alpha*delta - 4.0*r2maj*(d2x+d2z) + 4.0*beta*beta
	d = 8.0*r2maj*origin.Y*direction.Y + 4.0*beta*sigma
	e = gamma*gamma + xi*xi - 2.0*((o2x+o2z)*ix-o2y*xi)
	return a, b, c, d, e
}

// torusRealRoots solves the quartic and returns the surviving forward
// distances, sorted ascending
func torusRealRoots(origin, direction core.Vec3, radiusMajor, radiusMinor, maxDistance float64) []float64 {
	a, b, c, d, e := torusQuartic(origin, direction, radiusMajor, radiusMinor)
	_, roots := polynomial.SolveQuartic(a, b, c, d, e)

	result := make([]float64, 0, 4)
	for _, z := range roots {
		re := real(z)
		if math.IsNaN(re) {
			continue
		}
		if math.Abs(imag(z)) > polynomial.ImagTolerance*math.Abs(re) {
			continue
		}
		if re < 0 || re > maxDistance {
			continue
		}
		result = append(result, re)
	}
	sort.Float64s(result)
	return result
}

// torusNormal returns the outward normal at a surface point of a torus
// centered on the origin with its axis along y, from the implicit gradient
func torusNormal(p core.Vec3, radiusMajor float64) core.Vec3 {
	rho := math.Sqrt(p.X*p.X + p.Z*p.Z)
	if rho < parallelEpsilon {
		// Degenerate on-axis point; the gradient vanishes only off-surface
		return core.NewVec3(0, 1, 0)
	}
	k := 1.0 - radiusMajor/rho
	return core.NewVec3(p.X*k, p.Y, p.Z*k).Normalize()
}

// torusContains reports solid membership for a torus centered on the
// origin with its axis along y
func torusContains(p core.Vec3, radiusMajor, radiusMinor float64) bool {
	rho := math.Sqrt(p.X*p.X + p.Z*p.Z)
	dr := rho - radiusMajor
	return dr*dr+p.Y*p.Y <= radiusMinor*radiusMinor
}

// Hit returns the nearest intersection along the ray, queuing the
// remaining crossings for NextIntersection
func (t *Torus) Hit(ray core.Ray) (*core.Intersection, bool) {
	t.pending = nil
	local := ray.Transform(t.ToLocal())

	roots := torusRealRoots(local.Origin, local.Direction, t.radiusMajor, t.radiusMinor, local.MaxDistance)
	if len(roots) == 0 {
		return nil, false
	}

	t.pending = roots[1:]
	t.pendingRay = local

	p := local.At(roots[0])
	return core.NewIntersection(roots[0], p, torusNormal(p, t.radiusMajor), local, t.ToLocal(), t.Transform(), t.Self()), true
}

// NextIntersection pops the next queued crossing
func (t *Torus) NextIntersection() (*core.Intersection, bool) {
	if len(t.pending) == 0 {
		return nil, false
	}
	tt := t.pending[0]
	t.pending = t.pending[1:]
	p := t.pendingRay.At(tt)
	return core.NewIntersection(tt, p, torusNormal(p, t.radiusMajor), t.pendingRay, t.ToLocal(), t.Transform(), t.Self()), true
}

// Contains reports whether the world-space point lies inside the torus
func (t *Torus) Contains(p core.Vec3) bool {
	return torusContains(t.ToLocal().Point(p), t.radiusMajor, t.radiusMinor)
}

// BoundingBox returns the padded world-space bounding box
func (t *Torus) BoundingBox() core.AABB {
	outer := t.radiusMajor + t.radiusMinor
	local := core.NewAABB(
		core.NewVec3(-outer, -t.radiusMinor, -outer),
		core.NewVec3(outer, t.radiusMinor, outer),
	)
	return local.Transformed(t.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (t *Torus) BoundingSphere() core.BoundingSphere {
	return core.BoundingSphere{
		Center: t.Transform().Point(core.NewVec3(0, 0, 0)),
		Radius: (t.radiusMajor + t.radiusMinor) * core.SpherePadding,
	}
}
