package primitive

import (
	"math"
	"sort"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// TorusSegment is a toric cap: the part of a torus lying above the local
// z=0 plane. The torus rotation axis runs parallel to local y through
// (0, 0, curveThickness - radiusMajor - radiusMinor), which places the
// cap's apex at (0, 0, curveThickness) and its flat base in the z=0 plane.
//
// Along local x the face curves with radius radiusMajor + radiusMinor,
// along local y with radius radiusMinor; builders orient the segment with
// a 90° axis rotation when the smaller principal curvature is horizontal.
type TorusSegment struct {
	core.Node
	radiusMajor    float64
	radiusMinor    float64
	curveThickness float64
	cache          farHit
}

// NewTorusSegment creates a toric cap.
// Requires positive radii and 0 <= curveThickness <= radiusMinor: a cap
// higher than the tube radius would expose the torus interior.
func NewTorusSegment(radiusMajor, radiusMinor, curveThickness float64, name string, material core.Material) (*TorusSegment, error) {
	if err := validateTorusSegment(radiusMajor, radiusMinor, curveThickness); err != nil {
		return nil, err
	}
	t := &TorusSegment{
		Node:           core.NewNode(name, material),
		radiusMajor:    radiusMajor,
		radiusMinor:    radiusMinor,
		curveThickness: curveThickness,
	}
	t.Bind(t)
	return t, nil
}

func validateTorusSegment(radiusMajor, radiusMinor, curveThickness float64) error {
	if radiusMajor <= 0 {
		return core.NewValidationError("radiusMajor", radiusMajor, "must be positive")
	}
	if radiusMinor <= 0 {
		return core.NewValidationError("radiusMinor", radiusMinor, "must be positive")
	}
	if curveThickness < 0 {
		return core.NewValidationError("curveThickness", curveThickness, "must not be negative")
	}
	if curveThickness > radiusMinor {
		return core.NewValidationError("curveThickness", curveThickness, "must not exceed the minor radius")
	}
	return nil
}

// RadiusMajor returns the central circle radius
func (t *TorusSegment) RadiusMajor() float64 { return t.radiusMajor }

// RadiusMinor returns the tube radius
func (t *TorusSegment) RadiusMinor() float64 { return t.radiusMinor }

// CurveThickness returns the cap's axial extent
func (t *TorusSegment) CurveThickness() float64 { return t.curveThickness }

// centerZ returns the z offset of the torus center in the segment frame
func (t *TorusSegment) centerZ() float64 {
	return t.curveThickness - t.radiusMajor - t.radiusMinor
}

// SetDimensions replaces all parameters. The intersection cache is
// invalidated and the scene graph notified in the same call.
func (t *TorusSegment) SetDimensions(radiusMajor, radiusMinor, curveThickness float64) error {
	if err := validateTorusSegment(radiusMajor, radiusMinor, curveThickness); err != nil {
		return err
	}
	t.radiusMajor = radiusMajor
	t.radiusMinor = radiusMinor
	t.curveThickness = curveThickness
	t.cache.clear()
	t.NotifyGeometryChange()
	return nil
}

// SetTransform replaces the transform and invalidates the intersection cache
func (t *TorusSegment) SetTransform(m core.Transform) {
	t.cache.clear()
	t.Node.SetTransform(m)
}

// Hit returns the nearest boundary crossing of the cap solid.
//
// Quartic roots whose z falls inside [0, curveThickness] are curved-surface
// hits. A root outside the window marks the ray crossing the solid's
// boundary through the flat base instead: the crossing is reattributed to
// the z=0 plane with an axis-aligned normal. The hit type is derived per
// root, not a static property of the primitive.
func (t *TorusSegment) Hit(ray core.Ray) (*core.Intersection, bool) {
	t.cache.clear()
	local := ray.Transform(t.ToLocal())

	// Shift into the torus-centered frame for the quartic
	centered := local.Origin.Subtract(core.NewVec3(0, 0, t.centerZ()))
	roots := torusRealRoots(centered, local.Direction, t.radiusMajor, t.radiusMinor, local.MaxDistance)

	hits := make([]surfaceHit, 0, 3)
	baseAdded := false

	for _, root := range roots {
		p := local.At(root)
		if p.Z >= 0 && p.Z <= t.curveThickness {
			pc := p.Subtract(core.NewVec3(0, 0, t.centerZ()))
			hits = append(hits, surfaceHit{t: root, point: p, normal: torusNormal(pc, t.radiusMajor)})
			continue
		}
		// The boundary crossing happens through the flat base plane
		if baseAdded || math.Abs(local.Direction.Z) < parallelEpsilon {
			continue
		}
		tb := -local.Origin.Z / local.Direction.Z
		if tb < 0 || tb > local.MaxDistance {
			continue
		}
		bp := local.At(tb)
		bc := bp.Subtract(core.NewVec3(0, 0, t.centerZ()))
		if !torusContains(bc, t.radiusMajor, t.radiusMinor) {
			continue
		}
		hits = append(hits, surfaceHit{t: tb, point: bp, normal: core.NewVec3(0, 0, -1)})
		baseAdded = true
	}

	if len(hits) == 0 {
		return nil, false
	}

	order := make([]int, len(hits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return hits[order[i]].t < hits[order[j]].t })

	near := hits[order[0]]
	if len(order) > 1 {
		far := hits[order[1]]
		t.cache = farHit{
			pending: true,
			t:       far.t,
			point:   far.point,
			normal:  far.normal,
			ray:     local,
		}
	}
	return core.NewIntersection(near.t, near.point, near.normal, local, t.ToLocal(), t.Transform(), t.Self()), true
}

// NextIntersection returns the cached farther crossing exactly once
func (t *TorusSegment) NextIntersection() (*core.Intersection, bool) {
	hit, ok := t.cache.take()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(hit.t, hit.point, hit.normal, hit.ray, t.ToLocal(), t.Transform(), t.Self()), true
}

// Contains reports whether the world-space point lies inside the cap solid:
// inside the torus and above the base plane
func (t *TorusSegment) Contains(p core.Vec3) bool {
	local := t.ToLocal().Point(p)
	if local.Z < 0 {
		return false
	}
	pc := local.Subtract(core.NewVec3(0, 0, t.centerZ()))
	return torusContains(pc, t.radiusMajor, t.radiusMinor)
}

// BoundingBox returns the padded world-space bounding box
func (t *TorusSegment) BoundingBox() core.AABB {
	h := t.curveThickness
	outer := t.radiusMajor + t.radiusMinor
	halfX := math.Sqrt(h * (2.0*outer - h))
	halfY := math.Sqrt(h * (2.0*t.radiusMinor - h))
	local := core.NewAABB(
		core.NewVec3(-halfX, -halfY, 0),
		core.NewVec3(halfX, halfY, h),
	)
	return local.Transformed(t.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (t *TorusSegment) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(t.BoundingBox())
}
