// Package lens builds solid lens elements from curvatures, diameter and
// center thickness. Nine variants (bi-convex, bi-concave, meniscus and the
// plano pairs, in spherical, cylindrical and toric flavors) all share one
// capped-barrel assembly: a geometry phase computing sags and edge
// thickness, then a short/long decision that picks between a pure boolean
// combination of the full caps with the barrel and an explicit
// barrel-plus-capped-slab union.
package lens

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// paddingFraction scales the overall axial thickness into the padding
// added at every CSG boundary, pushing surfaces a hair past exact
// coincidence so the boolean evaluation never sees coplanar surfaces
const paddingFraction = 1e-6

// Geometry is the derived-quantity record a builder computes before any
// CSG call
type Geometry struct {
	Diameter        float64
	CenterThickness float64
	FrontSag        float64
	BackSag         float64
	EdgeThickness   float64
	FrontToric      *optics.ToricFace // nil unless the front face is toric
	BackToric       *optics.ToricFace // nil unless the back face is toric
}

// Element is an assembled lens. It implements core.Primitive by
// delegating to its internal compound solid while exposing the exact
// analytic bounding box and the derived geometry for diagnostics.
type Element struct {
	core.Node
	solid     core.Primitive
	geom      Geometry
	short     bool
	localBox  core.AABB
	lastLocal core.Ray
	walking   bool
}

// Geometry returns the derived geometry record
func (e *Element) Geometry() Geometry { return e.geom }

// Diameter returns the lens diameter
func (e *Element) Diameter() float64 { return e.geom.Diameter }

// CenterThickness returns the axial distance between the face vertices
func (e *Element) CenterThickness() float64 { return e.geom.CenterThickness }

// FrontSag returns the front cap's axial depth
func (e *Element) FrontSag() float64 { return e.geom.FrontSag }

// BackSag returns the back cap's axial depth
func (e *Element) BackSag() float64 { return e.geom.BackSag }

// EdgeThickness returns the axial length of the straight barrel portion
func (e *Element) EdgeThickness() float64 { return e.geom.EdgeThickness }

// IsShort reports which assembly branch was taken: true when the caps
// overlap enough to combine by pure boolean intersection
func (e *Element) IsShort() bool { return e.short }

// Hit returns the nearest intersection with the lens solid
func (e *Element) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(e.ToLocal())
	e.lastLocal = local
	h, ok := e.solid.Hit(local)
	e.walking = ok
	if !ok {
		return nil, false
	}
	return core.NewIntersection(h.T, h.Point, h.Normal, local, e.ToLocal(), e.Transform(), e.Self()), true
}

// NextIntersection returns the next boundary crossing of the lens solid
func (e *Element) NextIntersection() (*core.Intersection, bool) {
	if !e.walking {
		return nil, false
	}
	h, ok := e.solid.NextIntersection()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(h.T, h.Point, h.Normal, e.lastLocal, e.ToLocal(), e.Transform(), e.Self()), true
}

// SetTransform replaces the transform and abandons any intersection walk
func (e *Element) SetTransform(m core.Transform) {
	e.walking = false
	e.Node.SetTransform(m)
}

// Contains reports whether the world-space point lies inside the lens
func (e *Element) Contains(p core.Vec3) bool {
	return e.solid.Contains(e.ToLocal().Point(p))
}

// BoundingBox returns the exact analytic bounds mapped to world space
func (e *Element) BoundingBox() core.AABB {
	return e.localBox.Transformed(e.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (e *Element) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(e.BoundingBox())
}

// capSolid describes one lens face for assembly: its classification, cap
// depth, the positioned full quadric solid, and the axial coverage the
// full solid provides for the short-branch validity check
type capSolid struct {
	kind  optics.FaceKind
	sag   float64
	reach float64 // R - sag of the governing curvature; zero for plano
	solid core.Primitive
}

// barrelSlab returns a barrel cylinder spanning [z0, z1]
func barrelSlab(radius, z0, z1 float64) (core.Primitive, error) {
	c, err := primitive.NewCylinder(radius, z1-z0, "", nil)
	if err != nil {
		return nil, err
	}
	c.SetTransform(core.Translate(0, 0, z0))
	return c, nil
}

// rimZ returns the axial position of a face's aperture edge
func rimZ(kind optics.FaceKind, sag, vertexZ, outward float64) float64 {
	// outward is +1 for the front face, -1 for the back face
	switch kind {
	case optics.Convex:
		return vertexZ - outward*sag
	case optics.Concave:
		return vertexZ + outward*sag
	}
	return vertexZ
}

// isShort decides the assembly branch. The caps overlap enough for a pure
// intersection when the center thickness is below the combined reach of
// the convex faces less the concave sags, and each convex cap's full
// solid covers the barrel through to the opposite rim.
func isShort(ct float64, front, back capSolid, frontRim, backRim float64) bool {
	overlap := 0.0
	hasConvex := false
	for _, c := range []capSolid{front, back} {
		switch c.kind {
		case optics.Convex:
			overlap += c.reach
			hasConvex = true
		case optics.Concave:
			overlap -= c.sag
		}
	}
	if !hasConvex {
		// Pure subtraction of concave caps from the barrel is always valid
		return true
	}
	if ct >= overlap {
		return false
	}
	// Coverage: a convex cap spans 2*reach past its rim at the barrel edge
	if front.kind == optics.Convex && (frontRim-2.0*front.reach) > backRim {
		return false
	}
	if back.kind == optics.Convex && (backRim+2.0*back.reach) < frontRim {
		return false
	}
	return true
}

// assemble runs the decision and assembly phase over a prepared pair of
// caps, producing the compound solid and the exact local bounds
func assemble(geom Geometry, front, back capSolid) (core.Primitive, bool, core.AABB, error) {
	r := geom.Diameter * 0.5
	ct := geom.CenterThickness
	pad := ct * paddingFraction

	frontRim := rimZ(front.kind, front.sag, ct, 1)
	backRim := rimZ(back.kind, back.sag, 0, -1)

	// Axial extent of the glass
	zLow := math.Min(0, backRim)
	zHigh := math.Max(ct, frontRim)

	// A plano face is the barrel's own end cap; padding there would shift
	// the flat face off the vertex plane. Only face ends trimmed by a cap
	// solid overshoot.
	padFront, padBack := pad, pad
	if front.kind == optics.Plano {
		padFront = 0
	}
	if back.kind == optics.Plano {
		padBack = 0
	}

	short := isShort(ct, front, back, frontRim, backRim)

	var solid core.Primitive
	if short {
		barrel, err := barrelSlab(r, zLow-padBack, zHigh+padFront)
		if err != nil {
			return nil, false, core.AABB{}, err
		}
		solid = barrel
		if front.kind == optics.Convex {
			solid = primitive.Intersect(solid, front.solid)
		}
		if back.kind == optics.Convex {
			solid = primitive.Intersect(solid, back.solid)
		}
	} else {
		barrel, err := barrelSlab(r, backRim-padBack, frontRim+padFront)
		if err != nil {
			return nil, false, core.AABB{}, err
		}
		solid = barrel
		if front.kind == optics.Convex {
			slab, err := barrelSlab(r, ct-front.sag-pad, ct+pad)
			if err != nil {
				return nil, false, core.AABB{}, err
			}
			solid = primitive.Union(solid, primitive.Intersect(front.solid, slab))
		}
		if back.kind == optics.Convex {
			slab, err := barrelSlab(r, -pad, back.sag+pad)
			if err != nil {
				return nil, false, core.AABB{}, err
			}
			solid = primitive.Union(solid, primitive.Intersect(back.solid, slab))
		}
	}

	// Concave caps carve last in both branches
	if front.kind == optics.Concave {
		solid = primitive.Subtract(solid, front.solid)
	}
	if back.kind == optics.Concave {
		solid = primitive.Subtract(solid, back.solid)
	}

	box := core.NewAABB(core.NewVec3(-r, -r, zLow), core.NewVec3(r, r, zHigh))
	return solid, short, box, nil
}

// newElement wraps an assembled solid
func newElement(geom Geometry, front, back capSolid, name string, material core.Material) (*Element, error) {
	solid, short, box, err := assemble(geom, front, back)
	if err != nil {
		return nil, err
	}
	e := &Element{
		Node:     core.NewNode(name, material),
		solid:    solid,
		geom:     geom,
		short:    short,
		localBox: box,
	}
	e.Bind(e)
	return e, nil
}

// validateLensParameters checks the shared lens preconditions
func validateLensParameters(diameter, centerThickness float64) error {
	if diameter <= 0 {
		return core.NewValidationError("diameter", diameter, "must be positive")
	}
	if centerThickness <= 0 {
		return core.NewValidationError("centerThickness", centerThickness, "must be positive")
	}
	return nil
}
