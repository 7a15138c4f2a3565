// Package mirror builds solid mirror substrates with one reflecting face.
// The face vertex sits at the local origin with the reflecting side toward
// +z and the substrate behind it. Convex faces intersect the frame prism
// with the full quadric of the face; concave faces carve the quadric out
// of the prism. Round and rectangular frames may be decentered from the
// curvature axis and may carry a central aperture cutout.
package mirror

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// paddingFraction scales the substrate thickness into the padding used at
// CSG boundaries
const paddingFraction = 1e-6

// Options carries the optional placement parameters shared by all mirror
// constructors. The zero value is a centered mirror without a cutout.
type Options struct {
	// HorizontalDecenter and VerticalDecenter displace the frame center
	// from the curvature axis
	HorizontalDecenter float64
	VerticalDecenter   float64

	// ApertureRadius is the radius of a central hole drilled along the
	// curvature axis, zero for a solid mirror
	ApertureRadius float64
}

// Mirror is an assembled mirror substrate. It implements core.Primitive by
// delegating to its internal compound solid.
type Mirror struct {
	core.Node
	solid     core.Primitive
	sag       float64
	localBox  core.AABB
	lastLocal core.Ray
	walking   bool
}

// FaceSag returns the axial depth of the curved face over the frame, zero
// for a flat mirror
func (m *Mirror) FaceSag() float64 { return m.sag }

// Hit returns the nearest intersection with the mirror solid
func (m *Mirror) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(m.ToLocal())
	m.lastLocal = local
	h, ok := m.solid.Hit(local)
	m.walking = ok
	if !ok {
		return nil, false
	}
	return core.NewIntersection(h.T, h.Point, h.Normal, local, m.ToLocal(), m.Transform(), m.Self()), true
}

// NextIntersection returns the next boundary crossing of the mirror solid
func (m *Mirror) NextIntersection() (*core.Intersection, bool) {
	if !m.walking {
		return nil, false
	}
	h, ok := m.solid.NextIntersection()
	if !ok {
		return nil, false
	}
	return core.NewIntersection(h.T, h.Point, h.Normal, m.lastLocal, m.ToLocal(), m.Transform(), m.Self()), true
}

// SetTransform replaces the transform and abandons any intersection walk
func (m *Mirror) SetTransform(t core.Transform) {
	m.walking = false
	m.Node.SetTransform(t)
}

// Contains reports whether the world-space point lies inside the substrate
func (m *Mirror) Contains(p core.Vec3) bool {
	return m.solid.Contains(m.ToLocal().Point(p))
}

// BoundingBox returns the exact analytic bounds mapped to world space
func (m *Mirror) BoundingBox() core.AABB {
	return m.localBox.Transformed(m.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (m *Mirror) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(m.BoundingBox())
}

// prismBuilder returns the frame prism spanning [z0, z1]
type prismBuilder func(z0, z1 float64) (core.Primitive, error)

// roundPrism builds cylinders of the given diameter centered at the
// decentered frame position
func roundPrism(diameter float64, opts Options) prismBuilder {
	return func(z0, z1 float64) (core.Primitive, error) {
		c, err := primitive.NewCylinder(diameter*0.5, z1-z0, "", nil)
		if err != nil {
			return nil, err
		}
		c.SetTransform(core.Translate(opts.HorizontalDecenter, opts.VerticalDecenter, z0))
		return c, nil
	}
}

// rectPrism builds boxes of the given width and height centered at the
// decentered frame position
func rectPrism(width, height float64, opts Options) prismBuilder {
	return func(z0, z1 float64) (core.Primitive, error) {
		return primitive.NewBox(
			core.NewVec3(opts.HorizontalDecenter-width*0.5, opts.VerticalDecenter-height*0.5, z0),
			core.NewVec3(opts.HorizontalDecenter+width*0.5, opts.VerticalDecenter+height*0.5, z1),
			"", nil,
		)
	}
}

// assemble combines the frame prism with the face quadric and applies the
// aperture cutout. faceSag is the depth of the curved face over the whole
// frame; face is the positioned full quadric, nil for a flat mirror.
func assemble(kind optics.FaceKind, thickness, faceSag float64, prism prismBuilder, face core.Primitive, opts Options) (core.Primitive, error) {
	if thickness <= 0 {
		return nil, core.NewValidationError("thickness", thickness, "must be positive")
	}
	pad := thickness * paddingFraction

	var solid core.Primitive
	var err error
	switch kind {
	case optics.Convex:
		// The face surface must stay above the substrate back
		if thickness <= faceSag {
			return nil, core.NewValidationError("thickness", thickness, "does not reach behind the convex face edge")
		}
		solid, err = prism(-thickness, pad)
		if err != nil {
			return nil, err
		}
		solid = primitive.Intersect(solid, face)
	case optics.Concave:
		solid, err = prism(-thickness, faceSag+pad)
		if err != nil {
			return nil, err
		}
		solid = primitive.Subtract(solid, face)
	default:
		solid, err = prism(-thickness, 0)
		if err != nil {
			return nil, err
		}
	}

	if opts.ApertureRadius > 0 {
		hole, err := primitive.NewCylinder(opts.ApertureRadius, thickness+faceSag+4*pad, "", nil)
		if err != nil {
			return nil, err
		}
		hole.SetTransform(core.Translate(0, 0, -thickness-2*pad))
		solid = primitive.Subtract(solid, hole)
	}
	return solid, nil
}

// newMirror wraps an assembled solid
func newMirror(solid core.Primitive, faceSag float64, box core.AABB, name string, material core.Material) *Mirror {
	m := &Mirror{
		Node:     core.NewNode(name, material),
		solid:    solid,
		sag:      faceSag,
		localBox: box,
	}
	m.Bind(m)
	return m
}

// roundBounds returns the local bounds of a round-frame mirror
func roundBounds(diameter, thickness, topZ float64, opts Options) core.AABB {
	r := diameter * 0.5
	return core.NewAABB(
		core.NewVec3(opts.HorizontalDecenter-r, opts.VerticalDecenter-r, -thickness),
		core.NewVec3(opts.HorizontalDecenter+r, opts.VerticalDecenter+r, topZ),
	)
}

// rectBounds returns the local bounds of a rectangular-frame mirror
func rectBounds(width, height, thickness, topZ float64, opts Options) core.AABB {
	return core.NewAABB(
		core.NewVec3(opts.HorizontalDecenter-width*0.5, opts.VerticalDecenter-height*0.5, -thickness),
		core.NewVec3(opts.HorizontalDecenter+width*0.5, opts.VerticalDecenter+height*0.5, topZ),
	)
}

// NewRoundFlat builds a flat round mirror, a plain disk substrate
func NewRoundFlat(diameter, thickness float64, opts Options, name string, material core.Material) (*Mirror, error) {
	if diameter <= 0 {
		return nil, core.NewValidationError("diameter", diameter, "must be positive")
	}
	solid, err := assemble(optics.Plano, thickness, 0, roundPrism(diameter, opts), nil, opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, 0, roundBounds(diameter, thickness, 0, opts), name, material), nil
}

// NewRectangularFlat builds a flat rectangular mirror
func NewRectangularFlat(width, height, thickness float64, opts Options, name string, material core.Material) (*Mirror, error) {
	if width <= 0 {
		return nil, core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	solid, err := assemble(optics.Plano, thickness, 0, rectPrism(width, height, opts), nil, opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, 0, rectBounds(width, height, thickness, 0, opts), name, material), nil
}
