package mirror

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// sphereFace returns the full sphere of the face quadric. A convex face
// keeps its center behind the vertex inside the substrate, a concave face
// in front of it.
func sphereFace(kind optics.FaceKind, curvatureRadius float64) (core.Primitive, error) {
	s, err := primitive.NewSphere(curvatureRadius, "", nil)
	if err != nil {
		return nil, err
	}
	centerZ := -curvatureRadius
	if kind == optics.Concave {
		centerZ = curvatureRadius
	}
	s.SetTransform(core.Translate(0, 0, centerZ))
	return s, nil
}

// sphericalMirror shares the assembly of the round and rectangular
// spherical constructors
func sphericalMirror(curvatureRadius, thickness float64, kind optics.FaceKind, extents optics.FrameExtents, prism prismBuilder, opts Options) (core.Primitive, float64, float64, error) {
	if kind != optics.Convex && kind != optics.Concave {
		return nil, 0, 0, core.NewValidationError("kind", float64(kind), "face must be convex or concave")
	}
	if err := optics.CheckMirrorCurvature(curvatureRadius, extents); err != nil {
		return nil, 0, 0, err
	}
	sag, err := optics.CapSag(curvatureRadius, extents.Outer)
	if err != nil {
		return nil, 0, 0, err
	}
	face, err := sphereFace(kind, curvatureRadius)
	if err != nil {
		return nil, 0, 0, err
	}
	solid, err := assemble(kind, thickness, sag, prism, face, opts)
	if err != nil {
		return nil, 0, 0, err
	}
	topZ := 0.0
	if kind == optics.Concave {
		topZ = sag
	}
	return solid, sag, topZ, nil
}

// NewRoundSpherical builds a spherical mirror with a round frame. The
// frame may be decentered from the curvature axis; the curvature radius
// must cover the furthest frame point.
func NewRoundSpherical(diameter, curvatureRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if diameter <= 0 {
		return nil, core.NewValidationError("diameter", diameter, "must be positive")
	}
	extents := optics.RoundFrameExtents(diameter, opts.HorizontalDecenter, opts.VerticalDecenter)
	solid, sag, topZ, err := sphericalMirror(curvatureRadius, thickness, kind, extents, roundPrism(diameter, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, roundBounds(diameter, thickness, topZ, opts), name, material), nil
}

// NewRectangularSpherical builds a spherical mirror with a rectangular
// frame
func NewRectangularSpherical(width, height, curvatureRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if width <= 0 {
		return nil, core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	extents := optics.RectFrameExtents(width, height, opts.HorizontalDecenter, opts.VerticalDecenter)
	solid, sag, topZ, err := sphericalMirror(curvatureRadius, thickness, kind, extents, rectPrism(width, height, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, rectBounds(width, height, thickness, topZ, opts), name, material), nil
}
