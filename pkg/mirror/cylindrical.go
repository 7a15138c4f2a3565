package mirror

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// cylinderFace returns the full circular cylinder of a face curved in the
// horizontal plane, axis parallel to local y
func cylinderFace(kind optics.FaceKind, curvatureRadius, length float64) (core.Primitive, error) {
	c, err := primitive.NewCylinder(curvatureRadius, length, "", nil)
	if err != nil {
		return nil, err
	}
	centerZ := -curvatureRadius
	if kind == optics.Concave {
		centerZ = curvatureRadius
	}
	c.SetTransform(core.Translate(0, length*0.5, centerZ).Mul(core.RotateX(90)))
	return c, nil
}

// cylindricalMirror shares the assembly of the round and rectangular
// cylindrical constructors. halfWidth and halfHeight are the frame half
// extents along x and y.
func cylindricalMirror(curvatureRadius, thickness float64, kind optics.FaceKind, halfWidth, halfHeight float64, prism prismBuilder, opts Options) (core.Primitive, float64, float64, error) {
	if kind != optics.Convex && kind != optics.Concave {
		return nil, 0, 0, core.NewValidationError("kind", float64(kind), "face must be convex or concave")
	}

	// Only the extent across the curvature matters for coverage
	outerX := math.Abs(opts.HorizontalDecenter) + halfWidth
	if curvatureRadius < outerX {
		return nil, 0, 0, core.NewValidationError("curvatureRadius", curvatureRadius, "does not cover the frame across the curvature")
	}
	sag, err := optics.CapSag(curvatureRadius, outerX)
	if err != nil {
		return nil, 0, 0, err
	}

	length := 4 * (math.Abs(opts.VerticalDecenter) + halfHeight)
	face, err := cylinderFace(kind, curvatureRadius, length)
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

// NewRoundCylindrical builds a cylindrical mirror with a round frame,
// curved in the horizontal plane only
func NewRoundCylindrical(diameter, curvatureRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if diameter <= 0 {
		return nil, core.NewValidationError("diameter", diameter, "must be positive")
	}
	r := diameter * 0.5
	solid, sag, topZ, err := cylindricalMirror(curvatureRadius, thickness, kind, r, r, roundPrism(diameter, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, roundBounds(diameter, thickness, topZ, opts), name, material), nil
}

// NewRectangularCylindrical builds a cylindrical mirror with a rectangular
// frame
func NewRectangularCylindrical(width, height, curvatureRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if width <= 0 {
		return nil, core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	solid, sag, topZ, err := cylindricalMirror(curvatureRadius, thickness, kind, width*0.5, height*0.5, rectPrism(width, height, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, rectBounds(width, height, thickness, topZ, opts), name, material), nil
}
