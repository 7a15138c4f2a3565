package mirror

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// torusFace returns the full torus of a toric face, rotation axis parallel
// to local y unless the decomposition is rotated
func torusFace(kind optics.FaceKind, face optics.ToricFace) (core.Primitive, error) {
	t, err := primitive.NewTorus(face.RadiusMajor, face.RadiusMinor, "", nil)
	if err != nil {
		return nil, err
	}
	apexRadius := face.RadiusMajor + face.RadiusMinor
	centerZ := -apexRadius
	if kind == optics.Concave {
		centerZ = apexRadius
	}
	t.SetTransform(core.Translate(0, 0, centerZ).Mul(core.RotateZ(face.RotationDegrees())))
	return t, nil
}

// toricFaceSag returns the deepest sag of a toric face over a frame whose
// extents along the minor and major curvature directions are given,
// checking that both curvatures cover the frame
func toricFaceSag(face optics.ToricFace, minorExtent, majorExtent float64) (float64, error) {
	if minorExtent >= face.RadiusMinor {
		return 0, core.NewValidationError("minorExtent", minorExtent, "steep curvature does not cover the frame")
	}
	ridge := face.RadiusMajor + math.Sqrt(face.RadiusMinor*face.RadiusMinor-minorExtent*minorExtent)
	if majorExtent >= ridge {
		return 0, core.NewValidationError("majorExtent", majorExtent, "shallow curvature does not cover the frame")
	}
	apexRadius := face.RadiusMajor + face.RadiusMinor
	return apexRadius - math.Sqrt(ridge*ridge-majorExtent*majorExtent), nil
}

// toricMirror shares the assembly of the round and rectangular toric
// constructors
func toricMirror(verticalRadius, horizontalRadius, thickness float64, kind optics.FaceKind, halfWidth, halfHeight float64, prism prismBuilder, opts Options) (core.Primitive, float64, float64, error) {
	if kind != optics.Convex && kind != optics.Concave {
		return nil, 0, 0, core.NewValidationError("kind", float64(kind), "face must be convex or concave")
	}
	face, err := optics.DecomposeToricFace(verticalRadius, horizontalRadius)
	if err != nil {
		return nil, 0, 0, err
	}

	extentX := math.Abs(opts.HorizontalDecenter) + halfWidth
	extentY := math.Abs(opts.VerticalDecenter) + halfHeight
	minorExtent, majorExtent := extentY, extentX
	if face.Rotated {
		minorExtent, majorExtent = extentX, extentY
	}
	sag, err := toricFaceSag(face, minorExtent, majorExtent)
	if err != nil {
		return nil, 0, 0, err
	}

	quadric, err := torusFace(kind, face)
	if err != nil {
		return nil, 0, 0, err
	}
	solid, err := assemble(kind, thickness, sag, prism, quadric, opts)
	if err != nil {
		return nil, 0, 0, err
	}
	topZ := 0.0
	if kind == optics.Concave {
		topZ = sag
	}
	return solid, sag, topZ, nil
}

// NewRoundToric builds a toric mirror with a round frame. The face is
// given by its vertical and horizontal curvature radii.
func NewRoundToric(diameter, verticalRadius, horizontalRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if diameter <= 0 {
		return nil, core.NewValidationError("diameter", diameter, "must be positive")
	}
	r := diameter * 0.5
	solid, sag, topZ, err := toricMirror(verticalRadius, horizontalRadius, thickness, kind, r, r, roundPrism(diameter, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, roundBounds(diameter, thickness, topZ, opts), name, material), nil
}

// NewRectangularToric builds a toric mirror with a rectangular frame
func NewRectangularToric(width, height, verticalRadius, horizontalRadius, thickness float64, kind optics.FaceKind, opts Options, name string, material core.Material) (*Mirror, error) {
	if width <= 0 {
		return nil, core.NewValidationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, core.NewValidationError("height", height, "must be positive")
	}
	solid, sag, topZ, err := toricMirror(verticalRadius, horizontalRadius, thickness, kind, width*0.5, height*0.5, rectPrism(width, height, opts), opts)
	if err != nil {
		return nil, err
	}
	return newMirror(solid, sag, rectBounds(width, height, thickness, topZ, opts), name, material), nil
}
