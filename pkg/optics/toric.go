package optics

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// EqualRadiusTolerance is the absolute tolerance below which two principal
// curvature radii are considered equal, making the face spherical rather
// than toric
const EqualRadiusTolerance = 1e-8

// ToricFace is the torus decomposition of a face with two distinct
// principal curvature radii. The smaller principal radius becomes the
// torus minor radius; the major radius is the difference of the two.
// Rotated records whether the horizontal curvature supplied the minor
// radius, requiring a 90° rotation of the torus axis.
type ToricFace struct {
	RadiusMinor float64
	RadiusMajor float64
	Rotated     bool
}

// DecomposeToricFace splits a pair of vertical/horizontal curvature radii
// into torus radii. Equal radii are rejected: callers must use the
// spherical primitive in that case.
func DecomposeToricFace(verticalRadius, horizontalRadius float64) (ToricFace, error) {
	if verticalRadius <= 0 {
		return ToricFace{}, core.NewValidationError("verticalRadius", verticalRadius, "must be positive")
	}
	if horizontalRadius <= 0 {
		return ToricFace{}, core.NewValidationError("horizontalRadius", horizontalRadius, "must be positive")
	}
	if math.Abs(verticalRadius-horizontalRadius) < EqualRadiusTolerance {
		return ToricFace{}, core.NewValidationError("horizontalRadius", horizontalRadius, "equal curvature radii define a spherical face")
	}

	face := ToricFace{
		RadiusMinor: math.Min(verticalRadius, horizontalRadius),
		RadiusMajor: math.Abs(verticalRadius - horizontalRadius),
		Rotated:     horizontalRadius < verticalRadius,
	}
	return face, nil
}

// RotationDegrees returns the torus axis rotation the face requires
func (f ToricFace) RotationDegrees() float64 {
	if f.Rotated {
		return 90.0
	}
	return 0.0
}

// Sag returns the face's axial cap depth, computed with the minor radius
func (f ToricFace) Sag(halfAperture float64) (float64, error) {
	return CapSag(f.RadiusMinor, halfAperture)
}
