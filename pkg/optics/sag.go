// Package optics provides the pure geometry calculators shared by the lens
// and mirror builders: cap sag, toric face decomposition, edge thickness
// and mirror frame extents. All functions are side-effect free and report
// incompatible parameters as validation errors.
package optics

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// CapSag returns the axial depth of a spherical or cylindrical cap: the
// distance from the cap's vertex to the plane of its aperture edge,
// thickness = R - sqrt(R² - r²). For cylinders r is the half-width
// measured perpendicular to the cylinder axis.
//
// A curvature radius smaller than the half-aperture cannot cap the barrel
// and is rejected.
func CapSag(curvatureRadius, halfAperture float64) (float64, error) {
	if curvatureRadius <= 0 {
		return 0, core.NewValidationError("curvatureRadius", curvatureRadius, "must be positive")
	}
	if halfAperture <= 0 {
		return 0, core.NewValidationError("halfAperture", halfAperture, "must be positive")
	}
	if curvatureRadius < halfAperture {
		return 0, core.NewValidationError("curvatureRadius", curvatureRadius, "smaller than the half-aperture")
	}
	return curvatureRadius - math.Sqrt(curvatureRadius*curvatureRadius-halfAperture*halfAperture), nil
}

// FaceKind classifies a lens face for edge thickness computation
type FaceKind int

const (
	// Plano is a flat face
	Plano FaceKind = iota
	// Convex bulges away from the lens body
	Convex
	// Concave curves into the lens body
	Concave
)

// EdgeThickness returns the axial length of the straight barrel portion of
// a two-face lens, excluding both curved caps. Convex caps consume center
// thickness; concave caps add to the edge.
//
// A negative result means the curvatures, thickness and diameter are
// geometrically incompatible and is reported as a validation error.
func EdgeThickness(centerThickness, frontSag, backSag float64, front, back FaceKind) (float64, error) {
	if centerThickness <= 0 {
		return 0, core.NewValidationError("centerThickness", centerThickness, "must be positive")
	}

	edge := centerThickness
	switch front {
	case Convex:
		edge -= frontSag
	case Concave:
		edge += frontSag
	}
	switch back {
	case Convex:
		edge -= backSag
	case Concave:
		edge += backSag
	}

	if edge < 0 {
		return 0, core.NewValidationError("edgeThickness", edge, "curvatures, thickness and diameter are incompatible")
	}
	return edge, nil
}
