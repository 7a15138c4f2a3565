// Package surface defines optical surface descriptions and their
// classification into primitive families.
//
// A prescription lists surfaces one after another along the optical axis.
// Each surface carries a signed curvature radius, the axial distance to the
// next surface, the material filling that distance and the clear semi
// diameter. Standard surfaces are rotationally symmetric; Toroidal surfaces
// carry an independent horizontal curvature radius. The builder packages
// consume pairs of surfaces and decide which primitive family fits.
package surface

import "math"

// EqualRadiusTolerance is the absolute tolerance below which the two
// curvature radii of a toroidal surface are treated as equal, demoting the
// surface to spherical.
const EqualRadiusTolerance = 1e-8

// Aperture is a rectangular clear aperture, given as half-widths along the
// local x and y axes. Rectangular distinguishes a true rectangular opening
// from a pair of radii reinterpreted by round builders.
type Aperture struct {
	HalfWidthX  float64
	HalfWidthY  float64
	Rectangular bool
}

// Decenter offsets the clear aperture from the surface vertex.
type Decenter struct {
	X float64
	Y float64
}

// Attributes holds the fields shared by every surface type.
//
// Radius is the vertical (y-z plane) curvature radius with the prescription
// sign convention: positive means the curvature center lies after the
// surface along the propagation axis, zero means flat. Thickness is the
// axial distance to the next surface and Material names the medium filling
// it.
type Attributes struct {
	Name             string
	Radius           float64
	Thickness        float64
	Material         string
	SemiDiameter     float64
	Aperture         *Aperture
	ApertureDecenter *Decenter
}

// Common returns the shared attributes. Embedding Attributes therefore
// satisfies Surface.
func (a Attributes) Common() Attributes { return a }

// Surface is implemented by the concrete surface description types.
type Surface interface {
	Common() Attributes
}

// Standard is a rotationally symmetric surface: flat when Radius is zero,
// spherical otherwise.
type Standard struct {
	Attributes
}

// Toroidal is a surface with independent curvature radii in the two
// principal sections. Attributes.Radius is the vertical radius and
// RadiusHorizontal the horizontal one. Depending on the radii it may
// degenerate to a flat, cylindrical or spherical surface.
type Toroidal struct {
	Attributes
	RadiusHorizontal float64
}

// Type classifies the curvature of a surface.
type Type int

const (
	TypeUndetermined Type = iota
	TypeFlat
	TypeCylindrical
	TypeSpherical
	TypeToroidal
)

func (t Type) String() string {
	switch t {
	case TypeFlat:
		return "flat"
	case TypeCylindrical:
		return "cylindrical"
	case TypeSpherical:
		return "spherical"
	case TypeToroidal:
		return "toroidal"
	default:
		return "undetermined"
	}
}

// Shape classifies the outline of a surface.
type Shape int

const (
	ShapeUndetermined Shape = iota
	ShapeRound
	ShapeRectangular
)

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	case ShapeRectangular:
		return "rectangular"
	default:
		return "undetermined"
	}
}

// DeterminePrimitiveType classifies a surface by curvature and outline.
//
// Standard surfaces are flat or spherical. Toroidal surfaces degenerate by
// their radii: both zero is flat, one zero is cylindrical, equal within
// EqualRadiusTolerance is spherical, otherwise toroidal. The outline is
// rectangular only when a rectangular aperture is attached.
func DeterminePrimitiveType(s Surface) (Type, Shape) {
	attrs := s.Common()

	shape := ShapeRound
	if attrs.Aperture != nil && attrs.Aperture.Rectangular {
		shape = ShapeRectangular
	}

	switch s := s.(type) {
	case Standard, *Standard:
		if attrs.Radius == 0 {
			return TypeFlat, shape
		}
		return TypeSpherical, shape
	case Toroidal:
		return classifyToroidal(s.Radius, s.RadiusHorizontal), shape
	case *Toroidal:
		return classifyToroidal(s.Radius, s.RadiusHorizontal), shape
	default:
		return TypeUndetermined, ShapeUndetermined
	}
}

func classifyToroidal(radiusVertical, radiusHorizontal float64) Type {
	rv := math.Abs(radiusVertical)
	rh := math.Abs(radiusHorizontal)

	switch {
	case rv == 0 && rh == 0:
		return TypeFlat
	case rv == 0 || rh == 0:
		return TypeCylindrical
	case math.Abs(rv-rh) < EqualRadiusTolerance:
		return TypeSpherical
	default:
		return TypeToroidal
	}
}

// Sign returns -1, 0 or 1 following the sign of x.
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
