// Package builder turns prescription surface descriptions into solid
// primitives.
//
// A lens is defined by two consecutive surfaces, a mirror by one. The
// builders read the signed curvature radii, resolve which lens or mirror
// family fits, convert the signed prescription values into the positive
// curvature parameters the lens and mirror packages expect, and place the
// finished element with a local transform. Elements facing against the ray
// propagation direction are flipped rather than rebuilt.
package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/surface"
)

const (
	// DefaultThickness substitutes for a zero element thickness. Flat
	// elements and degenerate lenses get a sliver of glass rather than a
	// zero-volume solid.
	DefaultThickness = 1e-6

	// SmallNumber is the threshold below which a semi diameter or a
	// nonzero thickness is treated as degenerate, catching point sources
	// and collapsed surfaces.
	SmallNumber = 1e-8

	// mirrorThicknessRatio sizes the substrate of a mirror whose
	// prescription does not give a usable thickness.
	mirrorThicknessRatio = 0.1
)

// ErrCannotCreatePrimitive reports that a surface or surface pair does not
// define the element a builder was asked for. Callers trying several
// builders in turn test for it with errors.Is.
var ErrCannotCreatePrimitive = errors.New("cannot create primitive")

func cannotCreate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCannotCreatePrimitive, fmt.Sprintf(format, args...))
}

// Direction is the ray propagation direction along the optical axis.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// MaterialResolver maps a prescription material name to a material value.
type MaterialResolver func(name string) core.Material

// Builder constructs lenses, mirrors and flat elements from surface
// descriptions. The zero value is not usable; create one with New.
type Builder struct {
	log     *zap.Logger
	resolve MaterialResolver
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger routes dispatch decisions and warnings to the given logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithMaterialResolver installs a custom material lookup. The default
// resolver passes the material name through unchanged.
func WithMaterialResolver(resolve MaterialResolver) Option {
	return func(b *Builder) { b.resolve = resolve }
}

// New returns a Builder with the given options applied.
func New(opts ...Option) *Builder {
	b := &Builder{
		log:     zap.NewNop(),
		resolve: func(name string) core.Material { return name },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Flip mirrors an element through the plane z = thickness/2, swapping its
// back and front faces while keeping its axial span [0, thickness].
func Flip(thickness float64) core.Transform {
	return core.RotateY(180).Mul(core.Translate(0, 0, -thickness))
}

// DirectionTransform orients a mirror built in its local frame with
// respect to the ray propagation direction. A mirror whose curvature
// center lies downstream is shifted along the axis by its thickness; one
// whose center lies upstream is turned to face the incoming rays.
func DirectionTransform(direction Direction, curvatureSign int, thickness float64) core.Transform {
	if direction == Forward && curvatureSign == 1 {
		return core.Translate(0, 0, thickness)
	}
	if direction == Forward && curvatureSign == -1 {
		return core.RotateY(180)
	}
	return core.Identity()
}

// CurvatureSigns returns the curvature signs of a lens surface pair.
// Negative means the curvature center lies behind the surface, positive in
// front of it, zero that the surface is flat.
func CurvatureSigns(back, front surface.Surface) (int, int) {
	return surface.Sign(back.Common().Radius), surface.Sign(front.Common().Radius)
}

// checkSmallNumbers rejects surfaces whose semi diameter or thickness is
// too small to carry a solid.
func checkSmallNumbers(s surface.Surface) error {
	attrs := s.Common()
	if attrs.SemiDiameter < SmallNumber {
		return cannotCreate("semi diameter of surface %q is too small: %g", attrs.Name, attrs.SemiDiameter)
	}
	if attrs.Thickness > 0 && attrs.Thickness < SmallNumber {
		return cannotCreate("thickness of surface %q is too small: %g", attrs.Name, attrs.Thickness)
	}
	return nil
}

// checkLensMaterial verifies the back surface of a lens pair names the
// glass filling the gap to the front surface.
func checkLensMaterial(back surface.Surface) error {
	if back.Common().Material == "" {
		return cannotCreate("back surface %q must be assigned a material", back.Common().Name)
	}
	return nil
}

func orDefault(thickness float64) float64 {
	if thickness == 0 {
		return DefaultThickness
	}
	return thickness
}
