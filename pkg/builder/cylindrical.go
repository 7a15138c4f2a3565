package builder

import (
	"math"

	"go.uber.org/zap"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/lens"
	"github.com/mzolin/go-optics-csg/pkg/mirror"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/surface"
)

// cylindricalLensParams carry the shared parameters of a cylindrical lens
// plus the orientation of its curvature axis. The lens primitives curve
// along the local x axis; a prescription curving vertically gets a 90
// degree rotation about the optical axis.
type cylindricalLensParams struct {
	diameter        float64
	centerThickness float64
	backCurvature   float64
	frontCurvature  float64
	backSign        int
	frontSign       int
	rotation        core.Transform
	name            string
	material        core.Material
}

func (b *Builder) extractCylindricalLensParams(back, front *surface.Toroidal) (cylindricalLensParams, error) {
	p := cylindricalLensParams{rotation: core.Identity()}

	if err := checkLensMaterial(back); err != nil {
		return p, err
	}
	if err := checkSmallNumbers(back); err != nil {
		return p, err
	}
	if err := checkSmallNumbers(front); err != nil {
		return p, err
	}

	backType, backShape := surface.DeterminePrimitiveType(back)
	frontType, frontShape := surface.DeterminePrimitiveType(front)

	if backType != surface.TypeFlat && backType != surface.TypeCylindrical {
		return p, cannotCreate("back surface %q is %v, not cylindrical or flat", back.Name, backType)
	}
	if frontType != surface.TypeFlat && frontType != surface.TypeCylindrical {
		return p, cannotCreate("front surface %q is %v, not cylindrical or flat", front.Name, frontType)
	}
	if backType == surface.TypeFlat && frontType == surface.TypeFlat {
		return p, cannotCreate("both surfaces %q and %q are flat", back.Name, front.Name)
	}
	if backShape != surface.ShapeRound || frontShape != surface.ShapeRound {
		return p, cannotCreate("surface %q or %q is not round", back.Name, front.Name)
	}

	switch {
	case back.RadiusHorizontal == 0:
		// Vertical curvature; rotate the horizontally curving primitive
		// into the vertical plane.
		if front.RadiusHorizontal != 0 {
			return p, cannotCreate("surfaces %q and %q curve along different axes", back.Name, front.Name)
		}
		p.backCurvature = math.Abs(back.Radius)
		p.backSign = surface.Sign(back.Radius)
		p.frontCurvature = math.Abs(front.Radius)
		p.frontSign = surface.Sign(front.Radius)
		p.rotation = core.RotateZ(90)

	case back.Radius == 0:
		if front.Radius != 0 {
			return p, cannotCreate("surfaces %q and %q curve along different axes", back.Name, front.Name)
		}
		p.backCurvature = math.Abs(back.RadiusHorizontal)
		p.backSign = surface.Sign(back.RadiusHorizontal)
		p.frontCurvature = math.Abs(front.RadiusHorizontal)
		p.frontSign = surface.Sign(front.RadiusHorizontal)

	default:
		return p, cannotCreate("surface %q carries two curvature radii, it is not cylindrical", back.Name)
	}

	p.diameter = 2 * back.SemiDiameter
	if p.diameter == 0 {
		p.diameter = 2 * front.SemiDiameter
	}
	p.centerThickness = orDefault(back.Thickness)
	p.material = b.resolve(back.Material)
	p.name = back.Name
	if p.name == "" {
		p.name = front.Name
	}

	return p, nil
}

// CylindricalLens builds a cylindrical lens from two consecutive toroidal
// surfaces, each flat or curved in the same principal plane.
func (b *Builder) CylindricalLens(back, front *surface.Toroidal) (core.Primitive, error) {
	p, err := b.extractCylindricalLensParams(back, front)
	if err != nil {
		return nil, err
	}

	b.log.Debug("building cylindrical lens",
		zap.String("name", p.name),
		zap.Int("backSign", p.backSign),
		zap.Int("frontSign", p.frontSign))

	place := func(e *lens.Element, err error) (core.Primitive, error) {
		if err != nil {
			return nil, err
		}
		e.SetTransform(p.rotation)
		return e, nil
	}
	placeFlipped := func(e *lens.Element, err error) (core.Primitive, error) {
		if err != nil {
			return nil, err
		}
		e.SetTransform(Flip(e.CenterThickness()).Mul(p.rotation))
		return e, nil
	}

	switch {
	case p.backSign == 0 && p.frontSign == 0:
		return b.FlatCylinder(back)

	case p.backSign < 0 && p.frontSign < 0:
		return place(lens.NewCylindricalMeniscus(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case p.backSign > 0 && p.frontSign > 0:
		return placeFlipped(lens.NewCylindricalMeniscus(p.diameter, p.centerThickness, p.backCurvature, p.frontCurvature, p.name, p.material))

	case p.backSign > 0 && p.frontSign < 0:
		return place(lens.NewCylindricalBiConvex(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case p.backSign < 0 && p.frontSign > 0:
		return place(lens.NewCylindricalBiConcave(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case p.backSign == 0 && p.frontSign < 0:
		return place(lens.NewCylindricalPlanoConvex(p.diameter, p.centerThickness, p.frontCurvature, p.name, p.material))

	case p.backSign == 0:
		return place(lens.NewCylindricalPlanoConcave(p.diameter, p.centerThickness, p.frontCurvature, p.name, p.material))

	case p.frontSign == 0 && p.backSign > 0:
		return placeFlipped(lens.NewCylindricalPlanoConvex(p.diameter, p.centerThickness, p.backCurvature, p.name, p.material))

	default: // frontSign == 0 && backSign < 0
		return placeFlipped(lens.NewCylindricalPlanoConcave(p.diameter, p.centerThickness, p.backCurvature, p.name, p.material))
	}
}

// CylindricalMirror builds a round cylindrical mirror from a toroidal
// surface curved in exactly one principal plane. A rectangular aperture is
// accepted but the mirror is still made round.
func (b *Builder) CylindricalMirror(surf *surface.Toroidal, direction Direction) (core.Primitive, error) {
	if err := checkSmallNumbers(surf); err != nil {
		return nil, err
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeCylindrical {
		return nil, cannotCreate("surface %q is not cylindrical", surf.Name)
	}
	if shape == surface.ShapeRectangular {
		b.log.Warn("surface has a rectangular aperture but will be made into a round mirror",
			zap.String("surface", surf.Name))
	}

	var (
		curvature float64
		sgn       int
		rotation  = core.Identity()
	)
	if surf.Radius != 0 {
		curvature = math.Abs(surf.Radius)
		sgn = surface.Sign(surf.Radius)
		rotation = core.RotateZ(90)
	} else {
		curvature = math.Abs(surf.RadiusHorizontal)
		sgn = surface.Sign(surf.RadiusHorizontal)
	}

	kind := optics.Concave
	if sgn > 0 {
		kind = optics.Convex
	}

	diameter := 2 * surf.SemiDiameter
	extents := optics.RoundFrameExtents(diameter, 0, 0)
	thickness, err := substrateThickness(kind, curvature, diameter, extents)
	if err != nil {
		return nil, err
	}

	m, err := mirror.NewRoundCylindrical(diameter, curvature, thickness, kind, mirror.Options{}, surf.Name, b.resolve(surf.Material))
	if err != nil {
		return nil, err
	}

	m.SetTransform(DirectionTransform(direction, sgn, thickness).Mul(rotation))
	return m, nil
}
