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

// toricLensParams carry the per-face vertical and horizontal curvatures of
// a toric lens.
type toricLensParams struct {
	diameter        float64
	centerThickness float64
	backVertical    float64
	backHorizontal  float64
	frontVertical   float64
	frontHorizontal float64
	name            string
	material        core.Material
}

func (b *Builder) extractToricLensParams(back, front *surface.Toroidal) (toricLensParams, error) {
	var p toricLensParams

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

	if backType != surface.TypeFlat && backType != surface.TypeToroidal {
		return p, cannotCreate("back surface %q does not define a toric or flat surface", back.Name)
	}
	if frontType != surface.TypeFlat && frontType != surface.TypeToroidal {
		return p, cannotCreate("front surface %q does not define a toric or flat surface", front.Name)
	}

	if backShape != surface.ShapeRound {
		b.log.Warn("back surface has a non-round aperture which is not supported",
			zap.String("surface", back.Name))
	}
	if frontShape != surface.ShapeRound {
		b.log.Warn("front surface has a non-round aperture which is not supported",
			zap.String("surface", front.Name))
	}

	if surface.Sign(back.Radius) == -surface.Sign(back.RadiusHorizontal) && back.Radius != 0 && back.RadiusHorizontal != 0 {
		return p, cannotCreate("back surface %q has curvature radii of different signs", back.Name)
	}
	if surface.Sign(front.Radius) == -surface.Sign(front.RadiusHorizontal) && front.Radius != 0 && front.RadiusHorizontal != 0 {
		return p, cannotCreate("front surface %q has curvature radii of different signs", front.Name)
	}

	p.diameter = 2 * back.SemiDiameter
	p.centerThickness = orDefault(back.Thickness)
	p.backVertical = math.Abs(back.Radius)
	p.backHorizontal = math.Abs(back.RadiusHorizontal)
	p.frontVertical = math.Abs(front.Radius)
	p.frontHorizontal = math.Abs(front.RadiusHorizontal)
	p.material = b.resolve(back.Material)
	p.name = back.Name
	if p.name == "" {
		p.name = front.Name
	}

	return p, nil
}

// ToricLens builds a toric lens from two consecutive toroidal surfaces.
// The ray propagation direction participates in the sign dispatch because
// a toric face cannot be mirrored by a rotation alone.
func (b *Builder) ToricLens(back, front *surface.Toroidal, direction Direction) (core.Primitive, error) {
	p, err := b.extractToricLensParams(back, front)
	if err != nil {
		return nil, err
	}

	backSgn := surface.Sign(back.Radius) * int(direction)
	frontSgn := surface.Sign(front.Radius) * int(direction)

	b.log.Debug("building toric lens",
		zap.String("name", p.name),
		zap.Int("backSign", backSgn),
		zap.Int("frontSign", frontSgn))

	switch {
	case backSgn == 0 && frontSgn == 0:
		return b.FlatCylinder(back)

	case backSgn > 0 && frontSgn < 0:
		return built(lens.NewToricBiConvex(p.diameter, p.centerThickness,
			p.frontVertical, p.frontHorizontal, p.backVertical, p.backHorizontal, p.name, p.material))

	case backSgn < 0 && frontSgn > 0:
		return built(lens.NewToricBiConcave(p.diameter, p.centerThickness,
			p.frontVertical, p.frontHorizontal, p.backVertical, p.backHorizontal, p.name, p.material))

	case backSgn < 0 && frontSgn < 0:
		return built(lens.NewToricMeniscus(p.diameter, p.centerThickness,
			p.frontVertical, p.frontHorizontal, p.backVertical, p.backHorizontal, p.name, p.material))

	case backSgn > 0 && frontSgn > 0:
		return flipped(lens.NewToricMeniscus(p.diameter, p.centerThickness,
			p.backVertical, p.backHorizontal, p.frontVertical, p.frontHorizontal, p.name, p.material))

	case backSgn == 0 && frontSgn < 0:
		return built(lens.NewToricPlanoConvex(p.diameter, p.centerThickness,
			p.frontVertical, p.frontHorizontal, p.name, p.material))

	case backSgn == 0:
		return built(lens.NewToricPlanoConcave(p.diameter, p.centerThickness,
			p.frontVertical, p.frontHorizontal, p.name, p.material))

	case frontSgn == 0 && backSgn > 0:
		return flipped(lens.NewToricPlanoConvex(p.diameter, p.centerThickness,
			p.backVertical, p.backHorizontal, p.name, p.material))

	default: // frontSgn == 0 && backSgn < 0
		return flipped(lens.NewToricPlanoConcave(p.diameter, p.centerThickness,
			p.backVertical, p.backHorizontal, p.name, p.material))
	}
}

// ToricMirror builds a round toric mirror from a toroidal surface. Both
// curvature radii must carry the same sign; a rectangular aperture is
// accepted but the mirror is still made round.
func (b *Builder) ToricMirror(surf *surface.Toroidal, direction Direction) (core.Primitive, error) {
	if err := checkSmallNumbers(surf); err != nil {
		return nil, err
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeToroidal {
		return nil, cannotCreate("surface %q is not toric", surf.Name)
	}
	if surface.Sign(surf.Radius) != surface.Sign(surf.RadiusHorizontal) {
		return nil, cannotCreate("surface %q has curvature radii of different signs", surf.Name)
	}
	if shape == surface.ShapeRectangular {
		b.log.Warn("surface has a rectangular aperture but will be made into a round mirror",
			zap.String("surface", surf.Name))
	}

	diameter := 2 * surf.SemiDiameter
	vertical := math.Abs(surf.Radius)
	horizontal := math.Abs(surf.RadiusHorizontal)
	sgn := surface.Sign(surf.Radius)
	kind := optics.Concave
	if sgn > 0 {
		kind = optics.Convex
	}

	face, err := optics.DecomposeToricFace(vertical, horizontal)
	if err != nil {
		return nil, err
	}
	thickness := mirrorThicknessRatio * diameter
	if kind == optics.Convex {
		sag, err := face.Sag(diameter * 0.5)
		if err != nil {
			return nil, err
		}
		thickness += sag
	}

	m, err := mirror.NewRoundToric(diameter, vertical, horizontal, thickness, kind, mirror.Options{}, surf.Name, b.resolve(surf.Material))
	if err != nil {
		return nil, err
	}

	// A toric face cannot be shifted into place like a spherical one;
	// only the upstream-facing orientation needs handling.
	if direction == Forward && sgn == -1 {
		b.log.Debug("turning toric mirror to face the incoming rays", zap.String("name", surf.Name))
		m.SetTransform(core.RotateY(180))
	}
	return m, nil
}
