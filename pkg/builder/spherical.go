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

// sphericalLensParams are the positive-valued parameters shared by every
// spherical lens family.
type sphericalLensParams struct {
	diameter        float64
	centerThickness float64
	backCurvature   float64
	frontCurvature  float64
	name            string
	material        core.Material
}

func (b *Builder) extractSphericalLensParams(back, front surface.Surface) (sphericalLensParams, error) {
	var p sphericalLensParams

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

	if backType != surface.TypeFlat && backType != surface.TypeSpherical {
		return p, cannotCreate("back surface %q does not define a spherical or flat surface", back.Common().Name)
	}
	if frontType != surface.TypeFlat && frontType != surface.TypeSpherical {
		return p, cannotCreate("front surface %q does not define a spherical or flat surface", front.Common().Name)
	}

	if backShape != surface.ShapeRound {
		b.log.Warn("back surface has a non-round aperture which is not supported",
			zap.String("surface", back.Common().Name))
	}
	if frontShape != surface.ShapeRound {
		b.log.Warn("front surface has a non-round aperture which is not supported",
			zap.String("surface", front.Common().Name))
	}

	backAttrs := back.Common()
	frontAttrs := front.Common()

	p.diameter = 2 * backAttrs.SemiDiameter
	if p.diameter == 0 {
		p.diameter = 2 * frontAttrs.SemiDiameter
	}
	p.centerThickness = orDefault(backAttrs.Thickness)
	p.backCurvature = math.Abs(backAttrs.Radius)
	p.frontCurvature = math.Abs(frontAttrs.Radius)
	p.material = b.resolve(backAttrs.Material)
	p.name = backAttrs.Name
	if p.name == "" {
		p.name = frontAttrs.Name
	}

	return p, nil
}

// SphericalLens builds a spherical lens from two consecutive surfaces. The
// lens family follows from the curvature signs; families whose convex side
// faces backward are built mirrored and flipped into place.
func (b *Builder) SphericalLens(back, front surface.Surface) (core.Primitive, error) {
	p, err := b.extractSphericalLensParams(back, front)
	if err != nil {
		return nil, err
	}

	backSgn, frontSgn := CurvatureSigns(back, front)
	b.log.Debug("building spherical lens",
		zap.String("name", p.name),
		zap.Int("backSign", backSgn),
		zap.Int("frontSign", frontSgn))

	switch {
	case backSgn == 0 && frontSgn == 0:
		b.log.Debug("both surfaces are flat, building a cylinder", zap.String("name", p.name))
		return b.FlatCylinder(back)

	case backSgn < 0 && frontSgn < 0:
		b.log.Debug("positive meniscus", zap.String("name", p.name))
		return built(lens.NewMeniscus(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case backSgn > 0 && frontSgn > 0:
		b.log.Debug("negative meniscus", zap.String("name", p.name))
		return flipped(lens.NewMeniscus(p.diameter, p.centerThickness, p.backCurvature, p.frontCurvature, p.name, p.material))

	case backSgn > 0 && frontSgn < 0:
		b.log.Debug("biconvex lens", zap.String("name", p.name))
		return built(lens.NewBiConvex(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case backSgn < 0 && frontSgn > 0:
		b.log.Debug("biconcave lens", zap.String("name", p.name))
		return built(lens.NewBiConcave(p.diameter, p.centerThickness, p.frontCurvature, p.backCurvature, p.name, p.material))

	case backSgn == 0 && frontSgn < 0:
		b.log.Debug("plano-convex lens", zap.String("name", p.name))
		return built(lens.NewPlanoConvex(p.diameter, p.centerThickness, p.frontCurvature, p.name, p.material))

	case backSgn == 0:
		b.log.Debug("plano-concave lens", zap.String("name", p.name))
		return built(lens.NewPlanoConcave(p.diameter, p.centerThickness, p.frontCurvature, p.name, p.material))

	case frontSgn == 0 && backSgn > 0:
		b.log.Debug("convex-plano lens", zap.String("name", p.name))
		return flipped(lens.NewPlanoConvex(p.diameter, p.centerThickness, p.backCurvature, p.name, p.material))

	default: // frontSgn == 0 && backSgn < 0
		b.log.Debug("concave-plano lens", zap.String("name", p.name))
		return flipped(lens.NewPlanoConcave(p.diameter, p.centerThickness, p.backCurvature, p.name, p.material))
	}
}

// built adapts a lens constructor result to the primitive interface.
func built(e *lens.Element, err error) (core.Primitive, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

// flipped applies the side-swapping transform to a freshly built lens.
func flipped(e *lens.Element, err error) (core.Primitive, error) {
	if err != nil {
		return nil, err
	}
	e.SetTransform(Flip(e.CenterThickness()))
	return e, nil
}

// SphericalMirror builds a spherical mirror from a single surface. Round
// mirrors may carry a central hole and a decenter; rectangular frames come
// from a rectangular aperture.
func (b *Builder) SphericalMirror(surf surface.Surface, direction Direction) (core.Primitive, error) {
	if err := checkSmallNumbers(surf); err != nil {
		return nil, err
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeSpherical {
		return nil, cannotCreate("surface %q does not define a spherical surface", surf.Common().Name)
	}

	attrs := surf.Common()
	curvature := math.Abs(attrs.Radius)
	sgn := surface.Sign(attrs.Radius)
	kind := optics.Concave
	if sgn > 0 {
		kind = optics.Convex
	}

	var opts mirror.Options
	if attrs.ApertureDecenter != nil {
		opts.HorizontalDecenter = attrs.ApertureDecenter.X
		opts.VerticalDecenter = attrs.ApertureDecenter.Y
	}
	// A turned mirror sees its horizontal axis reversed.
	if sgn == -1 {
		opts.HorizontalDecenter = -opts.HorizontalDecenter
	}

	material := b.resolve(attrs.Material)

	var (
		m         *mirror.Mirror
		thickness float64
		err       error
	)
	if shape == surface.ShapeRectangular {
		width := 2 * attrs.Aperture.HalfWidthX
		height := 2 * attrs.Aperture.HalfWidthY
		extents := optics.RectFrameExtents(width, height, opts.HorizontalDecenter, opts.VerticalDecenter)
		thickness, err = substrateThickness(kind, curvature, math.Max(width, height), extents)
		if err != nil {
			return nil, err
		}
		m, err = mirror.NewRectangularSpherical(width, height, curvature, thickness, kind, opts, attrs.Name, material)
	} else {
		diameter := 2 * attrs.SemiDiameter
		if attrs.Aperture != nil {
			// A round aperture pair on a mirror encodes the frame
			// diameter and a central hole.
			diameter = 2 * attrs.Aperture.HalfWidthY
			opts.ApertureRadius = attrs.Aperture.HalfWidthX
		}
		extents := optics.RoundFrameExtents(diameter, opts.HorizontalDecenter, opts.VerticalDecenter)
		thickness, err = substrateThickness(kind, curvature, diameter, extents)
		if err != nil {
			return nil, err
		}
		m, err = mirror.NewRoundSpherical(diameter, curvature, thickness, kind, opts, attrs.Name, material)
	}
	if err != nil {
		return nil, err
	}

	m.SetTransform(DirectionTransform(direction, sgn, thickness))
	return m, nil
}

// substrateThickness sizes a mirror substrate from its frame. The
// prescription thickness is the distance to the next surface, not the
// glass depth, so the substrate scales with the frame and a convex face is
// given enough depth to keep its full sag inside the glass.
func substrateThickness(kind optics.FaceKind, curvature, frameSize float64, extents optics.FrameExtents) (float64, error) {
	if err := optics.CheckMirrorCurvature(curvature, extents); err != nil {
		return 0, err
	}
	thickness := mirrorThicknessRatio * frameSize
	if kind == optics.Convex {
		sag, err := optics.CapSag(curvature, extents.Outer)
		if err != nil {
			return 0, err
		}
		thickness += sag
	}
	return thickness, nil
}
