package builder

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
	"github.com/mzolin/go-optics-csg/pkg/surface"
)

// FlatCylinder builds a solid cylinder from a flat round surface. It is
// the degenerate lens fallback: a zero thickness becomes a sliver of glass
// of DefaultThickness.
func (b *Builder) FlatCylinder(surf surface.Surface) (core.Primitive, error) {
	attrs := surf.Common()

	if attrs.SemiDiameter < SmallNumber {
		return nil, cannotCreate("semi diameter of surface %q is too small: %g", attrs.Name, attrs.SemiDiameter)
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeFlat {
		return nil, cannotCreate("surface %q is not flat", attrs.Name)
	}
	if shape != surface.ShapeRound {
		return nil, cannotCreate("surface %q is not round", attrs.Name)
	}

	cyl, err := primitive.NewCylinder(attrs.SemiDiameter, orDefault(attrs.Thickness), attrs.Name, b.resolve(attrs.Material))
	if err != nil {
		return nil, err
	}
	return cyl, nil
}

// FlatBox builds a solid box from a flat rectangular surface.
func (b *Builder) FlatBox(surf surface.Surface) (core.Primitive, error) {
	attrs := surf.Common()

	if attrs.SemiDiameter < SmallNumber {
		return nil, cannotCreate("semi diameter of surface %q is too small: %g", attrs.Name, attrs.SemiDiameter)
	}
	if attrs.Aperture == nil {
		return nil, cannotCreate("surface %q has no aperture dimensions", attrs.Name)
	}
	if attrs.ApertureDecenter != nil {
		return nil, cannotCreate("surface %q: aperture decenter of a box is not supported", attrs.Name)
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeFlat {
		return nil, cannotCreate("surface %q is not flat", attrs.Name)
	}
	if shape != surface.ShapeRectangular {
		return nil, cannotCreate("surface %q is not rectangular", attrs.Name)
	}

	thickness := orDefault(attrs.Thickness)
	lower := core.Vec3{X: -attrs.Aperture.HalfWidthX, Y: -attrs.Aperture.HalfWidthY, Z: 0}
	upper := core.Vec3{X: attrs.Aperture.HalfWidthX, Y: attrs.Aperture.HalfWidthY, Z: thickness}

	box, err := primitive.NewBox(lower, upper, attrs.Name, b.resolve(attrs.Material))
	if err != nil {
		return nil, err
	}
	return box, nil
}

// Circle builds an infinitely thin round window from a flat surface.
func (b *Builder) Circle(surf surface.Surface) (core.Primitive, error) {
	attrs := surf.Common()

	if attrs.SemiDiameter < SmallNumber {
		return nil, cannotCreate("semi diameter of surface %q is too small: %g", attrs.Name, attrs.SemiDiameter)
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeFlat {
		return nil, cannotCreate("surface %q is not flat", attrs.Name)
	}
	if shape != surface.ShapeRound {
		return nil, cannotCreate("surface %q is not round", attrs.Name)
	}

	circle, err := primitive.NewCircle(attrs.SemiDiameter, attrs.Name, b.resolve(attrs.Material))
	if err != nil {
		return nil, err
	}
	return circle, nil
}

// Rectangle builds an infinitely thin rectangular window from a flat
// surface with a rectangular aperture.
func (b *Builder) Rectangle(surf surface.Surface) (core.Primitive, error) {
	attrs := surf.Common()

	if attrs.SemiDiameter < SmallNumber {
		return nil, cannotCreate("semi diameter of surface %q is too small: %g", attrs.Name, attrs.SemiDiameter)
	}
	if attrs.Aperture == nil {
		return nil, cannotCreate("surface %q has no aperture dimensions", attrs.Name)
	}
	if attrs.ApertureDecenter != nil {
		return nil, cannotCreate("surface %q: aperture decenter of a rectangle is not supported", attrs.Name)
	}

	surfType, shape := surface.DeterminePrimitiveType(surf)
	if surfType != surface.TypeFlat {
		return nil, cannotCreate("surface %q is not flat", attrs.Name)
	}
	if shape != surface.ShapeRectangular {
		return nil, cannotCreate("surface %q is not rectangular", attrs.Name)
	}

	rect, err := primitive.NewRectangle(2*attrs.Aperture.HalfWidthX, 2*attrs.Aperture.HalfWidthY, attrs.Name, b.resolve(attrs.Material))
	if err != nil {
		return nil, err
	}
	return rect, nil
}
