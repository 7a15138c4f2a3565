package lens

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// cylinderCap returns a full circular cylinder of the given curvature
// radius lying on its side, axis parallel to local y through (0, 0,
// centerZ). The length comfortably covers the barrel footprint; only the
// boolean combination with the barrel defines the glass.
func cylinderCap(radius, centerZ, length float64) (core.Primitive, error) {
	c, err := primitive.NewCylinder(radius, length, "", nil)
	if err != nil {
		return nil, err
	}
	c.SetTransform(core.Translate(0, length*0.5, centerZ).Mul(core.RotateX(90)))
	return c, nil
}

// cylindricalCap computes the sag and positions the full cylinder for one
// face curved in the horizontal plane only
func cylindricalCap(kind optics.FaceKind, curvature, halfAperture, vertexZ, outward, length float64) (capSolid, error) {
	sag, err := optics.CapSag(curvature, halfAperture)
	if err != nil {
		return capSolid{}, err
	}
	centerZ := vertexZ - outward*curvature
	if kind == optics.Concave {
		centerZ = vertexZ + outward*curvature
	}
	solid, err := cylinderCap(curvature, centerZ, length)
	if err != nil {
		return capSolid{}, err
	}
	return capSolid{kind: kind, sag: sag, reach: curvature - sag, solid: solid}, nil
}

// cylindricalPair assembles a cylindrical lens from two prepared face
// descriptions
func cylindricalPair(diameter, centerThickness float64, frontKind, backKind optics.FaceKind, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	r := diameter * 0.5
	length := diameter * 1.5

	front := capSolid{kind: optics.Plano}
	back := capSolid{kind: optics.Plano}
	var err error
	if frontKind != optics.Plano {
		front, err = cylindricalCap(frontKind, frontCurvature, r, centerThickness, 1, length)
		if err != nil {
			return nil, err
		}
	}
	if backKind != optics.Plano {
		back, err = cylindricalCap(backKind, backCurvature, r, 0, -1, length)
		if err != nil {
			return nil, err
		}
	}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, back.sag, frontKind, backKind)
	if err != nil {
		return nil, err
	}
	geom := Geometry{
		Diameter:        diameter,
		CenterThickness: centerThickness,
		FrontSag:        front.sag,
		BackSag:         back.sag,
		EdgeThickness:   edge,
	}
	return newElement(geom, front, back, name, material)
}

// NewCylindricalBiConvex builds a lens with two convex faces curved in
// the horizontal plane only
func NewCylindricalBiConvex(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	return cylindricalPair(diameter, centerThickness, optics.Convex, optics.Convex, frontCurvature, backCurvature, name, material)
}

// NewCylindricalBiConcave builds a lens with two concave faces curved in
// the horizontal plane only
func NewCylindricalBiConcave(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	return cylindricalPair(diameter, centerThickness, optics.Concave, optics.Concave, frontCurvature, backCurvature, name, material)
}

// NewCylindricalPlanoConvex builds a lens with a convex cylindrical front
// face and a flat back face
func NewCylindricalPlanoConvex(diameter, centerThickness, curvature float64, name string, material core.Material) (*Element, error) {
	return cylindricalPair(diameter, centerThickness, optics.Convex, optics.Plano, curvature, 0, name, material)
}

// NewCylindricalPlanoConcave builds a lens with a concave cylindrical
// front face and a flat back face
func NewCylindricalPlanoConcave(diameter, centerThickness, curvature float64, name string, material core.Material) (*Element, error) {
	return cylindricalPair(diameter, centerThickness, optics.Concave, optics.Plano, curvature, 0, name, material)
}

// NewCylindricalMeniscus builds a lens with a convex cylindrical front
// face and a concave cylindrical back face
func NewCylindricalMeniscus(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	return cylindricalPair(diameter, centerThickness, optics.Convex, optics.Concave, frontCurvature, backCurvature, name, material)
}
