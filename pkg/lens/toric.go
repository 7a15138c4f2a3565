package lens

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// torusCap returns a full torus positioned for a face. The torus rotation
// axis is parallel to local y, rotated a quarter turn about z when the
// face's minor curvature is the horizontal one.
func torusCap(face optics.ToricFace, centerZ float64) (core.Primitive, error) {
	t, err := primitive.NewTorus(face.RadiusMajor, face.RadiusMinor, "", nil)
	if err != nil {
		return nil, err
	}
	t.SetTransform(core.Translate(0, 0, centerZ).Mul(core.RotateZ(face.RotationDegrees())))
	return t, nil
}

// toricCap decomposes a face's vertical and horizontal curvature radii
// into a torus and positions it. The cap sag is governed by the minor
// radius, the steeper of the two curvatures.
func toricCap(kind optics.FaceKind, verticalRadius, horizontalRadius, halfAperture, vertexZ, outward float64) (capSolid, optics.ToricFace, error) {
	face, err := optics.DecomposeToricFace(verticalRadius, horizontalRadius)
	if err != nil {
		return capSolid{}, optics.ToricFace{}, err
	}
	sag, err := face.Sag(halfAperture)
	if err != nil {
		return capSolid{}, optics.ToricFace{}, err
	}
	apexRadius := face.RadiusMajor + face.RadiusMinor
	centerZ := vertexZ - outward*apexRadius
	if kind == optics.Concave {
		centerZ = vertexZ + outward*apexRadius
	}
	solid, err := torusCap(face, centerZ)
	if err != nil {
		return capSolid{}, optics.ToricFace{}, err
	}
	return capSolid{kind: kind, sag: sag, reach: face.RadiusMinor - sag, solid: solid}, face, nil
}

// toricPair assembles a toric lens from two prepared face descriptions.
// A plano face passes zero curvature radii.
func toricPair(diameter, centerThickness float64, frontKind, backKind optics.FaceKind, fv, fh, bv, bh float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	r := diameter * 0.5

	front := capSolid{kind: optics.Plano}
	back := capSolid{kind: optics.Plano}
	var frontFace, backFace optics.ToricFace
	var err error
	if frontKind != optics.Plano {
		front, frontFace, err = toricCap(frontKind, fv, fh, r, centerThickness, 1)
		if err != nil {
			return nil, err
		}
	}
	if backKind != optics.Plano {
		back, backFace, err = toricCap(backKind, bv, bh, r, 0, -1)
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
	if frontKind != optics.Plano {
		geom.FrontToric = &frontFace
	}
	if backKind != optics.Plano {
		geom.BackToric = &backFace
	}
	return newElement(geom, front, back, name, material)
}

// NewToricBiConvex builds a lens with two convex toric faces, each given
// by its vertical and horizontal curvature radii
func NewToricBiConvex(diameter, centerThickness, frontVertical, frontHorizontal, backVertical, backHorizontal float64, name string, material core.Material) (*Element, error) {
	return toricPair(diameter, centerThickness, optics.Convex, optics.Convex,
		frontVertical, frontHorizontal, backVertical, backHorizontal, name, material)
}

// NewToricBiConcave builds a lens with two concave toric faces
func NewToricBiConcave(diameter, centerThickness, frontVertical, frontHorizontal, backVertical, backHorizontal float64, name string, material core.Material) (*Element, error) {
	return toricPair(diameter, centerThickness, optics.Concave, optics.Concave,
		frontVertical, frontHorizontal, backVertical, backHorizontal, name, material)
}

// NewToricPlanoConvex builds a lens with a convex toric front face and a
// flat back face
func NewToricPlanoConvex(diameter, centerThickness, verticalRadius, horizontalRadius float64, name string, material core.Material) (*Element, error) {
	return toricPair(diameter, centerThickness, optics.Convex, optics.Plano,
		verticalRadius, horizontalRadius, 0, 0, name, material)
}

// NewToricPlanoConcave builds a lens with a concave toric front face and
// a flat back face
func NewToricPlanoConcave(diameter, centerThickness, verticalRadius, horizontalRadius float64, name string, material core.Material) (*Element, error) {
	return toricPair(diameter, centerThickness, optics.Concave, optics.Plano,
		verticalRadius, horizontalRadius, 0, 0, name, material)
}

// NewToricMeniscus builds a lens with a convex toric front face and a
// concave toric back face
func NewToricMeniscus(diameter, centerThickness, frontVertical, frontHorizontal, backVertical, backHorizontal float64, name string, material core.Material) (*Element, error) {
	return toricPair(diameter, centerThickness, optics.Convex, optics.Concave,
		frontVertical, frontHorizontal, backVertical, backHorizontal, name, material)
}
