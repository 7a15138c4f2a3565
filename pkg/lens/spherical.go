package lens

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
	"github.com/mzolin/go-optics-csg/pkg/primitive"
)

// sphereCap returns a full sphere of the given curvature radius with its
// center on the optical axis at centerZ
func sphereCap(radius, centerZ float64) (core.Primitive, error) {
	s, err := primitive.NewSphere(radius, "", nil)
	if err != nil {
		return nil, err
	}
	s.SetTransform(core.Translate(0, 0, centerZ))
	return s, nil
}

// sphericalCap computes the sag and positions the full sphere for one
// face. vertexZ is the face vertex, outward is +1 for the front face and
// -1 for the back face.
func sphericalCap(kind optics.FaceKind, curvature, halfAperture, vertexZ, outward float64) (capSolid, error) {
	sag, err := optics.CapSag(curvature, halfAperture)
	if err != nil {
		return capSolid{}, err
	}
	// A convex face bulges outward, so its sphere center sits inside the
	// glass; a concave face's center sits behind the vertex.
	centerZ := vertexZ - outward*curvature
	if kind == optics.Concave {
		centerZ = vertexZ + outward*curvature
	}
	solid, err := sphereCap(curvature, centerZ)
	if err != nil {
		return capSolid{}, err
	}
	return capSolid{kind: kind, sag: sag, reach: curvature - sag, solid: solid}, nil
}

// NewBiConvex builds a spherical lens with two outward-bulging faces. The
// back vertex sits at the local origin, the front vertex at z equal to
// the center thickness, with the optical axis along +z.
func NewBiConvex(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	r := diameter * 0.5
	front, err := sphericalCap(optics.Convex, frontCurvature, r, centerThickness, 1)
	if err != nil {
		return nil, err
	}
	back, err := sphericalCap(optics.Convex, backCurvature, r, 0, -1)
	if err != nil {
		return nil, err
	}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, back.sag, optics.Convex, optics.Convex)
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

// NewBiConcave builds a spherical lens with two inward-curving faces
func NewBiConcave(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	r := diameter * 0.5
	front, err := sphericalCap(optics.Concave, frontCurvature, r, centerThickness, 1)
	if err != nil {
		return nil, err
	}
	back, err := sphericalCap(optics.Concave, backCurvature, r, 0, -1)
	if err != nil {
		return nil, err
	}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, back.sag, optics.Concave, optics.Concave)
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

// NewPlanoConvex builds a spherical lens with a convex front face and a
// flat back face at the local origin
func NewPlanoConvex(diameter, centerThickness, curvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	front, err := sphericalCap(optics.Convex, curvature, diameter*0.5, centerThickness, 1)
	if err != nil {
		return nil, err
	}
	back := capSolid{kind: optics.Plano}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, 0, optics.Convex, optics.Plano)
	if err != nil {
		return nil, err
	}
	geom := Geometry{
		Diameter:        diameter,
		CenterThickness: centerThickness,
		FrontSag:        front.sag,
		EdgeThickness:   edge,
	}
	return newElement(geom, front, back, name, material)
}

// NewPlanoConcave builds a spherical lens with a concave front face and a
// flat back face at the local origin
func NewPlanoConcave(diameter, centerThickness, curvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	front, err := sphericalCap(optics.Concave, curvature, diameter*0.5, centerThickness, 1)
	if err != nil {
		return nil, err
	}
	back := capSolid{kind: optics.Plano}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, 0, optics.Concave, optics.Plano)
	if err != nil {
		return nil, err
	}
	geom := Geometry{
		Diameter:        diameter,
		CenterThickness: centerThickness,
		FrontSag:        front.sag,
		EdgeThickness:   edge,
	}
	return newElement(geom, front, back, name, material)
}

// NewMeniscus builds a spherical lens with a convex front face and a
// concave back face
func NewMeniscus(diameter, centerThickness, frontCurvature, backCurvature float64, name string, material core.Material) (*Element, error) {
	if err := validateLensParameters(diameter, centerThickness); err != nil {
		return nil, err
	}
	r := diameter * 0.5
	front, err := sphericalCap(optics.Convex, frontCurvature, r, centerThickness, 1)
	if err != nil {
		return nil, err
	}
	back, err := sphericalCap(optics.Concave, backCurvature, r, 0, -1)
	if err != nil {
		return nil, err
	}
	edge, err := optics.EdgeThickness(centerThickness, front.sag, back.sag, optics.Convex, optics.Concave)
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
