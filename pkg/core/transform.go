package core

import "math"

// Transform is a 3D affine transform stored as a row-major 4x4 matrix.
// The last row is implicitly (0, 0, 0, 1).
type Transform struct {
	M [4][4]float64
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translate returns a translation transform
func Translate(x, y, z float64) Transform {
	m := Identity()
	m.M[0][3] = x
	m.M[1][3] = y
	m.M[2][3] = z
	return m
}

// RotateX returns a rotation about the x axis by the given angle in degrees
func RotateX(degrees float64) Transform {
	s, c := math.Sincos(degrees * math.Pi / 180.0)
	m := Identity()
	m.M[1][1] = c
	m.M[1][2] = -s
	m.M[2][1] = s
	m.M[2][2] = c
	return m
}

// RotateY returns a rotation about the y axis by the given angle in degrees
func RotateY(degrees float64) Transform {
	s, c := math.Sincos(degrees * math.Pi / 180.0)
	m := Identity()
	m.M[0][0] = c
	m.M[0][2] = s
	m.M[2][0] = -s
	m.M[2][2] = c
	return m
}

// RotateZ returns a rotation about the z axis by the given angle in degrees
func RotateZ(degrees float64) Transform {
	s, c := math.Sincos(degrees * math.Pi / 180.0)
	m := Identity()
	m.M[0][0] = c
	m.M[0][1] = -s
	m.M[1][0] = s
	m.M[1][1] = c
	return m
}

// Mul returns the composition t * other (other applied first)
func (t Transform) Mul(other Transform) Transform {
	var result Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += t.M[i][k] * other.M[k][j]
			}
			result.M[i][j] = sum
		}
	}
	return result
}

// Point applies the transform to a point
func (t Transform) Point(p Vec3) Vec3 {
	return Vec3{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]*p.Z + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]*p.Z + t.M[1][3],
		Z: t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]*p.Z + t.M[2][3],
	}
}

// Direction applies the transform to a direction (ignores translation)
func (t Transform) Direction(d Vec3) Vec3 {
	return Vec3{
		X: t.M[0][0]*d.X + t.M[0][1]*d.Y + t.M[0][2]*d.Z,
		Y: t.M[1][0]*d.X + t.M[1][1]*d.Y + t.M[1][2]*d.Z,
		Z: t.M[2][0]*d.X + t.M[2][1]*d.Y + t.M[2][2]*d.Z,
	}
}

// Normal applies the inverse-transpose of the transform to a surface normal.
// The receiver must be the inverse of the point transform.
func (t Transform) Normal(n Vec3) Vec3 {
	return Vec3{
		X: t.M[0][0]*n.X + t.M[1][0]*n.Y + t.M[2][0]*n.Z,
		Y: t.M[0][1]*n.X + t.M[1][1]*n.Y + t.M[2][1]*n.Z,
		Z: t.M[0][2]*n.X + t.M[1][2]*n.Y + t.M[2][2]*n.Z,
	}
}

// Inverse returns the inverse of an affine transform
func (t Transform) Inverse() Transform {
	// Invert the upper-left 3x3 block by cofactor expansion
	a := t.M
	c00 := a[1][1]*a[2][2] - a[1][2]*a[2][1]
	c01 := a[1][2]*a[2][0] - a[1][0]*a[2][2]
	c02 := a[1][0]*a[2][1] - a[1][1]*a[2][0]

	det := a[0][0]*c00 + a[0][1]*c01 + a[0][2]*c02
	invDet := 1.0 / det

	var inv Transform
	inv.M[0][0] = c00 * invDet
	inv.M[1][0] = c01 * invDet
	inv.M[2][0] = c02 * invDet
	inv.M[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * invDet
	inv.M[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * invDet
	inv.M[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * invDet
	inv.M[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * invDet
	inv.M[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * invDet
	inv.M[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * invDet

	// Inverse translation: -R⁻¹ * t
	inv.M[0][3] = -(inv.M[0][0]*a[0][3] + inv.M[0][1]*a[1][3] + inv.M[0][2]*a[2][3])
	inv.M[1][3] = -(inv.M[1][0]*a[0][3] + inv.M[1][1]*a[1][3] + inv.M[1][2]*a[2][3])
	inv.M[2][3] = -(inv.M[2][0]*a[0][3] + inv.M[2][1]*a[1][3] + inv.M[2][2]*a[2][3])
	inv.M[3][3] = 1
	return inv
}
