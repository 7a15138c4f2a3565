// Package polynomial provides the closed-form cubic solver, the numeric
// quartic solver and the root selection used by curved surface primitives.
package polynomial

import "math"

// SolveCubic solves a3·x³ + a2·x² + a1·x + a0 = 0.
//
// a3 must be non-zero; callers guarantee non-degenerate surface equations
// by construction. When the discriminant is positive there is one real
// root and a complex-conjugate pair: allReal is false and the real root is
// returned in r0. Otherwise all three roots are real and returned in the
// fixed φ3, φ2, φ1 branch order; downstream root picking depends on the
// labelling staying consistent, not on sorted values.
func SolveCubic(a3, a2, a1, a0 float64) (allReal bool, r0, r1, r2 float64) {
	// Normalize to monic form x³ + p·x² + q·x + s
	p := a2 / a3
	q := a1 / a3
	s := a0 / a3

	qq := (3.0*q - p*p) / 9.0
	rr := (9.0*p*q - 27.0*s - 2.0*p*p*p) / 54.0

	d := qq*qq*qq + rr*rr

	if d > 0 {
		// One real root, two complex conjugates
		sq := math.Sqrt(d)
		r0 = math.Cbrt(rr+sq) + math.Cbrt(rr-sq) - p/3.0
		return false, r0, 0, 0
	}

	// Three real roots via the trigonometric solution
	if qq == 0 {
		// Triple root
		r0 = -p / 3.0
		return true, r0, r0, r0
	}

	m := math.Sqrt(-qq)
	arg := rr / (m * m * m)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	theta := math.Acos(arg)

	phi1 := theta / 3.0
	phi2 := phi1 - 2.0*math.Pi/3.0
	phi3 := phi1 + 2.0*math.Pi/3.0

	r0 = 2.0*m*math.Cos(phi3) - p/3.0
	r1 = 2.0*m*math.Cos(phi2) - p/3.0
	r2 = 2.0*m*math.Cos(phi1) - p/3.0

	return true, r0, r1, r2
}
