package polynomial

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ImagTolerance is the relative tolerance below which a root's imaginary
// part is treated as numerical noise. It is scaled by the real part's
// magnitude because root magnitudes vary by orders of magnitude with
// primitive scale.
const ImagTolerance = 1e-6

// SolveQuartic solves a4·x⁴ + a3·x³ + a2·x² + a1·x + a0 = 0.
//
// a4 must be non-zero. The four generally complex roots are found as the
// eigenvalues of the monic polynomial's companion matrix; the nested
// closed-form quartic-via-cubic substitution is numerically unstable near
// degenerate coefficients and is deliberately not used. allReal is true
// iff every root's imaginary part is within tolerance of zero.
func SolveQuartic(a4, a3, a2, a1, a0 float64) (allReal bool, roots [4]complex128) {
	b3 := a3 / a4
	b2 := a2 / a4
	b1 := a1 / a4
	b0 := a0 / a4

	companion := mat.NewDense(4, 4, []float64{
		0, 0, 0, -b0,
		1, 0, 0, -b1,
		0, 1, 0, -b2,
		0, 0, 1, -b3,
	})

	var eig mat.Eigen
	if !eig.Factorize(companion, mat.EigenNone) {
		// Eigenvalue iteration failed to converge; report NaN roots and
		// let the selector resolve the query to "no intersection"
		nan := complex(math.NaN(), math.NaN())
		return false, [4]complex128{nan, nan, nan, nan}
	}

	values := eig.Values(nil)
	copy(roots[:], values)

	allReal = true
	for _, z := range roots {
		if !rootIsReal(z) {
			allReal = false
			break
		}
	}
	return allReal, roots
}

// rootIsReal reports whether the imaginary part is numerical noise
func rootIsReal(z complex128) bool {
	return math.Abs(imag(z)) <= ImagTolerance*math.Abs(real(z))
}
