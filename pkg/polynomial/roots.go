package polynomial

import "math"

// PickTwoRoots filters the quartic roots down to the physically meaningful
// near and far intersection distances.
//
// Roots with a non-noise imaginary part or a NaN real part are discarded.
// At least two real roots must survive; otherwise ok is false. The
// algebraically smallest and largest survivors are returned as (near, far);
// ties are not special-cased.
func PickTwoRoots(roots [4]complex128) (near, far float64, ok bool) {
	count := 0
	for _, z := range roots {
		re := real(z)
		if math.IsNaN(re) || !rootIsReal(z) {
			continue
		}
		if count == 0 {
			near, far = re, re
		} else {
			near = math.Min(near, re)
			far = math.Max(far, re)
		}
		count++
	}
	if count < 2 {
		return 0, 0, false
	}
	return near, far, true
}
