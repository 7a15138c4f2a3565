package polynomial

import (
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"testing"
)

// coeffsFromRoots expands (x-r0)(x-r1)(x-r2)(x-r3) into monic coefficients
func coeffsFromRoots(roots [4]complex128) (a3, a2, a1, a0 complex128) {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs[1], coeffs[2], coeffs[3], coeffs[4]
}

func evalQuartic(a4, a3, a2, a1, a0 float64, z complex128) complex128 {
	return (((complex(a4, 0)*z+complex(a3, 0))*z+complex(a2, 0))*z+complex(a1, 0))*z + complex(a0, 0)
}

func TestSolveQuartic_RealRoots(t *testing.T) {
	tests := []struct {
		name  string
		roots [4]float64
	}{
		{name: "distinct", roots: [4]float64{-3, -1, 2, 5}},
		{name: "mixed scale", roots: [4]float64{-1000, 0.001, 3, 800}},
		{name: "double root", roots: [4]float64{1, 1, -2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gen [4]complex128
			for i, r := range tt.roots {
				gen[i] = complex(r, 0)
			}
			c3, c2, c1, c0 := coeffsFromRoots(gen)
			a3, a2, a1, a0 := real(c3), real(c2), real(c1), real(c0)

			allReal, roots := SolveQuartic(1, a3, a2, a1, a0)
			if !allReal {
				t.Fatalf("Expected allReal=true for roots %v", tt.roots)
			}

			got := make([]float64, 4)
			for i, z := range roots {
				got[i] = real(z)
			}
			sort.Float64s(got)
			want := append([]float64(nil), tt.roots[:]...)
			sort.Float64s(want)

			for i := range want {
				tol := 1e-6 * math.Max(1, math.Abs(want[i]))
				if math.Abs(got[i]-want[i]) > tol {
					t.Errorf("Root %d: expected %v, got %v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestSolveQuartic_ComplexRoots(t *testing.T) {
	// (x²+1)(x-2)(x-3): two real roots, one conjugate pair
	gen := [4]complex128{complex(0, 1), complex(0, -1), 2, 3}
	c3, c2, c1, c0 := coeffsFromRoots(gen)

	allReal, roots := SolveQuartic(1, real(c3), real(c2), real(c1), real(c0))
	if allReal {
		t.Fatal("Expected allReal=false with a conjugate pair present")
	}

	realCount := 0
	for _, z := range roots {
		if math.Abs(imag(z)) <= ImagTolerance*math.Abs(real(z)) {
			realCount++
		}
	}
	if realCount != 2 {
		t.Errorf("Expected 2 real roots, got %d", realCount)
	}
}

func TestSolveQuartic_RandomResiduals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		a4 := rng.Float64()*4 + 0.5
		a3 := rng.Float64()*20 - 10
		a2 := rng.Float64()*20 - 10
		a1 := rng.Float64()*20 - 10
		a0 := rng.Float64()*20 - 10

		_, roots := SolveQuartic(a4, a3, a2, a1, a0)
		for _, z := range roots {
			// Backward-error style scale: the magnitude the terms could
			// reach with worst-case cancellation
			az := cmplx.Abs(z)
			scale := math.Abs(a0) + az*(math.Abs(a1)+az*(math.Abs(a2)+az*(math.Abs(a3)+az*a4)))
			residual := cmplx.Abs(evalQuartic(a4, a3, a2, a1, a0, z)) / math.Max(scale, 1e-300)
			if residual > 1e-9 {
				t.Fatalf("Case %d: root %v has relative residual %v", i, z, residual)
			}
		}
	}
}
