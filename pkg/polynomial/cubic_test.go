package polynomial

import (
	"math"
	"math/rand"
	"testing"
)

// evalCubic evaluates a3·x³+a2·x²+a1·x+a0 at x
func evalCubic(a3, a2, a1, a0, x float64) float64 {
	return ((a3*x+a2)*x+a1)*x + a0
}

func TestSolveCubic_ThreeRealRoots(t *testing.T) {
	tests := []struct {
		name  string
		roots [3]float64
	}{
		{name: "distinct small roots", roots: [3]float64{-2, 1, 3}},
		{name: "distinct large roots", roots: [3]float64{-1500, 2, 4000}},
		{name: "double root", roots: [3]float64{1, 1, -4}},
		{name: "all negative", roots: [3]float64{-5, -2, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.roots
			// Expand (x-r0)(x-r1)(x-r2)
			a2 := -(r[0] + r[1] + r[2])
			a1 := r[0]*r[1] + r[0]*r[2] + r[1]*r[2]
			a0 := -r[0] * r[1] * r[2]

			allReal, x0, x1, x2 := SolveCubic(1, a2, a1, a0)
			if !allReal {
				t.Fatalf("Expected all real roots for %v", r)
			}

			scale := math.Max(1, math.Abs(a0))
			for _, x := range []float64{x0, x1, x2} {
				residual := math.Abs(evalCubic(1, a2, a1, a0, x)) / scale
				if residual > 1e-9 {
					t.Errorf("Root %v has relative residual %v", x, residual)
				}
			}
		})
	}
}

func TestSolveCubic_OneRealRoot(t *testing.T) {
	// (x-2)(x²+1) = x³ - 2x² + x - 2 has one real root at 2
	allReal, x0, _, _ := SolveCubic(1, -2, 1, -2)
	if allReal {
		t.Fatal("Expected allReal=false for complex conjugate pair")
	}
	if math.Abs(x0-2) > 1e-9 {
		t.Errorf("Expected real root 2, got %v", x0)
	}
}

func TestSolveCubic_TripleRoot(t *testing.T) {
	// (x-1)³ = x³ - 3x² + 3x - 1
	allReal, x0, x1, x2 := SolveCubic(1, -3, 3, -1)
	if !allReal {
		t.Fatal("Expected all real roots for triple root")
	}
	for _, x := range []float64{x0, x1, x2} {
		if math.Abs(x-1) > 1e-7 {
			t.Errorf("Expected root 1, got %v", x)
		}
	}
}

func TestSolveCubic_NonMonic(t *testing.T) {
	// 2(x-1)(x+1)(x-3) = 2x³ - 6x² - 2x + 6
	allReal, x0, x1, x2 := SolveCubic(2, -6, -2, 6)
	if !allReal {
		t.Fatal("Expected all real roots")
	}
	for _, x := range []float64{x0, x1, x2} {
		if math.Abs(evalCubic(2, -6, -2, 6, x)) > 1e-9 {
			t.Errorf("Root %v does not satisfy polynomial", x)
		}
	}
}

func TestSolveCubic_BranchOrderingIsStable(t *testing.T) {
	// The slot order must be a pure function of the coefficients: solving
	// the same polynomial twice yields identical slot assignments
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		a2 := rng.Float64()*20 - 10
		a1 := rng.Float64()*20 - 10
		a0 := rng.Float64()*20 - 10

		ok1, p0, p1, p2 := SolveCubic(1, a2, a1, a0)
		ok2, q0, q1, q2 := SolveCubic(1, a2, a1, a0)
		if ok1 != ok2 || p0 != q0 || p1 != q1 || p2 != q2 {
			t.Fatalf("Slot assignment changed between identical solves: (%v,%v,%v) vs (%v,%v,%v)", p0, p1, p2, q0, q1, q2)
		}
	}
}
