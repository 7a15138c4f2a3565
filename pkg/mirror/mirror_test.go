package mirror

import (
	"math"
	"testing"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
)

// probeDown fires a -z ray at (x, y) and returns the surface z, failing on
// a miss
func probeDown(t *testing.T, m *Mirror, x, y float64) *core.Intersection {
	t.Helper()
	ray := core.NewRay(core.NewVec3(x, y, 5), core.NewVec3(0, 0, -1))
	hit, ok := m.Hit(ray)
	if !ok {
		t.Fatalf("probe ray at (%g, %g) missed the mirror", x, y)
	}
	return hit
}

func TestRoundSphericalConcaveSurface(t *testing.T) {
	m, err := NewRoundSpherical(2.0, 10.0, 0.5, optics.Concave, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundSpherical() error: %v", err)
	}

	// Bowl vertex on the curvature axis
	hit := probeDown(t, m, 0, 0)
	if math.Abs(hit.Point.Z) > 1e-9 {
		t.Errorf("vertex at z = %g, want 0", hit.Point.Z)
	}
	if hit.Normal.Z <= 0 {
		t.Errorf("carved face normal %+v, want +z orientation", hit.Normal)
	}

	// Off axis the bowl recedes by the local sag
	hit = probeDown(t, m, 0.5, 0)
	wantZ := 10.0 - math.Sqrt(100.0-0.25)
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("bowl at z = %g, want %g", hit.Point.Z, wantZ)
	}

	// The sag over the frame matches the rim value
	wantSag := 10.0 - math.Sqrt(99.0)
	if math.Abs(m.FaceSag()-wantSag) > 1e-12 {
		t.Errorf("FaceSag() = %g, want %g", m.FaceSag(), wantSag)
	}
}

func TestRoundSphericalConvexSurface(t *testing.T) {
	m, err := NewRoundSpherical(2.0, 10.0, 0.5, optics.Convex, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundSpherical() error: %v", err)
	}

	hit := probeDown(t, m, 0, 0)
	if math.Abs(hit.Point.Z) > 1e-9 {
		t.Errorf("apex at z = %g, want 0", hit.Point.Z)
	}

	hit = probeDown(t, m, 0.5, 0)
	wantZ := -(10.0 - math.Sqrt(100.0-0.25))
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("face at z = %g, want %g", hit.Point.Z, wantZ)
	}

	if !m.Contains(core.NewVec3(0, 0, -0.25)) {
		t.Errorf("substrate center not contained")
	}
	if m.Contains(core.NewVec3(0.5, 0, -0.005)) {
		t.Errorf("point above the convex face contained")
	}
}

func TestMirrorApertureCutout(t *testing.T) {
	opts := Options{ApertureRadius: 0.3}
	m, err := NewRoundSpherical(2.0, 10.0, 0.5, optics.Concave, opts, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundSpherical() error: %v", err)
	}

	// Through the hole
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if _, ok := m.Hit(ray); ok {
		t.Errorf("ray through the aperture cutout reported a hit")
	}
	// Between hole and rim
	probeDown(t, m, 0.6, 0)
	if m.Contains(core.NewVec3(0, 0, -0.25)) {
		t.Errorf("point inside the cutout contained")
	}
}

func TestMirrorDecenter(t *testing.T) {
	opts := Options{HorizontalDecenter: 1.5}
	m, err := NewRoundSpherical(2.0, 10.0, 0.5, optics.Concave, opts, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundSpherical() error: %v", err)
	}

	// The frame moved, the curvature axis did not
	hit := probeDown(t, m, 1.5, 0)
	wantZ := 10.0 - math.Sqrt(100.0-2.25)
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("bowl at z = %g, want %g", hit.Point.Z, wantZ)
	}
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if _, ok := m.Hit(ray); ok {
		t.Errorf("curvature axis outside the frame reported a hit")
	}

	// Curvature must cover the furthest frame point
	if _, err := NewRoundSpherical(2.0, 2.0, 0.5, optics.Concave, opts, "", nil); err == nil {
		t.Errorf("curvature short of the decentered frame accepted")
	}
}

func TestRectangularSphericalSurface(t *testing.T) {
	m, err := NewRectangularSpherical(3.0, 2.0, 10.0, 0.5, optics.Concave, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRectangularSpherical() error: %v", err)
	}

	hit := probeDown(t, m, 1.4, 0.9)
	wantZ := 10.0 - math.Sqrt(100.0-(1.4*1.4+0.9*0.9))
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("bowl at z = %g, want %g", hit.Point.Z, wantZ)
	}

	ray := core.NewRay(core.NewVec3(1.6, 0, 5), core.NewVec3(0, 0, -1))
	if _, ok := m.Hit(ray); ok {
		t.Errorf("ray beyond the frame width reported a hit")
	}
}

func TestRoundCylindricalCurvesInOneAxisOnly(t *testing.T) {
	m, err := NewRoundCylindrical(2.0, 10.0, 0.5, optics.Concave, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundCylindrical() error: %v", err)
	}

	// No curvature along the cylinder axis
	hit := probeDown(t, m, 0, 0.9)
	if math.Abs(hit.Point.Z) > 1e-9 {
		t.Errorf("surface at z = %g along the axis, want 0", hit.Point.Z)
	}

	// Full curvature across it
	hit = probeDown(t, m, 0.5, 0)
	wantZ := 10.0 - math.Sqrt(100.0-0.25)
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("surface at z = %g across the axis, want %g", hit.Point.Z, wantZ)
	}
}

func TestRoundToricPrincipalSections(t *testing.T) {
	m, err := NewRoundToric(2.0, 5.0, 10.0, 0.5, optics.Concave, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundToric() error: %v", err)
	}

	// The steep vertical curvature governs the y section
	hit := probeDown(t, m, 0, 0.5)
	wantZ := 5.0 - math.Sqrt(25.0-0.25)
	if math.Abs(hit.Point.Z-wantZ) > 1e-6 {
		t.Errorf("vertical section at z = %g, want %g", hit.Point.Z, wantZ)
	}

	// The shallow horizontal curvature governs the x section
	hit = probeDown(t, m, 0.5, 0)
	wantZ = 10.0 - math.Sqrt(100.0-0.25)
	if math.Abs(hit.Point.Z-wantZ) > 1e-6 {
		t.Errorf("horizontal section at z = %g, want %g", hit.Point.Z, wantZ)
	}
}

func TestFlatMirrors(t *testing.T) {
	m, err := NewRoundFlat(2.0, 0.5, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundFlat() error: %v", err)
	}
	hit := probeDown(t, m, 0.5, 0.5)
	if math.Abs(hit.Point.Z) > 1e-12 {
		t.Errorf("flat face at z = %g, want 0", hit.Point.Z)
	}
	if !m.Contains(core.NewVec3(0, 0, -0.25)) || m.Contains(core.NewVec3(0, 0, 0.25)) {
		t.Errorf("substrate containment misclassified")
	}

	r, err := NewRectangularFlat(3.0, 2.0, 0.5, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRectangularFlat() error: %v", err)
	}
	probeDown(t, r, 1.4, -0.9)
}

func TestMirrorValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Mirror, error)
	}{
		{"zero diameter", func() (*Mirror, error) {
			return NewRoundSpherical(0, 10, 0.5, optics.Concave, Options{}, "", nil)
		}},
		{"curvature below frame radius", func() (*Mirror, error) {
			return NewRoundSpherical(2, 0.8, 0.5, optics.Concave, Options{}, "", nil)
		}},
		{"plano kind on a curved constructor", func() (*Mirror, error) {
			return NewRoundSpherical(2, 10, 0.5, optics.Plano, Options{}, "", nil)
		}},
		{"convex thinner than its own sag", func() (*Mirror, error) {
			return NewRoundSpherical(2, 10, 0.01, optics.Convex, Options{}, "", nil)
		}},
		{"toric vertical curvature too steep", func() (*Mirror, error) {
			return NewRoundToric(2, 0.9, 10, 0.5, optics.Concave, Options{}, "", nil)
		}},
		{"cylindrical curvature below frame", func() (*Mirror, error) {
			return NewRoundCylindrical(2, 0.8, 0.5, optics.Concave, Options{}, "", nil)
		}},
		{"zero thickness", func() (*Mirror, error) {
			return NewRoundFlat(2, 0, Options{}, "", nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); err == nil {
				t.Errorf("expected a validation error")
			}
		})
	}
}

func TestSetTransformAbandonsWalk(t *testing.T) {
	m, err := NewRoundSpherical(2.0, 10.0, 0.5, optics.Concave, Options{}, "mirror", nil)
	if err != nil {
		t.Fatalf("NewRoundSpherical() error: %v", err)
	}

	if _, ok := m.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))); !ok {
		t.Fatalf("axial ray missed the mirror")
	}

	// Moving the mirror invalidates the crossings of the old frame
	m.SetTransform(core.Translate(0, 0, 3))
	if _, ok := m.NextIntersection(); ok {
		t.Errorf("crossing from before the move survived")
	}
}
