package lens

import (
	"math"
	"testing"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/optics"
)

// axialCrossings fires a ray down the optical axis and returns the z
// coordinates of the first two boundary crossings
func axialCrossings(t *testing.T, e *Element) (float64, float64) {
	t.Helper()
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	first, ok := e.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the lens")
	}
	second, ok := e.NextIntersection()
	if !ok {
		t.Fatalf("axial ray produced no exit crossing")
	}
	return first.Point.Z, second.Point.Z
}

func TestBiConvexAxialCrossings(t *testing.T) {
	e, err := NewBiConvex(2.0, 0.6, 2.0, 2.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConvex() error: %v", err)
	}
	if !e.IsShort() {
		t.Errorf("expected the short assembly for a thin bi-convex lens")
	}

	enter, exit := axialCrossings(t, e)
	if math.Abs(enter) > 1e-9 {
		t.Errorf("axial entry at z = %g, want back vertex at 0", enter)
	}
	if math.Abs(exit-0.6) > 1e-9 {
		t.Errorf("axial exit at z = %g, want front vertex at 0.6", exit)
	}
}

func TestBiConvexEntryNormalOpposesRay(t *testing.T) {
	e, err := NewBiConvex(2.0, 0.6, 2.0, 2.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConvex() error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := e.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the lens")
	}
	if hit.Exiting {
		t.Errorf("first crossing flagged as exiting")
	}
	if dot := hit.Normal.Dot(ray.Direction); dot >= 0 {
		t.Errorf("entry normal dot direction = %g, want negative", dot)
	}
}

func TestBiConvexShortLongTransition(t *testing.T) {
	const (
		d = 2.0
		R = 2.0
	)
	sag, err := optics.CapSag(R, d*0.5)
	if err != nil {
		t.Fatalf("CapSag() error: %v", err)
	}
	threshold := 2.0*R - 2.0*sag

	tests := []struct {
		name      string
		ct        float64
		wantShort bool
	}{
		{"below threshold", threshold - 0.01, true},
		{"above threshold", threshold + 0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewBiConvex(d, tt.ct, R, R, "lens", nil)
			if err != nil {
				t.Fatalf("NewBiConvex() error: %v", err)
			}
			if e.IsShort() != tt.wantShort {
				t.Errorf("IsShort() = %v, want %v", e.IsShort(), tt.wantShort)
			}

			// The axial extent of the bounds must equal the center
			// thickness on both sides of the transition
			box := e.BoundingBox()
			extent := box.Max.Z - box.Min.Z
			if math.Abs(extent-tt.ct) > 1e-8 {
				t.Errorf("axial bounds extent = %g, want %g", extent, tt.ct)
			}

			enter, exit := axialCrossings(t, e)
			if math.Abs(enter) > 1e-9 || math.Abs(exit-tt.ct) > 1e-9 {
				t.Errorf("axial crossings at %g, %g, want 0, %g", enter, exit, tt.ct)
			}
		})
	}
}

func TestBiConvexAsymmetricCoverageForcesLong(t *testing.T) {
	// A hemispherical front cap cannot cover a barrel longer than its own
	// depth, so the sag-overlap test alone would pick an invalid short
	// assembly here
	e, err := NewBiConvex(2.0, 1.5, 1.0, 100.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConvex() error: %v", err)
	}
	if e.IsShort() {
		t.Errorf("expected the long assembly when the front cap cannot span the barrel")
	}

	enter, exit := axialCrossings(t, e)
	if math.Abs(enter) > 1e-9 || math.Abs(exit-1.5) > 1e-9 {
		t.Errorf("axial crossings at %g, %g, want 0, 1.5", enter, exit)
	}
}

func TestBiConcaveAxialCrossings(t *testing.T) {
	e, err := NewBiConcave(2.0, 0.4, 3.0, 3.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConcave() error: %v", err)
	}

	enter, exit := axialCrossings(t, e)
	if math.Abs(enter) > 1e-9 || math.Abs(exit-0.4) > 1e-9 {
		t.Errorf("axial crossings at %g, %g, want 0, 0.4", enter, exit)
	}

	// Edge thickness grows by both sags for concave faces
	sag, _ := optics.CapSag(3.0, 1.0)
	wantEdge := 0.4 + 2.0*sag
	if math.Abs(e.EdgeThickness()-wantEdge) > 1e-12 {
		t.Errorf("EdgeThickness() = %g, want %g", e.EdgeThickness(), wantEdge)
	}

	// Bounds span from the back rim to the front rim
	box := e.BoundingBox()
	if math.Abs(box.Min.Z+sag) > 1e-8 || math.Abs(box.Max.Z-(0.4+sag)) > 1e-8 {
		t.Errorf("bounds [%g, %g], want [%g, %g]", box.Min.Z, box.Max.Z, -sag, 0.4+sag)
	}
}

func TestPlanoConvexAxialCrossings(t *testing.T) {
	e, err := NewPlanoConvex(2.0, 0.5, 2.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewPlanoConvex() error: %v", err)
	}

	enter, exit := axialCrossings(t, e)
	if math.Abs(enter) > 1e-9 {
		t.Errorf("flat back face at z = %g, want exactly 0", enter)
	}
	if math.Abs(exit-0.5) > 1e-9 {
		t.Errorf("front vertex at z = %g, want 0.5", exit)
	}
}

func TestMeniscusAxialCrossings(t *testing.T) {
	e, err := NewMeniscus(2.0, 0.5, 1.8, 3.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewMeniscus() error: %v", err)
	}

	enter, exit := axialCrossings(t, e)
	if math.Abs(enter) > 1e-9 || math.Abs(exit-0.5) > 1e-9 {
		t.Errorf("axial crossings at %g, %g, want 0, 0.5", enter, exit)
	}
}

func TestCylindricalBiConvexCurvesInOneAxisOnly(t *testing.T) {
	const (
		d  = 2.0
		ct = 0.5
		R  = 2.0
	)
	e, err := NewCylindricalBiConvex(d, ct, R, R, "lens", nil)
	if err != nil {
		t.Fatalf("NewCylindricalBiConvex() error: %v", err)
	}

	// Along the cylinder axis the faces stay at the vertex planes
	ray := core.NewRay(core.NewVec3(0, 0.8, -5), core.NewVec3(0, 0, 1))
	hit, ok := e.Hit(ray)
	if !ok {
		t.Fatalf("vertical offset ray missed the lens")
	}
	if math.Abs(hit.Point.Z) > 1e-9 {
		t.Errorf("vertical offset entry at z = %g, want 0", hit.Point.Z)
	}

	// Across the curvature the entry recedes by the local sag
	ray = core.NewRay(core.NewVec3(0.8, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok = e.Hit(ray)
	if !ok {
		t.Fatalf("horizontal offset ray missed the lens")
	}
	wantZ := R - math.Sqrt(R*R-0.64)
	if math.Abs(hit.Point.Z-wantZ) > 1e-9 {
		t.Errorf("horizontal offset entry at z = %g, want %g", hit.Point.Z, wantZ)
	}
}

func TestToricPlanoConvexPrincipalSections(t *testing.T) {
	const (
		d  = 2.0
		ct = 0.5
		rv = 5.0
		rh = 10.0
	)
	e, err := NewToricPlanoConvex(d, ct, rv, rh, "lens", nil)
	if err != nil {
		t.Fatalf("NewToricPlanoConvex() error: %v", err)
	}
	face := e.Geometry().FrontToric
	if face == nil {
		t.Fatalf("front face is not toric")
	}
	if face.RadiusMinor != rv || face.RadiusMajor != rh-rv || face.Rotated {
		t.Fatalf("unexpected decomposition %+v", *face)
	}

	tests := []struct {
		name   string
		origin core.Vec3
		radius float64 // governing curvature radius in this section
		offset float64
	}{
		{"vertical section", core.NewVec3(0, 0.6, 5), rv, 0.6},
		{"horizontal section", core.NewVec3(0.6, 0, 5), rh, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			hit, ok := e.Hit(ray)
			if !ok {
				t.Fatalf("probe ray missed the lens")
			}
			sag := tt.radius - math.Sqrt(tt.radius*tt.radius-tt.offset*tt.offset)
			if got, want := hit.Point.Z, ct-sag; math.Abs(got-want) > 1e-6 {
				t.Errorf("front surface at z = %g, want %g", got, want)
			}
		})
	}
}

func TestLensValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Element, error)
	}{
		{"zero diameter", func() (*Element, error) {
			return NewBiConvex(0, 0.5, 2, 2, "", nil)
		}},
		{"negative thickness", func() (*Element, error) {
			return NewBiConvex(2, -0.1, 2, 2, "", nil)
		}},
		{"curvature below half aperture", func() (*Element, error) {
			return NewBiConvex(2, 0.5, 0.9, 2, "", nil)
		}},
		{"vanishing edge", func() (*Element, error) {
			return NewBiConvex(2, 1.5, 1.0, 1.0, "", nil)
		}},
		{"toric equal radii", func() (*Element, error) {
			return NewToricPlanoConvex(2, 0.5, 5, 5, "", nil)
		}},
		{"cylindrical curvature below half aperture", func() (*Element, error) {
			return NewCylindricalPlanoConvex(2, 0.5, 0.5, "", nil)
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

func TestLensTransformPlacement(t *testing.T) {
	e, err := NewBiConvex(2.0, 0.6, 2.0, 2.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConvex() error: %v", err)
	}
	e.SetTransform(core.Translate(0, 0, 10))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := e.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the translated lens")
	}
	if math.Abs(hit.Point.Z-10) > 1e-9 {
		t.Errorf("translated back vertex at z = %g, want 10", hit.Point.Z)
	}
	if !e.Contains(core.NewVec3(0, 0, 10.3)) {
		t.Errorf("center of the translated lens not contained")
	}
	if e.Contains(core.NewVec3(0, 0, 0.3)) {
		t.Errorf("original location still contained after translation")
	}
}

func TestSetTransformAbandonsWalk(t *testing.T) {
	e, err := NewBiConvex(2.0, 0.6, 2.0, 2.0, "lens", nil)
	if err != nil {
		t.Fatalf("NewBiConvex() error: %v", err)
	}

	if _, ok := e.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))); !ok {
		t.Fatalf("axial ray missed the lens")
	}

	// Moving the lens invalidates the crossings of the old frame
	e.SetTransform(core.Translate(0, 0, 3))
	if _, ok := e.NextIntersection(); ok {
		t.Errorf("crossing from before the move survived")
	}
}
