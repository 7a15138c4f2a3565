package primitive

import (
	"math"
	"testing"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

func TestSphereSegmentWindow(t *testing.T) {
	s, err := NewSphereSegment(2.0, 0.5, "cap", nil)
	if err != nil {
		t.Fatalf("NewSphereSegment() error: %v", err)
	}

	wantAperture := math.Sqrt(0.5 * (2*2.0 - 0.5))
	if math.Abs(s.ApertureRadius()-wantAperture) > 1e-12 {
		t.Errorf("ApertureRadius() = %g, want %g", s.ApertureRadius(), wantAperture)
	}

	// The vertex crossing survives, the far side of the sphere does not
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := s.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the cap")
	}
	if math.Abs(hit.T-5) > 1e-12 || math.Abs(hit.Normal.Z+1) > 1e-12 {
		t.Errorf("vertex crossing T = %g normal %+v", hit.T, hit.Normal)
	}
	if _, again := s.NextIntersection(); again {
		t.Errorf("far sphere crossing outside the window survived")
	}

	// Inside the aperture the surface sits at the local sag
	ray = core.NewRay(core.NewVec3(1.0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok = s.Hit(ray)
	if !ok {
		t.Fatalf("in-aperture ray missed")
	}
	wantZ := 2.0 - math.Sqrt(4.0-1.0)
	if math.Abs(hit.Point.Z-wantZ) > 1e-12 {
		t.Errorf("surface at z = %g, want %g", hit.Point.Z, wantZ)
	}

	// Beyond the aperture the sphere lies outside the window
	if _, ok := s.Hit(core.NewRay(core.NewVec3(1.35, 0, -5), core.NewVec3(0, 0, 1))); ok {
		t.Errorf("ray beyond the aperture reported a hit")
	}
}

func TestSphereSegmentValidation(t *testing.T) {
	tests := []struct {
		name             string
		radius, thickness float64
	}{
		{"zero radius", 0, 0.1},
		{"negative thickness", 1, -0.1},
		{"thickness beyond radius", 1, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSphereSegment(tt.radius, tt.thickness, "", nil); err == nil {
				t.Errorf("expected a validation error")
			}
		})
	}
}

func TestCylinderSegmentWindow(t *testing.T) {
	c, err := NewCylinderSegment(2.0, 0.5, 3.0, "cap", nil)
	if err != nil {
		t.Fatalf("NewCylinderSegment() error: %v", err)
	}

	// Along the cylinder axis the surface stays at the vertex plane
	ray := core.NewRay(core.NewVec3(0, 1.0, -5), core.NewVec3(0, 0, 1))
	hit, ok := c.Hit(ray)
	if !ok {
		t.Fatalf("on-axis ray missed")
	}
	if math.Abs(hit.Point.Z) > 1e-12 {
		t.Errorf("vertex line at z = %g, want 0", hit.Point.Z)
	}

	// Across the curvature the surface recedes by the local sag
	ray = core.NewRay(core.NewVec3(1.0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok = c.Hit(ray)
	if !ok {
		t.Fatalf("cross-axis ray missed")
	}
	wantZ := 2.0 - math.Sqrt(4.0-1.0)
	if math.Abs(hit.Point.Z-wantZ) > 1e-12 {
		t.Errorf("surface at z = %g, want %g", hit.Point.Z, wantZ)
	}

	// Beyond the half-length the segment ends
	if _, ok := c.Hit(core.NewRay(core.NewVec3(0, 1.6, -5), core.NewVec3(0, 0, 1))); ok {
		t.Errorf("ray beyond the half-length reported a hit")
	}
}

func TestTorusSegmentCrossings(t *testing.T) {
	const (
		radiusMajor    = 3.0
		radiusMinor    = 2.0
		curveThickness = 0.5
	)
	seg, err := NewTorusSegment(radiusMajor, radiusMinor, curveThickness, "cap", nil)
	if err != nil {
		t.Fatalf("NewTorusSegment() error: %v", err)
	}

	// Downward axial ray: apex first, then the flat base
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, ok := seg.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the cap")
	}
	if math.Abs(hit.Point.Z-curveThickness) > 1e-9 {
		t.Errorf("apex at z = %g, want %g", hit.Point.Z, curveThickness)
	}
	if math.Abs(hit.Normal.Z-1) > 1e-9 {
		t.Errorf("apex normal %+v, want (0, 0, 1)", hit.Normal)
	}

	base, ok := seg.NextIntersection()
	if !ok {
		t.Fatalf("no base crossing")
	}
	if math.Abs(base.Point.Z) > 1e-9 {
		t.Errorf("base at z = %g, want 0", base.Point.Z)
	}
	if math.Abs(base.Normal.Z+1) > 1e-9 {
		t.Errorf("base normal %+v, want (0, 0, -1)", base.Normal)
	}
	if _, again := seg.NextIntersection(); again {
		t.Errorf("sub-plane torus crossings were not folded into one base hit")
	}

	// Upward ray sees the base first
	hit, ok = seg.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatalf("upward ray missed the cap")
	}
	if math.Abs(hit.Point.Z) > 1e-9 || hit.Exiting {
		t.Errorf("upward entry = %+v, want base plane entry", hit)
	}

	// Off-axis the curved sheet sits at the toroidal sag
	hit, ok = seg.Hit(core.NewRay(core.NewVec3(1.0, 0, 5), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatalf("off-axis ray missed the cap")
	}
	centerZ := curveThickness - (radiusMajor + radiusMinor)
	wantZ := centerZ + math.Sqrt(math.Pow(radiusMajor+radiusMinor, 2)-1.0)
	if math.Abs(hit.Point.Z-wantZ) > 1e-6 {
		t.Errorf("curved sheet at z = %g, want %g", hit.Point.Z, wantZ)
	}
}

func TestTorusSegmentContains(t *testing.T) {
	seg, _ := NewTorusSegment(3.0, 2.0, 0.5, "", nil)
	if !seg.Contains(core.NewVec3(0, 0, 0.25)) {
		t.Errorf("point under the apex not contained")
	}
	if seg.Contains(core.NewVec3(0, 0, -0.25)) {
		t.Errorf("point below the base plane contained")
	}
	if seg.Contains(core.NewVec3(0, 0, 0.6)) {
		t.Errorf("point above the apex contained")
	}
}

func TestTorusSegmentValidation(t *testing.T) {
	if _, err := NewTorusSegment(3.0, 2.0, 2.5, "", nil); err == nil {
		t.Errorf("curve thickness beyond the minor radius accepted")
	}
	if _, err := NewTorusSegment(0, 2.0, 0.5, "", nil); err == nil {
		t.Errorf("zero major radius accepted")
	}
}

func TestFullTorusQueuesAllCrossings(t *testing.T) {
	torus, err := NewTorus(3.0, 1.0, "torus", nil)
	if err != nil {
		t.Fatalf("NewTorus() error: %v", err)
	}

	// A diameter ray pierces the tube on both sides of the axis
	ray := core.NewRay(core.NewVec3(-10, 0, 0), core.NewVec3(1, 0, 0))
	hit, ok := torus.Hit(ray)
	if !ok {
		t.Fatalf("diameter ray missed the torus")
	}
	want := []float64{6, 8, 12, 14}
	got := []float64{hit.T}
	for {
		next, ok := torus.NextIntersection()
		if !ok {
			break
		}
		got = append(got, next.T)
	}
	if len(got) != len(want) {
		t.Fatalf("crossing count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("crossing %d at T = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestTorusSegmentDegeneratesToSphereSegment(t *testing.T) {
	// With a vanishing central circle both principal curvatures of the
	// toric cap collapse to the tube radius and the face must match a
	// spherical cap of that radius, in both principal sections.
	const (
		radiusMajor    = 1e-7
		radiusMinor    = 2.0
		curveThickness = 0.5
	)
	tor, err := NewTorusSegment(radiusMajor, radiusMinor, curveThickness, "toric", nil)
	if err != nil {
		t.Fatalf("NewTorusSegment() error: %v", err)
	}
	sph, err := NewSphereSegment(radiusMinor, curveThickness, "spherical", nil)
	if err != nil {
		t.Fatalf("NewSphereSegment() error: %v", err)
	}

	offsets := []struct {
		name string
		x, y float64
	}{
		{"inner x", 0.3, 0},
		{"outer x", 0.7, 0},
		{"inner y", 0, 0.3},
		{"outer y", 0, 0.7},
	}

	for _, tt := range offsets {
		t.Run(tt.name, func(t *testing.T) {
			// The toric apex sits at z = curveThickness curving down,
			// the spherical vertex at z = 0 curving up; the sags must
			// agree.
			torHit, ok := tor.Hit(core.NewRay(core.NewVec3(tt.x, tt.y, 5), core.NewVec3(0, 0, -1)))
			if !ok {
				t.Fatalf("ray missed the toric cap")
			}
			sphHit, ok := sph.Hit(core.NewRay(core.NewVec3(tt.x, tt.y, -5), core.NewVec3(0, 0, 1)))
			if !ok {
				t.Fatalf("ray missed the spherical cap")
			}

			torSag := curveThickness - torHit.Point.Z
			sphSag := sphHit.Point.Z
			if math.Abs(torSag-sphSag) > 1e-5 {
				t.Errorf("toric sag %g, spherical sag %g at (%g, %g)", torSag, sphSag, tt.x, tt.y)
			}
		})
	}
}
