package primitive

import (
	"math"
	"testing"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

func TestSphereHitNearFar(t *testing.T) {
	s, err := NewSphere(1.0, "sphere", nil)
	if err != nil {
		t.Fatalf("NewSphere() error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := s.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed the sphere")
	}
	if math.Abs(hit.T-4) > 1e-12 {
		t.Errorf("near T = %g, want 4", hit.T)
	}
	if hit.Exiting {
		t.Errorf("near crossing flagged as exiting")
	}
	if math.Abs(hit.Normal.Z+1) > 1e-12 {
		t.Errorf("near normal = %+v, want (0, 0, -1)", hit.Normal)
	}

	far, ok := s.NextIntersection()
	if !ok {
		t.Fatalf("no far crossing")
	}
	if math.Abs(far.T-6) > 1e-12 {
		t.Errorf("far T = %g, want 6", far.T)
	}
	if !far.Exiting {
		t.Errorf("far crossing not flagged as exiting")
	}
	if math.Abs(far.Normal.Z-1) > 1e-12 {
		t.Errorf("far normal = %+v, want (0, 0, 1)", far.Normal)
	}

	// The cache yields exactly once
	if _, again := s.NextIntersection(); again {
		t.Errorf("far crossing produced twice")
	}
}

func TestSphereHitFromInside(t *testing.T) {
	s, _ := NewSphere(1.0, "", nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit, ok := s.Hit(ray)
	if !ok {
		t.Fatalf("interior ray missed the shell")
	}
	if math.Abs(hit.T-1) > 1e-12 {
		t.Errorf("T = %g, want 1", hit.T)
	}
	if !hit.Exiting {
		t.Errorf("interior crossing not flagged as exiting")
	}
	if _, again := s.NextIntersection(); again {
		t.Errorf("single-crossing ray produced a second intersection")
	}
}

func TestSphereMissAndBounds(t *testing.T) {
	s, _ := NewSphere(1.0, "", nil)
	if _, ok := s.Hit(core.NewRay(core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1))); ok {
		t.Errorf("offset ray reported a hit")
	}
	if !s.Contains(core.NewVec3(0.5, 0.5, 0.5)) {
		t.Errorf("interior point not contained")
	}
	if s.Contains(core.NewVec3(1.1, 0, 0)) {
		t.Errorf("exterior point contained")
	}
	box := s.BoundingBox()
	if box.Max.X < 1 || box.Min.X > -1 {
		t.Errorf("bounds %+v do not cover the sphere", box)
	}
}

func TestCylinderLateralAndCaps(t *testing.T) {
	c, err := NewCylinder(1.0, 2.0, "cyl", nil)
	if err != nil {
		t.Fatalf("NewCylinder() error: %v", err)
	}

	// Lateral crossing pair
	ray := core.NewRay(core.NewVec3(-5, 0, 1), core.NewVec3(1, 0, 0))
	hit, ok := c.Hit(ray)
	if !ok {
		t.Fatalf("lateral ray missed")
	}
	if math.Abs(hit.T-4) > 1e-12 || math.Abs(hit.Normal.X+1) > 1e-12 {
		t.Errorf("lateral near T = %g normal %+v, want 4 and (-1, 0, 0)", hit.T, hit.Normal)
	}
	far, ok := c.NextIntersection()
	if !ok || math.Abs(far.T-6) > 1e-12 {
		t.Fatalf("lateral far = %v, want T = 6", far)
	}

	// End cap crossing pair
	ray = core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1))
	hit, ok = c.Hit(ray)
	if !ok {
		t.Fatalf("axial ray missed")
	}
	if math.Abs(hit.T-3) > 1e-12 || math.Abs(hit.Normal.Z+1) > 1e-12 {
		t.Errorf("bottom cap T = %g normal %+v", hit.T, hit.Normal)
	}
	far, ok = c.NextIntersection()
	if !ok || math.Abs(far.T-5) > 1e-12 || math.Abs(far.Normal.Z-1) > 1e-12 {
		t.Fatalf("top cap = %+v, want T = 5 normal (0, 0, 1)", far)
	}

	// Lateral hit outside the axial window
	if _, ok := c.Hit(core.NewRay(core.NewVec3(-5, 0, 2.5), core.NewVec3(1, 0, 0))); ok {
		t.Errorf("ray above the cylinder reported a hit")
	}

	if !c.Contains(core.NewVec3(0, 0.5, 1)) || c.Contains(core.NewVec3(0, 0, 2.1)) {
		t.Errorf("containment misclassified")
	}
}

func TestBoxHit(t *testing.T) {
	b, err := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), "box", nil)
	if err != nil {
		t.Fatalf("NewBox() error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	hit, ok := b.Hit(ray)
	if !ok {
		t.Fatalf("axis ray missed the box")
	}
	if math.Abs(hit.T-4) > 1e-12 || math.Abs(hit.Normal.X+1) > 1e-12 {
		t.Errorf("near face T = %g normal %+v", hit.T, hit.Normal)
	}
	far, ok := b.NextIntersection()
	if !ok || math.Abs(far.T-6) > 1e-12 || math.Abs(far.Normal.X-1) > 1e-12 {
		t.Fatalf("far face = %+v, want T = 6 normal (1, 0, 0)", far)
	}

	// From inside only the exit face remains
	hit, ok = b.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	if !ok || math.Abs(hit.T-1) > 1e-12 || !hit.Exiting {
		t.Fatalf("interior hit = %+v, want exiting at T = 1", hit)
	}
	if _, again := b.NextIntersection(); again {
		t.Errorf("interior ray produced a second crossing")
	}
}

func TestSolidValidation(t *testing.T) {
	if _, err := NewSphere(0, "", nil); err == nil {
		t.Errorf("NewSphere accepted a zero radius")
	}
	if _, err := NewCylinder(1, -1, "", nil); err == nil {
		t.Errorf("NewCylinder accepted a negative height")
	}
	if _, err := NewBox(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 1), "", nil); err == nil {
		t.Errorf("NewBox accepted inverted corners")
	}
}
