// Package primitive implements the analytic leaf shapes and the boolean
// combinators that lens and mirror solids are assembled from.
//
// Flat leaves (Circle, Rectangle, Triangle) are height-zero surfaces with a
// containment boundary. Curved leaves (Sphere, Cylinder, Torus and their
// height-bounded segments) solve their implicit surface equation per ray
// and cache the farther of two valid roots for NextIntersection. Union,
// Intersect and Subtract combine any primitives into compound solids using
// the same contract.
package primitive

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
)

// containEpsilon is the boundary tolerance for membership tests on flat,
// height-zero primitives
const containEpsilon = 1e-9

// parallelEpsilon rejects rays running parallel to a plane
const parallelEpsilon = 1e-12

// farHit is the single-slot cache of the farther intersection of the last
// Hit query. It is valid only immediately after the primary hit on the
// same ray and is cleared by any subsequent query or parameter mutation.
type farHit struct {
	pending bool
	t       float64
	point   core.Vec3 // local-frame hit point
	normal  core.Vec3 // local-frame outward normal
	ray     core.Ray  // local-frame originating ray
}

// take returns and clears the cached hit
func (f *farHit) take() (farHit, bool) {
	if !f.pending {
		return farHit{}, false
	}
	hit := *f
	f.pending = false
	return hit, true
}

// clear drops any pending cached hit
func (f *farHit) clear() {
	f.pending = false
}
