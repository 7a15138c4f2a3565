package primitive

import (
	"github.com/mzolin/go-optics-csg/pkg/core"
)

// Operation selects the boolean combination applied by a CSG node
type Operation int

const (
	// OpUnion keeps the region inside either operand
	OpUnion Operation = iota
	// OpIntersect keeps the region inside both operands
	OpIntersect
	// OpSubtract keeps the region inside the first operand but not the second
	OpSubtract
)

// CSG combines two primitives with a boolean operation. It implements the
// same Primitive contract as its children, so compounds nest freely.
//
// Intersections are found by walking the ray's boundary crossings of both
// children in distance order and reporting the crossings where the boolean
// membership of the compound flips. NextIntersection resumes the walk, so
// a CSG node enumerates every compound boundary crossing along a ray.
type CSG struct {
	core.Node
	op     Operation
	left   core.Primitive
	right  core.Primitive
	walker *csgWalker
}

// Union returns the boolean union of two primitives
func Union(a, b core.Primitive) *CSG { return newCSG(OpUnion, a, b) }

// Intersect returns the boolean intersection of two primitives
func Intersect(a, b core.Primitive) *CSG { return newCSG(OpIntersect, a, b) }

// Subtract returns a minus b
func Subtract(a, b core.Primitive) *CSG { return newCSG(OpSubtract, a, b) }

func newCSG(op Operation, a, b core.Primitive) *CSG {
	c := &CSG{Node: core.NewNode("", nil), op: op, left: a, right: b}
	c.Bind(c)
	return c
}

// Op returns the node's boolean operation
func (c *CSG) Op() Operation { return c.op }

// Operands returns the node's children
func (c *CSG) Operands() (core.Primitive, core.Primitive) { return c.left, c.right }

// SetTransform replaces the transform and abandons any walk in progress
func (c *CSG) SetTransform(m core.Transform) {
	c.walker = nil
	c.Node.SetTransform(m)
}

// valid evaluates the boolean membership of the compound
func (c *CSG) valid(insideA, insideB bool) bool {
	switch c.op {
	case OpUnion:
		return insideA || insideB
	case OpIntersect:
		return insideA && insideB
	default:
		return insideA && !insideB
	}
}

// csgWalker tracks the membership state of an in-progress boundary walk
type csgWalker struct {
	localRay core.Ray
	insideA  bool
	insideB  bool
	nextA    *core.Intersection
	nextB    *core.Intersection
}

// Hit returns the nearest boundary crossing of the compound solid
func (c *CSG) Hit(ray core.Ray) (*core.Intersection, bool) {
	local := ray.Transform(c.ToLocal())

	w := &csgWalker{localRay: local}
	w.insideA = c.left.Contains(local.Origin)
	w.insideB = c.right.Contains(local.Origin)
	w.nextA, _ = c.left.Hit(local)
	w.nextB, _ = c.right.Hit(local)

	c.walker = w
	return c.advance()
}

// NextIntersection resumes the walk and returns the next compound boundary
// crossing, if any
func (c *CSG) NextIntersection() (*core.Intersection, bool) {
	if c.walker == nil {
		return nil, false
	}
	return c.advance()
}

// advance consumes child crossings until the compound membership flips
func (c *CSG) advance() (*core.Intersection, bool) {
	w := c.walker
	for {
		var event *core.Intersection
		fromA := false

		switch {
		case w.nextA == nil && w.nextB == nil:
			c.walker = nil
			return nil, false
		case w.nextB == nil:
			event, fromA = w.nextA, true
		case w.nextA == nil:
			event, fromA = w.nextB, false
		case w.nextA.T <= w.nextB.T:
			event, fromA = w.nextA, true
		default:
			event, fromA = w.nextB, false
		}

		before := c.valid(w.insideA, w.insideB)
		if fromA {
			w.insideA = !w.insideA
			w.nextA, _ = c.left.NextIntersection()
		} else {
			w.insideB = !w.insideB
			w.nextB, _ = c.right.NextIntersection()
		}
		after := c.valid(w.insideA, w.insideB)

		if before == after {
			continue
		}

		// The child surfaces the compound here. Orient the child's outward
		// normal to be outward for the compound: subtracted surfaces face
		// the opposite way.
		exiting := !after
		normal := event.Normal
		if (w.localRay.Direction.Dot(normal) >= 0) != exiting {
			normal = normal.Negate()
		}
		return core.NewIntersection(event.T, event.Point, normal, w.localRay, c.ToLocal(), c.Transform(), c.Self()), true
	}
}

// Contains evaluates the boolean membership of the world-space point
func (c *CSG) Contains(p core.Vec3) bool {
	local := c.ToLocal().Point(p)
	return c.valid(c.left.Contains(local), c.right.Contains(local))
}

// BoundingBox returns the padded world-space bounding box of the compound
func (c *CSG) BoundingBox() core.AABB {
	boxA := c.left.BoundingBox()
	boxB := c.right.BoundingBox()

	var local core.AABB
	switch c.op {
	case OpUnion:
		local = boxA.Union(boxB)
	case OpIntersect:
		local = boxA.Intersection(boxB)
	default:
		local = boxA
	}
	return local.Transformed(c.Transform()).Pad(core.BoxPadding)
}

// BoundingSphere returns the padded world-space bounding sphere
func (c *CSG) BoundingSphere() core.BoundingSphere {
	return core.EnclosingSphere(c.BoundingBox())
}
