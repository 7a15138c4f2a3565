package core

// Material marks the optical medium assigned to a primitive. Shading and
// light transport belong to the host renderer; this library only carries
// the assignment through construction.
type Material interface{}

// GeometryObserver receives change notifications from primitives whose
// geometry parameters or transforms were mutated after construction.
// The owning scene graph uses this to mark bounding volumes stale.
type GeometryObserver interface {
	GeometryChanged(p Primitive)
}

// Primitive is the contract every solid and surface in this library
// implements.
//
// Hit and NextIntersection share a single-slot cache of the second root on
// curved primitives. The pair is not safe for concurrent use against the
// same instance: callers must serialize queries per primitive and drain
// NextIntersection before issuing a hit query for a different ray.
type Primitive interface {
	// Hit returns the nearest intersection along the ray, if any
	Hit(ray Ray) (*Intersection, bool)
	// NextIntersection returns the cached farther intersection of the last
	// Hit query exactly once. It must be called with the same ray; this is
	// a caller obligation and is not re-validated.
	NextIntersection() (*Intersection, bool)
	// Contains reports whether the world-space point lies inside the solid
	Contains(p Vec3) bool
	// BoundingBox returns a padded world-space bounding box
	BoundingBox() AABB
	// BoundingSphere returns a padded world-space bounding sphere
	BoundingSphere() BoundingSphere

	Name() string
	Material() Material
	Transform() Transform
	SetTransform(m Transform)
	// NotifyGeometryChange signals the attached observer that cached
	// bounding volumes are stale
	NotifyGeometryChange()
	Attach(observer GeometryObserver)
}

// Node carries the scene-graph attachment shared by every primitive:
// name, material, local-to-world transform and the change observer.
// Primitives embed it and layer their geometry on top.
type Node struct {
	name      string
	material  Material
	transform Transform
	toLocal   Transform
	observer  GeometryObserver
	self      Primitive
}

// NewNode creates a node with an identity transform
func NewNode(name string, material Material) Node {
	return Node{
		name:      name,
		material:  material,
		transform: Identity(),
		toLocal:   Identity(),
	}
}

// Name returns the primitive's name
func (n *Node) Name() string { return n.name }

// SetName sets the primitive's name
func (n *Node) SetName(name string) { n.name = name }

// Material returns the primitive's material
func (n *Node) Material() Material { return n.material }

// SetMaterial sets the primitive's material
func (n *Node) SetMaterial(m Material) { n.material = m }

// Transform returns the local-to-world transform
func (n *Node) Transform() Transform { return n.transform }

// ToLocal returns the cached world-to-local transform
func (n *Node) ToLocal() Transform { return n.toLocal }

// SetTransform replaces the local-to-world transform and notifies the
// observer. Primitives with intersection caches wrap this to invalidate
// them in the same call.
func (n *Node) SetTransform(m Transform) {
	n.transform = m
	n.toLocal = m.Inverse()
	n.NotifyGeometryChange()
}

// Attach registers the scene-graph observer and remembers the outer
// primitive so notifications identify it
func (n *Node) Attach(observer GeometryObserver) {
	n.observer = observer
}

// Bind records the outer primitive for observer notifications.
// Called once by primitive constructors.
func (n *Node) Bind(self Primitive) { n.self = self }

// Self returns the outer primitive bound to this node
func (n *Node) Self() Primitive { return n.self }

// NotifyGeometryChange forwards a geometry change to the observer, if any
func (n *Node) NotifyGeometryChange() {
	if n.observer != nil {
		n.observer.GeometryChanged(n.self)
	}
}
