package objects

import "github.com/corvidgfx/tracer-go/engine/geometry"

// Parallelogram is a flat quad primitive: an origin point plus two edge
// vectors spanning it, carrying the linkage every renderable entity needs so
// a GPU hit can be mapped back to host-side identity.
type Parallelogram struct {
	origin  geometry.Point
	localX  geometry.Vector
	localY  geometry.Vector
	linkage Linkage
}

// NewParallelogram builds a parallelogram from its origin and two edges.
func NewParallelogram(origin geometry.Point, localX, localY geometry.Vector, linkage Linkage) Parallelogram {
	return Parallelogram{origin: origin, localX: localX, localY: localY, linkage: linkage}
}

// Origin returns the parallelogram's corner point.
func (p Parallelogram) Origin() geometry.Point { return p.origin }

// LocalX returns the first edge vector.
func (p Parallelogram) LocalX() geometry.Vector { return p.localX }

// LocalY returns the second edge vector.
func (p Parallelogram) LocalY() geometry.Vector { return p.localY }

// Linkage returns the (uid, material) pair carried by this instance.
func (p Parallelogram) Linkage() Linkage { return p.linkage }

// WithLinkage returns a copy of p carrying a new linkage.
func (p Parallelogram) WithLinkage(l Linkage) Parallelogram {
	p.linkage = l
	return p
}

// Aabb returns pad(segment(origin, origin+local_x+local_y)): the padded box
// enclosing the parallelogram's two diagonal corners, which is sufficient
// since the other two corners lie within that box.
func (p Parallelogram) Aabb() geometry.Aabb {
	opposite := p.origin.Add(p.localX).Add(p.localY)
	return geometry.FromPoints([]geometry.Point{p.origin, opposite}).Pad()
}
