package objects

import "github.com/corvidgfx/tracer-go/engine/geometry"

// Vertex is a triangle corner: a position plus its shading normal.
type Vertex struct {
	Position geometry.Point
	Normal   geometry.Vector
}

// Triangle is three vertices plus the linkage identifying which object and
// material they belong to. Triangle order within the container's flat list
// carries no meaning — the BVH references triangles by explicit index, so
// deletion may reorder the list freely (see swap-remove in the container).
type Triangle struct {
	vertices [3]Vertex
	linkage  Linkage
}

// NewTriangle builds a triangle from its three vertices and linkage.
func NewTriangle(a, b, c Vertex, linkage Linkage) Triangle {
	return Triangle{vertices: [3]Vertex{a, b, c}, linkage: linkage}
}

// Vertices returns the triangle's three corners.
func (t Triangle) Vertices() [3]Vertex { return t.vertices }

// Linkage returns the (uid, material) pair carried by this triangle.
func (t Triangle) Linkage() Linkage { return t.linkage }

// WithLinkage returns a copy of t carrying a new linkage.
func (t Triangle) WithLinkage(l Linkage) Triangle {
	t.linkage = l
	return t
}

// Aabb returns the bounding box of the triangle's three vertex positions.
func (t Triangle) Aabb() geometry.Aabb {
	return geometry.FromTriangle(t.vertices[0].Position, t.vertices[1].Position, t.vertices[2].Position)
}

// Transform returns a copy of t with every vertex position and normal
// carried through affine — positions via TransformPoint, normals via
// TransformNormal so non-uniform scale doesn't tilt the shading normal.
func (t Triangle) Transform(affine geometry.Affine) Triangle {
	out := t
	for i, v := range t.vertices {
		out.vertices[i] = Vertex{
			Position: affine.TransformPoint(v.Position),
			Normal:   affine.TransformNormal(v.Normal),
		}
	}
	return out
}
