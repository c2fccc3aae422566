// Package bvh builds the bounding volume hierarchy the GPU intersection
// shader walks to find the nearest hit along a ray, and serializes it into
// the same quartet-based wire format every other GPU-resident object uses.
package bvh

import "github.com/corvidgfx/tracer-go/engine/geometry"

// PrimitiveType identifies what kind of renderable a BVH leaf points back
// to, so the intersection shader knows which host array (and which
// intersection routine) to dispatch to.
type PrimitiveType int32

const (
	// PrimitiveTypeNull marks a node with no content: every internal node,
	// and the single node produced for an empty scene.
	PrimitiveTypeNull PrimitiveType = iota
	// PrimitiveTypeParallelogram identifies an analytic parallelogram.
	PrimitiveTypeParallelogram
	// PrimitiveTypeTriangle identifies a mesh triangle.
	PrimitiveTypeTriangle
	// PrimitiveTypeSdf identifies an SDF instance.
	PrimitiveTypeSdf
)

// SceneObjectProxy is the minimal view of a renderable object the BVH
// builder needs: its world-space bounding box, which host-side array holds
// its full data, and which kind of primitive it is. The container builds
// one of these per object right before a (re)build, rather than the BVH
// depending on the container's full object types.
type SceneObjectProxy struct {
	boundingBox        geometry.Aabb
	hostContainerIndex int
	primitiveType      PrimitiveType
}

// NewSceneObjectProxy builds a proxy.
func NewSceneObjectProxy(boundingBox geometry.Aabb, hostContainerIndex int, primitiveType PrimitiveType) SceneObjectProxy {
	return SceneObjectProxy{
		boundingBox:        boundingBox,
		hostContainerIndex: hostContainerIndex,
		primitiveType:      primitiveType,
	}
}

// String renders the primitive kind's name for diagnostics.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveTypeNull:
		return "Null"
	case PrimitiveTypeParallelogram:
		return "Parallelogram"
	case PrimitiveTypeTriangle:
		return "Triangle"
	case PrimitiveTypeSdf:
		return "Sdf"
	default:
		return "Unknown"
	}
}

// Aabb returns the proxy's world-space bounding box.
func (p SceneObjectProxy) Aabb() geometry.Aabb { return p.boundingBox }

// HostContainerIndex returns the index into the primitive's own host array
// (the triangle array, the parallelogram array, ...) this proxy stands in
// for.
func (p SceneObjectProxy) HostContainerIndex() int { return p.hostContainerIndex }

// PrimitiveType returns which host array this proxy's index refers to.
func (p SceneObjectProxy) PrimitiveType() PrimitiveType { return p.primitiveType }
