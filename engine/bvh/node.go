package bvh

import (
	"sort"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/serialization"
)

// gpuNullReferenceMarker is the sentinel a node's miss index serializes to
// when it has no next node to fall through to — the ray has exhausted the
// whole tree.
const gpuNullReferenceMarker int32 = -1

// serializedQuartetCount is how many quartets BvhNode.SerializeInto writes
// per node: one for the min corner + primitive index, one for the max
// corner + primitive type, one for the miss index (padded out to a full
// quartet).
const serializedQuartetCount = 3

// SerializedQuartetCount implements serialization.GpuSerializationSize.
func (n *BvhNode) SerializedQuartetCount() int { return serializedQuartetCount }

var _ serialization.GpuSerializationSize = (*BvhNode)(nil)

type nodeContent struct {
	primitiveIndex int
	primitiveType  PrimitiveType
}

// BvhNode is one node of the bounding volume hierarchy, either an internal
// node (two children, no content) or a leaf (no children, one piece of
// content pointing back at a primitive in the scene container). After
// threading (MakeTreeThreaded), every node additionally carries the hit and
// miss pointers the GPU traversal loop follows instead of an explicit
// stack.
type BvhNode struct {
	left        *BvhNode
	right       *BvhNode
	boundingBox geometry.Aabb
	content     *nodeContent
	serialIndex *int

	hitNode     *BvhNode
	missNode    *BvhNode
	rightOffset *BvhNode

	axis geometry.Axis
}

func newBvhNode() *BvhNode {
	return &BvhNode{
		boundingBox: geometry.MakeNullAabb(),
		axis:        geometry.AxisX,
	}
}

func indexOfOrNull(node *BvhNode) int32 {
	if node == nil || node.serialIndex == nil {
		return gpuNullReferenceMarker
	}
	return int32(*node.serialIndex)
}

// MissNodeIndexOrNull returns the serialized index of this node's miss
// pointer, or gpuNullReferenceMarker if there isn't one.
func (n *BvhNode) MissNodeIndexOrNull() int32 {
	return indexOfOrNull(n.missNode)
}

// MakeFor builds the BVH over support, reordering support in place as part
// of the top-down median split. Returns a single content-less node for an
// empty support slice, matching the convention that an empty scene still
// has one (degenerate) BVH node to serialize.
func MakeFor(support []SceneObjectProxy) *BvhNode {
	if len(support) == 0 {
		return newBvhNode()
	}
	return buildHierarchy(support)
}

// Left returns this node's left child, or nil for a leaf.
func (n *BvhNode) Left() *BvhNode { return n.left }

// Right returns this node's right child, or nil for a leaf.
func (n *BvhNode) Right() *BvhNode { return n.right }

// SerialIndex returns the pre-order DFS index assigned to this node, or nil
// if one hasn't been assigned yet.
func (n *BvhNode) SerialIndex() *int { return n.serialIndex }

// SetSerialIndex assigns this node's pre-order DFS index.
func (n *BvhNode) SetSerialIndex(index int) { n.serialIndex = &index }

// ContentType returns this leaf's primitive type, or ok=false for an
// internal node.
func (n *BvhNode) ContentType() (PrimitiveType, bool) {
	if n.content == nil {
		return PrimitiveTypeNull, false
	}
	return n.content.primitiveType, true
}

// ContentIndex returns this leaf's host-container index, or ok=false for an
// internal node.
func (n *BvhNode) ContentIndex() (int, bool) {
	if n.content == nil {
		return 0, false
	}
	return n.content.primitiveIndex, true
}

// Aabb returns this node's bounding box.
func (n *BvhNode) Aabb() geometry.Aabb { return n.boundingBox }

// Axis returns the split axis chosen at this node (only meaningful for
// internal nodes).
func (n *BvhNode) Axis() geometry.Axis { return n.axis }

type stackItem struct {
	start, end int
	parent     *BvhNode
	isLeft     bool
}

// buildHierarchy is the iterative top-down median-split builder: at every
// level it computes the enclosing box, picks the axis of greatest extent,
// fully sorts the current span along that axis, and splits at the middle
// element. A full sort per level costs more asymptotically than a
// quickselect-based partition would, but it keeps the ordering within each
// half deterministic and matches the reference layout this tree's
// serialization is tested against.
func buildHierarchy(support []SceneObjectProxy) *BvhNode {
	var root *BvhNode

	stack := []stackItem{{start: 0, end: len(support) - 1, parent: nil, isLeft: false}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := newBvhNode()
		for i := item.start; i <= item.end; i++ {
			node.boundingBox = node.boundingBox.Union(support[i].Aabb())
		}

		span := item.end - item.start

		if item.parent != nil {
			if item.isLeft {
				item.parent.left = node
			} else {
				item.parent.right = node
			}
		} else {
			root = node
		}

		if span > 0 {
			axis := node.boundingBox.Extent().MaxAxis()
			comparator := comparatorFor(axis)

			subarray := make([]SceneObjectProxy, span+1)
			copy(subarray, support[item.start:item.end+1])
			sort.SliceStable(subarray, func(i, j int) bool {
				return comparator(subarray[i], subarray[j]) < 0
			})
			copy(support[item.start:item.end+1], subarray)

			middle := item.start + span/2

			stack = append(stack, stackItem{start: middle + 1, end: item.end, parent: node, isLeft: false})
			stack = append(stack, stackItem{start: item.start, end: middle, parent: node, isLeft: true})

			node.axis = axis
		} else {
			proxy := support[item.start]
			node.content = &nodeContent{
				primitiveIndex: proxy.HostContainerIndex(),
				primitiveType:  proxy.PrimitiveType(),
			}
		}
	}

	if root == nil {
		panic("bvh: at least one node must have been created")
	}
	return root
}

func boxCompare(left, right SceneObjectProxy, axis geometry.Axis) int {
	leftValue, _ := left.Aabb().Axis(axis)
	rightValue, _ := right.Aabb().Axis(axis)
	switch {
	case leftValue < rightValue:
		return -1
	case leftValue > rightValue:
		return 1
	default:
		return 0
	}
}

func comparatorFor(axis geometry.Axis) func(a, b SceneObjectProxy) int {
	return func(a, b SceneObjectProxy) int {
		return boxCompare(a, b, axis)
	}
}

func getBvhNodeChildren(node *BvhNode) (*BvhNode, *BvhNode) {
	return node.left, node.right
}

// MakeTreeThreaded computes every node's hit/miss pointers per Toshiya
// Hachisuka's stackless traversal scheme ("Implementing a practical
// rendering system using GLSL"): an internal node's hit pointer descends
// into its left child, its miss pointer falls through to whatever the
// traversal would have visited next if this whole subtree were absent. A
// leaf's hit and miss pointers are the same, since a leaf either matches or
// it doesn't — there's nowhere further down to descend either way.
func MakeTreeThreaded(root *BvhNode) {
	depthFirstSearch(root, getBvhNodeChildren, func(node *BvhNode, nextRight *BvhNode) {
		if node.content == nil {
			node.hitNode = node.left
			node.missNode = nextRight
			node.rightOffset = node.right
		} else {
			node.hitNode = nextRight
			node.missNode = nextRight
		}
	})
}

// SerializeInto writes this node's GPU representation at its assigned
// serial index. Panics if no serial index has been assigned.
func (n *BvhNode) SerializeInto(buffer *serialization.Buffer) {
	if n.serialIndex == nil {
		panic("bvh: serial index was not set")
	}

	var primitiveIndex uint32
	var primitiveType uint32
	if n.content != nil {
		primitiveIndex = uint32(n.content.primitiveIndex)
		primitiveType = uint32(n.content.primitiveType)
	} else {
		primitiveType = uint32(PrimitiveTypeNull)
	}

	buffer.WriteObject(*n.serialIndex, func(writer *serialization.ObjectWriter) {
		writer.WriteQuartet(func(w *serialization.QuartetWriter) {
			w.WriteFloat32(float32(n.boundingBox.Min().X)).
				WriteFloat32(float32(n.boundingBox.Min().Y)).
				WriteFloat32(float32(n.boundingBox.Min().Z)).
				WriteUnsigned(primitiveIndex)
		})

		writer.WriteQuartet(func(w *serialization.QuartetWriter) {
			w.WriteFloat32(float32(n.boundingBox.Max().X)).
				WriteFloat32(float32(n.boundingBox.Max().Y)).
				WriteFloat32(float32(n.boundingBox.Max().Z)).
				WriteUnsigned(primitiveType)
		})

		writer.WriteQuartet(func(w *serialization.QuartetWriter) {
			w.WriteSigned(n.MissNodeIndexOrNull())
		})
	})
}
