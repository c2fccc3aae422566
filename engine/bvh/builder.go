package bvh

import "github.com/corvidgfx/tracer-go/engine/serialization"

// Bvh is a built, threaded bounding volume hierarchy ready for
// serialization: its root plus the total node count computed while
// assigning serial indices.
type Bvh struct {
	root       *BvhNode
	nodesCount int
}

// Root returns the hierarchy's root node.
func (b Bvh) Root() *BvhNode { return b.root }

// NodesCount returns how many nodes the hierarchy contains.
func (b Bvh) NodesCount() int { return b.nodesCount }

// Build constructs a threaded BVH over support: top-down median-split
// hierarchy, Hachisuka stackless threading, then a pre-order pass to assign
// each node its serial (GPU buffer) index.
func Build(support []SceneObjectProxy) Bvh {
	root := MakeFor(support)
	MakeTreeThreaded(root)

	nodesCount := 0
	evaluateSerialIndices(root, &nodesCount)

	return Bvh{root: root, nodesCount: nodesCount}
}

// BuildSerialized constructs a threaded BVH over support and immediately
// serializes it into a GPU-ready buffer.
func BuildSerialized(support []SceneObjectProxy) *serialization.Buffer {
	tree := Build(support)

	filler := float32(0.0)
	buffer := serialization.NewFilledBuffer(tree.nodesCount, serializedQuartetCount, filler)
	serializeTree(tree.root, buffer)

	return buffer
}

func serializeTree(root *BvhNode, buffer *serialization.Buffer) {
	if root == nil {
		return
	}
	depthFirstSearch(root, getBvhNodeChildren, func(node *BvhNode, _ *BvhNode) {
		node.SerializeInto(buffer)
	})
}

func evaluateSerialIndices(root *BvhNode, index *int) {
	if root == nil {
		return
	}
	depthFirstSearch(root, getBvhNodeChildren, func(node *BvhNode, _ *BvhNode) {
		node.SetSerialIndex(*index)
		*index++
	})
}
