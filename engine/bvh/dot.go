package bvh

import (
	"fmt"
	"strings"
)

// DumpDot renders tree as a Graphviz digraph: one node per BvhNode, leaves
// labeled with their primitive kind and host index, internal nodes labeled
// with their split axis. Useful for eyeballing whether a scene's hierarchy
// degenerated (e.g. every split landing on the same axis) without
// instrumenting the renderer itself.
func DumpDot(tree Bvh) string {
	var b strings.Builder
	b.WriteString("digraph bvh {\n")
	b.WriteString("  node [shape=box];\n")

	counter := 0
	dumpNode(&b, tree.root, &counter)

	b.WriteString("}\n")
	return b.String()
}

func dumpNode(b *strings.Builder, node *BvhNode, counter *int) int {
	if node == nil {
		return -1
	}

	id := *counter
	*counter++

	if primitiveType, ok := node.ContentType(); ok {
		primitiveIndex, _ := node.ContentIndex()
		fmt.Fprintf(b, "  n%d [label=\"leaf\\n%v #%d\"];\n", id, primitiveType, primitiveIndex)
	} else {
		fmt.Fprintf(b, "  n%d [label=\"split %v\"];\n", id, node.Axis())
	}

	if node.left != nil {
		leftID := dumpNode(b, node.left, counter)
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, leftID)
	}
	if node.right != nil {
		rightID := dumpNode(b, node.right, counter)
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, rightID)
	}

	return id
}
