package framework

// DepthFirstSearch walks node's tree post-order (children before parent)
// and calls visit once per node with that node's subtree height: 0 for a
// leaf, 1 + the tallest child's height otherwise. Registration and code
// generation both rely on this height to name per-node temporaries so two
// subtrees inlined into the same function body never collide.
//
// The Rust original threads an explicit mutable context through the walk
// because closures there can't freely capture outer mutable state across
// the recursion; Go closures can, so callers just close over whatever state
// they need instead of passing it through DepthFirstSearch.
func DepthFirstSearch(node Sdf, visit func(candidate Sdf, levelsBelow int)) int {
	tallestChild := -1
	for _, child := range node.Descendants() {
		height := DepthFirstSearch(child, visit)
		if height > tallestChild {
			tallestChild = height
		}
	}
	levelsBelow := tallestChild + 1
	visit(node, levelsBelow)
	return levelsBelow
}
