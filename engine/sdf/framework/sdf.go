// Package framework hosts the SDF compositional tree's open contract — the
// Sdf interface every primitive, transformation, morphing, and composition
// node satisfies — plus the machinery that walks a tree of those nodes and
// emits deduplicated WGSL for it: registration, structural-sharing
// detection, and code generation.
//
// The tree itself (engine/sdf/object, .../transformation, .../morphing,
// .../composition) depends on this package; this package never depends on
// them, so third-party primitives can implement Sdf without touching the
// generator.
package framework

import (
	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/shader"
)

// ShaderCode is the WGSL function-body fragment type every Sdf produces and
// the code generator assembles. Aliased here so every tree package only
// needs to import this package, not engine/shader, to work with bodies.
type ShaderCode = shader.ShaderCode[shader.FunctionBody]

// FunctionName is the WGSL identifier a generated SDF function is declared
// and invoked under. Aliased here for the same reason as ShaderCode.
type FunctionName = shader.FunctionName

// NewFunctionName wraps an already-formatted WGSL identifier.
func NewFunctionName(name string) FunctionName {
	return shader.NewFunctionName(name)
}

// Sdf is the capability interface every node of an SDF compositional tree
// implements, whether it is a leaf primitive, a unary transformation or
// morphing, or an n-ary composition.
type Sdf interface {
	// Aabb returns the node's local-space bounding box.
	Aabb() geometry.Aabb

	// Descendants returns the node's direct children, in a fixed order
	// matching the order ProduceBody expects their bodies to have been
	// pushed in. Leaves return nil.
	Descendants() []Sdf

	// ProduceBody renders this node's WGSL function body, consuming
	// exactly len(Descendants()) entries off the top of children (pushed
	// there by the caller's depth-first walk, one per descendant, in
	// order) and returning a body ending in "return <expr>;\n".
	//
	// levelsBelow is nil when the body is being produced solely to test
	// for structural equality with another node's body — in that mode a
	// node must render itself identically regardless of its position in
	// the tree, so composition nodes fall back to unleveled local
	// variable names (e.g. "left"/"right" rather than "left_3"/"right_3").
	// It is non-nil — the node's own subtree height — when the body is
	// being emitted for real, so sibling subtrees inlined into the same
	// function don't collide on variable names.
	ProduceBody(children *Stack[ShaderCode], levelsBelow *int) ShaderCode

	// AnimationOnly reports whether the node contributes a time-varying
	// transform (e.g. a twist whose angle is driven by the clock) that
	// needs its own WGSL fragment separate from the distance body, and if
	// so returns it.
	AnimationOnly() (ShaderCode, bool)
}
