// Package composition holds the n-ary set-theoretic SDF operators — union,
// intersection, subtraction, and their smooth-blended variants — each
// combining its operands' distances with a single WGSL expression.
package composition

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfUnion is the geometric union of two SDFs: the surface closer to the
// sample point wins, computed as min(left, right).
type SdfUnion struct {
	left, right framework.Sdf
}

// NewUnion builds the union of left and right.
func NewUnion(left, right framework.Sdf) *SdfUnion {
	return &SdfUnion{left: left, right: right}
}

// Aabb returns the union of both operands' bounding boxes.
func (u *SdfUnion) Aabb() geometry.Aabb {
	return u.left.Aabb().Union(u.right.Aabb())
}

// Descendants returns [left, right], in the order ProduceBody expects their
// bodies to have been pushed.
func (u *SdfUnion) Descendants() []framework.Sdf {
	return []framework.Sdf{u.left, u.right}
}

// ProduceBody pops right then left (Descendants() pushed left first, so it
// sits deeper in the stack) and combines them with min.
func (u *SdfUnion) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return fmt.Sprintf("min(%s,%s)", l, r)
	})
}

// AnimationOnly reports that a union itself never needs a separate
// animation fragment; any animation lives in its operands.
func (u *SdfUnion) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
