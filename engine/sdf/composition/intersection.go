package composition

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfIntersection is the geometric intersection of two SDFs: the surface
// farther from the sample point wins, computed as max(left, right).
type SdfIntersection struct {
	left, right framework.Sdf
}

// NewIntersection builds the intersection of left and right.
func NewIntersection(left, right framework.Sdf) *SdfIntersection {
	return &SdfIntersection{left: left, right: right}
}

// Aabb returns the intersection of both operands' bounding boxes: the
// result can never extend outside either one.
func (i *SdfIntersection) Aabb() geometry.Aabb {
	return i.left.Aabb().Intersection(i.right.Aabb())
}

// Descendants returns [left, right].
func (i *SdfIntersection) Descendants() []framework.Sdf {
	return []framework.Sdf{i.left, i.right}
}

// ProduceBody combines the operands with max.
func (i *SdfIntersection) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return fmt.Sprintf("max(%s,%s)", l, r)
	})
}

// AnimationOnly reports that an intersection itself never needs a separate
// animation fragment; any animation lives in its operands.
func (i *SdfIntersection) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
