package composition

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfSubtraction removes right's volume from left: computed as
// max(left, -right). The result can never extend outside left's own
// bounding box.
type SdfSubtraction struct {
	left, right framework.Sdf
}

// NewSubtraction builds left minus right.
func NewSubtraction(left, right framework.Sdf) *SdfSubtraction {
	return &SdfSubtraction{left: left, right: right}
}

// Aabb returns left's bounding box unchanged.
func (s *SdfSubtraction) Aabb() geometry.Aabb {
	return s.left.Aabb()
}

// Descendants returns [left, right].
func (s *SdfSubtraction) Descendants() []framework.Sdf {
	return []framework.Sdf{s.left, s.right}
}

// ProduceBody combines the operands as max(left, -right).
func (s *SdfSubtraction) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return fmt.Sprintf("max(%s,-%s)", l, r)
	})
}

// AnimationOnly reports that a subtraction itself never needs a separate
// animation fragment; any animation lives in its operands.
func (s *SdfSubtraction) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
