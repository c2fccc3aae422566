package composition

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// smoothMinExpr renders Inigo Quilez's polynomial smooth minimum: blends a
// and b over a band of width k around their crossover instead of the hard
// corner a plain min/max produces, so a smooth-union/intersection/
// subtraction's surface stays C1-continuous where operands meet.
func smoothMinExpr(a, b string, k float64) string {
	kLit := framework.FormatScalar(k)
	return fmt.Sprintf(
		"(%s - 0.25*%s*pow(clamp(1.0 - abs(%s - %s)/%s, 0.0, 1.0), 2.0))",
		fmt.Sprintf("min(%s,%s)", a, b), kLit, a, b, kLit,
	)
}

// SdfSmoothUnion is SdfUnion's smooth-blended counterpart: operands within
// k of each other's surface blend instead of meeting at a hard edge.
type SdfSmoothUnion struct {
	left, right framework.Sdf
	k           float64
}

// NewSmoothUnion builds the smooth union of left and right with blend
// radius k. It panics if k is not positive — k=0 degenerates to a plain
// union, which NewUnion expresses directly.
func NewSmoothUnion(left, right framework.Sdf, k float64) *SdfSmoothUnion {
	if k <= 0.0 {
		panic("composition: smooth union blend radius must be positive")
	}
	return &SdfSmoothUnion{left: left, right: right, k: k}
}

// Aabb returns the union of both operands' bounding boxes, inflated by the
// blend radius: the smoothed surface can bulge slightly beyond either
// operand alone.
func (u *SdfSmoothUnion) Aabb() geometry.Aabb {
	return u.left.Aabb().Union(u.right.Aabb()).Offset(u.k)
}

// Descendants returns [left, right].
func (u *SdfSmoothUnion) Descendants() []framework.Sdf {
	return []framework.Sdf{u.left, u.right}
}

// ProduceBody combines the operands with the smooth minimum.
func (u *SdfSmoothUnion) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return smoothMinExpr(l, r, u.k)
	})
}

// AnimationOnly reports that a smooth union itself never needs a separate
// animation fragment; any animation lives in its operands.
func (u *SdfSmoothUnion) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}

// SdfSmoothIntersection is SdfIntersection's smooth-blended counterpart,
// implemented as the negated smooth union of the negated operands.
type SdfSmoothIntersection struct {
	left, right framework.Sdf
	k           float64
}

// NewSmoothIntersection builds the smooth intersection of left and right
// with blend radius k. It panics if k is not positive.
func NewSmoothIntersection(left, right framework.Sdf, k float64) *SdfSmoothIntersection {
	if k <= 0.0 {
		panic("composition: smooth intersection blend radius must be positive")
	}
	return &SdfSmoothIntersection{left: left, right: right, k: k}
}

// Aabb returns the intersection of both operands' bounding boxes, inflated
// by the blend radius.
func (i *SdfSmoothIntersection) Aabb() geometry.Aabb {
	return i.left.Aabb().Intersection(i.right.Aabb()).Offset(i.k)
}

// Descendants returns [left, right].
func (i *SdfSmoothIntersection) Descendants() []framework.Sdf {
	return []framework.Sdf{i.left, i.right}
}

// ProduceBody combines the operands with -smin(-left,-right,k).
func (i *SdfSmoothIntersection) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return fmt.Sprintf("-%s", smoothMinExpr("-"+l, "-"+r, i.k))
	})
}

// AnimationOnly reports that a smooth intersection itself never needs a
// separate animation fragment; any animation lives in its operands.
func (i *SdfSmoothIntersection) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}

// SdfSmoothSubtraction is SdfSubtraction's smooth-blended counterpart.
type SdfSmoothSubtraction struct {
	left, right framework.Sdf
	k           float64
}

// NewSmoothSubtraction builds left minus right with blend radius k. It
// panics if k is not positive.
func NewSmoothSubtraction(left, right framework.Sdf, k float64) *SdfSmoothSubtraction {
	if k <= 0.0 {
		panic("composition: smooth subtraction blend radius must be positive")
	}
	return &SdfSmoothSubtraction{left: left, right: right, k: k}
}

// Aabb returns left's bounding box inflated by the blend radius.
func (s *SdfSmoothSubtraction) Aabb() geometry.Aabb {
	return s.left.Aabb().Offset(s.k)
}

// Descendants returns [left, right].
func (s *SdfSmoothSubtraction) Descendants() []framework.Sdf {
	return []framework.Sdf{s.left, s.right}
}

// ProduceBody combines the operands with -smin(-left,right,k).
func (s *SdfSmoothSubtraction) ProduceBody(children *framework.Stack[framework.ShaderCode], levelsBelow *int) framework.ShaderCode {
	right := children.Pop()
	left := children.Pop()
	return framework.ProduceBinaryOpBody(left, right, levelsBelow, func(l, r string) string {
		return fmt.Sprintf("-%s", smoothMinExpr("-"+l, r, s.k))
	})
}

// AnimationOnly reports that a smooth subtraction itself never needs a
// separate animation fragment; any animation lives in its operands.
func (s *SdfSmoothSubtraction) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
