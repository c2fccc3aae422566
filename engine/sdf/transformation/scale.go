package transformation

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfUniformScaling scales child by a single factor in every axis. Uniform
// scale is the only scale an SDF can carry without breaking its distance
// metric outright: a non-uniform scale distorts distances anisotropically,
// so ray-marching against it no longer converges to the true surface.
type SdfUniformScaling struct {
	factor float64
	child  framework.Sdf
}

// NewUniformScaling wraps child, scaled by factor. It panics if factor is
// not positive.
func NewUniformScaling(factor float64, child framework.Sdf) *SdfUniformScaling {
	if factor <= 0.0 {
		panic("transformation: scale factor must be positive")
	}
	return &SdfUniformScaling{factor: factor, child: child}
}

// Aabb returns child's bounding box scaled about the local origin.
func (s *SdfUniformScaling) Aabb() geometry.Aabb {
	return s.child.Aabb().Transform(geometry.UniformScaling(s.factor))
}

// Descendants returns [child].
func (s *SdfUniformScaling) Descendants() []framework.Sdf {
	return []framework.Sdf{s.child}
}

// ProduceBody divides point by the scale factor before delegating, and
// multiplies the child's resulting distance back up by it: scaling
// distorts distances by exactly the same factor it distorts space.
func (s *SdfUniformScaling) ProduceBody(children *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	child := children.Pop()
	factor := framework.FormatScalar(s.factor)
	statement := fmt.Sprintf("let %s = %s/%s;", framework.PointParameterName, framework.PointParameterName, factor)
	scaledChild := framework.AssignToLocal(child, "operand_1")
	body := fmt.Sprintf("var operand_1: f32;\n{\n%s\n{\n%s}\n}\nreturn operand_1*%s;\n", statement, scaledChild.String(), factor)
	return framework.NewShaderCode(body)
}

// AnimationOnly reports that a static scale never needs a separate
// animation fragment; its factor is fixed at scene-authoring time.
func (s *SdfUniformScaling) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
