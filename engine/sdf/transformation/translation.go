// Package transformation holds the SDF nodes that reshape the sample point
// before delegating to a single wrapped child: translation and uniform
// scaling.
package transformation

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfTranslation places child at offset in the parent's coordinate space.
type SdfTranslation struct {
	offset geometry.Vector
	child  framework.Sdf
}

// NewTranslation wraps child, translated by offset.
func NewTranslation(offset geometry.Vector, child framework.Sdf) *SdfTranslation {
	return &SdfTranslation{offset: offset, child: child}
}

// Aabb returns child's bounding box translated by offset.
func (t *SdfTranslation) Aabb() geometry.Aabb {
	return t.child.Aabb().Translate(t.offset)
}

// Descendants returns [child].
func (t *SdfTranslation) Descendants() []framework.Sdf {
	return []framework.Sdf{t.child}
}

// ProduceBody shifts point into child's local space before delegating.
func (t *SdfTranslation) ProduceBody(children *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	child := children.Pop()
	statement := fmt.Sprintf("let %s = %s-%s;", framework.PointParameterName, framework.PointParameterName, framework.FormatVec3(t.offset.X, t.offset.Y, t.offset.Z))
	return framework.ProduceParameterTransformBody(statement, child)
}

// AnimationOnly reports that a static translation never needs a separate
// animation fragment; its offset is fixed at scene-authoring time.
func (t *SdfTranslation) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
