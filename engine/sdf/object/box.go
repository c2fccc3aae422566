package object

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfBox is an axis-aligned box centered on the local origin, given by its
// half-extents along each axis.
type SdfBox struct {
	halfExtents geometry.Vector
}

// NewBox builds a box SDF from its half-extents. It panics if any component
// is not positive.
func NewBox(halfExtents geometry.Vector) *SdfBox {
	if halfExtents.X <= 0.0 || halfExtents.Y <= 0.0 || halfExtents.Z <= 0.0 {
		panic("object: box half-extents must be positive")
	}
	return &SdfBox{halfExtents: halfExtents}
}

// HalfExtents returns the box's half-extents.
func (b *SdfBox) HalfExtents() geometry.Vector { return b.halfExtents }

// Aabb returns the box's own extent, since it is already axis-aligned.
func (b *SdfBox) Aabb() geometry.Aabb {
	h := b.halfExtents
	return geometry.MakeAabb(geometry.NewPoint(-h.X, -h.Y, -h.Z), geometry.NewPoint(h.X, h.Y, h.Z))
}

// Descendants returns nil: a box is a leaf.
func (b *SdfBox) Descendants() []framework.Sdf { return nil }

// ProduceBody returns the box's distance function body.
func (b *SdfBox) ProduceBody(_ *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	h := b.halfExtents
	body := fmt.Sprintf(
		"let q = abs(%s)-%s;\nreturn length(max(q,vec3f(0.0))) + min(max(q.x,max(q.y,q.z)),0.0);\n",
		framework.PointParameterName, framework.FormatVec3(h.X, h.Y, h.Z),
	)
	return framework.NewShaderCode(body)
}

// AnimationOnly reports that a box never needs a separate animation
// fragment: its half-extents do not vary with time.
func (b *SdfBox) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
