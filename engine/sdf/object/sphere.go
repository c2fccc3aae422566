// Package object holds the leaf SDF primitives: analytic distance functions
// with no children, each a direct transcription of the canonical WGSL
// formula for its shape (see Inigo Quilez's "distance functions" article,
// the reference every renderer in this space cross-checks its primitives
// against).
package object

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfSphere is a sphere of the given radius centered on the local origin.
type SdfSphere struct {
	radius float64
}

// NewSphere builds a sphere SDF. It panics if radius is not positive.
func NewSphere(radius float64) *SdfSphere {
	if radius <= 0.0 {
		panic("object: sphere radius must be positive")
	}
	return &SdfSphere{radius: radius}
}

// Radius returns the sphere's radius.
func (s *SdfSphere) Radius() float64 { return s.radius }

// Aabb returns the cube circumscribing the sphere.
func (s *SdfSphere) Aabb() geometry.Aabb {
	r := s.radius
	return geometry.MakeAabb(geometry.NewPoint(-r, -r, -r), geometry.NewPoint(r, r, r))
}

// Descendants returns nil: a sphere is a leaf.
func (s *SdfSphere) Descendants() []framework.Sdf { return nil }

// ProduceBody returns the sphere's distance function body. levelsBelow is
// ignored: a leaf never declares a leveled local.
func (s *SdfSphere) ProduceBody(_ *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	return framework.NewShaderCode(fmt.Sprintf("return length(%s)-%s;\n", framework.PointParameterName, framework.FormatScalar(s.radius)))
}

// AnimationOnly reports that a sphere never needs a separate animation
// fragment: its only parameter, radius, does not vary with time.
func (s *SdfSphere) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
