package objects

import "github.com/corvidgfx/tracer-go/engine/geometry"

// SdfClassIndex identifies a registered SDF prototype class in the SDF
// warehouse; it is the index the generated WGSL sdf_select dispatcher
// switches on.
type SdfClassIndex uint32

// SdfInstance is a placement of a prototype (SDF class) at a specific affine
// transform, plus the per-instance step scale sphere tracing needs to tame a
// morphed SDF whose Lipschitz constant exceeds 1.
type SdfInstance struct {
	classIndex        SdfClassIndex
	transform         geometry.Affine
	rayMarchStepScale float64
	linkage           Linkage
}

// NewSdfInstance builds an SDF instance. It panics if rayMarchStepScale is
// not positive: a non-positive step scale would stall or reverse sphere
// tracing.
func NewSdfInstance(classIndex SdfClassIndex, transform geometry.Affine, rayMarchStepScale float64, linkage Linkage) SdfInstance {
	if rayMarchStepScale <= 0.0 {
		panic("objects: sdf instance ray march step scale must be positive")
	}
	return SdfInstance{classIndex: classIndex, transform: transform, rayMarchStepScale: rayMarchStepScale, linkage: linkage}
}

// ClassIndex returns the prototype class this instance places.
func (s SdfInstance) ClassIndex() SdfClassIndex { return s.classIndex }

// Transform returns the instance's placement transform.
func (s SdfInstance) Transform() geometry.Affine { return s.transform }

// RayMarchStepScale returns the per-instance sphere-tracing step multiplier.
func (s SdfInstance) RayMarchStepScale() float64 { return s.rayMarchStepScale }

// Linkage returns the (uid, material) pair carried by this instance.
func (s SdfInstance) Linkage() Linkage { return s.linkage }

// WithLinkage returns a copy of s carrying a new linkage.
func (s SdfInstance) WithLinkage(l Linkage) SdfInstance {
	s.linkage = l
	return s
}

// Aabb returns prototypeAabb transformed into world space by this instance's
// placement, per the contract in the data model: instance AABB =
// prototype_aabb.transform(instance_transform).
func (s SdfInstance) Aabb(prototypeAabb geometry.Aabb) geometry.Aabb {
	return prototypeAabb.Transform(s.transform)
}
