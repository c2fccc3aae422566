package morphing

import (
	"math"

	"github.com/corvidgfx/tracer-go/engine/geometry"
)

// transverseAxes returns the two axes other than axis, in the same cyclic
// order the swizzle table uses to read and rewrite point's components.
func transverseAxes(axis geometry.Axis) (geometry.Axis, geometry.Axis) {
	switch axis {
	case geometry.AxisX:
		return geometry.AxisY, geometry.AxisZ
	case geometry.AxisY:
		return geometry.AxisZ, geometry.AxisX
	case geometry.AxisZ:
		return geometry.AxisX, geometry.AxisY
	default:
		panic("morphing: unknown axis")
	}
}

// circumscribedCylinder returns the smallest axis-aligned box enclosing the
// cylinder that box sweeps out as it spins freely around axis: the stable
// axis keeps box's own extent, and the two transverse axes both grow to the
// radius that circumscribes box's transverse cross-section. A twist never
// rotates further than a full spin can, so this bounds every twisted pose.
func circumscribedCylinder(box geometry.Aabb, axis geometry.Axis) geometry.Aabb {
	center := box.Center()
	halfExtent := box.Extent().Scale(0.5)
	t1, t2 := transverseAxes(axis)
	radius := math.Hypot(halfExtent.Component(t1), halfExtent.Component(t2))

	var half geometry.Vector
	switch axis {
	case geometry.AxisX:
		half = geometry.NewVector(halfExtent.Component(geometry.AxisX), radius, radius)
	case geometry.AxisY:
		half = geometry.NewVector(radius, halfExtent.Component(geometry.AxisY), radius)
	default:
		half = geometry.NewVector(radius, radius, halfExtent.Component(geometry.AxisZ))
	}
	return geometry.MakeAabb(center.Add(half.Scale(-1)), center.Add(half))
}
