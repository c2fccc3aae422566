package morphing

import "github.com/corvidgfx/tracer-go/engine/geometry"

// swizzle names the WGSL fragments a twist along one axis needs to read the
// two transverse components off point, and to write the twisted pair back
// into a full vec3f alongside the untouched stable component.
type swizzle struct {
	stableAxis       string
	rotatedPair      string
	finalComposition string
}

// swizzleFromAxis returns the swizzle for twisting around axis, cycling the
// transverse axes in the same X->Y->Z->X order the BVH split-axis and AABB
// axis indexing already use.
func swizzleFromAxis(axis geometry.Axis) swizzle {
	switch axis {
	case geometry.AxisX:
		return swizzle{stableAxis: "x", rotatedPair: "yz", finalComposition: "vec3f(point.x, rotated)"}
	case geometry.AxisY:
		return swizzle{stableAxis: "y", rotatedPair: "zx", finalComposition: "vec3f(rotated.y, point.y, rotated.x)"}
	case geometry.AxisZ:
		return swizzle{stableAxis: "z", rotatedPair: "xy", finalComposition: "vec3f(rotated, point.z)"}
	default:
		panic("morphing: unknown axis")
	}
}
