// Package morphing holds SDF nodes that reshape the sample point with a
// non-rigid, time-varying transform before delegating to a wrapped child —
// unlike transformation's static translation and scaling, these read the
// time parameter directly.
package morphing

import (
	"fmt"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// SdfTwisterAlongAxis winds child around axis by an angle that grows with
// distance along axis and oscillates in time, the canonical SDF "twist"
// deformation.
type SdfTwisterAlongAxis struct {
	target              framework.Sdf
	axis                geometry.Axis
	twistTimeScale      float64
	twistAmplitudeScale float64
}

// NewTwisterAlongAxis wraps target, twisting it around axis. twistTimeScale
// controls how fast the twist oscillates and twistAmplitudeScale how far it
// winds per unit distance along axis; both must be positive.
func NewTwisterAlongAxis(target framework.Sdf, axis geometry.Axis, twistTimeScale, twistAmplitudeScale float64) *SdfTwisterAlongAxis {
	if twistTimeScale <= 0.0 {
		panic("morphing: twist time scale must be positive")
	}
	if twistAmplitudeScale <= 0.0 {
		panic("morphing: twist amplitude scale must be positive")
	}
	return &SdfTwisterAlongAxis{
		target:              target,
		axis:                axis,
		twistTimeScale:      twistTimeScale,
		twistAmplitudeScale: twistAmplitudeScale,
	}
}

// formatEvaluation renders the WGSL that spins point's whole transverse
// plane by time (so the twist itself appears to rotate) composed with a
// per-point twist whose angle is proportional to the stable-axis coordinate,
// then writes the spun pair back into point alongside its untouched stable
// component.
func (t *SdfTwisterAlongAxis) formatEvaluation() string {
	sw := swizzleFromAxis(t.axis)
	amplitude := framework.FormatScalar(t.twistAmplitudeScale)
	timeScale := framework.FormatScalar(t.twistTimeScale)
	return fmt.Sprintf(
		"let whole_object_cos = cos(%[1]s);\n"+
			"let whole_object_sin = sin(%[1]s);\n"+
			"let whole_object_rotor: mat2x2f = mat2x2f(whole_object_cos, whole_object_sin, -whole_object_sin, whole_object_cos);\n"+
			"let twist_angle: f32 = %[2]s.%[3]s * %[4]s * sin(%[1]s*%[5]s);\n"+
			"let twist_cos = cos(twist_angle);\n"+
			"let twist_sin = sin(twist_angle);\n"+
			"let twister: mat2x2f = mat2x2f(twist_cos, -twist_sin, twist_sin, twist_cos);\n"+
			"let rotated: vec2f = (twister * whole_object_rotor) * %[2]s.%[6]s;\n"+
			"let %[2]s = %[7]s;",
		framework.TimeParameterName, framework.PointParameterName, sw.stableAxis,
		amplitude, timeScale, sw.rotatedPair, sw.finalComposition,
	)
}

// ProduceBody transforms point through the twist before delegating.
func (t *SdfTwisterAlongAxis) ProduceBody(children *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	child := children.Pop()
	return framework.ProduceParameterTransformBody(t.formatEvaluation(), child)
}

// AnimationOnly returns the twist applied to point with no further
// delegation: a fragment usable on its own to preview how the deformation
// alone moves a point, independent of the shape it's wrapped around.
func (t *SdfTwisterAlongAxis) AnimationOnly() (framework.ShaderCode, bool) {
	code := t.formatEvaluation() + fmt.Sprintf("\nreturn %s;\n", framework.PointParameterName)
	return framework.NewShaderCode(code), true
}

// Descendants returns [target].
func (t *SdfTwisterAlongAxis) Descendants() []framework.Sdf {
	return []framework.Sdf{t.target}
}

// Aabb returns the smallest box enclosing every pose the twist can reach:
// the cylinder target's bounding box sweeps out as it spins freely
// around axis.
func (t *SdfTwisterAlongAxis) Aabb() geometry.Aabb {
	return circumscribedCylinder(t.target.Aabb(), t.axis)
}
