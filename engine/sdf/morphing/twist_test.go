package morphing_test

import (
	"strings"
	"testing"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/morphing"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
)

func TestTwisterAlongAxisProduceBody(t *testing.T) {
	tree := morphing.NewTwisterAlongAxis(object.NewBox(geometry.NewVector(1.0, 1.0, 1.0)), geometry.AxisZ, 1.0, 1.0)
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewBox(geometry.NewVector(1.0, 1.0, 1.0)).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)

	expectedEvaluation := "let whole_object_cos = cos(time);\n" +
		"let whole_object_sin = sin(time);\n" +
		"let whole_object_rotor: mat2x2f = mat2x2f(whole_object_cos, whole_object_sin, -whole_object_sin, whole_object_cos);\n" +
		"let twist_angle: f32 = point.z * 1.0 * sin(time*1.0);\n" +
		"let twist_cos = cos(twist_angle);\n" +
		"let twist_sin = sin(twist_angle);\n" +
		"let twister: mat2x2f = mat2x2f(twist_cos, -twist_sin, twist_sin, twist_cos);\n" +
		"let rotated: vec2f = (twister * whole_object_rotor) * point.xy;\n" +
		"let point = vec3f(rotated, point.z);"

	if got := body.String(); !strings.Contains(got, expectedEvaluation) {
		t.Fatalf("body does not contain expected twist evaluation:\ngot:  %q\nwant substring: %q", got, expectedEvaluation)
	}
}

func TestTwisterAlongAxisAabb(t *testing.T) {
	cubeHalfSize := 1.0
	center := geometry.NewVector(1.0, 3.0, 5.0)
	shiftedCube := translatedBox(center, cubeHalfSize)
	tree := morphing.NewTwisterAlongAxis(shiftedCube, geometry.AxisZ, 1.0, 1.0)

	aabb := tree.Aabb()
	actualCenter := aabb.Center()
	if actualCenter.X != center.X || actualCenter.Y != center.Y || actualCenter.Z != center.Z {
		t.Fatalf("unexpected center: %+v", actualCenter)
	}
	extent := aabb.Extent()
	if extent.Z != cubeHalfSize*2.0 {
		t.Fatalf("expected invariant axis (Z) extent unchanged, got %v", extent.Z)
	}
	expectedRadius := (cubeHalfSize*cubeHalfSize + cubeHalfSize*cubeHalfSize)
	if extent.X*extent.X/4.0 < expectedRadius-1e-9 || extent.X*extent.X/4.0 > expectedRadius+1e-9 {
		t.Fatalf("unexpected twisted X extent: %v", extent.X)
	}
}

func TestTwisterAlongAxisRejectsNonPositiveScales(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive twist time scale")
		}
	}()
	morphing.NewTwisterAlongAxis(object.NewSphere(1.0), geometry.AxisZ, 0.0, 1.0)
}

func translatedBox(center geometry.Vector, halfSize float64) *translatedBoxSdf {
	return &translatedBoxSdf{center: center, halfSize: halfSize}
}

// translatedBoxSdf is a minimal stand-in so the aabb test doesn't have to
// reach into the transformation package just to place a box off-origin.
type translatedBoxSdf struct {
	center   geometry.Vector
	halfSize float64
}

func (b *translatedBoxSdf) Aabb() geometry.Aabb {
	half := geometry.NewVector(b.halfSize, b.halfSize, b.halfSize)
	min := geometry.OriginPoint.Add(b.center).Add(half.Scale(-1))
	max := geometry.OriginPoint.Add(b.center).Add(half)
	return geometry.MakeAabb(min, max)
}
func (b *translatedBoxSdf) Descendants() []framework.Sdf { return nil }
func (b *translatedBoxSdf) ProduceBody(_ *framework.Stack[framework.ShaderCode], _ *int) framework.ShaderCode {
	return framework.NewShaderCode("return 0.0;\n")
}
func (b *translatedBoxSdf) AnimationOnly() (framework.ShaderCode, bool) {
	return framework.ShaderCode{}, false
}
