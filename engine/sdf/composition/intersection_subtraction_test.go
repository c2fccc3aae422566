package composition_test

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/sdf/composition"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
)

func TestIntersectionProduceBody(t *testing.T) {
	tree := composition.NewIntersection(object.NewSphere(1.0), object.NewSphere(2.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(1.0).ProduceBody(stack, nil))
	stack.Push(object.NewSphere(2.0).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)
	expected := "var left: f32;\n{\nleft = length(point)-1.0;\n}\nvar right: f32;\n{\nright = length(point)-2.0;\n}\n\nreturn max(left,right);\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestIntersectionAabb(t *testing.T) {
	tree := composition.NewIntersection(object.NewSphere(1.0), object.NewSphere(2.0))
	box := tree.Aabb()
	if box.IsEmpty() {
		t.Fatal("expected non-empty intersection of two overlapping spheres' boxes")
	}
}

func TestSubtractionProduceBody(t *testing.T) {
	tree := composition.NewSubtraction(object.NewSphere(1.0), object.NewSphere(2.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(1.0).ProduceBody(stack, nil))
	stack.Push(object.NewSphere(2.0).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)
	expected := "var left: f32;\n{\nleft = length(point)-1.0;\n}\nvar right: f32;\n{\nright = length(point)-2.0;\n}\n\nreturn max(left,-right);\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestSubtractionAabbMatchesLeft(t *testing.T) {
	left := object.NewSphere(1.0)
	tree := composition.NewSubtraction(left, object.NewSphere(2.0))
	if tree.Aabb() != left.Aabb() {
		t.Fatal("expected subtraction aabb to equal left operand's aabb")
	}
}

func TestSmoothUnionRejectsNonPositiveBlend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive blend radius")
		}
	}()
	composition.NewSmoothUnion(object.NewSphere(1.0), object.NewSphere(2.0), 0.0)
}

func TestSmoothUnionAabbInflatesByBlendRadius(t *testing.T) {
	plain := composition.NewUnion(object.NewSphere(1.0), object.NewSphere(2.0))
	smooth := composition.NewSmoothUnion(object.NewSphere(1.0), object.NewSphere(2.0), 0.5)
	plainExtent := plain.Aabb().Extent()
	smoothExtent := smooth.Aabb().Extent()
	if smoothExtent.X <= plainExtent.X {
		t.Fatalf("expected smooth union aabb to be larger than plain union's, got %v vs %v", smoothExtent.X, plainExtent.X)
	}
}
