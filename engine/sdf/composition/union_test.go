package composition_test

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/sdf/composition"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
)

func TestUnionProduceBodyUnleveled(t *testing.T) {
	tree := composition.NewUnion(object.NewSphere(1.0), object.NewSphere(2.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(1.0).ProduceBody(stack, nil))
	stack.Push(object.NewSphere(2.0).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)
	expected := "var left: f32;\n{\nleft = length(point)-1.0;\n}\nvar right: f32;\n{\nright = length(point)-2.0;\n}\n\nreturn min(left,right);\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
	if stack.Size() != 0 {
		t.Fatalf("expected both children consumed, stack size %d", stack.Size())
	}
}

func TestUnionProduceBodyLeveled(t *testing.T) {
	tree := composition.NewUnion(object.NewSphere(1.0), object.NewSphere(2.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(1.0).ProduceBody(stack, nil))
	stack.Push(object.NewSphere(2.0).ProduceBody(stack, nil))
	levels := 3
	body := tree.ProduceBody(stack, &levels)
	expected := "var left_3: f32;\n{\nleft_3 = length(point)-1.0;\n}\nvar right_3: f32;\n{\nright_3 = length(point)-2.0;\n}\n\nreturn min(left_3,right_3);\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestUnionAabb(t *testing.T) {
	tree := composition.NewUnion(object.NewSphere(1.0), object.NewSphere(2.0))
	box := tree.Aabb()
	extent := box.Extent()
	if extent.X != 4.0 {
		t.Fatalf("expected union extent 4.0 on X, got %v", extent.X)
	}
}
