package transformation_test

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
	"github.com/corvidgfx/tracer-go/engine/sdf/transformation"
)

func TestTranslationProduceBody(t *testing.T) {
	tree := transformation.NewTranslation(geometry.NewVector(-17.0, -19.0, -23.0), object.NewSphere(13.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(13.0).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)
	expected := "var operand_1: f32;\n{\nlet point = point-vec3f(-17.0,-19.0,-23.0);\n{\noperand_1 = length(point)-13.0;\n}\n}\nreturn operand_1;\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestTranslationAabb(t *testing.T) {
	offset := geometry.NewVector(1.0, 3.0, 5.0)
	tree := transformation.NewTranslation(offset, object.NewBox(geometry.NewVector(1.0, 1.0, 1.0)))
	center := tree.Aabb().Center()
	if center.X != 1.0 || center.Y != 3.0 || center.Z != 5.0 {
		t.Fatalf("unexpected center: %+v", center)
	}
}

func TestUniformScalingProduceBody(t *testing.T) {
	tree := transformation.NewUniformScaling(2.0, object.NewSphere(1.0))
	stack := framework.NewStack[framework.ShaderCode]()
	stack.Push(object.NewSphere(1.0).ProduceBody(stack, nil))
	body := tree.ProduceBody(stack, nil)
	expected := "var operand_1: f32;\n{\nlet point = point/2.0;\n{\noperand_1 = length(point)-1.0;\n}\n}\nreturn operand_1*2.0;\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestUniformScalingRejectsNonPositiveFactor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive scale factor")
		}
	}()
	transformation.NewUniformScaling(0.0, object.NewSphere(1.0))
}
