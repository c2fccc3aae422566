package object_test

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
)

func TestSphereProduceBody(t *testing.T) {
	sphere := object.NewSphere(17.0)
	body := sphere.ProduceBody(framework.NewStack[framework.ShaderCode](), nil)
	expected := "return length(point)-17.0;\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestSphereAabb(t *testing.T) {
	sphere := object.NewSphere(2.0)
	box := sphere.Aabb()
	min, max := box.Axis(0)
	if min != -2.0 || max != 2.0 {
		t.Fatalf("expected [-2,2] on axis 0, got [%v,%v]", min, max)
	}
}

func TestSphereRejectsNonPositiveRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive radius")
		}
	}()
	object.NewSphere(0.0)
}
