package object_test

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
)

func TestBoxProduceBody(t *testing.T) {
	box := object.NewBox(geometry.NewVector(1.0, 2.0, 3.0))
	body := box.ProduceBody(framework.NewStack[framework.ShaderCode](), nil)
	expected := "let q = abs(point)-vec3f(1.0,2.0,3.0);\nreturn length(max(q,vec3f(0.0))) + min(max(q.x,max(q.y,q.z)),0.0);\n"
	if body.String() != expected {
		t.Fatalf("got %q want %q", body.String(), expected)
	}
}

func TestBoxAabb(t *testing.T) {
	box := object.NewBox(geometry.NewVector(1.0, 2.0, 3.0))
	aabb := box.Aabb()
	extent := aabb.Extent()
	if extent.X != 2.0 || extent.Y != 4.0 || extent.Z != 6.0 {
		t.Fatalf("unexpected extent: %+v", extent)
	}
}

func TestBoxRejectsNonPositiveHalfExtent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive half extent")
		}
	}()
	object.NewBox(geometry.NewVector(1.0, 0.0, 1.0))
}
