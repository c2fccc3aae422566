package bvh

import (
	"testing"

	"github.com/corvidgfx/tracer-go/engine/geometry"
)

func triangleAabb(vertexData [9]float64) geometry.Aabb {
	a := geometry.NewPoint(vertexData[0], vertexData[1], vertexData[2])
	b := geometry.NewPoint(vertexData[3], vertexData[4], vertexData[5])
	c := geometry.NewPoint(vertexData[6], vertexData[7], vertexData[8])
	return geometry.FromTriangle(a, b, c)
}

func proxyOfTriangle(hostIndex int, vertexData [9]float64) SceneObjectProxy {
	return NewSceneObjectProxy(triangleAabb(vertexData), hostIndex, PrimitiveTypeTriangle)
}

func TestEmptySupport(t *testing.T) {
	root := MakeFor(nil)

	if root.left != nil || root.right != nil {
		t.Fatal("expected no children")
	}
	if root.content != nil {
		t.Fatal("expected no content")
	}
	if root.hitNode != nil || root.missNode != nil || root.rightOffset != nil {
		t.Fatal("expected no threaded pointers before threading")
	}
	if root.axis != geometry.AxisX {
		t.Fatalf("expected default axis X, got %v", root.axis)
	}
}

func TestSingleTriangleSupport(t *testing.T) {
	vertices := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	proxy := proxyOfTriangle(0, vertices)
	root := MakeFor([]SceneObjectProxy{proxy})

	if root.left != nil || root.right != nil {
		t.Fatal("expected leaf with no children")
	}
	index, ok := root.ContentIndex()
	if !ok || index != 0 {
		t.Fatalf("expected content index 0, got %d (ok=%v)", index, ok)
	}
	if root.axis != geometry.AxisX {
		t.Fatalf("expected default axis X, got %v", root.axis)
	}
}

func testTwoTriangleSupport(t *testing.T, axisOffset geometry.Vector, expectedAxis geometry.Axis) {
	left := [9]float64{
		1 + axisOffset.X, 0 + axisOffset.Y, 0 + axisOffset.Z,
		0 + axisOffset.X, 1 + axisOffset.Y, 0 + axisOffset.Z,
		0 + axisOffset.X, 0 + axisOffset.Y, 1 + axisOffset.Z,
	}
	right := [9]float64{
		1 - axisOffset.X, 0 - axisOffset.Y, 0 - axisOffset.Z,
		0 - axisOffset.X, 1 - axisOffset.Y, 0 - axisOffset.Z,
		0 - axisOffset.X, 0 - axisOffset.Y, 1 - axisOffset.Z,
	}

	root := MakeFor([]SceneObjectProxy{proxyOfTriangle(0, left), proxyOfTriangle(0, right)})

	if root.content != nil {
		t.Fatal("expected internal node, no content")
	}
	if root.axis != expectedAxis {
		t.Fatalf("expected split axis %v, got %v", expectedAxis, root.axis)
	}
}

func TestTwoAlongXTriangleSupport(t *testing.T) {
	testTwoTriangleSupport(t, geometry.UnitX, geometry.AxisX)
}

func TestTwoAlongYTriangleSupport(t *testing.T) {
	testTwoTriangleSupport(t, geometry.UnitY, geometry.AxisY)
}

func TestTwoAlongZTriangleSupport(t *testing.T) {
	testTwoTriangleSupport(t, geometry.UnitZ, geometry.AxisZ)
}

func TestIndexOfOrNullWithNil(t *testing.T) {
	if got := indexOfOrNull(nil); got != gpuNullReferenceMarker {
		t.Fatalf("got %d want %d", got, gpuNullReferenceMarker)
	}
}

func TestIndexOfOrNullWithNode(t *testing.T) {
	victim := newBvhNode()
	expectedIndex := 13
	victim.SetSerialIndex(expectedIndex)
	if got := indexOfOrNull(victim); got != int32(expectedIndex) {
		t.Fatalf("got %d want %d", got, expectedIndex)
	}
}

func TestSetSerialIndex(t *testing.T) {
	victim := newBvhNode()
	if victim.SerialIndex() != nil {
		t.Fatal("expected nil serial index on fresh node")
	}
	expectedIndex := 13
	victim.SetSerialIndex(expectedIndex)
	if victim.SerialIndex() == nil || *victim.SerialIndex() != expectedIndex {
		t.Fatalf("expected serial index %d", expectedIndex)
	}
}

func TestMissNodeIndexOrNull(t *testing.T) {
	node := newBvhNode()
	if got := node.MissNodeIndexOrNull(); got != gpuNullReferenceMarker {
		t.Fatalf("got %d want %d", got, gpuNullReferenceMarker)
	}

	missNode := newBvhNode()
	expectedMissIndex := 3
	missNode.SetSerialIndex(expectedMissIndex)
	node.missNode = missNode

	if got := node.MissNodeIndexOrNull(); got != int32(expectedMissIndex) {
		t.Fatalf("got %d want %d", got, expectedMissIndex)
	}
}

func TestMakeForEmptySupport(t *testing.T) {
	node := MakeFor([]SceneObjectProxy{})
	if node.left != nil || node.right != nil {
		t.Fatal("expected no children")
	}
}
