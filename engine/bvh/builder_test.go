package bvh

import (
	"bytes"
	"math"
	"testing"
)

func float32At(backend []byte, offset int) float32 {
	return math.Float32frombits(uint32At(backend, offset))
}

func int32At(backend []byte, offset int) int32 {
	return int32(uint32At(backend, offset))
}

func uint32At(backend []byte, offset int) uint32 {
	return uint32(backend[offset]) | uint32(backend[offset+1])<<8 | uint32(backend[offset+2])<<16 | uint32(backend[offset+3])<<24
}

func TestEvaluateSerialIndicesNone(t *testing.T) {
	nodesCount := 0
	evaluateSerialIndices(nil, &nodesCount)
	if nodesCount != 0 {
		t.Fatalf("got %d want 0", nodesCount)
	}
}

func TestEvaluateSerialIndicesSingleNode(t *testing.T) {
	dummy := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	root := MakeFor([]SceneObjectProxy{proxyOfTriangle(0, dummy)})

	nodesCount := 0
	evaluateSerialIndices(root, &nodesCount)

	if nodesCount != 1 {
		t.Fatalf("got %d want 1", nodesCount)
	}
	if root.SerialIndex() == nil || *root.SerialIndex() != 0 {
		t.Fatal("expected root serial index 0")
	}
}

func TestEvaluateSerialIndicesRootWithTwoLeaves(t *testing.T) {
	one := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	two := [9]float64{2, 0, 0, 0, 2, 0, 0, 0, 2}
	root := MakeFor([]SceneObjectProxy{proxyOfTriangle(0, one), proxyOfTriangle(1, two)})

	nodesCount := 0
	evaluateSerialIndices(root, &nodesCount)

	if nodesCount != 3 {
		t.Fatalf("got %d want 3", nodesCount)
	}
	if root.SerialIndex() == nil || *root.SerialIndex() != 0 {
		t.Fatal("expected root serial index 0")
	}
	if root.left == nil || root.left.SerialIndex() == nil || *root.left.SerialIndex() != 1 {
		t.Fatal("expected left child serial index 1")
	}
	if root.right == nil || root.right.SerialIndex() == nil || *root.right.SerialIndex() != 2 {
		t.Fatal("expected right child serial index 2")
	}
}

func TestSingleTriangleSerialized(t *testing.T) {
	vertices := [9]float64{1, 0, 0, 0, 2, 0, 0, 0, 3}
	proxies := []SceneObjectProxy{proxyOfTriangle(0, vertices)}
	buffer := BuildSerialized(proxies)
	backend := buffer.Backend()

	if got := float32At(backend, 0); got != 0.0 {
		t.Fatalf("min.x: got %v", got)
	}
	if got := float32At(backend, 4); got != 0.0 {
		t.Fatalf("min.y: got %v", got)
	}
	if got := float32At(backend, 8); got != 0.0 {
		t.Fatalf("min.z: got %v", got)
	}
	if got := uint32At(backend, 12); got != 0 {
		t.Fatalf("primitive index: got %v", got)
	}

	if got := float32At(backend, 16); got != 1.0 {
		t.Fatalf("max.x: got %v", got)
	}
	if got := float32At(backend, 20); got != 2.0 {
		t.Fatalf("max.y: got %v", got)
	}
	if got := float32At(backend, 24); got != 3.0 {
		t.Fatalf("max.z: got %v", got)
	}
	if got := uint32At(backend, 28); got != uint32(PrimitiveTypeTriangle) {
		t.Fatalf("primitive type: got %v", got)
	}

	if got := int32At(backend, 32); got != -1 {
		t.Fatalf("miss index: got %v", got)
	}
}

// cubeTriangleVertices mirrors the reference 12-triangle unit cube fixture:
// each entry is the flattened (x,y,z) coordinates of a triangle's three
// vertices.
var cubeTriangleVertices = [][9]float64{
	{0, 0, 0, 0, 2, 0, 1, 0, 0},
	{1, 0, 0, 0, 2, 0, 1, 2, 0},

	{1, 0, 0, 1, 2, 0, 1, 0, 3},
	{1, 2, 0, 1, 0, 3, 1, 2, 3},

	{1, 2, 0, 0, 2, 0, 1, 2, 3},
	{0, 2, 0, 0, 2, 3, 1, 2, 3},

	{1, 0, 3, 1, 2, 3, 0, 0, 3},
	{1, 2, 3, 0, 2, 3, 0, 0, 3},

	{1, 0, 3, 0, 0, 0, 1, 0, 0},
	{1, 0, 3, 0, 0, 3, 0, 0, 0},

	{0, 0, 0, 0, 0, 3, 0, 2, 3},
	{0, 0, 0, 0, 2, 3, 0, 2, 0},
}

func TestCubeSerializedBvhMatchesReference(t *testing.T) {
	proxies := make([]SceneObjectProxy, len(cubeTriangleVertices))
	for i, vertices := range cubeTriangleVertices {
		proxies[i] = proxyOfTriangle(i, vertices)
	}

	buffer := BuildSerialized(proxies)
	actual := buffer.Backend()

	if len(actual) != len(expectedCubeSerializedBvh) {
		t.Fatalf("length mismatch: got %d want %d", len(actual), len(expectedCubeSerializedBvh))
	}
	if !bytes.Equal(actual, expectedCubeSerializedBvh) {
		t.Fatalf("serialized BVH for a cube does not match the reference\ngot:  %v\nwant: %v", actual, expectedCubeSerializedBvh)
	}
}

var expectedCubeSerializedBvh = []byte{
	23, 183, 81, 184, 23, 183, 81, 184, 23, 183, 81, 184, 0, 0, 0, 0, 163, 1, 128, 63, 210, 0, 0, 64, 210, 0, 64, 64, 0, 0, 0, 0, 255, 255, 255, 255, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 163, 1, 128, 63, 210, 0, 0, 64, 0, 0, 64, 64, 0, 0, 0, 0, 12, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 163, 1, 128, 63, 0, 0, 0, 64, 0, 0, 64, 64, 0, 0, 0, 0, 7, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 23, 183, 81, 56, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 23, 183, 81, 56, 2, 0, 0, 0, 5, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 23, 183, 81, 184, 1, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 23, 183, 81, 56, 2, 0, 0, 0, 6, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	185, 252, 127, 63, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 163, 1, 128, 63, 0, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 7, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 163, 1, 128, 63, 210, 0, 0, 64, 0, 0, 64, 64, 0, 0, 0, 0, 12, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 163, 1, 128, 63, 210, 0, 0, 64, 0, 0, 64, 64, 0, 0, 0, 0, 11, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	185, 252, 127, 63, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 163, 1, 128, 63, 0, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 10, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 93, 254, 255, 63, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 128, 63, 210, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 11, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 93, 254, 255, 63, 0, 0, 0, 0, 5, 0, 0, 0, 0, 0, 128, 63, 210, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 12, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 210, 0, 64, 64, 0, 0, 0, 0, 255, 255, 255, 255, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 0, 0, 64, 64, 0, 0, 0, 0, 18, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 128, 63, 23, 183, 81, 56, 0, 0, 64, 64, 0, 0, 0, 0, 17, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 8, 0, 0, 0, 0, 0, 128, 63, 23, 183, 81, 56, 0, 0, 64, 64, 2, 0, 0, 0, 16, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 23, 183, 81, 184, 0, 0, 0, 0, 9, 0, 0, 0, 0, 0, 128, 63, 23, 183, 81, 56, 0, 0, 64, 64, 2, 0, 0, 0, 17, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 10, 0, 0, 0, 23, 183, 81, 56, 0, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 18, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 210, 0, 64, 64, 0, 0, 0, 0, 255, 255, 255, 255, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 210, 0, 64, 64, 0, 0, 0, 0, 22, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	23, 183, 81, 184, 0, 0, 0, 0, 0, 0, 0, 0, 11, 0, 0, 0, 23, 183, 81, 56, 0, 0, 0, 64, 0, 0, 64, 64, 2, 0, 0, 0, 21, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 46, 255, 63, 64, 6, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 210, 0, 64, 64, 2, 0, 0, 0, 22, 0, 0, 0, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
	0, 0, 0, 0, 0, 0, 0, 0, 46, 255, 63, 64, 7, 0, 0, 0, 0, 0, 128, 63, 0, 0, 0, 64, 210, 0, 64, 64, 2, 0, 0, 0, 255, 255, 255, 255, 0, 0, 128, 191, 0, 0, 128, 191, 0, 0, 128, 191,
}
