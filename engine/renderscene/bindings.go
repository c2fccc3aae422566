package renderscene

import "github.com/corvidgfx/tracer-go/engine/renderer/shader"

// Capacity constants size every dynamically-populated storage buffer the
// scene orchestration allocates. Per-kind object counts vary as the scene is
// authored, but InitBindGroup never resizes a buffer already bound to a
// provider (see bind_group_provider.BindGroupProvider's Buffer field), so
// buffers are sized once for a generous ceiling and only ever partially
// filled — mirroring the teacher's own fixed MaxGPULights-style capacity
// buffers rather than a grow-and-recreate scheme. Every GPU-side traversal
// routine (traverse_tight, traverse_inflated_any_hit, sdf_select) walks a
// node/object graph that is self-terminating from indices the host wrote, so
// unused trailing capacity is simply never addressed.
const (
	maxObjectsPerKind = 1 << 14 // parallelograms and SDF instances
	maxTriangles      = 1 << 16
	maxBvhNodes       = 1 << 17 // one threaded tree can hold up to 2*objects-1 nodes
	maxMaterials      = 1 << 12
)

const (
	parallelogramBytesPerObject = 3 * 16
	sdfInstanceBytesPerObject   = 6 * 16
	triangleBytesPerObject      = 6 * 16
	materialBytesPerObject      = 4 * 16
	bvhNodeBytesPerNode         = 12 * 4
	instanceTimeBytesPerObject  = 4 // one f32 per SDF instance, see SceneContainer.EvaluateSerializedSdfTimes
)

// resolveProviderGroup scans a shader's parsed @oxy declarations for one
// identifying the given provider identity, returning the @group index it
// was declared under. Mirrors the teacher's own Declarations()-based
// resolution (see engine/scene/scene.go's createAnimator helper): preferred
// here over substring-matching BindGroupVarNames since every binding this
// shader declares already carries a typed, parsed provider identity.
func resolveProviderGroup(s shader.Shader, identity shader.AnnotationArg) (int, bool) {
	for _, decl := range s.Declarations() {
		if decl.Group == nil || len(decl.Args) == 0 {
			continue
		}
		switch decl.Type {
		case shader.AnnotationTypeProvider:
			if decl.Args[0] == identity {
				return *decl.Group, true
			}
		case shader.AnnotationTypeBindingGroup:
			if len(decl.Args) > 2 && decl.Args[2] == identity {
				return *decl.Group, true
			}
		}
	}
	return -1, false
}

// mustResolveProviderGroup panics if identity has no matching declaration —
// a shader source / orchestration mismatch is a construction-time bug, not
// a runtime condition to recover from.
func mustResolveProviderGroup(s shader.Shader, identity shader.AnnotationArg) int {
	group, ok := resolveProviderGroup(s, identity)
	if !ok {
		panic("renderscene: shader has no binding declared for provider identity " + string(identity))
	}
	return group
}

// ceilDivU32 computes ceil(a/b) for the workgroup dispatch counts the
// compute shader's fixed @workgroup_size(8, 8, 1) requires.
func ceilDivU32(a, b uint32) uint32 {
	return (a + b - 1) / b
}
