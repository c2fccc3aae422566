package material

import (
	"fmt"
	"strings"
)

// ProceduralTextureClassIndex is the dense index a registered procedural
// texture class occupies; it is the value a Material's AlbedoTextureIndex
// carries when it isn't NoTexture.
type ProceduralTextureClassIndex int32

// ProceduralTextureClassName is the key a scene designer registers a
// procedural texture class under, analogous to an SDF prototype's
// UniqueSdfClassName.
type ProceduralTextureClassName struct {
	value string
}

// NewProceduralTextureClassName wraps a class name.
func NewProceduralTextureClassName(value string) ProceduralTextureClassName {
	return ProceduralTextureClassName{value: value}
}

// String returns the bare class name.
func (n ProceduralTextureClassName) String() string { return n.value }

type proceduralTextureClass struct {
	name         ProceduralTextureClassName
	functionName string
	animated     bool
}

// ProceduralTextureRegistry is the registration/code-assembly boundary for
// procedural textures: it tracks which WGSL function implements each class
// and whether that function reads the animation clock, and assembles the
// top-level procedural_texture_select dispatcher the generated SDF code
// sits alongside. The WGSL bodies themselves are authored externally and
// handed in as source text — generating procedural texture math is out of
// scope here, the same way it is out of scope for the SDF tree's leaf
// primitives' raw formulas.
type ProceduralTextureRegistry struct {
	classes []proceduralTextureClass
	indexOf map[string]ProceduralTextureClassIndex
}

// NewProceduralTextureRegistry returns an empty registry.
func NewProceduralTextureRegistry() *ProceduralTextureRegistry {
	return &ProceduralTextureRegistry{indexOf: make(map[string]ProceduralTextureClassIndex)}
}

// Register adds a procedural texture class backed by an externally authored
// WGSL function (signature `fn <functionName>(uv: vec2f, time: f32) ->
// vec3f`), returning its dense class index. animated marks whether the
// function's output depends on time; AnyAnimatedTexture queries this.
func (r *ProceduralTextureRegistry) Register(name ProceduralTextureClassName, functionName string, animated bool) ProceduralTextureClassIndex {
	if _, exists := r.indexOf[name.String()]; exists {
		panic("material: procedural texture class name is not unique: " + name.String())
	}
	index := ProceduralTextureClassIndex(len(r.classes))
	r.classes = append(r.classes, proceduralTextureClass{name: name, functionName: functionName, animated: animated})
	r.indexOf[name.String()] = index
	return index
}

// ClassIndexOf looks up the class index a name was registered under.
func (r *ProceduralTextureRegistry) ClassIndexOf(name ProceduralTextureClassName) (ProceduralTextureClassIndex, bool) {
	index, ok := r.indexOf[name.String()]
	return index, ok
}

// Animated reports whether the class at index reads the animation clock.
// Out-of-range indices (including NoTexture's -1) report false.
func (r *ProceduralTextureRegistry) Animated(index ProceduralTextureClassIndex) bool {
	if index < 0 || int(index) >= len(r.classes) {
		return false
	}
	return r.classes[index].animated
}

// Count returns the number of registered procedural texture classes.
func (r *ProceduralTextureRegistry) Count() int { return len(r.classes) }

// GenerateDispatcher appends the top-level procedural_texture_select
// function to buffer, switching on class index to the registered function
// for each class. Per the external shader composition contract this
// function is emitted ahead of the per-SDF-class functions.
func (r *ProceduralTextureRegistry) GenerateDispatcher(buffer *strings.Builder) {
	buffer.WriteString("fn procedural_texture_select(class_index: i32, uv: vec2f, time: f32) -> vec3f {\n")
	for i, c := range r.classes {
		fmt.Fprintf(buffer, "  if (class_index == %d) {\n    return %s(uv, time);\n  }\n", i, c.functionName)
	}
	buffer.WriteString("  return vec3f(0.0, 0.0, 0.0);\n}\n")
}
