// Package warehouse owns the SDF prototype warehouse: the scene-wide,
// register-once-then-immutable table mapping a UniqueSdfClassName to its
// tree root, local-space AABB, generated WGSL entry function, and the dense
// class index the GPU's sdf_select dispatcher switches on.
//
// It sits directly on top of engine/sdf/framework's registrator/generator
// pair and adds the one thing that pair doesn't track itself: a stable,
// dense ClassIndex per class, assigned in registration order, matching the
// class_index field every SdfInstance serializes.
package warehouse

import (
	"fmt"
	"strings"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
)

// ClassIndex is the dense, zero-based index a registered SDF prototype class
// occupies. It is assigned in registration order and never changes once
// sealed.
type ClassIndex uint32

type class struct {
	name framework.UniqueSdfClassName
	sdf  framework.Sdf
}

// Warehouse accumulates named SDF trees during scene authoring, then seals
// into an immutable, indexable table once authoring is complete.
type Warehouse struct {
	registrator *framework.SdfRegistrator
	classes     []class
	indexOf     map[string]ClassIndex

	sealed    bool
	generator *framework.SdfCodeGenerator
}

// New returns an empty, unsealed warehouse.
func New() *Warehouse {
	return &Warehouse{
		registrator: framework.NewSdfRegistrator(),
		indexOf:     make(map[string]ClassIndex),
	}
}

// Register adds a named SDF tree to the warehouse and returns the dense
// class index it was assigned. It panics if called after Seal, or if name
// was already registered (SdfRegistrator enforces class-name uniqueness).
func (w *Warehouse) Register(name framework.UniqueSdfClassName, sdf framework.Sdf) ClassIndex {
	if w.sealed {
		panic("warehouse: cannot register a class after Seal")
	}
	w.registrator.Add(framework.NewNamedSdf(sdf, name))

	index := ClassIndex(len(w.classes))
	w.classes = append(w.classes, class{name: name, sdf: sdf})
	w.indexOf[name.String()] = index
	return index
}

// ClassIndexOf looks up the class index a name was registered under.
func (w *Warehouse) ClassIndexOf(name framework.UniqueSdfClassName) (ClassIndex, bool) {
	index, ok := w.indexOf[name.String()]
	return index, ok
}

// Count returns the number of registered classes.
func (w *Warehouse) Count() int { return len(w.classes) }

// Seal finalizes registration and builds the code generator every later
// Aabb/GenerateCode call needs. Idempotent: a second call is a no-op, since
// scene startup may seal defensively before every subsystem that reads the
// warehouse.
func (w *Warehouse) Seal() {
	if w.sealed {
		return
	}
	w.generator = framework.NewSdfCodeGenerator(w.registrator)
	w.sealed = true
}

// Aabb returns the local-space AABB of the prototype at index, computed from
// its tree structure. Panics if index is out of range.
func (w *Warehouse) Aabb(index ClassIndex) geometry.Aabb {
	return w.classes[index].sdf.Aabb()
}

// GenerateCode emits the per-SDF-class WGSL: every shared (multiply
// occurring) function body, then one entry-point function per registered
// class in class-index order, then the top-level sdf_select(class_index,
// point, time) dispatcher the shader calls to evaluate any instance.
func (w *Warehouse) GenerateCode() string {
	if !w.sealed {
		panic("warehouse: GenerateCode called before Seal")
	}

	entryNames := make([]framework.FunctionName, len(w.classes))
	var entries strings.Builder
	for i, c := range w.classes {
		named := framework.NewNamedSdf(c.sdf, c.name)
		entryNames[i] = w.generator.GenerateUniqueCodeFor(named, &entries)
	}

	// GenerateSharedCode must run after every class of interest has had
	// GenerateUniqueCodeFor called on it, per its own doc comment.
	var shared strings.Builder
	w.generator.GenerateSharedCode(&shared)

	var out strings.Builder
	out.WriteString(shared.String())
	out.WriteString(entries.String())
	writeSelectDispatcher(&out, entryNames)
	return out.String()
}

func writeSelectDispatcher(buffer *strings.Builder, entryNames []framework.FunctionName) {
	buffer.WriteString("fn sdf_select(class_index: u32, point: vec3f, time: f32) -> f32 {\n")
	for i, name := range entryNames {
		fmt.Fprintf(buffer, "  if (class_index == %du) {\n    return %s(point, time);\n  }\n", i, name.String())
	}
	buffer.WriteString("  return 0.0;\n}\n")
}
