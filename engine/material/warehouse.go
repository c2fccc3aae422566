package material

import "github.com/corvidgfx/tracer-go/engine/serialization"

// Index is a dense array index into the materials warehouse. Per the data
// model, materials are immutable after insertion: reassigning a material on
// an object always stores a new index rather than mutating one in place.
type Index uint32

// Warehouse is the scene-owned dense store of every Material in use. It
// never removes an entry (an object that stops referencing a material
// simply stops pointing at its index; the slot is harmless dead weight
// until the next full scene reload), matching the "immutable after
// insertion" contract.
type Warehouse struct {
	materials []Material
}

// NewWarehouse returns an empty materials warehouse.
func NewWarehouse() *Warehouse {
	return &Warehouse{}
}

// Insert appends m and returns its new index.
func (w *Warehouse) Insert(m Material) Index {
	w.materials = append(w.materials, m)
	return Index(len(w.materials) - 1)
}

// IndexOfEquivalent returns the index of the first already-inserted material
// equal to m, if one exists.
func (w *Warehouse) IndexOfEquivalent(m Material) (Index, bool) {
	for i, existing := range w.materials {
		if existing == m {
			return Index(i), true
		}
	}
	return 0, false
}

// Get returns the material at index. Panics if index is out of range.
func (w *Warehouse) Get(index Index) Material {
	return w.materials[index]
}

// Count returns the number of materials inserted, counting each Insert call
// once even when equal values were inserted more than once.
func (w *Warehouse) Count() int {
	return len(w.materials)
}

// AnyAnimatedTexture reports whether any inserted material's albedo texture
// points at a procedural texture class the given registry has flagged as
// time-varying. The renderer orchestration uses this to decide whether the
// per-frame uniform upload needs to carry a fresh global_time_seconds even
// when nothing else about the scene changed.
func (w *Warehouse) AnyAnimatedTexture(registry *ProceduralTextureRegistry) bool {
	for _, m := range w.materials {
		if m.AlbedoTextureIndex == NoTexture {
			continue
		}
		if registry.Animated(ProceduralTextureClassIndex(m.AlbedoTextureIndex)) {
			return true
		}
	}
	return false
}

// EvaluateSerialized produces a fully-written serialization buffer holding
// every inserted material, one object per material, four quartets each. The
// empty-buffer rule applies here exactly as it does for scene objects: an
// empty warehouse still needs a 1-element placeholder because the GPU
// rejects zero-length storage buffers.
func (w *Warehouse) EvaluateSerialized() *serialization.Buffer {
	count := len(w.materials)
	if count == 0 {
		count = 1
	}
	buffer := serialization.NewFilledBuffer(count, materialQuartetsPerObject, 0)
	for i, m := range w.materials {
		buffer.WriteObject(i, func(writer *serialization.ObjectWriter) {
			m.SerializeInto(writer)
		})
	}
	if len(w.materials) == 0 {
		buffer.WriteObject(0, func(writer *serialization.ObjectWriter) {
			Material{AlbedoTextureIndex: NoTexture}.SerializeInto(writer)
		})
	}
	return buffer
}

const materialQuartetsPerObject = 4
