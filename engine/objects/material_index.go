package objects

// MaterialIndex is a dense array index into the materials warehouse.
// Materials are immutable once inserted; reassigning a material on an object
// stores a new MaterialIndex rather than mutating the one already referenced.
type MaterialIndex uint32

// Linkage is the (ObjectUid, MaterialIndex) pair carried inside every
// renderable entity — it is what lets the GPU map a ray hit back to host-side
// identity and material lookup.
type Linkage struct {
	uid      ObjectUid
	material MaterialIndex
}

// NewLinkage builds a Linkage from an object identity and material reference.
func NewLinkage(uid ObjectUid, material MaterialIndex) Linkage {
	return Linkage{uid: uid, material: material}
}

// Uid returns the linked object's identifier.
func (l Linkage) Uid() ObjectUid {
	return l.uid
}

// Material returns the linked material index.
func (l Linkage) Material() MaterialIndex {
	return l.material
}

// WithMaterial returns a copy of l pointing at a different material.
func (l Linkage) WithMaterial(material MaterialIndex) Linkage {
	l.material = material
	return l
}

// DataKind is the closed enumeration of object kinds the container tracks.
// Each kind maintains its own object count, data version, and serialization
// layout.
type DataKind int

const (
	// KindParallelogram identifies analytic parallelogram primitives.
	KindParallelogram DataKind = iota
	// KindSdf identifies SDF instances (a placement of a registered SDF class).
	KindSdf
	// KindTriangleMesh identifies triangle-mesh objects.
	KindTriangleMesh

	// KindCount is the number of DataKind values; used to size per-kind arrays.
	KindCount
)

// String renders the kind's name, mirroring the derived Display the original
// enum carried.
func (k DataKind) String() string {
	switch k {
	case KindParallelogram:
		return "Parallelogram"
	case KindSdf:
		return "Sdf"
	case KindTriangleMesh:
		return "TriangleMesh"
	default:
		return "Unknown"
	}
}
