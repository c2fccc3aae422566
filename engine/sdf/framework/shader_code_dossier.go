package framework

// ShaderCodeDossier records everything the generator needs to know about
// one distinct function body: the WGSL name assigned to it the first time
// it was seen, every node instance whose body matched it (used both as the
// occurrence count and, when the body turns out to recur, to build the
// equality sets that canonicalize which of those instances' descendants
// a later lookup should resolve to), and how tall the subtree that
// produced it is (used to emit shared functions leaf-first).
type ShaderCodeDossier struct {
	name                FunctionName
	sources             []Sdf
	childrenLevelsBelow int
}

// NewShaderCodeDossier starts a dossier for a body just seen for the first
// time, produced by source at the given subtree height.
func NewShaderCodeDossier(name FunctionName, source Sdf, childrenLevelsBelow int) *ShaderCodeDossier {
	return &ShaderCodeDossier{
		name:                name,
		sources:             []Sdf{source},
		childrenLevelsBelow: childrenLevelsBelow,
	}
}

// Name returns the WGSL function name assigned to this body.
func (d *ShaderCodeDossier) Name() FunctionName {
	return d.name
}

// Occurrences returns how many node instances have produced this body.
func (d *ShaderCodeDossier) Occurrences() int {
	return len(d.sources)
}

// ChildrenLevelsBelow returns the subtree height of the node that first
// produced this body.
func (d *ShaderCodeDossier) ChildrenLevelsBelow() int {
	return d.childrenLevelsBelow
}

// AnySource returns one of the node instances that produced this body —
// any of them serves equally well since they are, by construction,
// behaviorally and structurally identical.
func (d *ShaderCodeDossier) AnySource() Sdf {
	return d.sources[0]
}

// WriteAnotherUsage records instance as one more node whose body matched
// this dossier's.
func (d *ShaderCodeDossier) WriteAnotherUsage(instance Sdf) {
	d.sources = append(d.sources, instance)
}
