package framework

// UniqueSdfClassName is the key a scene designer registers an SDF tree
// under. It must be unique across a single SdfRegistrator; the generated
// WGSL function for the tree's root is named by prefixing it with "sdf_".
type UniqueSdfClassName struct {
	value string
}

// NewUniqueSdfClassName wraps a class name.
func NewUniqueSdfClassName(value string) UniqueSdfClassName {
	return UniqueSdfClassName{value: value}
}

// String returns the bare class name, without the "sdf_" WGSL prefix.
func (u UniqueSdfClassName) String() string {
	return u.value
}

// NamedSdf pairs an SDF tree's root with the class name it is registered
// and emitted under.
type NamedSdf struct {
	sdf  Sdf
	name UniqueSdfClassName
}

// NewNamedSdf pairs sdf with name.
func NewNamedSdf(sdf Sdf, name UniqueSdfClassName) NamedSdf {
	return NamedSdf{sdf: sdf, name: name}
}

// Sdf returns the tree's root node.
func (n NamedSdf) Sdf() Sdf {
	return n.sdf
}

// Name returns the class name the tree is registered under.
func (n NamedSdf) Name() UniqueSdfClassName {
	return n.name
}

// FunctionNameOf derives the WGSL function name a class's generated code is
// declared and invoked under.
func FunctionNameOf(name UniqueSdfClassName) FunctionName {
	return NewFunctionName("sdf_" + name.String())
}
