package framework

import "fmt"

// SdfRegistrator is the write side of the SDF code generation pipeline: a
// scene registers every named SDF tree it uses here once at startup, which
// walks each tree and records every distinct function body it produces
// (and how many times each recurred) ahead of code generation. It is
// consumed — not mutated — once handed to NewSdfCodeGenerator.
type SdfRegistrator struct {
	sdfBodies  *FunctionBodyDossier
	uids       functionUidGenerator
	registered map[UniqueSdfClassName]NamedSdf
}

// NewSdfRegistrator returns an empty registrator.
func NewSdfRegistrator() *SdfRegistrator {
	return &SdfRegistrator{
		sdfBodies:  NewFunctionBodyDossier(),
		registered: make(map[UniqueSdfClassName]NamedSdf),
	}
}

// Add registers target's tree. It panics if target's class name was already
// registered — class names are assigned once at scene-authoring time and a
// collision is a programmer error, not recoverable scene state.
func (r *SdfRegistrator) Add(target NamedSdf) {
	if _, exists := r.registered[target.Name()]; exists {
		panic(fmt.Sprintf("framework: name %s of given sdf is not unique", target.Name().String()))
	}
	r.registered[target.Name()] = target

	descendantBodies := NewStack[ShaderCode]()
	DepthFirstSearch(target.Sdf(), func(candidate Sdf, levelsBelow int) {
		body := candidate.ProduceBody(descendantBodies, nil)

		if !r.sdfBodies.TryAccountOccurrence(body, candidate) {
			function := NewFunctionName(fmt.Sprintf("sdf_%s_%d", target.Name().String(), r.uids.Next()))
			r.sdfBodies.Register(body, NewShaderCodeDossier(function, candidate, levelsBelow))
		}

		descendantBodies.Push(body)
	})

	if descendantBodies.Size() != 1 {
		panic("framework: registrator left the body stack in an inconsistent state")
	}
}

// registrations hands the accumulated body dossier and registration table
// to a code generator. Consuming (not borrowing) mirrors the Rust original
// moving self into SdfCodeGenerator::new — a registrator is single-use.
func (r *SdfRegistrator) registrations() (*FunctionBodyDossier, map[UniqueSdfClassName]NamedSdf) {
	return r.sdfBodies, r.registered
}
