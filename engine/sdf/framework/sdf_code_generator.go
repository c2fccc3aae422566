package framework

import "strings"

// SdfCodeGenerator produces WGSL for a fixed set of registered SDF trees:
// one entry-point function per registered class, plus the shared functions
// hoisted for any body that recurred across or within those classes.
type SdfCodeGenerator struct {
	sdfBodies  *FunctionBodyDossier
	registered map[UniqueSdfClassName]NamedSdf
}

// NewSdfCodeGenerator consumes collection's accumulated registrations.
func NewSdfCodeGenerator(collection *SdfRegistrator) *SdfCodeGenerator {
	sdfBodies, registered := collection.registrations()
	return &SdfCodeGenerator{sdfBodies: sdfBodies, registered: registered}
}

// Registrations returns the classes this generator was built from.
func (g *SdfCodeGenerator) Registrations() map[UniqueSdfClassName]NamedSdf {
	return g.registered
}

// GenerateSharedCode appends every function hoisted out because its body
// recurred to buffer. Call this once, after every class of interest has
// had GenerateUniqueCodeFor called on it, so every hoisted body has
// actually been produced.
func (g *SdfCodeGenerator) GenerateSharedCode(buffer *strings.Builder) {
	g.sdfBodies.FormatOccurredMultipleTimes(buffer)
}

// GenerateUniqueCodeFor appends target's entry-point function to buffer —
// unless target's whole tree turned out to be identical to an
// already-hoisted shared function, in which case nothing is appended and
// the shared function's name is returned directly. It panics if target was
// not registered with the SdfRegistrator this generator was built from.
func (g *SdfCodeGenerator) GenerateUniqueCodeFor(target NamedSdf, buffer *strings.Builder) FunctionName {
	if _, ok := g.registered[target.Name()]; !ok {
		panic("framework: target not registered: " + target.Name().String())
	}

	descendantBodies := NewStack[ShaderCode]()
	descendantBodiesDeduplicated := NewStack[ShaderCode]()
	var lastBodyName *FunctionName

	DepthFirstSearch(target.Sdf(), func(candidate Sdf, levelsBelow int) {
		body := candidate.ProduceBody(descendantBodies, nil)

		occurrences, found := g.sdfBodies.TryFind(body)
		if found && occurrences.Occurrences() > 1 {
			for range candidate.Descendants() {
				descendantBodiesDeduplicated.Pop()
			}
			descendantBodiesDeduplicated.Push(FormatSdfInvocation(occurrences.Name()))
			name := occurrences.Name()
			lastBodyName = &name
		} else {
			level := levelsBelow
			own := candidate.ProduceBody(descendantBodiesDeduplicated, &level)
			descendantBodiesDeduplicated.Push(own)
			lastBodyName = nil
		}

		descendantBodies.Push(body)
	})

	if descendantBodies.Size() != 1 || descendantBodiesDeduplicated.Size() != 1 {
		panic("framework: code generator left the body stacks in an inconsistent state")
	}

	if lastBodyName != nil {
		return *lastBodyName
	}

	sdfName := FunctionNameOf(target.Name())
	FormatSdfDeclaration(descendantBodiesDeduplicated.Pop(), sdfName, buffer)
	return sdfName
}
