package framework

import (
	"sort"
	"strings"
)

// FunctionBodyDossier is the registry of every distinct WGSL function body
// seen across all registered SDF trees, keyed by the body text itself so
// two structurally identical subtrees — anywhere, in any tree, at any
// depth — collapse onto the same entry.
//
// Reminder of what this buys: an SDF tree's leaves are primitives (spheres,
// boxes, ...) and its internal nodes are set-theoretic operations (union,
// subtraction, ...). Many of those nodes end up behaviorally identical —
// the same primitive repeated, or the same sub-assembly reused at several
// places in the scene. format_occurred_multiple_times walks the bodies that
// recurred, leaf-first, hoists each into its own named function, and
// replaces every other occurrence of that body with a call to it.
//
// EqualitySets exists because two nodes that produce the same body are, by
// construction, different objects in memory. When hoisting a parent body
// that references its children's (already-hoisted) functions, the lookup
// has to resolve "the function for whichever instance of this child's body
// was hoisted first", not "the function for this exact pointer" — that's
// what GetEqualityRoot is for.
type FunctionBodyDossier struct {
	dossierOfBody map[string]*ShaderCodeDossier
	usedNames     map[string]bool
}

// NewFunctionBodyDossier returns an empty dossier.
func NewFunctionBodyDossier() *FunctionBodyDossier {
	return &FunctionBodyDossier{
		dossierOfBody: make(map[string]*ShaderCodeDossier),
		usedNames:     make(map[string]bool),
	}
}

// TryFind looks up the dossier recorded for shaderCode's exact text, if
// any.
func (fb *FunctionBodyDossier) TryFind(shaderCode ShaderCode) (*ShaderCodeDossier, bool) {
	dossier, ok := fb.dossierOfBody[shaderCode.String()]
	return dossier, ok
}

// TryAccountOccurrence records instance as another occurrence of
// shaderCode's body if that body is already registered, and reports
// whether it was.
func (fb *FunctionBodyDossier) TryAccountOccurrence(shaderCode ShaderCode, instance Sdf) bool {
	dossier, ok := fb.dossierOfBody[shaderCode.String()]
	if !ok {
		return false
	}
	dossier.WriteAnotherUsage(instance)
	return true
}

// Register records shaderDossier as the first occurrence of shaderCode's
// body. It panics if the body was already registered or the dossier's name
// collides with one already in use — both indicate a bug in the caller's
// bookkeeping, not a reachable user error.
func (fb *FunctionBodyDossier) Register(shaderCode ShaderCode, shaderDossier *ShaderCodeDossier) {
	name := shaderDossier.Name().String()
	if fb.usedNames[name] {
		panic("framework: non-unique function name: " + name)
	}
	fb.usedNames[name] = true

	if _, exists := fb.dossierOfBody[shaderCode.String()]; exists {
		panic("framework: duplicate code body occurrence")
	}
	fb.dossierOfBody[shaderCode.String()] = shaderDossier
}

// sortMultipleOccurrencesBottomUp returns every dossier whose body recurred
// more than once, ordered so a dossier's dependencies (shorter subtrees)
// always precede it — ties broken by name for a deterministic order.
func (fb *FunctionBodyDossier) sortMultipleOccurrencesBottomUp() []*ShaderCodeDossier {
	result := make([]*ShaderCodeDossier, 0, len(fb.dossierOfBody))
	for _, dossier := range fb.dossierOfBody {
		if dossier.Occurrences() > 1 {
			result = append(result, dossier)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.ChildrenLevelsBelow() != b.ChildrenLevelsBelow() {
			return a.ChildrenLevelsBelow() < b.ChildrenLevelsBelow()
		}
		return a.Name().String() < b.Name().String()
	})
	return result
}

// FormatOccurredMultipleTimes appends one WGSL function declaration per
// body that recurred more than once to buffer, leaf-first, so every
// function it declares only ever calls functions already declared earlier
// in the buffer.
func (fb *FunctionBodyDossier) FormatOccurredMultipleTimes(buffer *strings.Builder) {
	bottomUp := fb.sortMultipleOccurrencesBottomUp()
	equality := NewEqualitySets(bottomUp)

	formatted := make(map[Sdf]ShaderCode, len(bottomUp))
	children := NewStack[ShaderCode]()

	for _, dossier := range bottomUp {
		source := dossier.AnySource()
		for _, child := range source.Descendants() {
			reference := equality.GetEqualityRoot(child)
			successorBody, ok := formatted[reference]
			if !ok {
				panic("framework: no formatted body for a dependency of " + dossier.Name().String())
			}
			children.Push(successorBody)
		}

		currentBody := source.ProduceBody(children, nil)
		if children.Size() != 0 {
			panic("framework: children stack not fully consumed by " + dossier.Name().String())
		}
		FormatSdfDeclaration(currentBody, dossier.Name(), buffer)

		reference := equality.GetEqualityRoot(source)
		formatted[reference] = FormatSdfInvocation(dossier.Name())
	}
}
