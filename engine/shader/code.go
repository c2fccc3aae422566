// Package shader holds the small value types generated shader source is
// built out of: a named WGSL function, and a piece of generated code tagged
// with what kind of fragment it is (a function body today; other kinds join
// it as more of the shader becomes generated rather than hand-written).
package shader

import "fmt"

// FunctionBody tags a ShaderCode value as the body of a WGSL function —
// statements plus a trailing return, without the surrounding "fn ... { }".
type FunctionBody struct{}

// ShaderCode is a piece of generated WGSL source, tagged by Kind so that a
// function body and (say) a bare expression can't be mixed up at compile
// time even though both are just strings underneath.
type ShaderCode[Kind any] struct {
	code string
}

// NewShaderCode wraps code as a ShaderCode of the given Kind.
func NewShaderCode[Kind any](code string) ShaderCode[Kind] {
	return ShaderCode[Kind]{code: code}
}

// String returns the underlying WGSL text.
func (s ShaderCode[Kind]) String() string {
	return s.code
}

// FunctionName is the identifier a generated WGSL function is declared and
// invoked under.
type FunctionName struct {
	name string
}

// NewFunctionName wraps an already-formatted identifier.
func NewFunctionName(name string) FunctionName {
	return FunctionName{name: name}
}

// String returns the WGSL identifier.
func (f FunctionName) String() string {
	return f.name
}

// GoString supports "%#v"-style debug printing with a readable value instead
// of the struct's field dump.
func (f FunctionName) GoString() string {
	return fmt.Sprintf("FunctionName(%q)", f.name)
}
