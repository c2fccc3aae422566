package framework

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidgfx/tracer-go/engine/shader"
)

// conventions fixes the parameter names and formatting every generated SDF
// function body agrees on, so two independently produced bodies for
// behaviorally identical nodes come out byte-identical.
const (
	// PointParameterName is the WGSL parameter name carrying the
	// sphere-tracer's current sample point.
	PointParameterName = "point"

	// TimeParameterName is the WGSL parameter name carrying the scene's
	// current animation time, in seconds.
	TimeParameterName = "time"

	// returnMarker is the statement every leaf body ends its last line
	// with; composition and transformation nodes splice it out of a
	// child's body to turn the child into an assignment to a local.
	returnMarker = "return "
)

// FormatSdfDeclaration appends a full WGSL function declaration wrapping
// body under name to buffer.
func FormatSdfDeclaration(body ShaderCode, name FunctionName, buffer *strings.Builder) {
	fmt.Fprintf(buffer, "fn %s(%s: vec3f, %s: f32) -> f32 {\n", name.String(), PointParameterName, TimeParameterName)
	buffer.WriteString(body.String())
	buffer.WriteString("}\n")
}

// FormatSdfInvocation produces the body fragment a node's occurrence is
// replaced with once its body has been hoisted into its own named function:
// a single statement calling that function with the standard parameters.
func FormatSdfInvocation(name FunctionName) ShaderCode {
	return NewShaderCode(fmt.Sprintf("%s%s(%s,%s);\n", returnMarker, name.String(), PointParameterName, TimeParameterName))
}

// NewShaderCode wraps already-formatted WGSL text as a ShaderCode.
func NewShaderCode(code string) ShaderCode {
	return shader.NewShaderCode[shader.FunctionBody](code)
}

// AssignToLocal rewrites body's trailing "return <expr>;\n" statement into
// "<localName> = <expr>;\n", turning a self-contained function body into a
// statement suitable for splicing into a caller's block that has already
// declared localName.
func AssignToLocal(body ShaderCode, localName string) ShaderCode {
	s := body.String()
	idx := strings.LastIndex(s, returnMarker)
	if idx < 0 {
		panic("framework: body has no return statement to assign: " + s)
	}
	return NewShaderCode(s[:idx] + localName + " = " + s[idx+len(returnMarker):])
}

// BinaryOpVarNames returns the local variable names a binary composition
// node (union, intersection, subtraction, ...) declares for its left and
// right operand, given the level hint passed to ProduceBody. With a level
// hint the names are suffixed by it so sibling subtrees inlined into one
// function never collide; without one (body is being produced only to test
// structural equality with another node) the bare, unleveled names are used
// so identical subtrees at different tree depths still produce identical
// text.
func BinaryOpVarNames(levelsBelow *int) (left, right string) {
	if levelsBelow == nil {
		return "left", "right"
	}
	suffix := strconv.Itoa(*levelsBelow)
	return "left_" + suffix, "right_" + suffix
}

// ProduceBinaryOpBody assembles the body of a binary composition node from
// its already-produced left and right operand bodies, declaring a WGSL
// local for each and combining them with combine (e.g. "min(%s,%s)" for
// union, given the two locals' names).
func ProduceBinaryOpBody(left, right ShaderCode, levelsBelow *int, combine func(left, right string) string) ShaderCode {
	leftVar, rightVar := BinaryOpVarNames(levelsBelow)

	var b strings.Builder
	fmt.Fprintf(&b, "var %s: f32;\n{\n%s}\n", leftVar, AssignToLocal(left, leftVar).String())
	fmt.Fprintf(&b, "var %s: f32;\n{\n%s}\n", rightVar, AssignToLocal(right, rightVar).String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s;\n", returnMarker, combine(leftVar, rightVar))

	return NewShaderCode(b.String())
}

// operandVarName is the fixed local name a unary transformation or morphing
// node assigns its wrapped child's result to. Unlike binary composition
// nodes, unary nodes never need a level suffix: they only ever have one
// operand in scope at a time, so the name can never collide with a sibling.
const operandVarName = "operand_1"

// FormatScalar renders v as a WGSL f32 literal: always with a decimal
// point, even for whole numbers (1.0, not 1), so generated bodies for
// identical parameters come out byte-identical regardless of how the Go
// float happened to be constructed.
func FormatScalar(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatVec3 renders a vec3f WGSL constructor call from three components.
func FormatVec3(x, y, z float64) string {
	return fmt.Sprintf("vec3f(%s,%s,%s)", FormatScalar(x), FormatScalar(y), FormatScalar(z))
}

// ProduceParameterTransformBody assembles the body of a unary node that
// transforms the sample point (or some other produce_body input) before
// delegating to its single child: transformStatement is a WGSL statement
// (no trailing newline) establishing the transformed `point`, and child is
// that child's already-produced body.
func ProduceParameterTransformBody(transformStatement string, child ShaderCode) ShaderCode {
	var b strings.Builder
	fmt.Fprintf(&b, "var %s: f32;\n{\n%s\n{\n%s}\n}\n", operandVarName, transformStatement, AssignToLocal(child, operandVarName).String())
	fmt.Fprintf(&b, "%s%s;\n", returnMarker, operandVarName)
	return NewShaderCode(b.String())
}
