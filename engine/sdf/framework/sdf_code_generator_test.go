package framework_test

import (
	"strings"
	"testing"

	"github.com/corvidgfx/tracer-go/engine/geometry"
	"github.com/corvidgfx/tracer-go/engine/sdf/composition"
	"github.com/corvidgfx/tracer-go/engine/sdf/framework"
	"github.com/corvidgfx/tracer-go/engine/sdf/object"
	"github.com/corvidgfx/tracer-go/engine/sdf/transformation"
)

func assertNoSharedCode(t *testing.T, generator *framework.SdfCodeGenerator) {
	t.Helper()
	var buffer strings.Builder
	generator.GenerateSharedCode(&buffer)
	if buffer.String() != "" {
		t.Fatalf("expected no shared code, got %q", buffer.String())
	}
}

func TestSingleOneNodeSdf(t *testing.T) {
	sphere := object.NewSphere(17.0)
	name := framework.NewUniqueSdfClassName("the_name")
	named := framework.NewNamedSdf(sphere, name)

	registrator := framework.NewSdfRegistrator()
	registrator.Add(named)

	generator := framework.NewSdfCodeGenerator(registrator)
	var actualCode strings.Builder
	actualName := generator.GenerateUniqueCodeFor(named, &actualCode)

	expectedName := framework.FunctionNameOf(name)
	var expectedCode strings.Builder
	framework.FormatSdfDeclaration(sphere.ProduceBody(framework.NewStack[framework.ShaderCode](), nil), expectedName, &expectedCode)

	assertNoSharedCode(t, generator)
	if actualName.String() != expectedName.String() {
		t.Fatalf("name mismatch: got %q want %q", actualName.String(), expectedName.String())
	}
	if actualCode.String() != expectedCode.String() {
		t.Fatalf("code mismatch:\ngot:  %q\nwant: %q", actualCode.String(), expectedCode.String())
	}
}

func TestTwoSameOneNodeSdf(t *testing.T) {
	sphere := object.NewSphere(17.0)

	firstName := framework.NewUniqueSdfClassName("the_first")
	firstNamed := framework.NewNamedSdf(sphere, firstName)

	secondName := framework.NewUniqueSdfClassName("the_second")
	secondNamed := framework.NewNamedSdf(sphere, secondName)

	registrator := framework.NewSdfRegistrator()
	registrator.Add(firstNamed)
	registrator.Add(secondNamed)

	generator := framework.NewSdfCodeGenerator(registrator)

	var actualCode strings.Builder
	actualFirstName := generator.GenerateUniqueCodeFor(firstNamed, &actualCode)
	actualSecondName := generator.GenerateUniqueCodeFor(firstNamed, &actualCode)
	if actualCode.String() != "" {
		t.Fatalf("expected no unique code, got %q", actualCode.String())
	}
	if actualFirstName.String() != actualSecondName.String() {
		t.Fatalf("expected same name for both occurrences, got %q and %q", actualFirstName.String(), actualSecondName.String())
	}

	var actualShared strings.Builder
	generator.GenerateSharedCode(&actualShared)

	var expectedShared strings.Builder
	framework.FormatSdfDeclaration(sphere.ProduceBody(framework.NewStack[framework.ShaderCode](), nil), actualFirstName, &expectedShared)
	if actualShared.String() != expectedShared.String() {
		t.Fatalf("shared code mismatch:\ngot:  %q\nwant: %q", actualShared.String(), expectedShared.String())
	}
}

func TestSingleTreeWithUniqueSdf(t *testing.T) {
	tree := composition.NewUnion(
		composition.NewUnion(
			composition.NewUnion(
				object.NewBox(geometry.NewVector(1.0, 2.0, 3.0)),
				object.NewBox(geometry.NewVector(5.0, 7.0, 11.0)),
			),
			transformation.NewTranslation(geometry.NewVector(-17.0, -19.0, -23.0), object.NewSphere(13.0)),
		),
		transformation.NewTranslation(geometry.NewVector(31.0, 37.0, 41.0), object.NewSphere(29.0)),
	)

	name := framework.NewUniqueSdfClassName("the_name")
	named := framework.NewNamedSdf(tree, name)

	registrator := framework.NewSdfRegistrator()
	registrator.Add(named)
	generator := framework.NewSdfCodeGenerator(registrator)

	var actualCode strings.Builder
	actualName := generator.GenerateUniqueCodeFor(named, &actualCode)

	expectedName := framework.FunctionNameOf(name)
	expectedCode := "fn sdf_the_name(point: vec3f, time: f32) -> f32 {\nvar left_3: f32;\n{\nvar left_2: f32;\n{\nvar left_1: f32;\n{\nlet q = abs(point)-vec3f(1.0,2.0,3.0);\nleft_1 = length(max(q,vec3f(0.0))) + min(max(q.x,max(q.y,q.z)),0.0);\n}\nvar right_1: f32;\n{\nlet q = abs(point)-vec3f(5.0,7.0,11.0);\nright_1 = length(max(q,vec3f(0.0))) + min(max(q.x,max(q.y,q.z)),0.0);\n}\n\nleft_2 = min(left_1,right_1);\n}\nvar right_2: f32;\n{\nvar operand_1: f32;\n{\nlet point = point-vec3f(-17.0,-19.0,-23.0);\n{\noperand_1 = length(point)-13.0;\n}\n}\nright_2 = operand_1;\n}\n\nleft_3 = min(left_2,right_2);\n}\nvar right_3: f32;\n{\nvar operand_1: f32;\n{\nlet point = point-vec3f(31.0,37.0,41.0);\n{\noperand_1 = length(point)-29.0;\n}\n}\nright_3 = operand_1;\n}\n\nreturn min(left_3,right_3);\n}\n"

	assertNoSharedCode(t, generator)
	if actualName.String() != expectedName.String() {
		t.Fatalf("name mismatch: got %q want %q", actualName.String(), expectedName.String())
	}
	if actualCode.String() != expectedCode {
		t.Fatalf("code mismatch:\ngot:  %q\nwant: %q", actualCode.String(), expectedCode)
	}
}

func TestTreeWithOneLevelDuplications(t *testing.T) {
	tree := composition.NewUnion(object.NewSphere(17.0), object.NewSphere(17.0))

	name := framework.NewUniqueSdfClassName("test")
	named := framework.NewNamedSdf(tree, name)

	registrator := framework.NewSdfRegistrator()
	registrator.Add(named)
	generator := framework.NewSdfCodeGenerator(registrator)

	var actualCode strings.Builder
	actualName := generator.GenerateUniqueCodeFor(named, &actualCode)

	var actualShared strings.Builder
	generator.GenerateSharedCode(&actualShared)

	expectedName := framework.FunctionNameOf(name)
	expectedCode := "fn sdf_test(point: vec3f, time: f32) -> f32 {\nvar left_1: f32;\n{\nleft_1 = sdf_test_1(point,time);\n}\nvar right_1: f32;\n{\nright_1 = sdf_test_1(point,time);\n}\n\nreturn min(left_1,right_1);\n}\n"
	expectedShared := "fn sdf_test_1(point: vec3f, time: f32) -> f32 {\nreturn length(point)-17.0;\n}\n"

	if actualName.String() != expectedName.String() {
		t.Fatalf("name mismatch: got %q want %q", actualName.String(), expectedName.String())
	}
	if actualShared.String() != expectedShared {
		t.Fatalf("shared code mismatch:\ngot:  %q\nwant: %q", actualShared.String(), expectedShared)
	}
	if actualCode.String() != expectedCode {
		t.Fatalf("unique code mismatch:\ngot:  %q\nwant: %q", actualCode.String(), expectedCode)
	}
}

func TestTreeWithMultipleLevelsOfDuplications(t *testing.T) {
	tree := composition.NewUnion(
		object.NewSphere(17.0),
		composition.NewUnion(
			composition.NewUnion(object.NewSphere(17.0), object.NewSphere(17.0)),
			composition.NewUnion(object.NewSphere(17.0), object.NewSphere(17.0)),
		),
	)

	name := framework.NewUniqueSdfClassName("test")
	named := framework.NewNamedSdf(tree, name)

	registrator := framework.NewSdfRegistrator()
	registrator.Add(named)
	generator := framework.NewSdfCodeGenerator(registrator)

	var actualCode strings.Builder
	actualName := generator.GenerateUniqueCodeFor(named, &actualCode)

	var actualShared strings.Builder
	generator.GenerateSharedCode(&actualShared)

	expectedName := framework.FunctionNameOf(name)
	expectedCode := "fn sdf_test(point: vec3f, time: f32) -> f32 {\nvar left_3: f32;\n{\nleft_3 = sdf_test_1(point,time);\n}\nvar right_3: f32;\n{\nvar left_2: f32;\n{\nleft_2 = sdf_test_2(point,time);\n}\nvar right_2: f32;\n{\nright_2 = sdf_test_2(point,time);\n}\n\nright_3 = min(left_2,right_2);\n}\n\nreturn min(left_3,right_3);\n}\n"
	expectedShared := "fn sdf_test_1(point: vec3f, time: f32) -> f32 {\nreturn length(point)-17.0;\n}\nfn sdf_test_2(point: vec3f, time: f32) -> f32 {\nvar left: f32;\n{\nleft = sdf_test_1(point,time);\n}\nvar right: f32;\n{\nright = sdf_test_1(point,time);\n}\n\nreturn min(left,right);\n}\n"

	if actualName.String() != expectedName.String() {
		t.Fatalf("name mismatch: got %q want %q", actualName.String(), expectedName.String())
	}
	if actualShared.String() != expectedShared {
		t.Fatalf("shared code mismatch:\ngot:  %q\nwant: %q", actualShared.String(), expectedShared)
	}
	if actualCode.String() != expectedCode {
		t.Fatalf("unique code mismatch:\ngot:  %q\nwant: %q", actualCode.String(), expectedCode)
	}
}
