package parser

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgen/internal/model"
)

const buttonSchema = `package components

import (
	"fmt"

	"github.com/google/uuid"
)

// SomeButton is a clickable button.
//
//propgen:component render=someButton
type SomeButton[T fmt.Stringer, U comparable] struct {
	// The button label.
	//propgen:signal
	Label string

	ClickHandler func()

	//propgen:signal
	//propgen:default "hello"
	Greeting string

	//propgen:signal sync
	Selected U

	//propgen:signal_vec
	//propgen:default []int{1, 2, 3}
	Items int

	Owner uuid.UUID
}

func someButton(props any) string {
	return ""
}
`

func parseSchema(t *testing.T, src string) *model.File {
	t.Helper()
	file, err := New().ParseSource("schema.go", src)
	require.NoError(t, err)
	return file
}

func TestParseComponent(t *testing.T) {
	file := parseSchema(t, buttonSchema)

	assert.Equal(t, "components", file.Package)
	require.Len(t, file.Components, 1)

	cmp := file.Components[0]
	assert.Equal(t, "SomeButton", cmp.Name)
	assert.Equal(t, "someButton", cmp.RenderFunc)
	assert.Equal(t, []string{"SomeButton is a clickable button.", ""}, cmp.Docs)

	require.Len(t, cmp.Generics, 2)
	assert.Equal(t, model.GenericParam{Name: "T", Constraint: "fmt.Stringer"}, cmp.Generics[0])
	assert.Equal(t, model.GenericParam{Name: "U", Constraint: "comparable"}, cmp.Generics[1])

	require.Len(t, cmp.Fields, 6)
}

func TestParseFieldModes(t *testing.T) {
	file := parseSchema(t, buttonSchema)
	fields := file.Components[0].Fields

	byName := make(map[string]model.Field)
	for _, f := range fields {
		byName[f.Name] = f
	}

	label := byName["Label"]
	assert.Equal(t, model.Single, label.Mode)
	assert.False(t, label.Sync)
	assert.Empty(t, label.Default)
	assert.Equal(t, []string{"The button label."}, label.Docs)

	click := byName["ClickHandler"]
	assert.Equal(t, model.Constant, click.Mode)
	assert.Equal(t, model.KindFunc, click.Type.Kind)

	greeting := byName["Greeting"]
	assert.Equal(t, model.Single, greeting.Mode)
	assert.Equal(t, `"hello"`, greeting.Default)

	selected := byName["Selected"]
	assert.Equal(t, model.Single, selected.Mode)
	assert.True(t, selected.Sync)
	assert.Equal(t, "U", selected.Type.Raw)

	items := byName["Items"]
	assert.Equal(t, model.Collection, items.Mode)
	assert.Equal(t, "[]int{1, 2, 3}", items.Default)

	owner := byName["Owner"]
	assert.Equal(t, model.Constant, owner.Mode)
	assert.Equal(t, "uuid.UUID", owner.Type.Raw)
	assert.Equal(t, "uuid", owner.Type.Package)
}

func TestParseImports(t *testing.T) {
	file := parseSchema(t, buttonSchema)

	require.Len(t, file.Imports, 2)
	assert.Equal(t, model.Import{Path: "fmt"}, file.Imports[0])
	assert.Equal(t, model.Import{Path: "github.com/google/uuid"}, file.Imports[1])
}

func TestRenderReturnsResolvedFromFile(t *testing.T) {
	file := parseSchema(t, buttonSchema)
	assert.Equal(t, "string", file.Components[0].RenderReturns)
}

func TestRenderReturnsFromDirective(t *testing.T) {
	src := `package c

//propgen:component render=draw returns=Node
type Box struct {
	Width int
}
`
	file := parseSchema(t, src)
	assert.Equal(t, "Node", file.Components[0].RenderReturns)
}

func TestRenderReturnsUnknown(t *testing.T) {
	src := `package c

//propgen:component render=draw
type Box struct {
	Width int
}
`
	file := parseSchema(t, src)
	assert.Empty(t, file.Components[0].RenderReturns)
}

func TestRenderReturnsMultiple(t *testing.T) {
	src := `package c

//propgen:component render=draw
type Box struct {
	Width int
}

func draw(props any) (int, error) { return 0, nil }
`
	file := parseSchema(t, src)
	assert.Equal(t, "(int, error)", file.Components[0].RenderReturns)
}

func TestNonAnnotatedTypesIgnored(t *testing.T) {
	src := `package c

type Plain struct {
	Field int
}

//propgen:component render=draw
type Box struct {
	Width int
}
`
	file := parseSchema(t, src)
	require.Len(t, file.Components, 1)
	assert.Equal(t, "Box", file.Components[0].Name)
}

func TestUnnamedFieldError(t *testing.T) {
	src := `package c

type Base struct{}

//propgen:component render=draw
type Box struct {
	Base
	Width int
}
`
	_, err := New().ParseSource("schema.go", src)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ErrUnnamedField, schemaErr.Kind)
	assert.Equal(t, "Box", schemaErr.Component)
}

func TestConflictingReactivityError(t *testing.T) {
	src := `package c

//propgen:component render=draw
type Box struct {
	//propgen:signal
	//propgen:signal_vec
	Width int
}
`
	_, err := New().ParseSource("schema.go", src)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ErrConflictingReactivity, schemaErr.Kind)
	assert.Equal(t, "Box", schemaErr.Component)
	assert.Equal(t, "Width", schemaErr.Field)
}

func TestNotAStructError(t *testing.T) {
	src := `package c

//propgen:component render=draw
type Box interface {
	Width() int
}
`
	_, err := New().ParseSource("schema.go", src)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ErrNotAStruct, schemaErr.Kind)
}

func TestBadDirectiveErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "unknown verb",
			src: `package c

//propgen:component render=draw
type Box struct {
	//propgen:bogus
	Width int
}
`,
		},
		{
			name: "default without expression",
			src: `package c

//propgen:component render=draw
type Box struct {
	//propgen:default
	Width int
}
`,
		},
		{
			name: "component without render",
			src: `package c

//propgen:component
type Box struct {
	Width int
}
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().ParseSource("schema.go", tc.src)
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, ErrBadDirective, schemaErr.Kind)
		})
	}
}

func TestUnsupportedGenericKind(t *testing.T) {
	p := New()
	list := &ast.FieldList{
		List: []*ast.Field{
			{Names: []*ast.Ident{ast.NewIdent("T")}},
		},
	}
	_, err := p.typeParams(list, "Box")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ErrUnsupportedGenericKind, schemaErr.Kind)
}

func TestTypeRefNestedGenerics(t *testing.T) {
	src := `package c

//propgen:component render=draw
type Box[T any, U any] struct {
	Value Wrapper[T, Other[U]]
}
`
	file := parseSchema(t, src)
	ref := file.Components[0].Fields[0].Type

	assert.Equal(t, model.KindGeneric, ref.Kind)
	assert.Equal(t, "Wrapper", ref.Name)
	require.Len(t, ref.Args, 2)
	assert.Equal(t, "T", ref.Args[0].Name)
	assert.Equal(t, model.KindGeneric, ref.Args[1].Kind)
	assert.Equal(t, "Other", ref.Args[1].Name)
	require.Len(t, ref.Args[1].Args, 1)
	assert.Equal(t, "U", ref.Args[1].Args[0].Name)
	assert.Equal(t, "Wrapper[T, Other[U]]", ref.Raw)
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{
		Kind:      ErrConflictingReactivity,
		Component: "Box",
		Field:     "Width",
		Detail:    "field declares both signal and signal_vec",
	}
	assert.Equal(t, "Box.Width: conflicting reactivity: field declares both signal and signal_vec", err.Error())
}
