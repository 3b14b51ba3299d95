package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgen/internal/model"
	"propgen/internal/parser"
)

var generics = []model.GenericParam{
	{Name: "T", Constraint: "fmt.Stringer"},
	{Name: "U", Constraint: "comparable"},
}

// fieldType parses a type expression through the schema parser so the
// analyzer sees the same TypeRef trees production code feeds it.
func fieldType(t *testing.T, typ string) model.TypeRef {
	t.Helper()
	src := `package c

//propgen:component render=draw
type Box[T fmt.Stringer, U comparable] struct {
	Value ` + typ + `
}
`
	file, err := parser.New().ParseSource("schema.go", src)
	require.NoError(t, err)
	return file.Components[0].Fields[0].Type
}

func names(params []model.GenericParam) []string {
	var out []string
	for _, p := range params {
		out = append(out, p.Name)
	}
	return out
}

func TestUsageNestedGenericArguments(t *testing.T) {
	used := Usage(fieldType(t, "Wrapper[T, Other[U]]"), generics)
	assert.Equal(t, []string{"T", "U"}, names(used))
}

func TestUsagePlainType(t *testing.T) {
	used := Usage(fieldType(t, "PlainType"), generics)
	assert.Empty(t, used)
}

func TestUsageDirectParameter(t *testing.T) {
	used := Usage(fieldType(t, "T"), generics)
	assert.Equal(t, []string{"T"}, names(used))
}

func TestUsageDeduplicates(t *testing.T) {
	used := Usage(fieldType(t, "Pair[T, T]"), generics)
	assert.Equal(t, []string{"T"}, names(used))
}

func TestUsageDeclarationOrder(t *testing.T) {
	// U appears first in the expression; the result still follows
	// declaration order.
	used := Usage(fieldType(t, "Pair[U, T]"), generics)
	assert.Equal(t, []string{"T", "U"}, names(used))
}

func TestUsageCompositeTypes(t *testing.T) {
	cases := []struct {
		typ  string
		want []string
	}{
		{"[]T", []string{"T"}},
		{"*U", []string{"U"}},
		{"map[T]U", []string{"T", "U"}},
		{"map[string]int", nil},
		{"chan T", []string{"T"}},
		{"func(T) U", []string{"T", "U"}},
		{"[]Wrapper[U]", []string{"U"}},
		{"map[string][]Other[T]", []string{"T"}},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			used := Usage(fieldType(t, tc.typ), generics)
			assert.Equal(t, tc.want, names(used))
		})
	}
}

func TestUsageQualifiedNamesNeverMatch(t *testing.T) {
	// pkg.T names a type in another package, not the parameter T.
	used := Usage(fieldType(t, "pkg.T"), generics)
	assert.Empty(t, used)
}

func TestUsageNoGenerics(t *testing.T) {
	used := Usage(fieldType(t, "Wrapper[int]"), nil)
	assert.Empty(t, used)
}

func TestUsedByAny(t *testing.T) {
	fields := []model.Field{
		{Name: "A", Type: fieldType(t, "T")},
		{Name: "B", Type: fieldType(t, "string")},
	}
	used := UsedByAny(fields, generics)
	assert.Equal(t, []string{"T"}, names(used))
}
