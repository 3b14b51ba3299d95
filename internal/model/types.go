// Package model defines the intermediate representation for parsed components.
package model

// ReactivityMode classifies how a field's value behaves over time.
type ReactivityMode string

const (
	// Constant fields hold one plain value.
	Constant ReactivityMode = "constant"
	// Single fields hold one time-varying value.
	Single ReactivityMode = "signal"
	// Collection fields hold a time-varying ordered sequence.
	Collection ReactivityMode = "signal_vec"
)

// TypeKind represents the category of a Go type expression.
type TypeKind string

const (
	KindNamed     TypeKind = "named"
	KindPointer   TypeKind = "pointer"
	KindSlice     TypeKind = "slice"
	KindArray     TypeKind = "array"
	KindMap       TypeKind = "map"
	KindChan      TypeKind = "chan"
	KindFunc      TypeKind = "func"
	KindInterface TypeKind = "interface"
	KindGeneric   TypeKind = "generic" // instantiation, e.g. Wrapper[T, U]
)

// File represents a parsed schema source file.
type File struct {
	Package    string      // Package name
	Path       string      // File path
	Components []Component // Components found in the file
	Imports    []Import    // Import statements of the schema file
}

// Import represents an import statement of the schema file.
type Import struct {
	Alias string // Optional alias (empty if none)
	Path  string // Import path
}

// GenericParam is one declared type parameter of a component.
// Lookup is by Name; the constraint is carried verbatim.
type GenericParam struct {
	Name       string // Parameter identifier (e.g. "T")
	Constraint string // Verbatim constraint expression (e.g. "fmt.Stringer")
}

// Field is one property of a component.
type Field struct {
	Name    string         // Field name (always named; embedded fields are rejected)
	Type    TypeRef        // Structured type expression
	Mode    ReactivityMode // Constant, Single or Collection
	Default string         // Verbatim default expression, empty if none
	Sync    bool           // Thread-safety marker for Single/Collection fields
	Docs    []string       // Doc comment lines, directives stripped
}

// Component is the parsed schema unit consumed by the generator.
type Component struct {
	Name          string         // Struct name
	RenderFunc    string         // Render entry function name
	RenderReturns string         // Verbatim result list of the render entry, may be empty
	Generics      []GenericParam // Declared type parameters, in order
	Fields        []Field        // Fields, in declaration order
	Docs          []string       // Doc comment lines, directives stripped
}

// TypeRef represents a type expression as a tree.
type TypeRef struct {
	Kind    TypeKind  // Type category
	Name    string    // Type name (for named types and instantiations)
	Package string    // Package qualifier (e.g. "uuid" for uuid.UUID)
	Elem    *TypeRef  // Element type (slice, array, pointer, chan)
	Key     *TypeRef  // Key type (maps)
	Value   *TypeRef  // Value type (maps)
	Args    []TypeRef // Generic arguments (instantiations)
	Params  []TypeRef // Parameter types (funcs)
	Results []TypeRef // Result types (funcs)
	Raw     string    // Exact source text of the expression
}

// FullName returns the qualified name of a named TypeRef (e.g. "uuid.UUID").
func (t *TypeRef) FullName() string {
	if t.Package != "" {
		return t.Package + "." + t.Name
	}
	return t.Name
}

// Reactive reports whether the field is wrapped in a reactive abstraction.
func (f *Field) Reactive() bool {
	return f.Mode == Single || f.Mode == Collection
}

// HasDefault reports whether the field carries a default expression.
func (f *Field) HasDefault() bool {
	return f.Default != ""
}

// Generic looks up a declared type parameter by identifier.
func (c *Component) Generic(name string) (GenericParam, bool) {
	for _, g := range c.Generics {
		if g.Name == name {
			return g, true
		}
	}
	return GenericParam{}, false
}
