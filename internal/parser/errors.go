package parser

import (
	"fmt"
	"go/token"
)

// ErrorKind identifies a class of schema validation failure.
type ErrorKind string

const (
	// ErrUnnamedField reports an embedded (positional) field in a component.
	ErrUnnamedField ErrorKind = "unnamed field"
	// ErrUnsupportedGenericKind reports a type parameter the generator cannot
	// re-emit into generated artifacts.
	ErrUnsupportedGenericKind ErrorKind = "unsupported generic kind"
	// ErrConflictingReactivity reports a field annotated as both signal and
	// signal_vec.
	ErrConflictingReactivity ErrorKind = "conflicting reactivity"
	// ErrNotAStruct reports a component directive on a non-struct type.
	ErrNotAStruct ErrorKind = "not a struct"
	// ErrBadDirective reports a malformed propgen directive.
	ErrBadDirective ErrorKind = "bad directive"
)

// SchemaError is a fatal schema validation failure. Generation never
// proceeds past the first SchemaError; no partial output is written.
type SchemaError struct {
	Kind      ErrorKind
	Component string
	Field     string
	Pos       token.Position
	Detail    string
}

func (e *SchemaError) Error() string {
	where := e.Component
	if e.Field != "" {
		where += "." + e.Field
	}
	msg := fmt.Sprintf("%s: %s", where, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

func schemaErr(kind ErrorKind, pos token.Position, component, field, detail string) *SchemaError {
	return &SchemaError{
		Kind:      kind,
		Component: component,
		Field:     field,
		Pos:       pos,
		Detail:    detail,
	}
}
