// Package analyzer locates component type parameters inside field type
// expressions. The generator uses the result to keep generated artifacts
// generic over exactly the parameters a field depends on.
package analyzer

import "propgen/internal/model"

// Usage returns the subset of declared type parameters referenced anywhere
// in t, including inside nested generic-argument positions. The result is
// deduplicated and ordered by declaration order. It never fails; a type
// using no parameters yields an empty slice.
func Usage(t model.TypeRef, generics []model.GenericParam) []model.GenericParam {
	if len(generics) == 0 {
		return nil
	}
	found := make(map[string]bool)
	walk(&t, generics, found)

	var used []model.GenericParam
	for _, g := range generics {
		if found[g.Name] {
			used = append(used, g)
		}
	}
	return used
}

// UsedByAny returns the declaration-ordered union of Usage over all fields.
// Parameters no field references are dropped from every generated artifact.
func UsedByAny(fields []model.Field, generics []model.GenericParam) []model.GenericParam {
	if len(generics) == 0 {
		return nil
	}
	found := make(map[string]bool)
	for i := range fields {
		walk(&fields[i].Type, generics, found)
	}

	var used []model.GenericParam
	for _, g := range generics {
		if found[g.Name] {
			used = append(used, g)
		}
	}
	return used
}

// walk accumulates referenced parameter names. A named type matches when
// its unqualified identifier equals a parameter name; qualified names
// (pkg.Type) can never be type parameters and are skipped. Generic
// arguments, element, key, value and function signature positions are all
// explored.
func walk(t *model.TypeRef, generics []model.GenericParam, found map[string]bool) {
	if t == nil {
		return
	}

	switch t.Kind {
	case model.KindNamed, model.KindGeneric:
		if t.Package == "" {
			for _, g := range generics {
				if g.Name == t.Name {
					found[g.Name] = true
					break
				}
			}
		}
	}

	for i := range t.Args {
		walk(&t.Args[i], generics, found)
	}
	walk(t.Elem, generics, found)
	walk(t.Key, generics, found)
	walk(t.Value, generics, found)
	for i := range t.Params {
		walk(&t.Params[i], generics, found)
	}
	for i := range t.Results {
		walk(&t.Results[i], generics, found)
	}
}
