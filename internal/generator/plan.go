package generator

import (
	"fmt"
	"regexp"
	"strings"

	"propgen/internal/analyzer"
	"propgen/internal/config"
	"propgen/internal/model"
)

// filePlan is the fully resolved input for the file template. Every name
// and type string is computed here so the template stays layout-only.
type filePlan struct {
	Header     string
	Package    string
	Imports    []importLine
	Components []componentPlan
}

type importLine struct {
	Spec string // `alias "path"` or `"path"`
}

type componentPlan struct {
	Name string
	Docs []string

	// Declaration and use forms of the generated type names, e.g.
	// "FooPropsBuilder[T fmt.Stringer]" vs "FooPropsBuilder[T]".
	// For non-generic components both forms are the bare name.
	BuilderDecl string
	BuilderUse  string
	PropsDecl   string
	PropsUse    string
	TraitDecl   string
	TraitUse    string
	CtorName    string
	CtorDecl    string
	CtorUse     string
	RenderName  string
	RenderDecl  string

	RenderFunc    string // render entry name as annotated
	RenderCall    string // render entry with explicit instantiation
	RenderReturns string // verbatim result list, empty when unknown or none

	Helpers []helperPlan
	Fields  []fieldPlan
}

// helperPlan is a per-field wrap function generic over exactly the type
// parameters the field's type depends on.
type helperPlan struct {
	Name       string
	ParamDecl  string // minimal parameter list, e.g. "[T fmt.Stringer]"
	ValueType  string // constant setter argument type
	ResultType string // reactive interface type
	WrapCall   string // reactive.Always or reactive.AlwaysVec
	FieldName  string // original schema field name, for the doc line
}

type fieldPlan struct {
	Name string // exported setter / props field name
	Slot string // builder slot name
	Docs []string

	Mode     model.ReactivityMode
	Reactive bool
	Sync     bool

	SlotType   string // builder slot type
	PropType   string // flattened props field type
	ConstParam string // constant setter argument type
	ConstStore string // RHS stored by the constant setter

	SignalName string // reactive setter name, empty for Constant fields

	HasDefault    bool
	ConstDefault  string // verbatim default for Constant fields
	WrapDefault   string // wrapped default for reactive fields
	LiteralAssign bool   // field appears in the Take struct literal
}

// buildFilePlan resolves all components of a parsed file into template input.
func buildFilePlan(cfg *config.Config, file *model.File, components []model.Component) *filePlan {
	plan := &filePlan{
		Header:  cfg.Header,
		Package: file.Package,
	}

	needsReactive := false
	for i := range components {
		plan.Components = append(plan.Components, *buildComponentPlan(&components[i]))
		for _, f := range components[i].Fields {
			if f.Reactive() {
				needsReactive = true
			}
		}
	}

	plan.Imports = buildImports(cfg, file, plan.Components, needsReactive)
	return plan
}

func buildComponentPlan(cmp *model.Component) *componentPlan {
	generics := liveGenerics(cmp)
	paramDecl := genericDecl(generics)
	paramUse := genericUse(generics)

	builder := cmp.Name + "PropsBuilder"
	props := cmp.Name + "Props"
	trait := cmp.Name + "PropsTrait"
	ctor := "New" + builder
	render := "Render" + cmp.Name

	cp := &componentPlan{
		Name:          cmp.Name,
		Docs:          cmp.Docs,
		BuilderDecl:   builder + paramDecl,
		BuilderUse:    builder + paramUse,
		PropsDecl:     props + paramDecl,
		PropsUse:      props + paramUse,
		TraitDecl:     trait + paramDecl,
		TraitUse:      trait + paramUse,
		CtorName:      ctor,
		CtorDecl:      ctor + paramDecl,
		CtorUse:       ctor + paramUse,
		RenderName:    render,
		RenderDecl:    render + paramDecl,
		RenderFunc:    cmp.RenderFunc,
		RenderCall:    cmp.RenderFunc + paramUse,
		RenderReturns: cmp.RenderReturns,
	}

	for i := range cmp.Fields {
		fp, hp := buildFieldPlan(cmp, &cmp.Fields[i])
		cp.Fields = append(cp.Fields, *fp)
		if hp != nil {
			cp.Helpers = append(cp.Helpers, *hp)
		}
	}

	return cp
}

func buildFieldPlan(cmp *model.Component, f *model.Field) (*fieldPlan, *helperPlan) {
	name := pascalCase(f.Name)
	fp := &fieldPlan{
		Name:       name,
		Slot:       slotName(f.Name),
		Docs:       f.Docs,
		Mode:       f.Mode,
		Reactive:   f.Reactive(),
		Sync:       f.Sync,
		HasDefault: f.HasDefault(),
	}

	raw := f.Type.Raw

	switch f.Mode {
	case model.Constant:
		fp.SlotType = "*" + raw
		fp.ConstParam = raw
		fp.ConstStore = "&v"
		if f.HasDefault() {
			fp.PropType = raw
			fp.ConstDefault = f.Default
			fp.LiteralAssign = false
		} else {
			fp.PropType = fp.SlotType
			fp.LiteralAssign = true
		}
		return fp, nil

	case model.Single:
		iface := "reactive.Value"
		if f.Sync {
			iface = "reactive.SyncValue"
		}
		fp.SlotType = iface + "[" + raw + "]"
		fp.PropType = fp.SlotType
		fp.ConstParam = raw
		fp.SignalName = name + "Signal"
		fp.LiteralAssign = true
		if f.HasDefault() {
			fp.WrapDefault = fmt.Sprintf("reactive.Always[%s](%s)", raw, f.Default)
		}

	case model.Collection:
		iface := "reactive.Vec"
		if f.Sync {
			iface = "reactive.SyncVec"
		}
		fp.SlotType = iface + "[" + raw + "]"
		fp.PropType = fp.SlotType
		fp.ConstParam = "[]" + raw
		fp.SignalName = name + "SignalVec"
		fp.LiteralAssign = true
		if f.HasDefault() {
			fp.WrapDefault = fmt.Sprintf("reactive.AlwaysVec[%s](%s)", raw, f.Default)
		}
	}

	// The constant-form setter wraps through a per-field helper when the
	// field's type depends on component type parameters; the helper's
	// parameter list is exactly that subset.
	used := analyzer.Usage(f.Type, cmp.Generics)
	wrap := "reactive.Always"
	result := "reactive.Value"
	if f.Sync {
		result = "reactive.SyncValue"
	}
	if f.Mode == model.Collection {
		wrap = "reactive.AlwaysVec"
		result = "reactive.Vec"
		if f.Sync {
			result = "reactive.SyncVec"
		}
	}

	if len(used) == 0 {
		fp.ConstStore = wrap + "(v)"
		return fp, nil
	}

	hp := &helperPlan{
		Name:       camelCase(cmp.Name) + name + "Value",
		ParamDecl:  genericDecl(used),
		ValueType:  fp.ConstParam,
		ResultType: result + "[" + raw + "]",
		WrapCall:   wrap,
		FieldName:  f.Name,
	}
	fp.ConstStore = hp.Name + "(v)"
	return fp, hp
}

// liveGenerics drops type parameters no field references, then restores
// parameters that surviving constraints still mention so the emitted
// parameter lists stay well formed.
func liveGenerics(cmp *model.Component) []model.GenericParam {
	used := analyzer.UsedByAny(cmp.Fields, cmp.Generics)
	if len(used) == len(cmp.Generics) {
		return used
	}

	keep := make(map[string]bool, len(used))
	for _, g := range used {
		keep[g.Name] = true
	}
	for changed := true; changed; {
		changed = false
		for _, g := range cmp.Generics {
			if !keep[g.Name] {
				continue
			}
			for _, other := range cmp.Generics {
				if !keep[other.Name] && mentionsIdent(g.Constraint, other.Name) {
					keep[other.Name] = true
					changed = true
				}
			}
		}
	}

	var live []model.GenericParam
	for _, g := range cmp.Generics {
		if keep[g.Name] {
			live = append(live, g)
		}
	}
	return live
}

// genericDecl renders a declaration-form parameter list, grouping nothing:
// "[T fmt.Stringer, U comparable]". Empty for no parameters.
func genericDecl(params []model.GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, g := range params {
		parts[i] = g.Name + " " + g.Constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// genericUse renders a use-form parameter list: "[T, U]".
func genericUse(params []model.GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, g := range params {
		parts[i] = g.Name
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// buildImports assembles the generated file's import block: the reactive
// support package plus the subset of the schema file's imports referenced
// by emitted type or default expressions.
func buildImports(cfg *config.Config, file *model.File, components []componentPlan, needsReactive bool) []importLine {
	var texts []string
	for i := range components {
		cp := &components[i]
		texts = append(texts, cp.BuilderDecl, cp.RenderReturns)
		for _, f := range cp.Fields {
			texts = append(texts, f.SlotType, f.PropType, f.ConstParam, f.ConstDefault, f.WrapDefault)
		}
		for _, h := range cp.Helpers {
			texts = append(texts, h.ParamDecl, h.ValueType, h.ResultType)
		}
	}
	all := strings.Join(texts, "\n")

	var lines []importLine
	for _, imp := range file.Imports {
		name := imp.Alias
		if name == "" {
			name = imp.Path
			if i := strings.LastIndex(name, "/"); i >= 0 {
				name = name[i+1:]
			}
		}
		if name == "_" || name == "." {
			continue
		}
		if !mentionsIdent(all, name+".") {
			continue
		}
		spec := fmt.Sprintf("%q", imp.Path)
		if imp.Alias != "" {
			spec = imp.Alias + " " + spec
		}
		lines = append(lines, importLine{Spec: spec})
	}

	if needsReactive {
		lines = append(lines, importLine{Spec: fmt.Sprintf("%q", cfg.ReactiveImport)})
	}
	return lines
}

// mentionsIdent reports whether text contains ident at word boundaries.
// A trailing "." on ident matches qualified references like "pkg.Name".
func mentionsIdent(text, ident string) bool {
	pat := `(^|[^a-zA-Z0-9_.])` + regexp.QuoteMeta(ident)
	if !strings.HasSuffix(ident, ".") {
		pat += `($|[^a-zA-Z0-9_])`
	}
	return regexp.MustCompile(pat).MatchString(text)
}

// slotName derives the unexported builder slot for a field, steering clear
// of Go keywords.
func slotName(field string) string {
	name := camelCase(field)
	if isGoKeyword(name) {
		return name + "Slot"
	}
	return name
}

func isGoKeyword(s string) bool {
	switch s {
	case "break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var":
		return true
	}
	return false
}
