// Package parser reads annotated Go source files and builds the component
// intermediate representation consumed by the generator.
package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	"propgen/internal/model"
)

// DirectivePrefix marks propgen directives inside doc comments.
const DirectivePrefix = "propgen:"

// Parser parses schema source files and extracts component definitions.
type Parser struct {
	fset *token.FileSet
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{
		fset: token.NewFileSet(),
	}
}

// ParseFile parses a single schema file and returns its components.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	return p.ParseSource(path, nil)
}

// ParseSource parses schema source. If src is nil the file at path is read.
func (p *Parser) ParseSource(path string, src any) (*model.File, error) {
	file, err := parser.ParseFile(p.fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	result := &model.File{
		Package: file.Name.Name,
		Path:    path,
	}
	result.Imports = p.extractImports(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			docs, directives, err := p.splitDoc(doc, typeSpec.Name.Name, "")
			if err != nil {
				return nil, err
			}
			dir, ok := findDirective(directives, "component")
			if !ok {
				continue
			}
			cmp, err := p.extractComponent(file, typeSpec, dir, docs)
			if err != nil {
				return nil, err
			}
			result.Components = append(result.Components, *cmp)
		}
	}

	return result, nil
}

// directive is one parsed propgen comment line.
type directive struct {
	verb string            // e.g. "signal", "default", "component"
	rest string            // raw text after the verb, trimmed
	args map[string]string // key=value arguments
	flag map[string]bool   // bare flag arguments
	pos  token.Position
}

// splitDoc separates a doc comment group into documentation lines and
// directives. Non-directive annotations do not exist in Go source, so
// every remaining line is documentation.
func (p *Parser) splitDoc(cg *ast.CommentGroup, component, field string) ([]string, []directive, error) {
	if cg == nil {
		return nil, nil, nil
	}
	var docs []string
	var directives []directive
	for _, c := range cg.List {
		text := strings.TrimPrefix(c.Text, "//")
		trimmed := strings.TrimSpace(text)
		if !strings.HasPrefix(trimmed, DirectivePrefix) {
			docs = append(docs, strings.TrimPrefix(text, " "))
			continue
		}
		d, err := p.parseDirective(trimmed, p.fset.Position(c.Pos()), component, field)
		if err != nil {
			return nil, nil, err
		}
		directives = append(directives, d)
	}
	return docs, directives, nil
}

// parseDirective parses one "propgen:<verb> ..." line. The default verb
// keeps its argument verbatim; all other verbs take key=value pairs and
// bare flags.
func (p *Parser) parseDirective(line string, pos token.Position, component, field string) (directive, error) {
	body := strings.TrimPrefix(line, DirectivePrefix)
	verb, rest, _ := strings.Cut(body, " ")
	verb = strings.TrimSpace(verb)
	rest = strings.TrimSpace(rest)

	d := directive{
		verb: verb,
		rest: rest,
		args: make(map[string]string),
		flag: make(map[string]bool),
		pos:  pos,
	}

	switch verb {
	case "component", "signal", "signal_vec":
		for _, tok := range strings.Fields(rest) {
			if key, value, ok := strings.Cut(tok, "="); ok {
				d.args[key] = value
			} else {
				d.flag[tok] = true
			}
		}
	case "default":
		if rest == "" {
			return d, schemaErr(ErrBadDirective, pos, component, field, "default requires an expression")
		}
	case "":
		return d, schemaErr(ErrBadDirective, pos, component, field, "missing directive verb")
	default:
		return d, schemaErr(ErrBadDirective, pos, component, field, fmt.Sprintf("unknown directive %q", verb))
	}
	return d, nil
}

func findDirective(directives []directive, verb string) (directive, bool) {
	for _, d := range directives {
		if d.verb == verb {
			return d, true
		}
	}
	return directive{}, false
}

// extractComponent validates one annotated type and builds its schema.
func (p *Parser) extractComponent(file *ast.File, spec *ast.TypeSpec, dir directive, docs []string) (*model.Component, error) {
	name := spec.Name.Name

	renderFunc := dir.args["render"]
	if renderFunc == "" {
		return nil, schemaErr(ErrBadDirective, dir.pos, name, "", "component requires render=<func>")
	}

	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, schemaErr(ErrNotAStruct, p.fset.Position(spec.Pos()), name, "",
			"component directive requires a struct type")
	}

	generics, err := p.typeParams(spec.TypeParams, name)
	if err != nil {
		return nil, err
	}

	fields, err := p.extractFields(structType.Fields, name)
	if err != nil {
		return nil, err
	}

	returns := dir.args["returns"]
	if returns == "" {
		returns = p.renderResults(file, renderFunc)
	}

	return &model.Component{
		Name:          name,
		RenderFunc:    renderFunc,
		RenderReturns: returns,
		Generics:      generics,
		Fields:        fields,
		Docs:          docs,
	}, nil
}

// typeParams converts a declared type-parameter list. Go type parameters
// are always type parameters, so the only rejected shape is a constraint
// the generator cannot re-emit verbatim.
func (p *Parser) typeParams(list *ast.FieldList, component string) ([]model.GenericParam, error) {
	if list == nil {
		return nil, nil
	}
	var params []model.GenericParam
	for _, tp := range list.List {
		if tp.Type == nil {
			return nil, schemaErr(ErrUnsupportedGenericKind, p.fset.Position(tp.Pos()), component, "",
				"type parameter without a constraint")
		}
		constraint := p.exprString(tp.Type)
		if constraint == "" {
			return nil, schemaErr(ErrUnsupportedGenericKind, p.fset.Position(tp.Pos()), component, "",
				"constraint cannot be re-emitted")
		}
		for _, ident := range tp.Names {
			params = append(params, model.GenericParam{
				Name:       ident.Name,
				Constraint: constraint,
			})
		}
	}
	return params, nil
}

// extractFields converts the component struct's field list.
func (p *Parser) extractFields(fieldList *ast.FieldList, component string) ([]model.Field, error) {
	if fieldList == nil {
		return nil, nil
	}
	var fields []model.Field
	for _, f := range fieldList.List {
		if len(f.Names) == 0 {
			ref := p.typeRefFromExpr(f.Type)
			return nil, schemaErr(ErrUnnamedField, p.fset.Position(f.Pos()), component, ref.Name,
				"embedded fields are not supported")
		}
		for _, name := range f.Names {
			field, err := p.extractField(f, name.Name, component)
			if err != nil {
				return nil, err
			}
			fields = append(fields, *field)
		}
	}
	return fields, nil
}

// extractField builds one FieldSpec from a named struct field.
func (p *Parser) extractField(f *ast.Field, name, component string) (*model.Field, error) {
	docs, directives, err := p.splitDoc(f.Doc, component, name)
	if err != nil {
		return nil, err
	}

	field := &model.Field{
		Name: name,
		Type: *p.typeRefFromExpr(f.Type),
		Mode: model.Constant,
		Docs: docs,
	}

	signal, hasSignal := findDirective(directives, "signal")
	signalVec, hasSignalVec := findDirective(directives, "signal_vec")
	if hasSignal && hasSignalVec {
		return nil, schemaErr(ErrConflictingReactivity, signalVec.pos, component, name,
			"field declares both signal and signal_vec")
	}
	switch {
	case hasSignal:
		field.Mode = model.Single
		field.Sync = signal.flag["sync"]
	case hasSignalVec:
		field.Mode = model.Collection
		field.Sync = signalVec.flag["sync"]
	}

	if def, ok := findDirective(directives, "default"); ok {
		field.Default = def.rest
	}

	return field, nil
}

// renderResults resolves the render entry's result list when the function
// is declared in the same file. Returns the verbatim result list, empty if
// the function is absent or has no results.
func (p *Parser) renderResults(file *ast.File, renderFunc string) string {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != renderFunc || fn.Recv != nil {
			continue
		}
		return p.resultList(fn.Type.Results)
	}
	return ""
}

// resultList formats a function result list as it would appear in a
// generated signature.
func (p *Parser) resultList(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}
	var types []string
	for _, r := range results.List {
		text := p.exprString(r.Type)
		n := len(r.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			types = append(types, text)
		}
	}
	if len(types) == 1 {
		return types[0]
	}
	return "(" + strings.Join(types, ", ") + ")"
}

// extractImports extracts import statements from the schema file.
func (p *Parser) extractImports(file *ast.File) []model.Import {
	var imports []model.Import
	for _, imp := range file.Imports {
		i := model.Import{
			Path: strings.Trim(imp.Path.Value, `"`),
		}
		if imp.Name != nil {
			i.Alias = imp.Name.Name
		}
		imports = append(imports, i)
	}
	return imports
}

// typeRefFromExpr converts an ast.Expr to a TypeRef tree. Raw always holds
// the exact source text so the generator can re-emit the type verbatim.
func (p *Parser) typeRefFromExpr(expr ast.Expr) *model.TypeRef {
	raw := p.exprString(expr)

	switch t := expr.(type) {
	case *ast.Ident:
		return &model.TypeRef{
			Kind: model.KindNamed,
			Name: t.Name,
			Raw:  raw,
		}

	case *ast.SelectorExpr:
		pkg := ""
		if ident, ok := t.X.(*ast.Ident); ok {
			pkg = ident.Name
		}
		return &model.TypeRef{
			Kind:    model.KindNamed,
			Name:    t.Sel.Name,
			Package: pkg,
			Raw:     raw,
		}

	case *ast.IndexExpr:
		base := p.typeRefFromExpr(t.X)
		return &model.TypeRef{
			Kind:    model.KindGeneric,
			Name:    base.Name,
			Package: base.Package,
			Args:    []model.TypeRef{*p.typeRefFromExpr(t.Index)},
			Raw:     raw,
		}

	case *ast.IndexListExpr:
		base := p.typeRefFromExpr(t.X)
		ref := &model.TypeRef{
			Kind:    model.KindGeneric,
			Name:    base.Name,
			Package: base.Package,
			Raw:     raw,
		}
		for _, arg := range t.Indices {
			ref.Args = append(ref.Args, *p.typeRefFromExpr(arg))
		}
		return ref

	case *ast.StarExpr:
		return &model.TypeRef{
			Kind: model.KindPointer,
			Elem: p.typeRefFromExpr(t.X),
			Raw:  raw,
		}

	case *ast.ArrayType:
		kind := model.KindSlice
		if t.Len != nil {
			kind = model.KindArray
		}
		return &model.TypeRef{
			Kind: kind,
			Elem: p.typeRefFromExpr(t.Elt),
			Raw:  raw,
		}

	case *ast.MapType:
		return &model.TypeRef{
			Kind:  model.KindMap,
			Key:   p.typeRefFromExpr(t.Key),
			Value: p.typeRefFromExpr(t.Value),
			Raw:   raw,
		}

	case *ast.ChanType:
		return &model.TypeRef{
			Kind: model.KindChan,
			Elem: p.typeRefFromExpr(t.Value),
			Raw:  raw,
		}

	case *ast.FuncType:
		ref := &model.TypeRef{
			Kind: model.KindFunc,
			Raw:  raw,
		}
		if t.Params != nil {
			for _, param := range t.Params.List {
				n := len(param.Names)
				if n == 0 {
					n = 1
				}
				for i := 0; i < n; i++ {
					ref.Params = append(ref.Params, *p.typeRefFromExpr(param.Type))
				}
			}
		}
		if t.Results != nil {
			for _, res := range t.Results.List {
				n := len(res.Names)
				if n == 0 {
					n = 1
				}
				for i := 0; i < n; i++ {
					ref.Results = append(ref.Results, *p.typeRefFromExpr(res.Type))
				}
			}
		}
		return ref

	case *ast.InterfaceType:
		return &model.TypeRef{
			Kind: model.KindInterface,
			Name: "interface",
			Raw:  raw,
		}

	case *ast.ParenExpr:
		inner := p.typeRefFromExpr(t.X)
		inner.Raw = raw
		return inner

	case *ast.Ellipsis:
		return &model.TypeRef{
			Kind: model.KindSlice,
			Elem: p.typeRefFromExpr(t.Elt),
			Raw:  raw,
		}

	default:
		return &model.TypeRef{
			Kind: model.KindNamed,
			Name: raw,
			Raw:  raw,
		}
	}
}

// exprString renders an AST expression back to source text.
func (p *Parser) exprString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fset, expr); err != nil {
		return ""
	}
	return buf.String()
}
