// Package generator renders parsed components into Go source artifacts:
// the props builder, the flattened props struct, the consumption
// interface, per-field setters and the render shorthand.
package generator

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io"
	"text/template"

	"propgen/internal/config"
	"propgen/internal/model"
)

//go:embed templates/component.go.tmpl
var templateFS embed.FS

// Generator renders components against the embedded artifact templates.
type Generator struct {
	config   *config.Config
	template *template.Template
}

// New creates a new Generator.
func New(cfg *config.Config) (*Generator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/component.go.tmpl")
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return &Generator{
		config:   cfg,
		template: tmpl,
	}, nil
}

// Generate renders all selected components of file into w. The output is
// gofmt-formatted and a pure function of the schema, so regenerating from
// an unchanged input is byte-identical. Nothing is written on error.
func (g *Generator) Generate(file *model.File, w io.Writer) error {
	components := g.filterComponents(file.Components)

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, buildFilePlan(g.config, file, components)); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	_, err = w.Write(src)
	return err
}

// filterComponents filters components based on configuration.
func (g *Generator) filterComponents(components []model.Component) []model.Component {
	var result []model.Component
	for _, c := range components {
		if g.config.ShouldIncludeComponent(c.Name) {
			result = append(result, c)
		}
	}
	return result
}
