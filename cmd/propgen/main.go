// propgen generates reactive props builders for annotated component
// structs. It parses a Go source file, extracts //propgen: directives and
// emits the builder, props struct, consumption interface, setters and
// render shorthand for every component found.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"propgen/internal/config"
	"propgen/internal/generator"
	"propgen/internal/parser"
)

var (
	inputFile      string
	outputFile     string
	configFile     string
	components     string
	exclude        string
	reactiveImport string
	verbose        bool
	showHelp       bool
)

func init() {
	flag.StringVar(&inputFile, "input", "", "Input Go source file (required)")
	flag.StringVar(&inputFile, "i", "", "Input Go source file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file (default: input with _propgen.go suffix, \"-\" for stdout)")
	flag.StringVar(&outputFile, "o", "", "Output file (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&components, "components", "", "Only generate these components (comma-separated)")
	flag.StringVar(&components, "C", "", "Only generate these components (shorthand)")
	flag.StringVar(&exclude, "exclude", "", "Exclude these components (comma-separated)")
	flag.StringVar(&exclude, "X", "", "Exclude these components (shorthand)")

	flag.StringVar(&reactiveImport, "reactive", "", "Import path of the reactive support package")

	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `propgen - reactive component props generator

Usage:
    propgen -i <components.go> [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # Generate props code next to the input file
    propgen -i components.go

    # Generate to stdout
    propgen -i components.go -o -

    # Generate specific components only
    propgen -i components.go -C SomeButton,Counter

    # Exclude components
    propgen -i components.go -X Experimental

    # Generate with custom config
    propgen -i components.go -c propgen.yaml

    # Override the reactive support package import path
    propgen -i components.go --reactive example.com/app/reactive

`)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	if inputFile == "" {
		return fmt.Errorf("input file is required (-i or --input)")
	}

	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if components != "" {
		cfg.Options.IncludeComponents = parseCommaSeparated(components)
	}
	if exclude != "" {
		cfg.Options.ExcludeComponents = parseCommaSeparated(exclude)
	}
	if reactiveImport != "" {
		cfg.ReactiveImport = reactiveImport
	}

	p := parser.New()
	file, err := p.ParseFile(inputFile)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsed %d components from %s\n", len(file.Components), inputFile)
		for _, c := range file.Components {
			fmt.Fprintf(os.Stderr, "  - %s (render %s, %d fields)\n", c.Name, c.RenderFunc, len(c.Fields))
		}
	}

	gen, err := generator.New(cfg)
	if err != nil {
		return err
	}

	// Generate fully in memory first so a failed pass never leaves a
	// partial output file behind.
	var buf bytes.Buffer
	if err := gen.Generate(file, &buf); err != nil {
		return err
	}

	if outputFile == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	target := outputFile
	if target == "" {
		target = strings.TrimSuffix(inputFile, ".go") + cfg.Options.OutputSuffix
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Generated output to %s\n", target)
	}

	return nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
