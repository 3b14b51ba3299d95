// Package config provides configuration handling for propgen.
package config

// DefaultReactiveImport is the import path of the bundled reactive support
// package. Consumers that vendor or fork the support package override it.
const DefaultReactiveImport = "propgen/reactive"

// DefaultHeader is the first line of every generated file. Generation is a
// pure function of the schema, so the header carries no timestamp.
const DefaultHeader = "// Code generated by propgen. DO NOT EDIT."

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		OutputSuffix: "_propgen.go",
	}
}
