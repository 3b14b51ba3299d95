package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	// ReactiveImport is the import path of the reactive support package the
	// generated code compiles against.
	ReactiveImport string `yaml:"reactiveImport" json:"reactiveImport"`
	// Header replaces the default generated-code header comment.
	Header string `yaml:"header" json:"header"`

	Options Options `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	// OutputSuffix is appended to the input file's base name when no
	// explicit output path is given.
	OutputSuffix      string   `yaml:"outputSuffix" json:"outputSuffix"`
	IncludeComponents []string `yaml:"includeComponents" json:"includeComponents"`
	ExcludeComponents []string `yaml:"excludeComponents" json:"excludeComponents"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		ReactiveImport: DefaultReactiveImport,
		Header:         DefaultHeader,
		Options:        DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.ReactiveImport != "" {
		c.ReactiveImport = loaded.ReactiveImport
	}
	if loaded.Header != "" {
		c.Header = loaded.Header
	}
	if loaded.Options.OutputSuffix != "" {
		c.Options.OutputSuffix = loaded.Options.OutputSuffix
	}
	if loaded.Options.IncludeComponents != nil {
		c.Options.IncludeComponents = loaded.Options.IncludeComponents
	}
	if loaded.Options.ExcludeComponents != nil {
		c.Options.ExcludeComponents = loaded.Options.ExcludeComponents
	}
}

// ShouldIncludeComponent checks if a component should be generated.
func (c *Config) ShouldIncludeComponent(name string) bool {
	if len(c.Options.IncludeComponents) > 0 {
		found := false
		for _, n := range c.Options.IncludeComponents {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, n := range c.Options.ExcludeComponents {
		if n == name {
			return false
		}
	}

	return true
}
