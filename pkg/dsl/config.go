package dsl

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/aretw0/cantype"
	"gopkg.in/yaml.v3"
)

// Config is the content of a declaration file.
type Config struct {
	// Production aliases strict policies to lenient ones.
	Production bool `yaml:"production"`
	// Types maps record names to their field expressions.
	Types map[string]map[string]string `yaml:"types"`
}

// Parse decodes a YAML declaration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}
	return &cfg, nil
}

// LoadFile reads and decodes a YAML declaration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}
	return Parse(data)
}

// Builder returns a builder holding the declared records.
func (c *Config) Builder() *Builder {
	b := New()
	for name, fields := range c.Types {
		b.Add(name).Fields(fields)
	}
	return b
}

// Declare builds the declared records on f.
func (c *Config) Declare(f *cantype.Factory) (*Declarations, error) {
	return c.Builder().Build(f)
}

// Reference is a field of one declared record whose type names another.
type Reference struct {
	From  string
	Field string
	To    string
	Expr  Expr
}

// References lists record-to-record references, sorted by record then field.
// Fields with malformed expressions are skipped.
func (c *Config) References() []Reference {
	var refs []Reference
	for _, name := range slices.Sorted(maps.Keys(c.Types)) {
		fields := c.Types[name]
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			e, err := ParseExpr(fields[field])
			if err != nil {
				continue
			}
			if _, declared := c.Types[e.Name]; declared {
				refs = append(refs, Reference{From: name, Field: field, To: e.Name, Expr: e})
			}
		}
	}
	return refs
}
