// internal/source/registry.go
// Package: source
package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwiater/perfreport/internal/perf"
)

// registryFile is the document form with a top-level "tests" key.
type registryFile struct {
	Tests []perf.TestCase `yaml:"tests"`
}

// ParseRegistry decodes a YAML (or JSON) registry. It accepts either a list of
// {name, type, method} records or a mapping with a "tests" list.
func ParseRegistry(data []byte) ([]perf.TestCase, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("could not parse registry: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var tests []perf.TestCase
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&tests); err != nil {
			return nil, fmt.Errorf("could not parse registry: %w", err)
		}
	case yaml.MappingNode:
		var f registryFile
		if err := node.Content[0].Decode(&f); err != nil {
			return nil, fmt.Errorf("could not parse registry: %w", err)
		}
		tests = f.Tests
	default:
		return nil, errors.New("could not parse registry: expected a list of tests")
	}

	for i, tc := range tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("registry entry %d has no name", i)
		}
	}
	return tests, nil
}

// LoadRegistry reads and parses a registry file.
func LoadRegistry(path string) ([]perf.TestCase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read registry: %w", err)
	}
	return ParseRegistry(b)
}
