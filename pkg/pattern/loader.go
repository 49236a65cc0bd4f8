package pattern

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading pattern sets from YAML files.
type Loader struct{}

// NewLoader creates a pattern-set loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadPatterns loads a pattern set from YAML bytes. Every mask is validated
// against the accepted alphabet; names must be unique and non-empty.
func (l *Loader) LoadPatterns(data []byte) ([]*Pattern, error) {
	var yamlFile yamlPatternsFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns found in YAML")
	}

	seen := make(map[string]bool, len(yamlFile.Patterns))
	patterns := make([]*Pattern, 0, len(yamlFile.Patterns))
	for i, y := range yamlFile.Patterns {
		if y.Name == "" {
			return nil, fmt.Errorf("pattern #%d has no name", i+1)
		}
		if seen[y.Name] {
			return nil, fmt.Errorf("duplicate pattern name %q", y.Name)
		}
		seen[y.Name] = true

		p := convertYAMLPattern(y)
		if err := Validate(p.Mask); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Name, err)
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}

// LoadPatternFile loads a pattern set from a YAML file path.
func (l *Loader) LoadPatternFile(path string) ([]*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadPatterns(data)
}
