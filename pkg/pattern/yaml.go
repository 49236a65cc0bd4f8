package pattern

// yamlPattern is the intermediate struct for parsing pattern-set YAML files.
// Maps YAML fields to the Pattern structure.
type yamlPattern struct {
	Name             string   `yaml:"name"`
	Mask             string   `yaml:"mask"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlPatternsFile represents the top-level structure of a pattern-set file:
// a "patterns" array at the top level.
type yamlPatternsFile struct {
	Patterns []yamlPattern `yaml:"patterns"`
}

func convertYAMLPattern(y yamlPattern) *Pattern {
	return &Pattern{
		Name:             y.Name,
		Mask:             []byte(y.Mask),
		Description:      y.Description,
		Examples:         y.Examples,
		NegativeExamples: y.NegativeExamples,
	}
}
