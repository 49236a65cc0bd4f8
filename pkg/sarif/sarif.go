// Package sarif renders scan findings as a SARIF 2.1.0 report, one result
// per finding with the line/offset region of the match.
package sarif

import (
	"encoding/json"
	"fmt"

	"github.com/dpronin/mtfind/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "mtfind"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one search mask of the run
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the scanned file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region pins the match: SARIF lines and columns are 1-based, matching the
// finding's own numbering.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// NewReport creates an empty report with one run.
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{{
			Tool: Tool{
				Driver: Driver{
					Name:    ToolName,
					Version: ToolVersion,
				},
			},
			Results: []Result{},
		}},
	}
}

// AddRule registers a mask in the run's driver metadata.
func (r *Report) AddRule(name, mask, description string) {
	if description == "" {
		description = fmt.Sprintf("occurrences of mask %q", mask)
	}
	r.Runs[0].Tool.Driver.Rules = append(r.Runs[0].Tool.Driver.Rules, Rule{
		ID:               name,
		Name:             name,
		ShortDescription: ShortDescription{Text: description},
	})
}

// AddResult appends a finding of ruleID in filePath.
func (r *Report) AddResult(ruleID, filePath string, f types.Finding) {
	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:  ruleID,
		Level:   "note",
		Message: Message{Text: fmt.Sprintf("match %q at %d:%d", f.Bytes, f.Line, f.Offset)},
		Locations: []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: filePath},
				Region: Region{
					StartLine:   int(f.Line),
					StartColumn: int(f.Offset),
					EndColumn:   int(f.Offset) + len(f.Bytes),
				},
			},
		}},
	})
}

// ToJSON serializes the report with indentation.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
