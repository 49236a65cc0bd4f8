package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dpronin/mtfind/pkg/pattern"
	"github.com/dpronin/mtfind/pkg/sarif"
	"github.com/dpronin/mtfind/pkg/types"
)

// entry is one reported finding with its source and pattern keys.
type entry struct {
	Source  string
	Pattern string
	Finding types.Finding
}

// emitReport renders the collected findings in the requested format. The
// human single-source single-mask form follows the classic contract: total
// count on the first line, then "<line> <offset> <bytes>" per finding.
func emitReport(cmd *cobra.Command, format string, entries []entry, patterns []*pattern.Pattern, multiSource, multiPattern bool) error {
	switch format {
	case "human":
		return emitHuman(cmd, entries, multiSource, multiPattern)
	case "json":
		return emitJSON(cmd, entries)
	case "sarif":
		return emitSARIF(cmd, entries, patterns)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func emitHuman(cmd *cobra.Command, entries []entry, multiSource, multiPattern bool) error {
	out := cmd.OutOrStdout()

	highlight := fmt.Sprint
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		highlight = color.New(color.FgRed, color.Bold).Sprint
	}

	fmt.Fprintf(out, "%d\n", len(entries))
	for _, e := range entries {
		if multiSource {
			fmt.Fprintf(out, "%s:", e.Source)
		}
		if multiPattern {
			fmt.Fprintf(out, "%s:", e.Pattern)
		}
		fmt.Fprintf(out, "%d %d %s\n", e.Finding.Line, e.Finding.Offset, highlight(string(e.Finding.Bytes)))
	}
	return nil
}

// jsonFinding is the wire shape of one finding in --format json.
type jsonFinding struct {
	Source  string `json:"source,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Line    uint64 `json:"line"`
	Offset  uint64 `json:"offset"`
	Bytes   string `json:"bytes"`
}

func emitJSON(cmd *cobra.Command, entries []entry) error {
	findings := make([]jsonFinding, 0, len(entries))
	for _, e := range entries {
		findings = append(findings, jsonFinding{
			Source:  e.Source,
			Pattern: e.Pattern,
			Line:    e.Finding.Line,
			Offset:  e.Finding.Offset,
			Bytes:   string(e.Finding.Bytes),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Count    int           `json:"count"`
		Findings []jsonFinding `json:"findings"`
	}{
		Count:    len(entries),
		Findings: findings,
	})
}

func emitSARIF(cmd *cobra.Command, entries []entry, patterns []*pattern.Pattern) error {
	report := sarif.NewReport()
	for _, p := range patterns {
		report.AddRule(p.Name, string(p.Mask), p.Description)
	}
	for _, e := range entries {
		report.AddResult(e.Pattern, e.Source, e.Finding)
	}

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(jsonBytes); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout())
	return err
}
