package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dpronin/mtfind/pkg/pattern"
	"github.com/dpronin/mtfind/pkg/prefilter"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect pattern-set files",
}

var patternsListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the patterns of a pattern-set file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsList,
}

var patternsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate masks and their examples in a pattern-set file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsValidate,
}

func init() {
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsValidateCmd)
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	loader := pattern.NewLoader()
	patterns, err := loader.LoadPatternFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range patterns {
		kind := "literal"
		if p.HasWildcard() {
			kind = "wildcard"
		}
		keyword := prefilter.Keyword(p.Mask)
		fmt.Fprintf(out, "%s\t%q\t%s\tkeyword=%q\n", p.Name, p.Mask, kind, keyword)
	}
	fmt.Fprintf(out, "%d patterns\n", len(patterns))
	return nil
}

func runPatternsValidate(cmd *cobra.Command, args []string) error {
	loader := pattern.NewLoader()
	patterns, err := loader.LoadPatternFile(args[0])
	if err != nil {
		return err
	}

	failures := 0
	for _, p := range patterns {
		if err := pattern.CheckExamples(p); err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %v\n", err)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d patterns failed validation", failures, len(patterns))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d patterns OK\n", len(patterns))
	return nil
}
