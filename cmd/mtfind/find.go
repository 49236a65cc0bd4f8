package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpronin/mtfind/pkg/pattern"
	"github.com/dpronin/mtfind/pkg/prefilter"
	"github.com/dpronin/mtfind/pkg/scanner"
	"github.com/dpronin/mtfind/pkg/source"
	"github.com/dpronin/mtfind/pkg/store"
	"github.com/dpronin/mtfind/pkg/types"
	"github.com/dpronin/mtfind/pkg/walk"
)

var (
	findWorkers         int
	findDelimiter       string
	findStrategy        string
	findPatternsPath    string
	findPatternsInclude string
	findPatternsExclude string
	findDBPath          string
	findFormat          string
	findRecursive       bool
	findIncludeHidden   bool
	findMaxFileSize     int64
	findGzip            bool
)

var findCmd = &cobra.Command{
	Use:   "find <target> [mask]",
	Short: "Scan a file, directory, or stdin for mask occurrences",
	Long: `Scan a target for occurrences of a search mask (or of every mask in a
pattern-set file) and report each occurrence with its line number and
in-line position. Use '-' as the target to read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mask := ""
		if len(args) == 2 {
			mask = args[1]
		}
		return runFind(cmd, args[0], mask)
	},
}

func init() {
	findCmd.Flags().IntVar(&findWorkers, "workers", 0, "Worker count (0 = hardware concurrency)")
	findCmd.Flags().StringVar(&findDelimiter, "delimiter", "\n", "Line delimiter byte (escapes \\n, \\t, \\0 accepted)")
	findCmd.Flags().StringVar(&findStrategy, "strategy", "auto", "Execution strategy: auto, dnc, rr")
	findCmd.Flags().StringVar(&findPatternsPath, "patterns", "", "Path to a YAML pattern-set file (instead of a positional mask)")
	findCmd.Flags().StringVar(&findPatternsInclude, "patterns-include", "", "Include patterns whose name matches regex (comma-separated)")
	findCmd.Flags().StringVar(&findPatternsExclude, "patterns-exclude", "", "Exclude patterns whose name matches regex (comma-separated)")
	findCmd.Flags().StringVar(&findDBPath, "db", "", "Store findings in a SQLite database at this path")
	findCmd.Flags().StringVar(&findFormat, "format", "human", "Output format: human, json, sarif")
	findCmd.Flags().BoolVarP(&findRecursive, "recursive", "r", false, "Recurse into directories")
	findCmd.Flags().BoolVar(&findIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	findCmd.Flags().Int64Var(&findMaxFileSize, "max-file-size", 0, "Skip files larger than this many bytes (0 = no limit)")
	findCmd.Flags().BoolVar(&findGzip, "gzip", false, "Force gzip decompression of inputs")
}

// runFind is shared between the find subcommand and the bare
// "mtfind INPUT MASK" form.
func runFind(cmd *cobra.Command, target, mask string) error {
	delim, err := parseDelimiter(findDelimiter)
	if err != nil {
		return err
	}

	strategy, ok := scanner.ParseStrategy(findStrategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q", findStrategy)
	}

	patterns, err := resolvePatterns(mask)
	if err != nil {
		return err
	}

	core := scanner.NewCore(scanner.Config{
		Delimiter: delim,
		Workers:   findWorkers,
		Strategy:  strategy,
		Logger:    coreLogger{},
	})

	var entries []entry
	multiSource := false

	switch {
	case target == "-":
		if len(patterns) > 1 {
			return fmt.Errorf("pattern sets need a re-readable input; stdin allows a single mask")
		}
		entries, err = scanStdin(core, patterns[0])

	default:
		info, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("input file %s doesn't exist", target)
		}
		if info.IsDir() {
			if !findRecursive {
				return fmt.Errorf("input file %s is not regular (use --recursive for directories)", target)
			}
			var paths []string
			walkErr := walk.Files(walk.Config{
				Root:          target,
				IncludeHidden: findIncludeHidden,
				MaxFileSize:   findMaxFileSize,
			}, func(path string) error {
				paths = append(paths, path)
				return nil
			})
			if walkErr != nil {
				return fmt.Errorf("walking %s: %w", target, walkErr)
			}
			multiSource = len(paths) > 1
			for _, path := range paths {
				fileEntries, scanErr := scanFile(core, path, patterns)
				if scanErr != nil {
					return scanErr
				}
				entries = append(entries, fileEntries...)
			}
		} else {
			entries, err = scanFile(core, target, patterns)
		}
	}
	if err != nil {
		return err
	}

	if findDBPath != "" {
		if err := persist(entries, patterns); err != nil {
			return err
		}
		log.Infof("findings stored in %s", findDBPath)
	}

	return emitReport(cmd, findFormat, entries, patterns, multiSource, len(patterns) > 1)
}

// scanFile scans one file with every pattern, memory mapped when possible.
func scanFile(core *scanner.Core, path string, patterns []*pattern.Pattern) ([]entry, error) {
	if findGzip || strings.HasSuffix(path, ".gz") {
		return scanCompressed(core, path, patterns)
	}

	region, err := source.MapFile(path)
	if err != nil {
		return nil, err
	}
	defer region.Close()

	if region.Len() == 0 {
		log.Infof("input file %s is empty", path)
		return nil, nil
	}

	active := patterns
	if len(patterns) > 1 {
		active = prefilter.New(patterns).Filter(region.Bytes())
		log.Debugf("%s: prefilter kept %d of %d patterns", path, len(active), len(patterns))
	}

	var entries []entry
	for _, p := range active {
		tok, err := scanner.TokenizerFor(p.Mask)
		if err != nil {
			return nil, err
		}
		err = core.ScanRegion(region.Bytes(), tok,
			func(total uint64) error { return nil },
			func(f types.Finding) error {
				f.Bytes = append([]byte(nil), f.Bytes...)
				entries = append(entries, entry{Source: path, Pattern: p.Name, Finding: f})
				return nil
			})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
	}
	return entries, nil
}

// scanCompressed streams a gzip input once per pattern.
func scanCompressed(core *scanner.Core, path string, patterns []*pattern.Pattern) ([]entry, error) {
	var entries []entry
	for _, p := range patterns {
		stream, err := source.OpenStream(path, findGzip)
		if err != nil {
			return nil, err
		}

		tok, err := scanner.TokenizerFor(p.Mask)
		if err != nil {
			stream.Close()
			return nil, err
		}
		err = core.ScanStream(stream, tok,
			func(total uint64) error { return nil },
			func(f types.Finding) error {
				entries = append(entries, entry{Source: path, Pattern: p.Name, Finding: f})
				return nil
			})
		stream.Close()
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
	}
	return entries, nil
}

// scanStdin streams stdin with a single pattern.
func scanStdin(core *scanner.Core, p *pattern.Pattern) ([]entry, error) {
	stream, err := source.WrapStream(os.Stdin, findGzip)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	tok, err := scanner.TokenizerFor(p.Mask)
	if err != nil {
		return nil, err
	}

	var entries []entry
	err = core.ScanStream(stream, tok,
		func(total uint64) error { return nil },
		func(f types.Finding) error {
			entries = append(entries, entry{Source: "-", Pattern: p.Name, Finding: f})
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("scanning stdin: %w", err)
	}
	return entries, nil
}

// resolvePatterns builds the pattern list from either the positional mask or
// the --patterns file.
func resolvePatterns(mask string) ([]*pattern.Pattern, error) {
	if findPatternsPath != "" {
		if mask != "" {
			return nil, fmt.Errorf("a positional mask and --patterns are mutually exclusive")
		}
		loader := pattern.NewLoader()
		patterns, err := loader.LoadPatternFile(findPatternsPath)
		if err != nil {
			return nil, fmt.Errorf("loading patterns: %w", err)
		}
		if findPatternsInclude != "" || findPatternsExclude != "" {
			patterns, err = pattern.Filter(patterns, pattern.FilterConfig{
				Include: pattern.ParsePatterns(findPatternsInclude),
				Exclude: pattern.ParsePatterns(findPatternsExclude),
			})
			if err != nil {
				return nil, err
			}
		}
		if len(patterns) == 0 {
			return nil, fmt.Errorf("no patterns left after filtering")
		}
		return patterns, nil
	}

	if mask == "" {
		return nil, fmt.Errorf("a mask or --patterns is required")
	}
	if err := pattern.Validate([]byte(mask)); err != nil {
		return nil, fmt.Errorf("mask has incorrect format: %w", err)
	}
	return []*pattern.Pattern{{Name: "mask", Mask: []byte(mask)}}, nil
}

// persist writes sources, patterns and findings to the --db store.
func persist(entries []entry, patterns []*pattern.Pattern) error {
	s, err := store.New(store.Config{Path: findDBPath})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	for _, p := range patterns {
		if err := s.AddPattern(p.Name, string(p.Mask)); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.Source] {
			seen[e.Source] = true
			size := int64(0)
			if info, err := os.Stat(e.Source); err == nil {
				size = info.Size()
			}
			if err := s.AddSource(e.Source, size); err != nil {
				return err
			}
		}
		if err := s.AddFinding(e.Source, e.Pattern, e.Finding); err != nil {
			return err
		}
	}
	return nil
}

// parseDelimiter turns the --delimiter flag into a single byte, accepting a
// few escape spellings.
func parseDelimiter(s string) (byte, error) {
	switch s {
	case "\\n":
		return '\n', nil
	case "\\t":
		return '\t', nil
	case "\\0":
		return 0, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single byte, got %q", s)
	}
	return s[0], nil
}
