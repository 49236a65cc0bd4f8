// Package mtfind provides a parallel wildcard-mask line scanner.
//
// A mask is a byte sequence of 7-bit ASCII symbols where '?' matches any
// single byte. The scanner reports every non-overlapping occurrence tagged
// with the 1-based line number and in-line byte offset of its start, in
// ascending order.
//
// # Basic Usage
//
// Create a scanner for a mask and scan content:
//
//	scanner, err := mtfind.NewScanner("?ad")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := scanner.ScanString("bad\nmad\nhad\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, f := range result.Findings {
//	    fmt.Printf("%d %d %s\n", f.Line, f.Offset, f.Bytes)
//	}
package mtfind

import (
	"fmt"
	"io"

	"github.com/dpronin/mtfind/pkg/pattern"
	"github.com/dpronin/mtfind/pkg/scanner"
	"github.com/dpronin/mtfind/pkg/source"
	"github.com/dpronin/mtfind/pkg/tokenizer"
	"github.com/dpronin/mtfind/pkg/types"
)

// Re-export commonly used types for convenience. Users can import just
// "github.com/dpronin/mtfind" without subpackages.
type (
	// Finding is a single match occurrence.
	Finding = types.Finding

	// Strategy selects the parallel execution plan.
	Strategy = scanner.Strategy
)

// Re-export strategy constants.
const (
	StrategyAuto             = scanner.StrategyAuto
	StrategyDivideAndConquer = scanner.StrategyDivideAndConquer
	StrategyRoundRobin       = scanner.StrategyRoundRobin
)

// Result is the outcome of one scan: the total count and the ordered
// findings.
type Result struct {
	Count    uint64
	Findings []Finding
}

// Scanner scans byte sources for one mask.
type Scanner struct {
	mask []byte
	tok  *tokenizer.Tokenizer
	core *scanner.Core
}

// Option configures a Scanner.
type Option func(*scanner.Config)

// WithWorkers sets the worker count. Non-positive means hardware
// concurrency.
func WithWorkers(workers int) Option {
	return func(c *scanner.Config) {
		c.Workers = workers
	}
}

// WithDelimiter sets the line delimiter byte. Default is '\n'.
func WithDelimiter(delim byte) Option {
	return func(c *scanner.Config) {
		c.Delimiter = delim
	}
}

// WithStrategy forces an execution strategy instead of the automatic
// choice.
func WithStrategy(s Strategy) Option {
	return func(c *scanner.Config) {
		c.Strategy = s
	}
}

// WithLogger routes orchestration diagnostics to the logger given.
func WithLogger(l scanner.DebugLogger) Option {
	return func(c *scanner.Config) {
		c.Logger = l
	}
}

// NewScanner creates a Scanner for mask.
//
// The mask is validated against the accepted alphabet (7-bit ASCII up to
// 0x7E excluding CR/LF, plus the '?' wildcard); masks carrying a wildcard
// select the wildcard-aware matcher automatically.
func NewScanner(mask string, opts ...Option) (*Scanner, error) {
	var cfg scanner.Config
	for _, opt := range opts {
		opt(&cfg)
	}

	tok, err := scanner.TokenizerFor([]byte(mask))
	if err != nil {
		return nil, err
	}

	return &Scanner{
		mask: []byte(mask),
		tok:  tok,
		core: scanner.NewCore(cfg),
	}, nil
}

// Mask returns the scanner's mask bytes.
func (s *Scanner) Mask() []byte {
	return append([]byte(nil), s.mask...)
}

// HasWildcard reports whether the mask carries a wildcard.
func (s *Scanner) HasWildcard() bool { return pattern.HasWildcard(s.mask) }

// ScanBytes scans an in-memory byte region and returns all findings.
func (s *Scanner) ScanBytes(data []byte) (*Result, error) {
	result := &Result{}
	err := s.core.ScanRegion(data, s.tok,
		func(total uint64) error {
			result.Count = total
			return nil
		},
		func(f Finding) error {
			f.Bytes = append([]byte(nil), f.Bytes...)
			result.Findings = append(result.Findings, f)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ScanString scans a string.
func (s *Scanner) ScanString(content string) (*Result, error) {
	return s.ScanBytes([]byte(content))
}

// ScanReader scans a forward-only byte stream.
func (s *Scanner) ScanReader(r io.Reader) (*Result, error) {
	result := &Result{}
	err := s.core.ScanStream(r, s.tok,
		func(total uint64) error {
			result.Count = total
			return nil
		},
		func(f Finding) error {
			f.Bytes = append([]byte(nil), f.Bytes...)
			result.Findings = append(result.Findings, f)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ScanFile memory-maps and scans a file.
func (s *Scanner) ScanFile(path string) (*Result, error) {
	region, err := source.MapFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	defer region.Close()
	return s.ScanBytes(region.Bytes())
}

// ValidateMask checks a mask against the accepted alphabet without building
// a scanner.
func ValidateMask(mask string) error {
	return pattern.Validate([]byte(mask))
}
