// Package scanner wires a validated mask, a byte source and a pair of sinks
// into one parallel scan run.
package scanner

import (
	"fmt"
	"io"
	"runtime"

	"github.com/dpronin/mtfind/pkg/pattern"
	"github.com/dpronin/mtfind/pkg/searcher"
	"github.com/dpronin/mtfind/pkg/splitter"
	"github.com/dpronin/mtfind/pkg/strat"
	"github.com/dpronin/mtfind/pkg/tokenizer"
)

// Config holds the scan parameters shared by every run of a Core.
type Config struct {
	// Delimiter separates lines; zero value means '\n'.
	Delimiter byte
	// Workers caps parallelism; non-positive means hardware concurrency.
	Workers int
	// Strategy picks the execution plan; StrategyAuto by default.
	Strategy Strategy
	// Logger receives orchestration diagnostics; nil means none.
	Logger DebugLogger
}

// Core runs scans for one configuration.
type Core struct {
	delim    byte
	workers  int
	strategy Strategy
	logger   DebugLogger
}

// NewCore creates a scan orchestrator, applying config defaults.
func NewCore(cfg Config) *Core {
	delim := cfg.Delimiter
	if delim == 0 {
		delim = '\n'
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Core{
		delim:    delim,
		workers:  workers,
		strategy: cfg.Strategy,
		logger:   logger,
	}
}

// Workers returns the effective worker count.
func (c *Core) Workers() int { return c.workers }

// Delimiter returns the effective line delimiter byte.
func (c *Core) Delimiter() byte { return c.delim }

// TokenizerFor builds the match tokenizer for a validated mask, selecting
// the literal or wildcard engine.
func TokenizerFor(mask []byte) (*tokenizer.Tokenizer, error) {
	if err := pattern.Validate(mask); err != nil {
		return nil, fmt.Errorf("invalid mask: %w", err)
	}
	return tokenizer.New(searcher.New(mask)), nil
}

// ScanRegion scans an in-memory byte region. StrategyAuto resolves to
// Divide-and-Conquer here.
func (c *Core) ScanRegion(data []byte, tok *tokenizer.Tokenizer, countSink strat.CountSink, findingSink strat.FindingSink) error {
	switch c.strategy {
	case StrategyRoundRobin:
		c.logger.Log("scanning %d bytes: round-robin, %d workers", len(data), c.workers)
		return strat.RoundRobin(splitter.NewRange(data, c.delim), tok, countSink, findingSink, c.workers)
	default:
		c.logger.Log("scanning %d bytes: divide-and-conquer, %d workers", len(data), c.workers)
		return strat.DivideAndConquer(data, tok, countSink, findingSink, c.delim, c.workers)
	}
}

// ScanStream scans a forward-only byte stream. Streams cannot be
// partitioned, so every strategy resolves to Round-Robin.
func (c *Core) ScanStream(r io.Reader, tok *tokenizer.Tokenizer, countSink strat.CountSink, findingSink strat.FindingSink) error {
	if c.strategy == StrategyDivideAndConquer {
		c.logger.Log("divide-and-conquer requires random access; falling back to round-robin")
	}
	c.logger.Log("scanning stream: round-robin, %d workers", c.workers)
	return strat.RoundRobin(splitter.NewStream(r, c.delim), tok, countSink, findingSink, c.workers)
}
