// Package store persists scan results. The interface abstracts the backend:
// an in-memory store for throwaway runs and tests, SQLite for durable
// result databases.
package store

import (
	"fmt"

	"github.com/dpronin/mtfind/pkg/types"
)

// Store provides persistence for scan results.
type Store interface {
	// AddSource records a scanned source (idempotent on path).
	AddSource(path string, size int64) error

	// AddPattern records a search mask under its name (idempotent on name).
	AddPattern(name, mask string) error

	// AddFinding stores one finding of a pattern in a source.
	AddFinding(sourcePath, patternName string, f types.Finding) error

	// FindingCount returns the number of stored findings.
	FindingCount() (uint64, error)

	// GetFindings retrieves the findings for a source ordered by
	// (pattern name, line, offset).
	GetFindings(sourcePath string) ([]StoredFinding, error)

	// Close closes the backend.
	Close() error
}

// StoredFinding is a finding together with its source and pattern keys.
type StoredFinding struct {
	SourcePath  string
	PatternName string
	Finding     types.Finding
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Use ":memory:" for the in-memory
	// backend.
	Path string
}

// New creates a Store for the config given.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
