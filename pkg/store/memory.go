package store

import (
	"sort"
	"sync"

	"github.com/dpronin/mtfind/pkg/types"
)

// sourceRecord stores source metadata.
type sourceRecord struct {
	path string
	size int64
}

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu       sync.RWMutex
	sources  map[string]sourceRecord
	patterns map[string]string
	findings []StoredFinding
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sources:  make(map[string]sourceRecord),
		patterns: make(map[string]string),
	}
}

// AddSource records a source (idempotent).
func (m *MemoryStore) AddSource(path string, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sources[path]; exists {
		return nil
	}
	m.sources[path] = sourceRecord{path: path, size: size}
	return nil
}

// AddPattern records a mask under its name (idempotent).
func (m *MemoryStore) AddPattern(name, mask string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.patterns[name]; !exists {
		m.patterns[name] = mask
	}
	return nil
}

// AddFinding stores one finding.
func (m *MemoryStore) AddFinding(sourcePath, patternName string, f types.Finding) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f.Bytes = append([]byte(nil), f.Bytes...)
	m.findings = append(m.findings, StoredFinding{
		SourcePath:  sourcePath,
		PatternName: patternName,
		Finding:     f,
	})
	return nil
}

// FindingCount returns the number of stored findings.
func (m *MemoryStore) FindingCount() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.findings)), nil
}

// GetFindings retrieves findings for a source ordered by (pattern, line,
// offset).
func (m *MemoryStore) GetFindings(sourcePath string) ([]StoredFinding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []StoredFinding
	for _, sf := range m.findings {
		if sf.SourcePath == sourcePath {
			result = append(result, sf)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].PatternName != result[j].PatternName {
			return result[i].PatternName < result[j].PatternName
		}
		return result[i].Finding.Less(result[j].Finding)
	})
	return result, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryStore) Close() error { return nil }
