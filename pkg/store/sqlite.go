package store

import (
	"database/sql"
	"fmt"

	"github.com/dpronin/mtfind/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite (pure-Go driver, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddSource records a source (idempotent).
func (s *SQLiteStore) AddSource(path string, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO sources (path, size) VALUES (?, ?)", path, size)
	if err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}
	return nil
}

// AddPattern records a mask under its name (idempotent).
func (s *SQLiteStore) AddPattern(name, mask string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO patterns (name, mask) VALUES (?, ?)", name, mask)
	if err != nil {
		return fmt.Errorf("inserting pattern: %w", err)
	}
	return nil
}

// AddFinding stores one finding.
func (s *SQLiteStore) AddFinding(sourcePath, patternName string, f types.Finding) error {
	_, err := s.db.Exec(`
		INSERT INTO findings (source_path, pattern_name, line, offset, bytes)
		VALUES (?, ?, ?, ?, ?)
	`, sourcePath, patternName, int64(f.Line), int64(f.Offset), f.Bytes)
	if err != nil {
		return fmt.Errorf("inserting finding: %w", err)
	}
	return nil
}

// FindingCount returns the number of stored findings.
func (s *SQLiteStore) FindingCount() (uint64, error) {
	var count uint64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM findings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting findings: %w", err)
	}
	return count, nil
}

// GetFindings retrieves findings for a source ordered by (pattern, line,
// offset).
func (s *SQLiteStore) GetFindings(sourcePath string) ([]StoredFinding, error) {
	rows, err := s.db.Query(`
		SELECT pattern_name, line, offset, bytes
		FROM findings
		WHERE source_path = ?
		ORDER BY pattern_name, line, offset
	`, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var result []StoredFinding
	for rows.Next() {
		var sf StoredFinding
		sf.SourcePath = sourcePath
		var line, offset int64
		if err := rows.Scan(&sf.PatternName, &line, &offset, &sf.Finding.Bytes); err != nil {
			return nil, fmt.Errorf("scanning finding row: %w", err)
		}
		sf.Finding.Line = uint64(line)
		sf.Finding.Offset = uint64(offset)
		result = append(result, sf)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
