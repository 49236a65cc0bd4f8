// Package source opens the byte sources consumed by the scanner: memory
// mapped regions of regular files for the random-access path and readers
// (plain or gzip-compressed) for the streaming path.
package source

import (
	"fmt"
	"io"
	"os"
)

// Region is a read-only contiguous byte view of a file, memory mapped where
// the platform supports it and read into memory otherwise.
type Region struct {
	data    []byte
	release func() error
}

// Bytes returns the region contents. The slice is valid until Close.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the region size in bytes.
func (r *Region) Len() int { return len(r.data) }

// Close releases the mapping or buffer backing the region.
func (r *Region) Close() error {
	if r.release == nil {
		return nil
	}
	release := r.release
	r.release = nil
	return release()
}

// ErrNotRegular reports a path that exists but is not a regular file.
type ErrNotRegular struct {
	Path string
}

func (e *ErrNotRegular) Error() string {
	return fmt.Sprintf("input file %s is not regular", e.Path)
}

// Stat validates that path names an existing regular file and returns its
// size.
func Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("input file %s doesn't exist: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, &ErrNotRegular{Path: path}
	}
	return info.Size(), nil
}

// MapFile opens path as a random-access region. An empty file yields an
// empty region. Mapping failures fall back to reading the whole file.
func MapFile(path string) (*Region, error) {
	size, err := Stat(path)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return &Region{}, nil
	}

	if region, err := mapRegion(path, size); err == nil {
		return region, nil
	}

	// fall back to the slow buffered read
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Region{data: data}, nil
}

// Stream wraps an open input stream together with its cleanup chain.
type Stream struct {
	io.Reader
	closers []io.Closer
}

// Close closes the wrapped readers in reverse wrapping order.
func (s *Stream) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
