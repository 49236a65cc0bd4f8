//go:build !unix

package source

import "errors"

// mapRegion is unavailable on platforms without mmap; MapFile falls back to
// reading the file.
func mapRegion(path string, size int64) (*Region, error) {
	return nil, errors.New("memory mapping not supported on this platform")
}
