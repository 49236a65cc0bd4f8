package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// OpenStream opens path as a forward-only byte stream. Gzip-compressed
// inputs (detected by magic bytes, or forced) are decompressed on the fly.
func OpenStream(path string, forceGzip bool) (*Stream, error) {
	if _, err := Stat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	stream, err := WrapStream(f, forceGzip || strings.HasSuffix(path, ".gz"))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	stream.closers = append([]io.Closer{f}, stream.closers...)
	return stream, nil
}

// WrapStream wraps an arbitrary reader, sniffing for gzip when not forced.
func WrapStream(r io.Reader, forceGzip bool) (*Stream, error) {
	br := bufio.NewReader(r)

	compressed := forceGzip
	if !compressed {
		if magic, err := br.Peek(2); err == nil {
			compressed = magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1]
		}
	}

	if !compressed {
		return &Stream{Reader: br}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &Stream{Reader: zr, closers: []io.Closer{zr}}, nil
}
