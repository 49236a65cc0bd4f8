package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMapFile_ReadsContents(t *testing.T) {
	content := []byte("alpha\nbeta\ngamma\n")
	path := writeFile(t, "input.txt", content)

	region, err := MapFile(path)
	require.NoError(t, err)
	defer region.Close()

	assert.Equal(t, content, region.Bytes())
	assert.Equal(t, len(content), region.Len())
}

func TestMapFile_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	region, err := MapFile(path)
	require.NoError(t, err)
	defer region.Close()

	assert.Zero(t, region.Len())
}

func TestMapFile_MissingFile(t *testing.T) {
	_, err := MapFile(filepath.Join(t.TempDir(), "no-such-file"))
	assert.Error(t, err)
}

func TestMapFile_NotRegular(t *testing.T) {
	_, err := MapFile(t.TempDir())
	var notRegular *ErrNotRegular
	assert.ErrorAs(t, err, &notRegular)
}

func TestRegion_CloseIdempotent(t *testing.T) {
	path := writeFile(t, "input.txt", []byte("data"))
	region, err := MapFile(path)
	require.NoError(t, err)

	assert.NoError(t, region.Close())
	assert.NoError(t, region.Close())
}

func TestOpenStream_Plain(t *testing.T) {
	content := []byte("plain text\nlines\n")
	path := writeFile(t, "input.txt", content)

	stream, err := OpenStream(path, false)
	require.NoError(t, err)
	defer stream.Close()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestOpenStream_GzipByMagic(t *testing.T) {
	content := []byte("compressed\ncontent\n")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	// deliberately no .gz suffix: detection must come from the magic bytes
	path := writeFile(t, "input.bin", buf.Bytes())

	stream, err := OpenStream(path, false)
	require.NoError(t, err)
	defer stream.Close()

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWrapStream_ShortInputIsNotGzip(t *testing.T) {
	stream, err := WrapStream(bytes.NewReader([]byte("x")), false)
	require.NoError(t, err)

	got, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}
