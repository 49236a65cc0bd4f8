package mtfind

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dpronin/mtfind/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ScanString(t *testing.T) {
	s, err := NewScanner("?ad", WithWorkers(4))
	require.NoError(t, err)

	result, err := s.ScanString("bad\nmad\nhad\n")
	require.NoError(t, err)

	assert.EqualValues(t, 3, result.Count)
	assert.Equal(t, []Finding{
		{Line: 1, Offset: 1, Bytes: []byte("bad")},
		{Line: 2, Offset: 1, Bytes: []byte("mad")},
		{Line: 3, Offset: 1, Bytes: []byte("had")},
	}, result.Findings)
}

func TestScanner_RejectsInvalidMask(t *testing.T) {
	_, err := NewScanner("")
	assert.Error(t, err)

	_, err = NewScanner("bad\nmask")
	assert.Error(t, err)

	_, err = NewScanner(string([]byte{0x7F}))
	assert.Error(t, err)
}

func TestScanner_HasWildcard(t *testing.T) {
	s, err := NewScanner("?ad")
	require.NoError(t, err)
	assert.True(t, s.HasWildcard())

	s, err = NewScanner("bad")
	require.NoError(t, err)
	assert.False(t, s.HasWildcard())
}

func TestScanner_ScanReaderMatchesScanBytes(t *testing.T) {
	const text = "alpha\nbeta\n\ngamma beta\n"

	s, err := NewScanner("beta", WithWorkers(3))
	require.NoError(t, err)

	fromBytes, err := s.ScanBytes([]byte(text))
	require.NoError(t, err)

	fromReader, err := s.ScanReader(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, fromBytes, fromReader)
}

func TestScanner_ScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	s, err := NewScanner("t??", WithStrategy(StrategyDivideAndConquer))
	require.NoError(t, err)

	result, err := s.ScanFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Count)
	assert.Equal(t, []types.Finding{
		{Line: 2, Offset: 1, Bytes: []byte("two")},
		{Line: 3, Offset: 1, Bytes: []byte("thr")},
	}, result.Findings)
}

func TestScanner_CustomDelimiter(t *testing.T) {
	s, err := NewScanner("x", WithDelimiter(';'), WithWorkers(2))
	require.NoError(t, err)

	result, err := s.ScanString("a;x;c;x")
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Count)
	assert.Equal(t, []Finding{
		{Line: 2, Offset: 1, Bytes: []byte("x")},
		{Line: 4, Offset: 1, Bytes: []byte("x")},
	}, result.Findings)
}

func TestScanner_EmptyInput(t *testing.T) {
	s, err := NewScanner("x")
	require.NoError(t, err)

	result, err := s.ScanString("")
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Findings)
}

func TestValidateMask(t *testing.T) {
	assert.NoError(t, ValidateMask("?ad"))
	assert.NoError(t, ValidateMask("wor:d"))
	assert.Error(t, ValidateMask(""))
	assert.Error(t, ValidateMask("a\rb"))
}
