package tokenizer

import (
	"testing"

	"github.com/dpronin/mtfind/pkg/searcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperWordSearcher finds the next word starting with an upper-case letter,
// terminated by a space. It counts its own invocations.
type upperWordSearcher struct {
	calls int
}

func (s *upperWordSearcher) FindFirst(text []byte) (int, int) {
	s.calls++
	start := len(text)
	for i, c := range text {
		if 'A' <= c && c <= 'Z' {
			start = i
			break
		}
	}
	end := start
	for end < len(text) && text[end] != ' ' {
		end++
	}
	return start, end
}

func TestTokenizer_Tokenizes(t *testing.T) {
	const text = "London is the capital of Great Britain indeed"
	want := []struct {
		token string
		pos   int
	}{
		{"London", 0},
		{"Great", 25},
		{"Britain", 31},
	}

	s := &upperWordSearcher{}
	tok := New(s)

	spans := tok.ScanAll([]byte(text))
	require.Len(t, spans, len(want))
	for i, w := range want {
		assert.Equal(t, w.token, text[spans[i][0]:spans[i][1]])
		assert.Equal(t, w.pos, spans[i][0])
	}

	// the final lookup returns empty and ends the scan
	assert.Equal(t, len(want)+1, s.calls)
}

type emptySearcher struct {
	calls int
}

func (s *emptySearcher) FindFirst(text []byte) (int, int) {
	s.calls++
	return len(text), len(text)
}

func TestTokenizer_ReturnsNothingWhenSearcherNeverFires(t *testing.T) {
	s := &emptySearcher{}
	tok := New(s)

	spans := tok.ScanAll([]byte("London is the capital of Great Britain indeed"))
	assert.Empty(t, spans)
	assert.Equal(t, 1, s.calls)
}

func TestTokenizer_EmptyLine(t *testing.T) {
	s := &emptySearcher{}
	tok := New(s)

	assert.Empty(t, tok.ScanAll(nil))
	// k = 0 matches: the single lookup returns empty and ends the scan
	assert.Equal(t, 1, s.calls)
}

func TestTokenizer_NonOverlappingGreedy(t *testing.T) {
	tok := New(searcher.NewBoyerMoore([]byte("aa")))
	spans := tok.ScanAll([]byte("aaaa"))
	require.Equal(t, [][2]int{{0, 2}, {2, 4}}, spans)
}
