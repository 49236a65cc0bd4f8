package splitter

import (
	"bufio"
	"io"
)

// Stream iterates delimiter-separated chunks of a forward-only byte stream,
// yielding owned byte slices. Contract matches Range: the delimiter is
// consumed and excluded, empty chunks between adjacent delimiters are
// yielded, a trailing delimiter yields no final empty chunk.
type Stream struct {
	r     *bufio.Reader
	delim byte
	done  bool
	err   error
}

// NewStream constructs a splitter over r with the given delimiter byte.
func NewStream(r io.Reader, delim byte) *Stream {
	return &Stream{r: bufio.NewReader(r), delim: delim}
}

// Next returns the next chunk. ok is false once the stream is exhausted.
// Exhaustion is observed at call time: after consuming a trailing delimiter
// the following call reports ok == false without yielding an empty chunk.
func (s *Stream) Next() (chunk []byte, ok bool) {
	if s.done {
		return nil, false
	}
	// probe for EOF before reading a chunk so that a consumed trailing
	// delimiter terminates the iteration
	if _, err := s.r.Peek(1); err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return nil, false
	}

	line, err := s.r.ReadBytes(s.delim)
	if err != nil && err != io.EOF {
		s.done = true
		s.err = err
		return nil, false
	}
	if n := len(line); n > 0 && line[n-1] == s.delim {
		line = line[:n-1]
	}
	return line, true
}

// Exhausted reports whether a Next call has observed the end of the stream.
func (s *Stream) Exhausted() bool { return s.done }

// Err returns the first non-EOF read error encountered, if any.
func (s *Stream) Err() error { return s.err }
