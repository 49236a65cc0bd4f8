// Package strat implements the two parallel scan strategies over a chunked
// byte source: Divide-and-Conquer for random-access regions and Round-Robin
// for any chunk reader. Both deliver findings to the sinks in ascending
// (line, offset) order regardless of how chunks were processed in parallel.
package strat

import (
	"github.com/dpronin/mtfind/pkg/tokenizer"
	"github.com/dpronin/mtfind/pkg/types"
)

// CountSink receives the total number of findings, exactly once, before any
// finding is delivered.
type CountSink func(total uint64) error

// FindingSink receives findings in ascending (line, offset) order.
type FindingSink func(f types.Finding) error

// chunkHandler accumulates one worker's findings. Findings carry the 1-based
// form of the chunk index they were handed (worker-local in
// Divide-and-Conquer, global in Round-Robin) as their line number;
// lastChunkIndex is the 1-based index of the last chunk seen, matching or
// not. In Divide-and-Conquer that equals the number of chunks the worker
// consumed, which is what the offset recovery sums over.
type chunkHandler struct {
	tok            *tokenizer.Tokenizer
	findings       []types.Finding
	lastChunkIndex uint64
}

func newChunkHandler(tok *tokenizer.Tokenizer) *chunkHandler {
	return &chunkHandler{tok: tok}
}

// onChunk tokenizes one chunk and records its matches. The chunk index is
// 0-based; recorded line numbers and offsets are 1-based. The index is
// recorded even when the chunk yields no match.
func (h *chunkHandler) onChunk(chunkIdx uint64, chunk []byte) {
	h.tok.Scan(chunk, func(start, end int) {
		h.findings = append(h.findings, types.Finding{
			Line:   chunkIdx + 1,
			Offset: uint64(start) + 1,
			Bytes:  chunk[start:end],
		})
	})
	h.lastChunkIndex = chunkIdx + 1
}
