package strat

import (
	"fmt"
	"sync"

	"github.com/dpronin/mtfind/pkg/proc"
	"github.com/dpronin/mtfind/pkg/tokenizer"
	"github.com/dpronin/mtfind/pkg/types"
)

// ChunkReader yields successive chunks of a source. ok is false at
// exhaustion. Both splitter variants satisfy it.
type ChunkReader interface {
	Next() (chunk []byte, ok bool)
}

// rrChunk is a chunk stamped with its global 0-based index before routing.
type rrChunk struct {
	idx  uint64
	data []byte
}

// RoundRobin reads chunks sequentially and distributes them cyclically over
// workers-1 chunk processors (the producer is the remaining worker), then
// emits the total count and the merged findings in ascending global line
// order. The producer stamps global chunk indices before routing, so no
// offset recovery is needed: worker i sees the index subsequence
// k mod (workers-1) == i, each strictly increasing.
func RoundRobin(reader ChunkReader, tok *tokenizer.Tokenizer, countSink CountSink, findingSink FindingSink, workers int) error {
	if workers < 1 {
		workers = 1
	}

	if workers == 1 {
		handler := newChunkHandler(tok)
		if err := processSequential(reader, handler); err != nil {
			return err
		}
		if err := readerErr(reader); err != nil {
			return err
		}
		return emit([]*chunkHandler{handler}, countSink, findingSink)
	}

	processorCount := workers - 1

	handlers := make([]*chunkHandler, processorCount)
	processors := make([]*proc.ChunkProcessor[rrChunk], processorCount)

	var failOnce sync.Once
	var workerErr error
	fail := func(err error) {
		failOnce.Do(func() { workerErr = err })
	}

	for i := range processors {
		handler := newChunkHandler(tok)
		handlers[i] = handler
		processors[i] = proc.NewChunkProcessor(func(c rrChunk) {
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("worker failure: %v", r))
				}
			}()
			handler.onChunk(c.idx, c.data)
		})
	}

	for _, p := range processors {
		p.Start()
	}

	// route chunks cyclically; empty chunks go through as well so that every
	// worker sees exactly its index coset
	var chunkIdx uint64
	for chunk, ok := reader.Next(); ok; chunk, ok = reader.Next() {
		processors[chunkIdx%uint64(processorCount)].Push(rrChunk{idx: chunkIdx, data: chunk})
		chunkIdx++
	}

	for _, p := range processors {
		p.Stop()
	}

	if workerErr != nil {
		return workerErr
	}
	if err := readerErr(reader); err != nil {
		return err
	}

	return emit(handlers, countSink, findingSink)
}

// readerErr surfaces a reader's deferred read error (streaming splitters
// expose one) so that nothing is emitted for a truncated source.
func readerErr(reader ChunkReader) error {
	if e, ok := reader.(interface{ Err() error }); ok && e.Err() != nil {
		return fmt.Errorf("reading source: %w", e.Err())
	}
	return nil
}

// processSequential drains the reader on the calling goroutine.
func processSequential(reader ChunkReader, handler *chunkHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker failure: %v", r)
		}
	}()
	var chunkIdx uint64
	for chunk, ok := reader.Next(); ok; chunk, ok = reader.Next() {
		handler.onChunk(chunkIdx, chunk)
		chunkIdx++
	}
	return nil
}

// emit sends the total count and then k-way merges the per-worker finding
// lists, each already sorted by (line, offset), into one ordered stream.
func emit(handlers []*chunkHandler, countSink CountSink, findingSink FindingSink) error {
	var total uint64
	for _, h := range handlers {
		total += uint64(len(h.findings))
	}
	if err := countSink(total); err != nil {
		return fmt.Errorf("count sink: %w", err)
	}

	lists := make([][]types.Finding, 0, len(handlers))
	for _, h := range handlers {
		if len(h.findings) > 0 {
			lists = append(lists, h.findings)
		}
	}

	for len(lists) > 0 {
		min := 0
		for i := 1; i < len(lists); i++ {
			if lists[i][0].Less(lists[min][0]) {
				min = i
			}
		}
		if err := findingSink(lists[min][0]); err != nil {
			return fmt.Errorf("finding sink: %w", err)
		}
		lists[min] = lists[min][1:]
		if len(lists[min]) == 0 {
			lists[min] = lists[len(lists)-1]
			lists = lists[:len(lists)-1]
		}
	}

	return nil
}
