package strat

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/dpronin/mtfind/pkg/proc"
	"github.com/dpronin/mtfind/pkg/splitter"
	"github.com/dpronin/mtfind/pkg/tokenizer"
)

// DivideAndConquer partitions data into delimiter-aligned byte ranges, one
// per worker, scans them in parallel on a task pool, and emits the total
// count followed by every finding in ascending global line order.
//
// Every partition ends right after a delimiter (or at the end of data), and
// a run of consecutive delimiters is attributed entirely to one partition,
// so worker-local chunk indices line up with global ones once the preceding
// workers' chunk counts are added back.
func DivideAndConquer(data []byte, tok *tokenizer.Tokenizer, countSink CountSink, findingSink FindingSink, delim byte, workers int) error {
	if workers < 1 {
		workers = 1
	}

	handlers := make([]*chunkHandler, workers)
	for i := range handlers {
		handlers[i] = newChunkHandler(tok)
	}

	pool := proc.NewTaskPool(workers)

	var failOnce sync.Once
	var workerErr error
	fail := func(err error) {
		failOnce.Do(func() { workerErr = err })
	}

	bounds := partition(data, pool.WorkersCount(), delim)

	pool.Run()
	for i, b := range bounds {
		handler := handlers[i]
		first, last := b[0], b[1]
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("worker failure: %v", r))
				}
			}()
			split := splitter.NewRange(data[first:last], delim)
			var chunkIdx uint64
			for chunk, ok := split.Next(); ok; chunk, ok = split.Next() {
				handler.onChunk(chunkIdx, chunk)
				chunkIdx++
			}
		})
	}
	pool.Wait()

	if workerErr != nil {
		return workerErr
	}

	var total uint64
	for _, h := range handlers {
		total += uint64(len(h.findings))
	}
	if err := countSink(total); err != nil {
		return fmt.Errorf("count sink: %w", err)
	}

	// recover global line numbers: worker i's lines are shifted by the
	// number of chunks consumed by workers 0..i-1
	var chunkOffset uint64
	for _, h := range handlers {
		for _, f := range h.findings {
			f.Line += chunkOffset
			if err := findingSink(f); err != nil {
				return fmt.Errorf("finding sink: %w", err)
			}
		}
		chunkOffset += h.lastChunkIndex
	}

	return nil
}

// partition splits [0, len(data)) into at most parts delimiter-aligned
// ranges. Partition ends advance over delimiter runs so that a run is never
// split between workers. Fewer than parts ranges are produced when data runs
// out early; callers pair ranges with handlers positionally.
func partition(data []byte, parts int, delim byte) [][2]int {
	var bounds [][2]int
	if parts == 0 {
		return bounds
	}

	width := len(data) / parts
	if width < 1 {
		width = 1
	}

	first := 0
	for i := 0; first != len(data); i++ {
		last := len(data)
		if i < parts-1 {
			probe := first + width
			if probe > len(data) {
				probe = len(data)
			}
			if j := bytes.IndexByte(data[probe:], delim); j >= 0 {
				last = probe + j
			}
			for last < len(data) && data[last] == delim {
				last++
			}
		}
		bounds = append(bounds, [2]int{first, last})
		first = last
	}
	return bounds
}
