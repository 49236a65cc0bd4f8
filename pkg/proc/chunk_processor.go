// Package proc provides the two execution engines of the scanner: a
// single-consumer chunk processor fed over a lock-free queue, and a
// fixed-size pool of workers draining a shared task queue.
package proc

import (
	"runtime"

	"github.com/dpronin/mtfind/pkg/spsc"
)

// ChunkProcessor owns one SPSC queue and one worker goroutine bound to a
// handler. Chunks pushed from exactly one producer goroutine are handled in
// push order on the worker. Stop drains the queue before returning, so every
// chunk pushed before Stop is handled.
type ChunkProcessor[C any] struct {
	handler func(C)
	queue   *spsc.Queue[C]
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewChunkProcessor constructs an idle processor with the default queue
// capacity.
func NewChunkProcessor[C any](handler func(C)) *ChunkProcessor[C] {
	return NewChunkProcessorSize(handler, spsc.DefaultCapacity)
}

// NewChunkProcessorSize constructs an idle processor with an explicit queue
// capacity.
func NewChunkProcessorSize[C any](handler func(C), capacity int) *ChunkProcessor[C] {
	return &ChunkProcessor[C]{
		handler: handler,
		queue:   spsc.New[C](capacity),
	}
}

// Start spawns the worker goroutine. Starting a running processor is a
// no-op.
func (p *ChunkProcessor[C]) Start() {
	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		for {
			select {
			case <-stop:
				// drain phase: everything enqueued before Stop is handled
				for {
					c, ok := p.queue.TryPop()
					if !ok {
						return
					}
					p.handler(c)
				}
			default:
			}
			if c, ok := p.queue.TryPop(); ok {
				p.handler(c)
			} else {
				runtime.Gosched()
			}
		}
	}(p.stop, p.done)
}

// Push hands a chunk to the worker, spinning while the queue is full. The
// spin is the bounded-memory backpressure onto the producer.
func (p *ChunkProcessor[C]) Push(chunk C) {
	for !p.queue.TryPush(chunk) {
		runtime.Gosched()
	}
}

// Stop signals the worker, waits until it has drained the queue and exited,
// and returns the processor to the idle state.
func (p *ChunkProcessor[C]) Stop() {
	if !p.running {
		return
	}
	close(p.stop)
	<-p.done
	p.running = false
}
