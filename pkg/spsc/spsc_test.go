package spsc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_CapacityRounding(t *testing.T) {
	assert.Equal(t, 8, New[int](5).Cap())
	assert.Equal(t, 8, New[int](8).Cap())
	assert.Equal(t, DefaultCapacity, New[int](0).Cap())
}

func TestQueue_FIFOSingleThreaded(t *testing.T) {
	q := New[int](4)

	for i := 0; i < 4; i++ {
		require.True(t, q.TryPush(i))
	}
	assert.False(t, q.TryPush(99), "queue must reject pushes when full")
	assert.Equal(t, 4, q.Len())

	for i := 0; i < 4; i++ {
		v, ok := q.TryPop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.TryPop()
	assert.False(t, ok, "queue must report empty")
}

func TestQueue_WrapAround(t *testing.T) {
	q := New[int](2)
	for round := 0; round < 10; round++ {
		require.True(t, q.TryPush(round))
		v, ok := q.TryPop()
		require.True(t, ok)
		require.Equal(t, round, v)
	}
}

// TestQueue_ProducerConsumer crosses a million items between two goroutines
// and verifies order and visibility of the popped items' contents.
func TestQueue_ProducerConsumer(t *testing.T) {
	const total = 1 << 20
	q := New[[]int](1024)

	done := make(chan struct{})
	go func() {
		defer close(done)
		next := 0
		for next < total {
			item, ok := q.TryPop()
			if !ok {
				runtime.Gosched()
				continue
			}
			if len(item) != 1 || item[0] != next {
				t.Errorf("popped %v, want [%d]", item, next)
				return
			}
			next++
		}
	}()

	for i := 0; i < total; i++ {
		item := []int{i}
		for !q.TryPush(item) {
			runtime.Gosched()
		}
	}
	<-done
}
