package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	t.Run("runs submitted tasks", func(t *testing.T) {
		pool := NewWorkerPool(2, 16)
		defer pool.Close()

		var mu sync.Mutex
		ran := 0
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			ok := pool.Submit(func() {
				defer wg.Done()
				mu.Lock()
				ran++
				mu.Unlock()
			})
			assert.True(t, ok)
		}
		wg.Wait()
		assert.Equal(t, 10, ran)
	})

	t.Run("rejects when the queue is full", func(t *testing.T) {
		pool := NewWorkerPool(1, 1)
		defer pool.Close()

		block := make(chan struct{})
		started := make(chan struct{})
		pool.Submit(func() {
			close(started)
			<-block
		})
		<-started

		// one slot in the queue, then overflow
		assert.True(t, pool.Submit(func() {}))

		rejected := false
		for i := 0; i < 5; i++ {
			if !pool.Submit(func() {}) {
				rejected = true
				break
			}
		}
		assert.True(t, rejected)
		close(block)
	})

	t.Run("close drains pending tasks", func(t *testing.T) {
		pool := NewWorkerPool(1, 16)

		done := make(chan struct{})
		pool.Submit(func() {
			time.Sleep(10 * time.Millisecond)
			close(done)
		})
		pool.Close()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("pending task was not drained on close")
		}
	})

	t.Run("submit after close is rejected", func(t *testing.T) {
		pool := NewWorkerPool(1, 1)
		pool.Close()
		assert.False(t, pool.Submit(func() {}))
	})
}
