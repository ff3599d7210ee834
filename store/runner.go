package store

import (
	"sync"

	"github.com/devaforgestudios-afk/takneek/utils"
)

// TaskRunner accepts fire-and-forget work so HTTP responses never block on
// non-critical writes. Semantics are best-effort: a task either runs at least
// once or is dropped with a log line, and no completion signal reaches the
// submitter.
type TaskRunner interface {
	Submit(task func()) bool
	Close()
}

// WorkerPool is a fixed-size TaskRunner backed by a buffered channel.
type WorkerPool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewWorkerPool starts workers goroutines draining a queue of the given size.
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	p := &WorkerPool{tasks: make(chan func(), queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Submit enqueues a task. Returns false when the pool is closed or the queue
// is full; callers treat that as a dropped best-effort write.
func (p *WorkerPool) Submit(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		if utils.Sugar != nil {
			utils.Sugar.Warn("task queue full, dropping task")
		}
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
