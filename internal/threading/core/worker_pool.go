package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"orrery/internal/mathutil"
)

// WorkerPool manages a pool of worker goroutines for parallel processing.
// Wait covers every job submitted so far, so a pool should have a single
// submitting goroutine at a time.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	completed  SafeCounter
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// CreateDefaultWorkerPool creates and starts a pool with one worker per CPU
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0)
	pool.Start()
	return pool
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.completed.Increment()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// ParallelFor calls fn for every index in [start, end).
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelRange(context.Background(), start, end, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// ParallelRange splits [start, end) into contiguous chunks of at least
// minChunk indices and runs fn on each chunk. Chunks not yet started when
// ctx is cancelled are skipped. It returns once every chunk has finished.
func (wp *WorkerPool) ParallelRange(ctx context.Context, start, end, minChunk int, fn func(lo, hi int)) {
	if start >= end {
		return
	}

	chunk := max(1, mathutil.ChunkSize(end-start, wp.numWorkers, minChunk))
	if chunk >= end-start {
		fn(start, end)
		return
	}

	for lo := start; lo < end; lo += chunk {
		lo, hi := lo, min(lo+chunk, end)
		wp.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			fn(lo, hi)
		})
	}
	wp.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns how many jobs the workers have finished.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Get()
}

// SafeCounter is a lock-free int64 counter.
type SafeCounter struct {
	value atomic.Int64
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Add atomically adds delta to the counter and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

// Set atomically sets the counter value
func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}
