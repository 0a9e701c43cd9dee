package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// WorkerPool bounds how many CPU-bound jobs (keypair generation, password
// hashing) run at once so request handling keeps making progress.
type WorkerPool struct {
	sem *semaphore.Weighted
}

// NewWorkerPool creates a pool running at most size jobs concurrently.
// A size below 1 defaults to GOMAXPROCS.
func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{sem: semaphore.NewWeighted(int64(size))}
}

// Run waits for a free slot and executes fn in the caller's goroutine.
// It returns ctx.Err() when the context ends before a slot frees up.
func (p *WorkerPool) Run(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	return fn()
}
