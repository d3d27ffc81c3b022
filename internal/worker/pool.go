// Package worker runs background jobs, such as spreadsheet imports, on a
// fixed set of goroutines fed by a bounded queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vytor/wordcards/internal/logger"
)

var (
	ErrQueueFull   = errors.New("worker queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Stats counts finished jobs by outcome.
type Stats struct {
	Succeeded int64
	Failed    int64
	Panicked  int64
}

type Pool struct {
	size  int
	queue chan Job
	log   *logger.Logger

	mu       sync.RWMutex
	closed   bool
	running  sync.WaitGroup
	stopWork context.CancelFunc

	succeeded atomic.Int64
	failed    atomic.Int64
	panicked  atomic.Int64
}

// NewPool sizes a pool; non-positive values fall back to 2 workers and a
// queue of 16.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Pool{
		size:  workers,
		queue: make(chan Job, queueSize),
		log:   logger.Default().WithPrefix("worker-pool").WithField("workers", workers),
	}
}

// Start launches the workers. Cancelling ctx aborts running jobs; queued
// jobs are still handed their (cancelled) context.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.stopWork = context.WithCancel(ctx)
	p.log.Info("starting, queue capacity %d", cap(p.queue))
	for id := 1; id <= p.size; id++ {
		p.running.Add(1)
		go p.work(ctx, id)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.running.Done()
	log := p.log.WithField("worker_id", id)
	for job := range p.queue {
		p.execute(logger.NewContext(ctx, log.WithField("job", job.Name())), job)
	}
	log.Debug("queue closed, worker exiting")
}

func (p *Pool) execute(ctx context.Context, job Job) {
	log := logger.FromContext(ctx)
	start := time.Now()
	err := safeRun(ctx, job)
	elapsed := time.Since(start).Round(time.Millisecond)

	var panicErr *panicError
	switch {
	case errors.As(err, &panicErr):
		p.panicked.Add(1)
		log.Error("panicked after %v: %v", elapsed, panicErr.value)
	case err != nil:
		p.failed.Add(1)
		log.Error("failed after %v: %v", elapsed, err)
	default:
		p.succeeded.Add(1)
		log.Info("done in %v", elapsed)
	}
}

type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec}
		}
	}()
	return job.Run(ctx)
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolStopped
	}
	select {
	case p.queue <- job:
		p.log.Debug("queued %s (%d pending)", job.Name(), len(p.queue))
		return nil
	default:
		p.log.Warn("queue full, rejecting %s", job.Name())
		return ErrQueueFull
	}
}

// Stop closes the queue, waits for the workers to drain it and returns
// the final counters. It is safe to call more than once.
func (p *Pool) Stop() Stats {
	p.mu.Lock()
	already := p.closed
	if !already {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	p.running.Wait()
	if p.stopWork != nil {
		p.stopWork()
	}
	stats := p.Stats()
	if !already {
		p.log.Info("stopped: %d succeeded, %d failed, %d panicked", stats.Succeeded, stats.Failed, stats.Panicked)
	}
	return stats
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.queue)
}

func (p *Pool) Stats() Stats {
	return Stats{
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Panicked:  p.panicked.Load(),
	}
}
