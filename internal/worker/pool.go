package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrPoolStopped is returned when enqueueing on a stopped pool
var ErrPoolStopped = errors.New("worker pool stopped")

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool is a fixed set of goroutines draining a bounded job queue
type Pool struct {
	name     string
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	// ctx is handed to every job and cancelled on Stop
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(name string, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		name:     name,
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	slog.Info(LogMsgPoolStarted, "pool", p.name, "workers", p.workers, "queueSize", cap(p.jobQueue))
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

// run processes one job; a panicking job is logged and does not kill the worker
func (p *Pool) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(LogMsgWorkerJobPanicked, "pool", p.name, "panic", fmt.Sprint(r))
		}
	}()
	if err := job.Process(p.ctx); err != nil {
		slog.Error(LogMsgWorkerJobFailed, "pool", p.name, "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full.
// It fails when ctx is done or the pool has been stopped.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

// Stop cancels running jobs, stops the workers and waits for them to finish.
// Jobs still queued are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.quit)
		p.wg.Wait()
		slog.Info(LogMsgPoolStopped, "pool", p.name, "dropped", len(p.jobQueue))
	})
}
