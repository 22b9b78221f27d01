package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/GardenBot_Go/internal/worker"
)

// Scheduler feeds jobs into a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Schedule registers a job to run at a fixed interval, starting one interval from now
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, false)
}

// ScheduleImmediate is Schedule with an extra run enqueued right away
func (s *Scheduler) ScheduleImmediate(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, true)
}

func (s *Scheduler) schedule(interval time.Duration, job worker.Job, immediate bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate && !s.enqueue(job) {
			return
		}
		for {
			select {
			case <-ticker.C:
				// A full queue blocks this ticker only; missed ticks are coalesced by time.Ticker.
				if !s.enqueue(job) {
					return
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// enqueue reports false once the scheduler or pool has shut down
func (s *Scheduler) enqueue(job worker.Job) bool {
	err := s.workerPool.Enqueue(s.ctx, job)
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, worker.ErrPoolStopped):
		return false
	default:
		slog.Error(LogMsgEnqueueFailed, "error", err)
		return true
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.quit)
		s.wg.Wait()
	})
}
