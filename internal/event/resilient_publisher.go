package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrPublisherShutdown is returned by Shutdown when ctx ends before the queue drains
var ErrPublisherShutdown = errors.New("resilient publisher shutdown timed out")

type retryEntry struct {
	event     Event
	attempt   int
	lastError error
	notBefore time.Time
}

// ResilientPublisher wraps a Bus with asynchronous retries and dead-lettering.
// Callers never see publish failures.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// Publish implements Publisher; it always returns nil
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	rp.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// PublishWithRetry publishes synchronously and queues a retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}
	slog.Warn(LogMsgEventPublishFailed, "eventType", event.Type, "error", err)
	rp.enqueue(retryEntry{
		event:     event,
		attempt:   1,
		lastError: err,
		notBefore: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
	})
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case rp.retryQueue <- entry:
	default:
		slog.Error(LogMsgRetryQueueFull, "eventType", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()
	for {
		select {
		case entry := <-rp.retryQueue:
			if !rp.waitUntil(entry.notBefore) {
				rp.attempt(entry)
				rp.drain()
				return
			}
			rp.attempt(entry)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

// waitUntil sleeps until t; it reports false when shutdown interrupts the wait
func (rp *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-rp.shutdown:
		return false
	}
}

func (rp *ResilientPublisher) attempt(entry retryEntry) {
	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		slog.Info(LogMsgEventRetrySucceeded, "eventType", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastError = err
	if entry.attempt >= rp.maxRetries {
		slog.Error(LogMsgEventRetryExhausted, "eventType", entry.event.Type, "attempts", entry.attempt)
		rp.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.notBefore = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	slog.Warn(LogMsgEventRetryFailed, "eventType", entry.event.Type, "attempt", entry.attempt, "error", err)
	rp.enqueue(entry)
}

// drain makes one final attempt per queued entry, without waiting for backoff
func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			drained++
			if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
				entry.lastError = err
				rp.writeDeadLetter(entry)
			}
		default:
			if drained > 0 {
				slog.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastError); err != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "eventType", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.once.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if rp.deadLetter != nil {
			return rp.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		slog.Error(LogMsgShutdownTimeout)
		return ErrPublisherShutdown
	}
}
