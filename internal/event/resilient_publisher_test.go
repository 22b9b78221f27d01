package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBus fails while shouldFail returns true for the 1-based call number
type flakyBus struct {
	mu         sync.Mutex
	calls      int
	shouldFail func(call int) bool
}

func (b *flakyBus) Publish(ctx context.Context, evt Event) error {
	b.mu.Lock()
	b.calls++
	call := b.calls
	b.mu.Unlock()
	if b.shouldFail != nil && b.shouldFail(call) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: PlantWatered}))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(call int) bool { return call == 1 }}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), Event{Type: PlantDied})

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 5*time.Millisecond)
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(int) bool { return true }}
	rp, err := NewResilientPublisher(bus, 3, 5*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), Event{Type: TradeAborted, Payload: map[string]interface{}{"trade_id": "t1"}})

	assert.Eventually(t, func() bool { return bus.CallCount() == 4 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry DeadLetterEntry
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, TradeAborted, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, "bus unavailable", entry.LastError)
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(call int) bool { return call <= 3 }}
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), Event{Type: PlantWilting})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 6, bus.CallCount(), "each queued event gets one final attempt")
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := deadLetterPath(t)
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// No worker: the queue fills and overflow goes straight to the dead letter.
	rp := &ResilientPublisher{
		bus:        &flakyBus{shouldFail: func(int) bool { return true }},
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), Event{Type: PlantDied})
	}
	require.NoError(t, dl.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, countLines(content))
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
