package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testJob struct {
	executed *int32
	wg       *sync.WaitGroup
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	j.wg.Done()
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	var wg sync.WaitGroup
	pool := NewPool("test", TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed, wg: &wg}
	wg.Add(TestExpectedJobCount)
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))
	wg.Wait()

	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_FailingAndPanickingJobsKeepWorkerAlive(t *testing.T) {
	pool := NewPool("test", 1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		return errors.New("boom")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		panic("kaboom")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		close(done)
		return nil
	})))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive failing jobs")
	}
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool("test", 1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	err := pool.Enqueue(context.Background(), JobFunc(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_EnqueueRespectsContext(t *testing.T) {
	// Not started: the single queue slot fills and the next enqueue blocks.
	pool := NewPool("test", 1, 1)
	defer pool.Stop()

	noop := JobFunc(func(context.Context) error { return nil })
	require.NoError(t, pool.Enqueue(context.Background(), noop))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Enqueue(ctx, noop), context.DeadlineExceeded)
}

func TestPool_StopCancelsJobContext(t *testing.T) {
	pool := NewPool("test", 1, 1)
	pool.Start()

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})))

	<-started
	pool.Stop()
	assert.True(t, cancelled.Load())
}
