package jobs

import (
	"context"
	"errors"
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

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{Type: "notify", Payload: "hello"}))

	select {
	case job := <-done:
		assert.Equal(t, "notify", job.Type)
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesUntilCeiling(t *testing.T) {
	var attempts int32
	exhausted := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) == 3 {
			close(exhausted)
		}
		return errors.New("smtp unavailable")
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.TryEnqueue(Job{Type: "notify"}))
	select {
	case <-exhausted:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	time.Sleep(20 * time.Millisecond)
	q.Stop()
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestTryEnqueueDoesNotBlockWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		started <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(release)

	require.NoError(t, q.TryEnqueue(Job{Type: "a"}))
	<-started
	require.NoError(t, q.TryEnqueue(Job{Type: "b"}))
	err := q.TryEnqueue(Job{Type: "c"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTryEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.ErrorIs(t, q.TryEnqueue(Job{}), ErrQueueStopped)
}

func TestRetryDelayBacksOffExponentially(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{
		RetryDelay:    100 * time.Millisecond,
		MaxRetryDelay: 300 * time.Millisecond,
	})
	assert.Equal(t, 100*time.Millisecond, q.retryDelay(1))
	assert.Equal(t, 150*time.Millisecond, q.retryDelay(2))
	assert.Equal(t, 225*time.Millisecond, q.retryDelay(3))
	assert.Equal(t, 300*time.Millisecond, q.retryDelay(4))
}
