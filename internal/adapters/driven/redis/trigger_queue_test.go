package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// setupTestQueue creates a miniredis-backed trigger queue
func setupTestQueue(t *testing.T) (*TriggerQueue, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	queue, err := NewTriggerQueue(client)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return queue, mr
}

func testJob(id string) *domain.TriggerJob {
	return &domain.TriggerJob{
		ID:         id,
		Kind:       domain.TriggerStart,
		SearchID:   "s1",
		Query:      "bakeries",
		UserID:     "u1",
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestTriggerQueue_EnqueueDequeue(t *testing.T) {
	queue, _ := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, testJob("j1")))

	job, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "j1", job.ID)
	assert.Equal(t, domain.TriggerStart, job.Kind)
	assert.Equal(t, "bakeries", job.Query)
}

func TestTriggerQueue_FIFO(t *testing.T) {
	queue, _ := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, testJob("j1")))
	require.NoError(t, queue.Enqueue(ctx, testJob("j2")))

	first, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)
	second, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "j1", first.ID)
	assert.Equal(t, "j2", second.ID)
}

func TestTriggerQueue_DequeueTimeout(t *testing.T) {
	queue, _ := setupTestQueue(t)

	job, err := queue.Dequeue(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, job, "empty queue should time out with a nil job")
}

func TestTriggerQueue_AckRemovesInflight(t *testing.T) {
	queue, mr := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, testJob("j1")))
	job, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)

	require.True(t, mr.Exists(inflightKey), "job should be parked in-flight after dequeue")

	require.NoError(t, queue.Ack(ctx, job.ID))
	assert.False(t, mr.Exists(inflightKey), "in-flight entry should be removed after ack")
}

func TestTriggerQueue_NackRequeuesWithAttempts(t *testing.T) {
	queue, _ := setupTestQueue(t)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, testJob("j1")))
	job, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)

	attempts, err := queue.Nack(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	requeued, err := queue.Dequeue(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, requeued)
	assert.Equal(t, "j1", requeued.ID)
	assert.Equal(t, 1, requeued.Attempts)

	attempts, err = queue.Nack(ctx, requeued.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTriggerQueue_NackUnknownJob(t *testing.T) {
	queue, _ := setupTestQueue(t)

	_, err := queue.Nack(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTriggerQueue_Ping(t *testing.T) {
	queue, mr := setupTestQueue(t)

	require.NoError(t, queue.Ping(context.Background()))

	mr.Close()
	assert.Error(t, queue.Ping(context.Background()), "ping should fail after server shutdown")
}
