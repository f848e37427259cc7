package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

const (
	// pendingKey holds queued jobs, newest at the head
	pendingKey = "prospecta:triggers"

	// inflightKey maps job id -> serialized job while a worker dispatches it
	inflightKey = "prospecta:triggers:inflight"
)

// Verify interface compliance
var _ driven.TriggerQueue = (*TriggerQueue)(nil)

// TriggerQueue implements driven.TriggerQueue using a Redis list.
// Dequeued jobs are parked in an in-flight hash until acked, so a crashed
// worker leaves a visible trace instead of silently losing the job.
type TriggerQueue struct {
	client *redis.Client
}

// NewTriggerQueue creates a new Redis-backed trigger queue
func NewTriggerQueue(client *redis.Client) (*TriggerQueue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &TriggerQueue{client: client}, nil
}

// Enqueue adds a job to the queue
func (q *TriggerQueue) Enqueue(ctx context.Context, job *domain.TriggerJob) error {
	if job == nil {
		return errors.New("job is required")
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, pendingKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// Dequeue retrieves the next job, waiting up to timeout seconds.
// Returns nil, nil when the timeout elapses with no job available.
func (q *TriggerQueue) Dequeue(ctx context.Context, timeout int) (*domain.TriggerJob, error) {
	result, err := q.client.BRPop(ctx, time.Duration(timeout)*time.Second, pendingKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}
	// BRPOP returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(result))
	}

	var job domain.TriggerJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	if err := q.client.HSet(ctx, inflightKey, job.ID, result[1]).Err(); err != nil {
		return nil, fmt.Errorf("failed to track in-flight job: %w", err)
	}
	return &job, nil
}

// Ack acknowledges successful dispatch of a job
func (q *TriggerQueue) Ack(ctx context.Context, jobID string) error {
	return q.client.HDel(ctx, inflightKey, jobID).Err()
}

// Nack returns a failed job to the queue with an incremented attempt count
func (q *TriggerQueue) Nack(ctx context.Context, jobID string) (int, error) {
	data, err := q.client.HGet(ctx, inflightKey, jobID).Result()
	if err == redis.Nil {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load in-flight job: %w", err)
	}

	var job domain.TriggerJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return 0, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	job.Attempts++

	requeued, err := json.Marshal(&job)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal job: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.HDel(ctx, inflightKey, jobID)
	pipe.LPush(ctx, pendingKey, requeued)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to requeue job: %w", err)
	}
	return job.Attempts, nil
}

// Ping checks if the queue backend is healthy
func (q *TriggerQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close cleans up resources
func (q *TriggerQueue) Close() error {
	return q.client.Close()
}
