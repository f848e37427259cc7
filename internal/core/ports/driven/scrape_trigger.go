package driven

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// ScrapeTrigger dispatches work to the external scrape engine.
// The engine only confirms receipt; results and status arrive later through
// the webhook endpoints.
type ScrapeTrigger interface {
	// Dispatch posts one trigger job to the engine
	Dispatch(ctx context.Context, job *domain.TriggerJob) error
}

// TriggerQueue buffers trigger jobs between the API and the worker (Redis).
// When no queue is configured, jobs are dispatched synchronously instead.
type TriggerQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job *domain.TriggerJob) error

	// Dequeue retrieves the next job, waiting up to timeout seconds.
	// Returns nil, nil when the timeout elapses with no job available.
	Dequeue(ctx context.Context, timeout int) (*domain.TriggerJob, error)

	// Ack acknowledges successful dispatch of a job
	Ack(ctx context.Context, jobID string) error

	// Nack returns a failed job to the queue with an incremented attempt
	// count. Returns the job's new attempt count.
	Nack(ctx context.Context, jobID string) (int, error)

	// Ping checks if the queue backend is healthy
	Ping(ctx context.Context) error

	// Close cleans up resources
	Close() error
}

// UpdateFeed relays authoritative search updates from the ingest side to any
// interested client (Redis pub/sub). Delivery is best-effort; clients can
// always recover by reloading history.
type UpdateFeed interface {
	// Publish broadcasts an update
	Publish(ctx context.Context, update *domain.SearchUpdate) error

	// Subscribe returns a channel of updates. The channel closes when ctx
	// is cancelled.
	Subscribe(ctx context.Context) (<-chan *domain.SearchUpdate, error)

	// Close tears down the connection
	Close() error
}
