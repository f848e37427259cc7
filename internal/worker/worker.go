package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Worker drains the trigger queue and dispatches jobs to the scrape engine.
// Dispatch only confirms receipt; results arrive later through the webhooks.
type Worker struct {
	queue    driven.TriggerQueue
	trigger  driven.ScrapeTrigger
	searches driven.SearchStore
	feed     driven.UpdateFeed
	logger   *slog.Logger

	// Configuration
	concurrency    int
	dequeueTimeout int // seconds
	maxAttempts    int

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	Queue          driven.TriggerQueue
	Trigger        driven.ScrapeTrigger
	Searches       driven.SearchStore
	Feed           driven.UpdateFeed // optional
	Logger         *slog.Logger
	Concurrency    int // Number of concurrent dispatchers
	DequeueTimeout int // Seconds to wait for a job before checking again
	MaxAttempts    int // Attempts before a job is abandoned
}

// New creates a new trigger worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &Worker{
		queue:          cfg.Queue,
		trigger:        cfg.Trigger,
		searches:       cfg.Searches,
		feed:           cfg.Feed,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
		maxAttempts:    maxAttempts,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
		"max_attempts", w.maxAttempts,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// processLoop is the main processing loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue job", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if job == nil {
			// No job available, continue
			continue
		}

		w.processJob(ctx, job, logger)
	}
}

// processJob dispatches a single trigger job to the scrape engine.
func (w *Worker) processJob(ctx context.Context, job *domain.TriggerJob, logger *slog.Logger) {
	logger = logger.With("job_id", job.ID, "kind", job.Kind, "search_id", job.SearchID)
	logger.Info("dispatching trigger")

	startTime := time.Now()
	err := w.trigger.Dispatch(ctx, job)
	duration := time.Since(startTime)

	if err == nil {
		logger.Info("trigger dispatched", "duration", duration)
		if ackErr := w.queue.Ack(ctx, job.ID); ackErr != nil {
			logger.Error("failed to ack job", "ack_error", ackErr)
		}
		return
	}

	logger.Error("dispatch failed",
		"duration", duration,
		"error", err,
	)

	// The dequeued job carries its attempt count; this failure is one more.
	if job.Attempts+1 >= w.maxAttempts {
		w.abandonJob(ctx, job, err, logger)
		return
	}

	attempts, nackErr := w.queue.Nack(ctx, job.ID)
	if nackErr != nil {
		logger.Error("failed to nack job", "nack_error", nackErr)
		return
	}
	logger.Info("job requeued", "attempts", attempts)
}

// abandonJob removes a job whose attempts are exhausted, marks its search as
// failed and broadcasts the failure so clients stop waiting.
func (w *Worker) abandonJob(ctx context.Context, job *domain.TriggerJob, cause error, logger *slog.Logger) {
	logger.Warn("abandoning job after max attempts", "max_attempts", w.maxAttempts)

	if ackErr := w.queue.Ack(ctx, job.ID); ackErr != nil {
		logger.Error("failed to remove abandoned job", "ack_error", ackErr)
	}

	message := domain.ErrorMessage(cause)
	if err := w.searches.UpdateStatus(ctx, job.SearchID, domain.StatusError, nil, message); err != nil {
		logger.Error("failed to mark search as failed", "error", err)
		return
	}

	if w.feed == nil {
		return
	}
	update := &domain.SearchUpdate{
		SearchID:     job.SearchID,
		Status:       domain.StatusError,
		ErrorMessage: message,
	}
	if err := w.feed.Publish(ctx, update); err != nil {
		logger.Warn("failed to publish failure update", "error", err)
	}
}

// Health returns health status of the worker.
type Health struct {
	Running     bool   `json:"running"`
	QueueHealth bool   `json:"queue_health"`
	Error       string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{
		Running: running,
	}

	if err := w.queue.Ping(ctx); err != nil {
		health.QueueHealth = false
		health.Error = err.Error()
	} else {
		health.QueueHealth = true
	}

	return health
}
