package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven/mocks"
)

func testJob(id string) *domain.TriggerJob {
	return &domain.TriggerJob{
		ID:       id,
		Kind:     domain.TriggerStart,
		SearchID: "search-" + id,
		Query:    "restaurants campinas",
		UserID:   "u1",
		UserName: "Alice",
	}
}

type workerFixture struct {
	queue    *mocks.MockTriggerQueue
	trigger  *mocks.MockScrapeTrigger
	searches *mocks.MockSearchStore
	feed     *mocks.MockUpdateFeed
	worker   *Worker
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()
	f := &workerFixture{
		queue:    mocks.NewMockTriggerQueue(),
		trigger:  mocks.NewMockScrapeTrigger(),
		searches: mocks.NewMockSearchStore(),
		feed:     mocks.NewMockUpdateFeed(),
	}
	f.worker = New(Config{
		Queue:       f.queue,
		Trigger:     f.trigger,
		Searches:    f.searches,
		Feed:        f.feed,
		MaxAttempts: 2,
	})
	return f
}

func TestWorker_ProcessJob_Success(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	if err := f.queue.Enqueue(ctx, testJob("j1")); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	dequeued, _ := f.queue.Dequeue(ctx, 1)

	f.worker.processJob(ctx, dequeued, f.worker.logger)

	if len(f.trigger.Jobs) != 1 {
		t.Fatalf("expected 1 dispatched job, got %d", len(f.trigger.Jobs))
	}
	if f.trigger.Jobs[0].SearchID != "search-j1" {
		t.Errorf("unexpected search id: %s", f.trigger.Jobs[0].SearchID)
	}
	if f.queue.PendingCount() != 0 {
		t.Error("expected job to be acked, not requeued")
	}
}

func TestWorker_ProcessJob_FailureRequeues(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.trigger.FailWith(errors.New("connection refused"))

	job := testJob("j1")
	f.searches.Save(ctx, &domain.Search{
		ID:     job.SearchID,
		Query:  job.Query,
		UserID: job.UserID,
		Status: domain.StatusProcessing,
	})

	f.queue.Enqueue(ctx, job)
	dequeued, _ := f.queue.Dequeue(ctx, 1)

	f.worker.processJob(ctx, dequeued, f.worker.logger)

	if f.queue.PendingCount() != 1 {
		t.Errorf("expected job back on the queue, pending = %d", f.queue.PendingCount())
	}
	search, _ := f.searches.Get(ctx, job.SearchID)
	if search.Status != domain.StatusProcessing {
		t.Errorf("search status = %s, should stay processing until attempts are exhausted", search.Status)
	}
}

func TestWorker_ProcessJob_MaxAttemptsMarksSearchFailed(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.trigger.FailWith(&domain.BackendError{Message: "workflow disabled"})

	job := testJob("j1")
	f.searches.Save(ctx, &domain.Search{
		ID:     job.SearchID,
		Query:  job.Query,
		UserID: job.UserID,
		Status: domain.StatusProcessing,
	})

	f.queue.Enqueue(ctx, job)
	for i := 0; i < 2; i++ {
		dequeued, _ := f.queue.Dequeue(ctx, 1)
		if dequeued == nil {
			t.Fatalf("attempt %d: no job on queue", i+1)
		}
		f.worker.processJob(ctx, dequeued, f.worker.logger)
	}

	if f.queue.PendingCount() != 0 {
		t.Errorf("abandoned job still pending, count = %d", f.queue.PendingCount())
	}

	search, err := f.searches.Get(ctx, job.SearchID)
	if err != nil {
		t.Fatalf("get search: %v", err)
	}
	if search.Status != domain.StatusError {
		t.Errorf("status = %s, want error", search.Status)
	}
	if search.ErrorMessage != "workflow disabled" {
		t.Errorf("error message = %q", search.ErrorMessage)
	}

	if len(f.feed.Published) != 1 {
		t.Fatalf("expected 1 published update, got %d", len(f.feed.Published))
	}
	update := f.feed.Published[0]
	if update.SearchID != job.SearchID || update.Status != domain.StatusError {
		t.Errorf("unexpected update: %+v", update)
	}
}

func TestWorker_StartStop(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	f.queue.Enqueue(ctx, testJob("j1"))
	f.queue.Enqueue(ctx, testJob("j2"))

	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for f.queue.PendingCount() > 0 {
		select {
		case <-deadline:
			t.Fatal("worker did not drain the queue in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	f.worker.Stop()

	if len(f.trigger.Jobs) != 2 {
		t.Errorf("expected 2 dispatched jobs, got %d", len(f.trigger.Jobs))
	}
}

func TestWorker_StartTwiceIsNoop(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	f.worker.Stop()
}

func TestWorker_Health(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()

	health := f.worker.Health(ctx)
	if health.Running {
		t.Error("worker should not report running before start")
	}
	if !health.QueueHealth {
		t.Error("queue should be healthy")
	}

	f.worker.Start(ctx)
	defer f.worker.Stop()

	health = f.worker.Health(ctx)
	if !health.Running {
		t.Error("worker should report running after start")
	}
}
