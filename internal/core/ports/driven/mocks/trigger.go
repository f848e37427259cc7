package mocks

import (
	"context"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// MockScrapeTrigger records dispatched jobs
type MockScrapeTrigger struct {
	mu       sync.Mutex
	Jobs     []*domain.TriggerJob
	failWith error
}

// NewMockScrapeTrigger creates a new MockScrapeTrigger
func NewMockScrapeTrigger() *MockScrapeTrigger {
	return &MockScrapeTrigger{}
}

// FailWith makes every subsequent dispatch fail with err (nil resets)
func (m *MockScrapeTrigger) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockScrapeTrigger) Dispatch(ctx context.Context, job *domain.TriggerJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	c := *job
	m.Jobs = append(m.Jobs, &c)
	return nil
}

// LastJob returns the most recently dispatched job, or nil
func (m *MockScrapeTrigger) LastJob() *domain.TriggerJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Jobs) == 0 {
		return nil
	}
	return m.Jobs[len(m.Jobs)-1]
}

// MockTriggerQueue is an in-memory TriggerQueue for testing
type MockTriggerQueue struct {
	mu       sync.Mutex
	pending  []*domain.TriggerJob
	inflight map[string]*domain.TriggerJob
	failWith error
}

// NewMockTriggerQueue creates a new MockTriggerQueue
func NewMockTriggerQueue() *MockTriggerQueue {
	return &MockTriggerQueue{
		inflight: make(map[string]*domain.TriggerJob),
	}
}

// FailWith makes every subsequent call fail with err (nil resets)
func (m *MockTriggerQueue) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockTriggerQueue) Enqueue(ctx context.Context, job *domain.TriggerJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	c := *job
	m.pending = append(m.pending, &c)
	return nil
}

func (m *MockTriggerQueue) Dequeue(ctx context.Context, timeout int) (*domain.TriggerJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if len(m.pending) == 0 {
		return nil, nil
	}
	job := m.pending[0]
	m.pending = m.pending[1:]
	m.inflight[job.ID] = job
	c := *job
	return &c, nil
}

func (m *MockTriggerQueue) Ack(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, jobID)
	return nil
}

func (m *MockTriggerQueue) Nack(ctx context.Context, jobID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.inflight[jobID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	delete(m.inflight, jobID)
	job.Attempts++
	m.pending = append(m.pending, job)
	return job.Attempts, nil
}

func (m *MockTriggerQueue) Ping(ctx context.Context) error { return nil }

func (m *MockTriggerQueue) Close() error { return nil }

// PendingCount returns the number of queued jobs
func (m *MockTriggerQueue) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// MockUpdateFeed is an in-memory UpdateFeed for testing
type MockUpdateFeed struct {
	mu        sync.Mutex
	Published []*domain.SearchUpdate
	subs      []chan *domain.SearchUpdate
}

// NewMockUpdateFeed creates a new MockUpdateFeed
func NewMockUpdateFeed() *MockUpdateFeed {
	return &MockUpdateFeed{}
}

func (m *MockUpdateFeed) Publish(ctx context.Context, update *domain.SearchUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *update
	m.Published = append(m.Published, &c)
	for _, ch := range m.subs {
		select {
		case ch <- &c:
		default:
		}
	}
	return nil
}

func (m *MockUpdateFeed) Subscribe(ctx context.Context) (<-chan *domain.SearchUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *domain.SearchUpdate, 16)
	m.subs = append(m.subs, ch)
	return ch, nil
}

func (m *MockUpdateFeed) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
	return nil
}
