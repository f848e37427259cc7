package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// MockSearchStore is a mock implementation of SearchStore for testing
type MockSearchStore struct {
	mu       sync.RWMutex
	searches map[string]*domain.Search
	failWith error
}

// NewMockSearchStore creates a new MockSearchStore
func NewMockSearchStore() *MockSearchStore {
	return &MockSearchStore{
		searches: make(map[string]*domain.Search),
	}
}

// FailWith makes every subsequent call fail with err (nil resets)
func (m *MockSearchStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockSearchStore) Save(ctx context.Context, search *domain.Search) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	c := *search
	m.searches[search.ID] = &c
	return nil
}

func (m *MockSearchStore) Get(ctx context.Context, id string) (*domain.Search, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	search, ok := m.searches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *search
	return &c, nil
}

func (m *MockSearchStore) ListByUser(ctx context.Context, userID string) ([]*domain.Search, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*domain.Search
	for _, s := range m.searches {
		if s.UserID == userID {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockSearchStore) UpdateStatus(ctx context.Context, id string, status domain.SearchStatus, token *string, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	search, ok := m.searches[id]
	if !ok {
		return domain.ErrNotFound
	}
	search.Status = status
	if token != nil {
		search.NextPageToken = *token
	}
	search.ErrorMessage = errorMessage
	return nil
}
