package mocks

import (
	"context"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// MockSearchGateway is a mock implementation of SearchGateway for testing.
// Hooks run before the corresponding call returns, letting tests interleave
// controller operations mid-flight.
type MockSearchGateway struct {
	mu       sync.Mutex
	searches map[string][]*domain.Search // by user
	leads    map[string][]*domain.Lead   // by search

	nextSearchID string
	failWith     error

	StartCalls    []string
	NextPageCalls []string

	OnListSearches func(userID string)
	OnListLeads    func(searchID string)
}

// NewMockSearchGateway creates a new MockSearchGateway
func NewMockSearchGateway() *MockSearchGateway {
	return &MockSearchGateway{
		searches:     make(map[string][]*domain.Search),
		leads:        make(map[string][]*domain.Lead),
		nextSearchID: "search-1",
	}
}

// SetSearches seeds the history returned for a user
func (m *MockSearchGateway) SetSearches(userID string, searches []*domain.Search) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[userID] = searches
}

// SetLeads seeds the leads returned for a search
func (m *MockSearchGateway) SetLeads(searchID string, leads []*domain.Lead) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[searchID] = leads
}

// SetNextSearchID sets the id returned by the next StartSearch
func (m *MockSearchGateway) SetNextSearchID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSearchID = id
}

// FailWith makes every subsequent call fail with err (nil resets)
func (m *MockSearchGateway) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockSearchGateway) ListSearches(ctx context.Context, userID string) ([]*domain.Search, error) {
	m.mu.Lock()
	err := m.failWith
	searches := m.searches[userID]
	hook := m.OnListSearches
	m.mu.Unlock()

	if hook != nil {
		hook(userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Search, len(searches))
	for i, s := range searches {
		c := *s
		out[i] = &c
	}
	return out, nil
}

func (m *MockSearchGateway) ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	m.mu.Lock()
	err := m.failWith
	leads := m.leads[searchID]
	hook := m.OnListLeads
	m.mu.Unlock()

	if hook != nil {
		hook(searchID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Lead, len(leads))
	for i, l := range leads {
		c := *l
		out[i] = &c
	}
	return out, nil
}

func (m *MockSearchGateway) StartSearch(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalls = append(m.StartCalls, query)
	if m.failWith != nil {
		return "", m.failWith
	}
	return m.nextSearchID, nil
}

func (m *MockSearchGateway) RequestNextPage(ctx context.Context, searchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NextPageCalls = append(m.NextPageCalls, searchID)
	return m.failWith
}
