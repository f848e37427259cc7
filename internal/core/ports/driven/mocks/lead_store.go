package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// MockLeadStore is a mock implementation of LeadStore for testing
type MockLeadStore struct {
	mu    sync.RWMutex
	leads map[string]*domain.Lead
}

// NewMockLeadStore creates a new MockLeadStore
func NewMockLeadStore() *MockLeadStore {
	return &MockLeadStore{
		leads: make(map[string]*domain.Lead),
	}
}

func (m *MockLeadStore) Save(ctx context.Context, lead *domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *lead
	m.leads[lead.ID] = &c
	return nil
}

func (m *MockLeadStore) Get(ctx context.Context, id string) (*domain.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lead, ok := m.leads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *lead
	return &c, nil
}

func (m *MockLeadStore) ListBySearch(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Lead
	for _, l := range m.leads {
		if l.SearchID == searchID {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockLeadStore) SetContactCreated(ctx context.Context, id string, created bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return domain.ErrNotFound
	}
	lead.ContactCreated = created
	return nil
}

func (m *MockLeadStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leads[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.leads, id)
	return nil
}

// Count returns the number of stored leads
func (m *MockLeadStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.leads)
}

// MockContactStore is a mock implementation of ContactStore for testing
type MockContactStore struct {
	mu       sync.RWMutex
	contacts map[string]*domain.Contact
}

// NewMockContactStore creates a new MockContactStore
func NewMockContactStore() *MockContactStore {
	return &MockContactStore{
		contacts: make(map[string]*domain.Contact),
	}
}

func (m *MockContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *contact
	m.contacts[contact.ID] = &c
	return nil
}

func (m *MockContactStore) FindMatch(ctx context.Context, email, phone string) (*domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.contacts {
		if (email != "" && c.Email == email) || (phone != "" && c.Phone == phone) {
			cc := *c
			return &cc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Count returns the number of stored contacts
func (m *MockContactStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.contacts)
}
