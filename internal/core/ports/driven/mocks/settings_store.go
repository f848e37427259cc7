package mocks

import (
	"context"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// MockSettingsStore is a mock implementation of SettingsStore for testing
type MockSettingsStore struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

// NewMockSettingsStore creates a new MockSettingsStore
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{}
}

func (m *MockSettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	c := *m.settings
	return &c, nil
}

func (m *MockSettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *settings
	m.settings = &c
	return nil
}
