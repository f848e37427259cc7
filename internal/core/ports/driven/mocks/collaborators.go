package mocks

import (
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Notification records one Notify call
type Notification struct {
	Message  string
	Severity driven.Severity
}

// MockNotifier records notifications for assertions
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(message string, severity driven.Severity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, Notification{Message: message, Severity: severity})
}

// Last returns the most recent notification, or nil
func (m *MockNotifier) Last() *Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return nil
	}
	n := m.Notifications[len(m.Notifications)-1]
	return &n
}

// MockNavigator records opened leads
type MockNavigator struct {
	mu     sync.Mutex
	Opened []string
}

// NewMockNavigator creates a new MockNavigator
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

func (m *MockNavigator) OpenLead(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = append(m.Opened, id)
}

// MockFocuser counts focus requests
type MockFocuser struct {
	mu         sync.Mutex
	FocusCalls int
}

// NewMockFocuser creates a new MockFocuser
func NewMockFocuser() *MockFocuser {
	return &MockFocuser{}
}

func (m *MockFocuser) FocusSearchInput() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FocusCalls++
}
