package memory

import (
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore implements driven.RecordStore with plain in-memory state.
// Writes are full replacements under a lock, so readers always observe a
// consistent snapshot. Subscribers are invoked after the lock is released.
type RecordStore struct {
	mu      sync.RWMutex
	history []*domain.Search
	results []*domain.Lead
	subs    []func()
}

// NewRecordStore creates an empty RecordStore
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// ReplaceHistory swaps the full history
func (s *RecordStore) ReplaceHistory(searches []*domain.Search) {
	s.mu.Lock()
	s.history = make([]*domain.Search, len(searches))
	for i, sr := range searches {
		c := *sr
		s.history[i] = &c
	}
	s.mu.Unlock()
	s.notify()
}

// ReplaceResults swaps the displayed result list wholesale
func (s *RecordStore) ReplaceResults(leads []*domain.Lead) {
	s.mu.Lock()
	s.results = make([]*domain.Lead, len(leads))
	for i, l := range leads {
		c := *l
		s.results[i] = &c
	}
	s.mu.Unlock()
	s.notify()
}

// UpsertStatus updates one search's mutable fields in place
func (s *RecordStore) UpsertStatus(id string, status domain.SearchStatus, token *string) error {
	s.mu.Lock()
	var found bool
	for _, sr := range s.history {
		if sr.ID == id {
			sr.Status = status
			if token != nil {
				sr.NextPageToken = *token
			}
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return domain.ErrNotFound
	}
	s.notify()
	return nil
}

// Find returns the search with the given id
func (s *RecordStore) Find(id string) (*domain.Search, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sr := range s.history {
		if sr.ID == id {
			c := *sr
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// History returns the current history snapshot
func (s *RecordStore) History() []*domain.Search {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Search, len(s.history))
	for i, sr := range s.history {
		c := *sr
		out[i] = &c
	}
	return out
}

// Results returns the current result list snapshot
func (s *RecordStore) Results() []*domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Lead, len(s.results))
	for i, l := range s.results {
		c := *l
		out[i] = &c
	}
	return out
}

// Subscribe registers a change callback
func (s *RecordStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *RecordStore) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
