package driven

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// SearchStore handles search record persistence (PostgreSQL)
type SearchStore interface {
	// Save creates or updates a search record
	Save(ctx context.Context, search *domain.Search) error

	// Get retrieves a search by ID
	Get(ctx context.Context, id string) (*domain.Search, error)

	// ListByUser retrieves a user's searches ordered by creation time
	// descending
	ListByUser(ctx context.Context, userID string) ([]*domain.Search, error)

	// UpdateStatus updates the mutable fields of one search. A nil token
	// leaves the stored token untouched.
	UpdateStatus(ctx context.Context, id string, status domain.SearchStatus, token *string, errorMessage string) error
}

// LeadStore handles lead persistence (PostgreSQL)
type LeadStore interface {
	// Save creates or updates a lead
	Save(ctx context.Context, lead *domain.Lead) error

	// Get retrieves a lead by ID
	Get(ctx context.Context, id string) (*domain.Lead, error)

	// ListBySearch retrieves a search's leads ordered by creation time
	// descending
	ListBySearch(ctx context.Context, searchID string) ([]*domain.Lead, error)

	// SetContactCreated marks a lead as promoted to a contact
	SetContactCreated(ctx context.Context, id string, created bool) error

	// Delete removes a lead
	Delete(ctx context.Context, id string) error
}

// ContactStore handles contacts promoted from leads (PostgreSQL)
type ContactStore interface {
	// Save creates a contact
	Save(ctx context.Context, contact *domain.Contact) error

	// FindMatch returns an existing contact with the same email or phone,
	// or ErrNotFound
	FindMatch(ctx context.Context, email, phone string) (*domain.Contact, error)
}
