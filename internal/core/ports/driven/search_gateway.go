package driven

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// SearchGateway is the only component allowed to perform network I/O for the
// client's search operations. Failures are *domain.TransportError (the call
// never produced a usable response) or *domain.BackendError (the server
// returned a failure payload with a message).
type SearchGateway interface {
	// ListSearches returns the user's search history, newest first
	ListSearches(ctx context.Context, userID string) ([]*domain.Search, error)

	// ListLeads returns the leads of one search, newest first
	ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error)

	// StartSearch submits a new query and returns the backend-assigned
	// search id. The query must be validated non-empty before calling.
	StartSearch(ctx context.Context, query string) (string, error)

	// RequestNextPage asks the backend to queue continuation work for the
	// search. Acceptance does not mean new results exist yet.
	RequestNextPage(ctx context.Context, searchID string) error
}
