package driving

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// SearchService handles the record-service side of search operations
type SearchService interface {
	// StartSearch validates the query, creates a search record and
	// dispatches the start trigger. Returns the created search.
	StartSearch(ctx context.Context, userID, userName, query string) (*domain.Search, error)

	// RequestNextPage dispatches a continuation trigger for the search.
	// Fails with ErrNoNextPage when no token is present and ErrSearchRunning
	// while a page is still processing.
	RequestNextPage(ctx context.Context, searchID string) error

	// ListByUser returns a user's searches, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Search, error)

	// ListLeads returns a search's leads, newest first
	ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error)
}

// IngestService applies webhook payloads from the scrape engine
type IngestService interface {
	// IngestLead validates and persists a scraped lead
	IngestLead(ctx context.Context, req IngestLeadRequest) (*domain.Lead, error)

	// ApplyUpdate reconciles a search record with an engine status report
	// and publishes it on the update feed
	ApplyUpdate(ctx context.Context, update *domain.SearchUpdate) error
}

// IngestLeadRequest is the lead webhook payload
type IngestLeadRequest struct {
	SearchID        string `json:"search_id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	ActivitySummary string `json:"activity_summary"`
}
