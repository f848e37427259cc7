package driving

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// SessionController is the contract the presentation layer drives. Each
// operation is the single entry point for one user intent. Mutating
// operations (StartNewSearch, FetchNextPage) are guarded by a controller-wide
// busy flag and are silent no-ops while another mutation is in flight;
// SelectSearch stays available during a pending mutation.
type SessionController interface {
	// Initialize loads the history and auto-selects the most recent search.
	// Runs once at controller startup.
	Initialize(ctx context.Context) error

	// SelectSearch makes one search active and loads its results. No-op if
	// already active; selecting an id absent from history clears the result
	// list without a network call.
	SelectSearch(ctx context.Context, id string) error

	// StartNewSearch submits a trimmed query. Blank queries and calls made
	// while busy are rejected as no-ops. On success the history is reloaded
	// and the new search selected.
	StartNewSearch(ctx context.Context, query string) error

	// FetchNextPage requests the active search's next page. No-op without
	// an active search, without a next-page token, or while busy. On
	// acceptance the local status flips to processing; the token is only
	// cleared by a later authoritative read.
	FetchNextPage(ctx context.Context) error

	// OpenLead delegates to the navigation collaborator
	OpenLead(id string)

	// Refresh applies an authoritative update: reloads the history and, when
	// the updated search is active, its results. Invoked by the update-feed
	// refresher.
	Refresh(ctx context.Context, searchID string) error

	// ActiveSearch returns the currently selected search, or nil
	ActiveSearch() *domain.Search

	// LastError returns the message of the most recent failed operation,
	// empty when the last operation succeeded
	LastError() string

	// Busy reports whether a mutating operation is in flight
	Busy() bool
}
