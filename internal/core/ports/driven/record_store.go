package driven

import "github.com/prospecta-labs/prospecta-core/internal/core/domain"

// RecordStore is the client-side cache of search history and the result list
// of the currently selected search. It performs no I/O; all operations are
// synchronous in-memory mutations, and every write is an atomic replacement so
// readers never observe a half-updated list.
type RecordStore interface {
	// ReplaceHistory swaps the full history. Callers pass sessions ordered
	// by creation time descending; the store preserves the order as given.
	ReplaceHistory(searches []*domain.Search)

	// ReplaceResults swaps the displayed result list wholesale
	ReplaceResults(leads []*domain.Lead)

	// UpsertStatus updates one search's mutable fields in place. A nil token
	// leaves the current token untouched; a non-nil token overwrites it
	// (empty string clears). Returns ErrNotFound for an unknown id.
	UpsertStatus(id string, status domain.SearchStatus, token *string) error

	// Find returns the search with the given id, or ErrNotFound
	Find(id string) (*domain.Search, error)

	// History returns the current history snapshot
	History() []*domain.Search

	// Results returns the current result list snapshot
	Results() []*domain.Lead

	// Subscribe registers a callback invoked after every store mutation.
	// Used by the presentation layer to re-render.
	Subscribe(fn func())
}
