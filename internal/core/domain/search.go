package domain

import "time"

// SearchStatus tracks the lifecycle of a search as reported by the backend.
// The client may only ever write StatusProcessing locally (optimistic update);
// every other value comes from an authoritative read.
type SearchStatus string

const (
	// StatusDraft is the state between record creation and trigger dispatch
	StatusDraft SearchStatus = "draft"

	// StatusProcessing means the scrape engine is working on a page
	StatusProcessing SearchStatus = "processing"

	// StatusSuccess means the last requested page completed
	StatusSuccess SearchStatus = "success"

	// StatusError means the last requested page failed
	StatusError SearchStatus = "error"
)

// IsValid reports whether the status is a known value
func (s SearchStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusProcessing, StatusSuccess, StatusError:
		return true
	}
	return false
}

// IsTerminal reports whether the backend considers the current page settled.
// A search with a next-page token can leave a terminal status again.
func (s SearchStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}

// Search represents one user-submitted query and its accumulated results
type Search struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Query         string       `json:"query"`
	Status        SearchStatus `json:"status"`
	NextPageToken string       `json:"next_page_token,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
	LeadCount     int          `json:"lead_count"`
	CreatedAt     time.Time    `json:"created_at"`
}

// HasNextPage reports whether the backend has issued a continuation token.
// Token presence is the sole pagination signal.
func (s *Search) HasNextPage() bool {
	return s.NextPageToken != ""
}

// SearchUpdate is the authoritative status report delivered by the scrape
// engine via the update webhook and relayed on the update feed.
type SearchUpdate struct {
	SearchID      string       `json:"search_id"`
	Status        SearchStatus `json:"status"`
	NextPageToken string       `json:"next_page_token,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
}

// Validate checks that the update carries an id and a reportable status.
// The engine only ever reports terminal statuses.
func (u *SearchUpdate) Validate() error {
	if u.SearchID == "" {
		return ErrInvalidInput
	}
	if !u.Status.IsTerminal() {
		return ErrInvalidInput
	}
	if u.Status == StatusError && u.ErrorMessage == "" {
		return ErrInvalidInput
	}
	return nil
}
