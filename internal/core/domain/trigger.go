package domain

import "time"

// TriggerKind distinguishes the two scrape engine operations
type TriggerKind string

const (
	// TriggerStart asks the engine to run a fresh query
	TriggerStart TriggerKind = "start"

	// TriggerNextPage asks the engine to continue from a page token
	TriggerNextPage TriggerKind = "next_page"
)

// TriggerJob is one queued request to the scrape engine.
// Query is set for start jobs, PageToken for next-page jobs.
type TriggerJob struct {
	ID         string      `json:"id"`
	Kind       TriggerKind `json:"kind"`
	SearchID   string      `json:"search_id"`
	Query      string      `json:"query,omitempty"`
	PageToken  string      `json:"page_token,omitempty"`
	UserID     string      `json:"user_id"`
	UserName   string      `json:"user_name,omitempty"`
	Attempts   int         `json:"attempts"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
}

// Validate checks the job is dispatchable
func (j *TriggerJob) Validate() error {
	if j.SearchID == "" {
		return ErrInvalidInput
	}
	switch j.Kind {
	case TriggerStart:
		if j.Query == "" {
			return ErrInvalidInput
		}
	case TriggerNextPage:
		if j.PageToken == "" {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	return nil
}
