package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

// dispatchTimeout bounds the engine's receipt confirmation; actual scraping
// runs long after this call returns.
const dispatchTimeout = 10 * time.Second

// Ensure Trigger implements ScrapeTrigger
var _ driven.ScrapeTrigger = (*Trigger)(nil)

// Trigger dispatches jobs to the external scrape engine over HTTP.
// The endpoint URL comes from the runtime configuration, so it can change
// without a restart.
type Trigger struct {
	config *runtime.Config
	client *http.Client
}

// NewTrigger creates a new scrape trigger client
func NewTrigger(config *runtime.Config) *Trigger {
	return &Trigger{
		config: config,
		client: &http.Client{
			Timeout: dispatchTimeout,
		},
	}
}

// triggerRequest is the request body posted to the engine
type triggerRequest struct {
	SearchID      string `json:"search_id"`
	Query         string `json:"query,omitempty"`
	NextPageToken string `json:"next_page_token,omitempty"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name,omitempty"`
}

// Dispatch posts one trigger job to the engine
func (t *Trigger) Dispatch(ctx context.Context, job *domain.TriggerJob) error {
	url := t.config.TriggerURL()
	if url == "" {
		return domain.ErrTriggerNotConfigured
	}

	body, err := json.Marshal(triggerRequest{
		SearchID:      job.SearchID,
		Query:         job.Query,
		NextPageToken: job.PageToken,
		UserID:        job.UserID,
		UserName:      job.UserName,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal trigger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.BackendError{
			Message: fmt.Sprintf("scrape engine returned %d: %s", resp.StatusCode, string(detail)),
		}
	}
	return nil
}
