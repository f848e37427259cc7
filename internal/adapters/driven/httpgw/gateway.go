package httpgw

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
)

// Ensure Gateway implements SearchGateway
var _ driven.SearchGateway = (*Gateway)(nil)

// Gateway implements driven.SearchGateway against the prospecta HTTP API.
// Connectivity failures surface as TransportError; error payloads from the
// API surface as BackendError carrying the server's message.
type Gateway struct {
	baseURL string
	token   string
	client  *http.Client
}

// Config holds gateway client configuration
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080
	BaseURL string

	// Token is the bearer token attached to every request
	Token string

	// Timeout bounds each request (default 15s)
	Timeout time.Duration
}

// NewGateway creates a new API gateway client
func NewGateway(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
	}
}

// ListSearches returns the authenticated user's history, newest first.
// The API scopes history by token; userID is carried for interface parity.
func (g *Gateway) ListSearches(ctx context.Context, userID string) ([]*domain.Search, error) {
	var out struct {
		Searches []*domain.Search `json:"searches"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/searches", nil, &out); err != nil {
		return nil, err
	}
	return out.Searches, nil
}

// ListLeads returns a search's accumulated results, newest first
func (g *Gateway) ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	var out struct {
		Leads []*domain.Lead `json:"leads"`
	}
	path := "/api/v1/searches/" + searchID + "/leads"
	if err := g.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Leads, nil
}

// StartSearch submits a query and returns the created search's id
func (g *Gateway) StartSearch(ctx context.Context, query string) (string, error) {
	var out struct {
		SearchID string `json:"search_id"`
	}
	body := map[string]string{"query": query}
	if err := g.do(ctx, http.MethodPost, "/api/v1/searches", body, &out); err != nil {
		return "", err
	}
	return out.SearchID, nil
}

// RequestNextPage asks the backend to fetch the search's next page
func (g *Gateway) RequestNextPage(ctx context.Context, searchID string) error {
	path := "/api/v1/searches/" + searchID + "/next-page"
	return g.do(ctx, http.MethodPost, path, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return backendError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// backendError extracts the API's error message from a non-2xx response
func backendError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &domain.BackendError{Message: msg}
}
