package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// Ensure sessionController implements SessionController
var _ driving.SessionController = (*sessionController)(nil)

// sessionController owns the client-side search workflow: which search is
// selected, what may be requested next, and how local state is reconciled
// with backend-reported status.
//
// Concurrency model: a single busy flag guards the two mutating operations
// (StartNewSearch, FetchNextPage); it is test-and-set before the gateway call
// and released on every exit path. Reads (SelectSearch, Initialize, Refresh)
// are not gated; instead each in-flight result load carries the generation it
// was issued under, and stale responses are discarded on arrival. The
// controller never holds its lock across a gateway call.
type sessionController struct {
	gateway   driven.SearchGateway
	records   driven.RecordStore
	notifier  driven.Notifier
	navigator driven.Navigator
	focuser   driven.Focuser
	userID    string
	logger    *slog.Logger

	mu        sync.Mutex
	busy      bool
	activeID  string
	lastError string
	loadSeq   uint64
}

// SessionControllerConfig holds dependencies for the session controller
type SessionControllerConfig struct {
	Gateway   driven.SearchGateway
	Records   driven.RecordStore
	Notifier  driven.Notifier
	Navigator driven.Navigator
	Focuser   driven.Focuser
	UserID    string
	Logger    *slog.Logger
}

// NewSessionController creates a new session controller
func NewSessionController(cfg SessionControllerConfig) driving.SessionController {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionController{
		gateway:   cfg.Gateway,
		records:   cfg.Records,
		notifier:  cfg.Notifier,
		navigator: cfg.Navigator,
		focuser:   cfg.Focuser,
		userID:    cfg.UserID,
		logger:    logger,
	}
}

// Initialize loads the history and auto-selects the most recent search
func (c *sessionController) Initialize(ctx context.Context) error {
	searches, err := c.gateway.ListSearches(ctx, c.userID)
	if err != nil {
		c.fail("load search history", err)
		return err
	}

	c.records.ReplaceHistory(searches)
	if len(searches) == 0 {
		return nil
	}
	return c.SelectSearch(ctx, searches[0].ID)
}

// SelectSearch makes one search active and loads its results
func (c *sessionController) SelectSearch(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.activeID == id {
		c.mu.Unlock()
		return nil
	}
	c.activeID = id
	c.lastError = ""
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	// Clear before loading so two searches' results never interleave
	c.records.ReplaceResults(nil)

	if _, err := c.records.Find(id); err != nil {
		// Unknown id: nothing to load
		return nil
	}

	return c.loadResults(ctx, id, seq)
}

// StartNewSearch submits a trimmed query
func (c *sessionController) StartNewSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if !c.acquire() {
		return nil
	}
	defer func() {
		c.release()
		if c.focuser != nil {
			c.focuser.FocusSearchInput()
		}
	}()

	id, err := c.gateway.StartSearch(ctx, query)
	if err != nil {
		c.fail("start search", err)
		return err
	}

	c.notify(fmt.Sprintf("Search for %q started.", query), driven.SeveritySuccess)

	searches, err := c.gateway.ListSearches(ctx, c.userID)
	if err != nil {
		c.fail("reload search history", err)
		return err
	}
	c.records.ReplaceHistory(searches)

	return c.SelectSearch(ctx, id)
}

// FetchNextPage requests the active search's next page
func (c *sessionController) FetchNextPage(ctx context.Context) error {
	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()
	if id == "" {
		return nil
	}

	active, err := c.records.Find(id)
	if err != nil || !active.HasNextPage() {
		return nil
	}

	if !c.acquire() {
		return nil
	}
	defer c.release()

	if err := c.gateway.RequestNextPage(ctx, id); err != nil {
		c.fail("request next page", err)
		return err
	}

	c.notify("Next page request sent.", driven.SeverityInfo)

	// Optimistic: flip status for immediate feedback, never touch the
	// token - only an authoritative read may clear it
	if err := c.records.UpsertStatus(id, domain.StatusProcessing, nil); err != nil {
		c.logger.Warn("optimistic status update failed", "search_id", id, "error", err)
	}
	return nil
}

// OpenLead delegates to the navigation collaborator
func (c *sessionController) OpenLead(id string) {
	if c.navigator != nil {
		c.navigator.OpenLead(id)
	}
}

// Refresh applies an authoritative update for one search
func (c *sessionController) Refresh(ctx context.Context, searchID string) error {
	searches, err := c.gateway.ListSearches(ctx, c.userID)
	if err != nil {
		c.fail("reload search history", err)
		return err
	}
	c.records.ReplaceHistory(searches)

	c.mu.Lock()
	active := c.activeID
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	if active == "" {
		return nil
	}

	if _, err := c.records.Find(active); err != nil {
		// Active search vanished from the reloaded history; fall back to
		// no selection rather than erroring
		c.mu.Lock()
		c.activeID = ""
		c.mu.Unlock()
		c.records.ReplaceResults(nil)
		return nil
	}

	if active != searchID {
		return nil
	}
	return c.loadResults(ctx, active, seq)
}

// ActiveSearch returns the currently selected search, or nil
func (c *sessionController) ActiveSearch() *domain.Search {
	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	search, err := c.records.Find(id)
	if err != nil {
		return nil
	}
	return search
}

// LastError returns the message of the most recent failed operation
func (c *sessionController) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Busy reports whether a mutating operation is in flight
func (c *sessionController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// loadResults fetches and applies one search's results, discarding the
// response when the active search changed while the read was in flight
func (c *sessionController) loadResults(ctx context.Context, id string, seq uint64) error {
	leads, err := c.gateway.ListLeads(ctx, id)

	c.mu.Lock()
	stale := c.loadSeq != seq || c.activeID != id
	c.mu.Unlock()
	if stale {
		c.logger.Debug("discarding stale result load", "search_id", id)
		return nil
	}

	if err != nil {
		c.fail("load results", err)
		return err
	}
	c.records.ReplaceResults(leads)
	return nil
}

// acquire test-and-sets the busy flag; also clears lastError so a rejected
// attempt never hides a fresh failure
func (c *sessionController) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	c.lastError = ""
	return true
}

func (c *sessionController) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *sessionController) fail(op string, err error) {
	msg := domain.ErrorMessage(err)
	c.logger.Error("search operation failed", "op", op, "error", err)

	c.mu.Lock()
	c.lastError = msg
	c.mu.Unlock()

	c.notify(msg, driven.SeverityDanger)
}

func (c *sessionController) notify(message string, severity driven.Severity) {
	if c.notifier != nil {
		c.notifier.Notify(message, severity)
	}
}
