package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService creates search records and dispatches scrape triggers.
// With a queue configured, jobs go through it and a worker performs the
// actual dispatch; without one, dispatch happens inline.
type searchService struct {
	searches driven.SearchStore
	leads    driven.LeadStore
	trigger  driven.ScrapeTrigger
	queue    driven.TriggerQueue // optional
	pipeline driven.LeadPipeline // optional
	logger   *slog.Logger
}

// SearchServiceConfig holds dependencies for the search service
type SearchServiceConfig struct {
	Searches driven.SearchStore
	Leads    driven.LeadStore
	Trigger  driven.ScrapeTrigger
	Queue    driven.TriggerQueue
	Pipeline driven.LeadPipeline
	Logger   *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(cfg SearchServiceConfig) driving.SearchService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		searches: cfg.Searches,
		leads:    cfg.Leads,
		trigger:  cfg.Trigger,
		queue:    cfg.Queue,
		pipeline: cfg.Pipeline,
		logger:   logger,
	}
}

// StartSearch validates the query, creates the record and dispatches the
// start trigger. The record moves draft -> processing on successful dispatch
// and draft -> error when dispatch fails.
func (s *searchService) StartSearch(ctx context.Context, userID, userName, query string) (*domain.Search, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	search := &domain.Search{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     query,
		Status:    domain.StatusDraft,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.searches.Save(ctx, search); err != nil {
		return nil, fmt.Errorf("saving search: %w", err)
	}

	job := &domain.TriggerJob{
		ID:         uuid.NewString(),
		Kind:       domain.TriggerStart,
		SearchID:   search.ID,
		Query:      query,
		UserID:     userID,
		UserName:   userName,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := s.dispatch(ctx, job); err != nil {
		s.markFailed(ctx, search.ID, err)
		return nil, err
	}

	if err := s.searches.UpdateStatus(ctx, search.ID, domain.StatusProcessing, nil, ""); err != nil {
		s.logger.Warn("failed to mark search processing", "search_id", search.ID, "error", err)
	}
	search.Status = domain.StatusProcessing

	s.logger.Info("search started", "search_id", search.ID, "user_id", userID)
	return search, nil
}

// RequestNextPage dispatches a continuation trigger. The stored token is
// never cleared here; only the engine's own report moves it forward.
func (s *searchService) RequestNextPage(ctx context.Context, searchID string) error {
	search, err := s.searches.Get(ctx, searchID)
	if err != nil {
		return err
	}
	if search.Status == domain.StatusProcessing {
		return domain.ErrSearchRunning
	}
	if !search.HasNextPage() {
		return domain.ErrNoNextPage
	}

	job := &domain.TriggerJob{
		ID:         uuid.NewString(),
		Kind:       domain.TriggerNextPage,
		SearchID:   search.ID,
		PageToken:  search.NextPageToken,
		UserID:     search.UserID,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := s.dispatch(ctx, job); err != nil {
		return err
	}

	if err := s.searches.UpdateStatus(ctx, search.ID, domain.StatusProcessing, nil, ""); err != nil {
		s.logger.Warn("failed to mark search processing", "search_id", search.ID, "error", err)
	}

	s.logger.Info("next page requested", "search_id", search.ID)
	return nil
}

// ListByUser returns a user's searches, newest first
func (s *searchService) ListByUser(ctx context.Context, userID string) ([]*domain.Search, error) {
	return s.searches.ListByUser(ctx, userID)
}

// ListLeads returns a search's leads, newest first, after post-processing
func (s *searchService) ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	if _, err := s.searches.Get(ctx, searchID); err != nil {
		return nil, err
	}
	leads, err := s.leads.ListBySearch(ctx, searchID)
	if err != nil {
		return nil, err
	}
	if s.pipeline != nil {
		leads = s.pipeline.Process(leads)
	}
	return leads, nil
}

func (s *searchService) dispatch(ctx context.Context, job *domain.TriggerJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("enqueueing trigger: %w", err)
		}
		return nil
	}
	return s.trigger.Dispatch(ctx, job)
}

func (s *searchService) markFailed(ctx context.Context, searchID string, cause error) {
	msg := domain.ErrorMessage(cause)
	if err := s.searches.UpdateStatus(ctx, searchID, domain.StatusError, nil, msg); err != nil {
		s.logger.Error("failed to mark search errored", "search_id", searchID, "error", err)
	}
}
