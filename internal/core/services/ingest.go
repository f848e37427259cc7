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

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService applies webhook payloads from the scrape engine: scraped
// leads and authoritative status reports. Updates are relayed on the feed so
// connected clients can refresh without polling.
type ingestService struct {
	searches    driven.SearchStore
	leads       driven.LeadStore
	feed        driven.UpdateFeed         // optional
	normalisers driven.NormaliserRegistry // optional
	logger      *slog.Logger
}

// IngestServiceConfig holds dependencies for the ingest service
type IngestServiceConfig struct {
	Searches    driven.SearchStore
	Leads       driven.LeadStore
	Feed        driven.UpdateFeed
	Normalisers driven.NormaliserRegistry
	Logger      *slog.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(cfg IngestServiceConfig) driving.IngestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		searches:    cfg.Searches,
		leads:       cfg.Leads,
		feed:        cfg.Feed,
		normalisers: cfg.Normalisers,
		logger:      logger,
	}
}

// IngestLead validates and persists one scraped lead
func (s *ingestService) IngestLead(ctx context.Context, req driving.IngestLeadRequest) (*domain.Lead, error) {
	name := s.normalise("name", req.Name)
	if req.SearchID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.searches.Get(ctx, req.SearchID); err != nil {
		return nil, err
	}

	lead := &domain.Lead{
		ID:              uuid.NewString(),
		SearchID:        req.SearchID,
		Name:            name,
		Phone:           s.normalise("phone", req.Phone),
		Email:           s.normalise("email", req.Email),
		Address:         s.normalise("address", req.Address),
		ActivitySummary: s.normalise("activity_summary", req.ActivitySummary),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, fmt.Errorf("saving lead: %w", err)
	}

	s.logger.Info("lead ingested", "lead_id", lead.ID, "search_id", lead.SearchID)
	return lead, nil
}

// ApplyUpdate reconciles the search record with an engine status report and
// publishes it. A report always carries the full authoritative state, so the
// token is written even when empty (the engine clearing it ends pagination).
func (s *ingestService) ApplyUpdate(ctx context.Context, update *domain.SearchUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	token := update.NextPageToken
	if err := s.searches.UpdateStatus(ctx, update.SearchID, update.Status, &token, update.ErrorMessage); err != nil {
		return err
	}

	if s.feed != nil {
		if err := s.feed.Publish(ctx, update); err != nil {
			// Delivery is best-effort; clients recover by reloading
			s.logger.Warn("failed to publish search update", "search_id", update.SearchID, "error", err)
		}
	}

	s.logger.Info("search update applied",
		"search_id", update.SearchID,
		"status", update.Status,
		"has_next_page", update.NextPageToken != "")
	return nil
}

// normalise trims a field and runs it through the registry when configured
func (s *ingestService) normalise(field, value string) string {
	value = strings.TrimSpace(value)
	if s.normalisers == nil {
		return value
	}
	return s.normalisers.Apply(field, value)
}
