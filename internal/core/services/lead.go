package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

// Ensure leadService implements LeadService
var _ driving.LeadService = (*leadService)(nil)

// leadService handles outreach actions on individual leads
type leadService struct {
	leads    driven.LeadStore
	contacts driven.ContactStore
	config   *runtime.Config
	logger   *slog.Logger
}

// LeadServiceConfig holds dependencies for the lead service
type LeadServiceConfig struct {
	Leads    driven.LeadStore
	Contacts driven.ContactStore
	Config   *runtime.Config
	Logger   *slog.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(cfg LeadServiceConfig) driving.LeadService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &leadService{
		leads:    cfg.Leads,
		contacts: cfg.Contacts,
		config:   cfg.Config,
		logger:   logger,
	}
}

// Get retrieves a lead by ID
func (s *leadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.Get(ctx, id)
}

// WhatsAppLink builds a click-to-chat URL for the lead
func (s *leadService) WhatsAppLink(ctx context.Context, id string, message string, useDefault bool) (string, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if useDefault {
		message = s.config.DefaultWhatsAppMessage()
	}
	link := lead.WhatsAppURL(message)
	if link == "" {
		return "", domain.ErrInvalidInput
	}
	return link, nil
}

// EmailDraft builds a prefilled outreach email for the lead
func (s *leadService) EmailDraft(ctx context.Context, id string, body string, useDefault bool) (*domain.EmailDraft, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if useDefault {
		body = s.config.DefaultEmailBody()
	}
	return &domain.EmailDraft{
		To:      lead.Email,
		Subject: s.config.DefaultEmailSubject(),
		Body:    body,
	}, nil
}

// CreateContact promotes a lead to a contact. A lead with a matching email
// or phone already in the address book fails with ErrContactExists and the
// lead is still marked, so the client stops offering the action.
func (s *leadService) CreateContact(ctx context.Context, id string) (*domain.Contact, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.ContactCreated {
		return nil, domain.ErrContactExists
	}

	existing, err := s.contacts.FindMatch(ctx, lead.Email, lead.CleanPhone())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if markErr := s.leads.SetContactCreated(ctx, id, true); markErr != nil {
			s.logger.Warn("failed to mark lead", "lead_id", id, "error", markErr)
		}
		return nil, domain.ErrContactExists
	}

	contact := &domain.Contact{
		ID:        uuid.NewString(),
		Name:      lead.Name,
		Phone:     lead.CleanPhone(),
		Email:     lead.Email,
		Street:    lead.Address,
		Notes:     lead.ActivitySummary,
		IsCompany: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.leads.SetContactCreated(ctx, id, true); err != nil {
		s.logger.Warn("failed to mark lead", "lead_id", id, "error", err)
	}

	s.logger.Info("contact created", "contact_id", contact.ID, "lead_id", id)
	return contact, nil
}

// Delete removes a lead
func (s *leadService) Delete(ctx context.Context, id string) error {
	if _, err := s.leads.Get(ctx, id); err != nil {
		return err
	}
	return s.leads.Delete(ctx, id)
}
