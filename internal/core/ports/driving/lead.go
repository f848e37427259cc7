package driving

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// LeadService handles outreach actions on individual leads
type LeadService interface {
	// Get retrieves a lead by ID
	Get(ctx context.Context, id string) (*domain.Lead, error)

	// WhatsAppLink builds a click-to-chat URL. With useDefault the
	// configured default message is prefilled, otherwise message is used
	// verbatim.
	WhatsAppLink(ctx context.Context, id string, message string, useDefault bool) (string, error)

	// EmailDraft builds a prefilled outreach email for the lead
	EmailDraft(ctx context.Context, id string, body string, useDefault bool) (*domain.EmailDraft, error)

	// CreateContact promotes a lead to a contact. Fails with
	// ErrContactExists when a contact with the same email or phone exists.
	CreateContact(ctx context.Context, id string) (*domain.Contact, error)

	// Delete removes a lead
	Delete(ctx context.Context, id string) error
}
