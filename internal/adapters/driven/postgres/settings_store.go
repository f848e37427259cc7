package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using PostgreSQL.
// Webhook secrets are AES-GCM encrypted before hitting the database.
type SettingsStore struct {
	db        *DB
	encryptor *SecretEncryptor
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB, encryptor *SecretEncryptor) *SettingsStore {
	return &SettingsStore{db: db, encryptor: encryptor}
}

// Get retrieves the current settings; returns defaults when none were saved
func (s *SettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT trigger_url, lead_webhook_secret, update_webhook_secret,
			   default_whatsapp_message, default_email_subject, default_email_body
		FROM settings
		WHERE id = TRUE
	`

	var settings domain.Settings
	var leadSecret, updateSecret []byte

	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.TriggerURL,
		&leadSecret,
		&updateSecret,
		&settings.DefaultWhatsAppMessage,
		&settings.DefaultEmailSubject,
		&settings.DefaultEmailBody,
	)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}

	if settings.LeadWebhookSecret, err = s.decrypt(leadSecret); err != nil {
		return nil, fmt.Errorf("lead webhook secret: %w", err)
	}
	if settings.UpdateWebhookSecret, err = s.decrypt(updateSecret); err != nil {
		return nil, fmt.Errorf("update webhook secret: %w", err)
	}

	return &settings, nil
}

// Save persists the settings
func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	leadSecret, err := s.encrypt(settings.LeadWebhookSecret)
	if err != nil {
		return fmt.Errorf("lead webhook secret: %w", err)
	}
	updateSecret, err := s.encrypt(settings.UpdateWebhookSecret)
	if err != nil {
		return fmt.Errorf("update webhook secret: %w", err)
	}

	query := `
		INSERT INTO settings (id, trigger_url, lead_webhook_secret, update_webhook_secret,
							  default_whatsapp_message, default_email_subject, default_email_body, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			trigger_url = EXCLUDED.trigger_url,
			lead_webhook_secret = EXCLUDED.lead_webhook_secret,
			update_webhook_secret = EXCLUDED.update_webhook_secret,
			default_whatsapp_message = EXCLUDED.default_whatsapp_message,
			default_email_subject = EXCLUDED.default_email_subject,
			default_email_body = EXCLUDED.default_email_body,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		settings.TriggerURL,
		leadSecret,
		updateSecret,
		settings.DefaultWhatsAppMessage,
		settings.DefaultEmailSubject,
		settings.DefaultEmailBody,
		time.Now().UTC(),
	)
	return err
}

func (s *SettingsStore) encrypt(secret string) ([]byte, error) {
	if secret == "" {
		return nil, nil
	}
	return s.encryptor.EncryptString(secret)
}

func (s *SettingsStore) decrypt(blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", nil
	}
	return s.encryptor.DecryptString(blob)
}
