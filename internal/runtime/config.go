package runtime

import (
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// Config holds the operational settings shared across services. It is
// populated from the settings store at startup and refreshed whenever an
// admin saves new settings, without restarting the process.
// Thread-safe for concurrent access.
type Config struct {
	mu       sync.RWMutex
	settings domain.Settings
}

// NewConfig creates a Config seeded with the given settings.
// A nil settings falls back to defaults.
func NewConfig(settings *domain.Settings) *Config {
	c := &Config{}
	if settings == nil {
		settings = domain.DefaultSettings()
	}
	c.settings = *settings
	return c
}

// Apply replaces the current settings
func (c *Config) Apply(settings *domain.Settings) {
	if settings == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = *settings
}

// Settings returns a copy of the current settings
func (c *Config) Settings() domain.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// TriggerURL returns the scrape engine endpoint (empty when unconfigured)
func (c *Config) TriggerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.TriggerURL
}

// LeadWebhookSecret returns the shared secret for the lead webhook
func (c *Config) LeadWebhookSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.LeadWebhookSecret
}

// UpdateWebhookSecret returns the shared secret for the update webhook
func (c *Config) UpdateWebhookSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.UpdateWebhookSecret
}

// DefaultWhatsAppMessage returns the configured outreach message
func (c *Config) DefaultWhatsAppMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.DefaultWhatsAppMessage
}

// DefaultEmailSubject returns the configured outreach email subject
func (c *Config) DefaultEmailSubject() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.DefaultEmailSubject
}

// DefaultEmailBody returns the configured outreach email body
func (c *Config) DefaultEmailBody() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.DefaultEmailBody
}
