package domain

// Settings holds operational configuration editable at runtime.
// Secret fields are encrypted at rest by the settings store.
type Settings struct {
	// TriggerURL is the scrape engine endpoint that receives start and
	// next-page requests
	TriggerURL string `json:"trigger_url"`

	// LeadWebhookSecret validates inbound lead webhooks (empty disables
	// validation)
	LeadWebhookSecret string `json:"lead_webhook_secret,omitempty"`

	// UpdateWebhookSecret validates inbound status-update webhooks
	UpdateWebhookSecret string `json:"update_webhook_secret,omitempty"`

	// DefaultWhatsAppMessage prefills WhatsApp outreach links
	DefaultWhatsAppMessage string `json:"default_whatsapp_message,omitempty"`

	// DefaultEmailSubject prefills outreach email drafts
	DefaultEmailSubject string `json:"default_email_subject,omitempty"`

	// DefaultEmailBody prefills outreach email drafts
	DefaultEmailBody string `json:"default_email_body,omitempty"`
}

// DefaultSettings returns the settings used before any are saved
func DefaultSettings() *Settings {
	return &Settings{
		DefaultWhatsAppMessage: "Hello, we came across your business and would like to talk.",
		DefaultEmailSubject:    "Regarding your business",
	}
}
