package domain

import (
	"net/url"
	"strings"
	"time"
)

// defaultCountryCode is prefixed to phone numbers that don't carry one.
// Matches the market the scrape engine targets.
const defaultCountryCode = "55"

// Lead is one result entry returned by a search
type Lead struct {
	ID              string    `json:"id"`
	SearchID        string    `json:"search_id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	Address         string    `json:"address,omitempty"`
	ActivitySummary string    `json:"activity_summary,omitempty"`
	ContactCreated  bool      `json:"contact_created"`
	CreatedAt       time.Time `json:"created_at"`
}

// CleanPhone strips formatting characters and prefixes the default country
// code when the number looks local.
func (l *Lead) CleanPhone() string {
	var b strings.Builder
	for _, r := range l.Phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	phone := b.String()
	if phone == "" {
		return ""
	}
	if len(phone) <= 11 && !strings.HasPrefix(phone, defaultCountryCode) {
		phone = defaultCountryCode + phone
	}
	return phone
}

// WhatsAppURL builds a click-to-chat link with the given prefilled message.
// Returns empty when the lead has no phone number.
func (l *Lead) WhatsAppURL(message string) string {
	phone := l.CleanPhone()
	if phone == "" {
		return ""
	}
	u := "https://wa.me/" + phone
	if message != "" {
		u += "?text=" + url.QueryEscape(message)
	}
	return u
}

// EmailDraft is a prefilled outreach email for a lead
type EmailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Contact is a lead that was promoted into the address book
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Street    string    `json:"street,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	IsCompany bool      `json:"is_company"`
	CreatedAt time.Time `json:"created_at"`
}
