package normalisers

import (
	"strings"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// WhitespaceNormaliser trims and collapses whitespace on every field.
// Runs before the field-specific normalisers.
type WhitespaceNormaliser struct{}

// Verify interface compliance
var _ driven.Normaliser = (*WhitespaceNormaliser)(nil)

// NewWhitespaceNormaliser creates a whitespace normaliser.
func NewWhitespaceNormaliser() *WhitespaceNormaliser {
	return &WhitespaceNormaliser{}
}

func (n *WhitespaceNormaliser) Fields() []string { return []string{"*"} }
func (n *WhitespaceNormaliser) Priority() int    { return 100 }

func (n *WhitespaceNormaliser) Normalise(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// PhoneNormaliser strips formatting characters from phone numbers, keeping
// digits and a leading plus. Scraped numbers arrive in every imaginable
// format: "(19) 99888-7766", "+55 19 3241 0000", "19.3241.0000".
type PhoneNormaliser struct{}

// Verify interface compliance
var _ driven.Normaliser = (*PhoneNormaliser)(nil)

// NewPhoneNormaliser creates a phone normaliser.
func NewPhoneNormaliser() *PhoneNormaliser {
	return &PhoneNormaliser{}
}

func (n *PhoneNormaliser) Fields() []string { return []string{"phone"} }
func (n *PhoneNormaliser) Priority() int    { return 50 }

func (n *PhoneNormaliser) Normalise(value string) string {
	var b strings.Builder
	for i, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EmailNormaliser lowercases email addresses.
type EmailNormaliser struct{}

// Verify interface compliance
var _ driven.Normaliser = (*EmailNormaliser)(nil)

// NewEmailNormaliser creates an email normaliser.
func NewEmailNormaliser() *EmailNormaliser {
	return &EmailNormaliser{}
}

func (n *EmailNormaliser) Fields() []string { return []string{"email"} }
func (n *EmailNormaliser) Priority() int    { return 50 }

func (n *EmailNormaliser) Normalise(value string) string {
	return strings.ToLower(value)
}
