package runtime

import (
	"sync"
	"testing"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

func TestConfig_NilFallsBackToDefaults(t *testing.T) {
	c := NewConfig(nil)

	if c.DefaultWhatsAppMessage() == "" {
		t.Error("expected default WhatsApp message")
	}
	if c.TriggerURL() != "" {
		t.Error("expected no trigger URL by default")
	}
}

func TestConfig_Apply(t *testing.T) {
	c := NewConfig(nil)

	c.Apply(&domain.Settings{
		TriggerURL:        "https://engine.example.com/start",
		LeadWebhookSecret: "s3cret",
	})

	if got := c.TriggerURL(); got != "https://engine.example.com/start" {
		t.Errorf("TriggerURL = %q", got)
	}
	if got := c.LeadWebhookSecret(); got != "s3cret" {
		t.Errorf("LeadWebhookSecret = %q", got)
	}
}

func TestConfig_ApplyNilIsNoop(t *testing.T) {
	c := NewConfig(&domain.Settings{TriggerURL: "https://a"})

	c.Apply(nil)

	if c.TriggerURL() != "https://a" {
		t.Error("nil apply must not clear settings")
	}
}

func TestConfig_SettingsReturnsCopy(t *testing.T) {
	c := NewConfig(&domain.Settings{TriggerURL: "https://a"})

	s := c.Settings()
	s.TriggerURL = "https://mutated"

	if c.TriggerURL() != "https://a" {
		t.Error("mutating the returned copy must not affect the config")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	c := NewConfig(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Apply(&domain.Settings{TriggerURL: "https://b"})
		}()
		go func() {
			defer wg.Done()
			_ = c.TriggerURL()
		}()
	}
	wg.Wait()
}
