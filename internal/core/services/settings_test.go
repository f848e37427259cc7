package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven/mocks"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	store := mocks.NewMockSettingsStore()
	svc := NewSettingsService(store, runtime.NewConfig(nil), nil)

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.DefaultWhatsAppMessage == "" {
		t.Error("expected defaults before any save")
	}
}

func TestSettingsService_Update_RefreshesRuntime(t *testing.T) {
	store := mocks.NewMockSettingsStore()
	config := runtime.NewConfig(nil)
	svc := NewSettingsService(store, config, nil)
	ctx := context.Background()

	err := svc.Update(ctx, &domain.Settings{
		TriggerURL:        "  https://engine.example.com/run ",
		LeadWebhookSecret: "secret-a",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Runtime config picks up the change without a restart
	if got := config.TriggerURL(); got != "https://engine.example.com/run" {
		t.Errorf("runtime TriggerURL = %q", got)
	}

	stored, _ := store.Get(ctx)
	if stored.TriggerURL != "https://engine.example.com/run" {
		t.Errorf("stored TriggerURL = %q", stored.TriggerURL)
	}
}

func TestSettingsService_Update_Validation(t *testing.T) {
	store := mocks.NewMockSettingsStore()
	config := runtime.NewConfig(nil)
	svc := NewSettingsService(store, config, nil)
	ctx := context.Background()

	if err := svc.Update(ctx, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("nil settings: expected ErrInvalidInput, got %v", err)
	}

	err := svc.Update(ctx, &domain.Settings{TriggerURL: "ftp://weird"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad scheme: expected ErrInvalidInput, got %v", err)
	}
	if config.TriggerURL() != "" {
		t.Error("runtime config must not change on rejected update")
	}
}
