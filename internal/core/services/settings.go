package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService persists operational settings and keeps the shared runtime
// configuration in sync, so changes take effect without a restart.
type settingsService struct {
	store  driven.SettingsStore
	config *runtime.Config
	logger *slog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store driven.SettingsStore, config *runtime.Config, logger *slog.Logger) driving.SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{store: store, config: config, logger: logger}
}

// Get returns the current settings
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.store.Get(ctx)
}

// Update persists new settings and refreshes the runtime configuration
func (s *settingsService) Update(ctx context.Context, settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	settings.TriggerURL = strings.TrimSpace(settings.TriggerURL)
	if settings.TriggerURL != "" &&
		!strings.HasPrefix(settings.TriggerURL, "http://") &&
		!strings.HasPrefix(settings.TriggerURL, "https://") {
		return domain.ErrInvalidInput
	}

	if err := s.store.Save(ctx, settings); err != nil {
		return err
	}
	s.config.Apply(settings)

	s.logger.Info("settings updated", "trigger_configured", settings.TriggerURL != "")
	return nil
}
