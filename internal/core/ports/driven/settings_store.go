package driven

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// SettingsStore persists operational settings (PostgreSQL).
// Implementations encrypt secret fields at rest.
type SettingsStore interface {
	// Get retrieves the current settings; returns defaults when none were
	// saved yet
	Get(ctx context.Context) (*domain.Settings, error)

	// Save persists the settings
	Save(ctx context.Context, settings *domain.Settings) error
}
