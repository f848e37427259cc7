package driving

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// AuthService handles authentication
type AuthService interface {
	// Authenticate verifies credentials and issues a token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken parses and validates a bearer token
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Setup creates the initial user; only allowed while no users exist
	Setup(ctx context.Context, req SetupRequest) (*domain.User, error)
}

// SetupRequest creates the initial user
type SetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SettingsService manages operational settings
type SettingsService interface {
	// Get returns the current settings
	Get(ctx context.Context) (*domain.Settings, error)

	// Update persists new settings and refreshes the runtime configuration
	Update(ctx context.Context, settings *domain.Settings) error
}
