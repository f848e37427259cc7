package driven

import (
	"context"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// UserStore handles user persistence (PostgreSQL)
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Count returns the number of users (setup gate)
	Count(ctx context.Context) (int, error)
}

// AuthAdapter handles password hashing and token signing
type AuthAdapter interface {
	// HashPassword generates a bcrypt hash from a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword checks if a password matches a bcrypt hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed JWT from domain claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a JWT and extracts domain claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
