package ports

import (
	"context"
	"time"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to developer when empty
}

// AuthService implements registration, login and the bearer-token gate.
type AuthService interface {
	// Register creates the user and returns a freshly issued token.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	// Login verifies credentials and returns a freshly issued token.
	// Any failure surfaces as domain.ErrInvalidCredentials so callers
	// cannot distinguish an unknown email from a wrong password.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token for its remaining lifetime.
	Logout(ctx context.Context, tokenStr string) error
	// Authenticate verifies tokenStr and resolves its subject to a live
	// user record. All failures surface as domain.ErrUnauthorized; the
	// precise cause is logged internally.
	Authenticate(ctx context.Context, tokenStr string) (*domain.User, error)
}

// TokenRevoker is the denylist consulted on every authenticated request.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenStr string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenStr string) (bool, error)
}
