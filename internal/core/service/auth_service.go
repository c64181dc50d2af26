package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
	"github.com/agencydesk/agency-platform/internal/core/token"
)

// AuthService implements registration, login, logout and the request gate.
type AuthService struct {
	users   ports.UserRepository
	tokens  *token.Manager
	revoker ports.TokenRevoker
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Manager, revoker ports.TokenRevoker, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoker: revoker, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.RoleDeveloper
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return tok, created, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return tok, user, nil
}

// Logout revokes the presented token for its remaining lifetime. An
// already-invalid token is rejected as unauthorized.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	_, expiresAt, err := s.tokens.VerifyWithExpiry(tokenStr)
	if err != nil {
		return domain.ErrUnauthorized
	}

	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil // expired on its own, nothing to deny
	}
	if err := s.revoker.Revoke(ctx, tokenStr, remaining); err != nil {
		return err
	}
	return nil
}

// Authenticate verifies tokenStr, checks the revocation list, and resolves
// the subject to a live user. The precise failure cause is logged; the
// caller only ever sees domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*domain.User, error) {
	subject, err := s.tokens.Verify(tokenStr)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.revoker.IsRevoked(ctx, tokenStr)
	if err != nil {
		// Revocation store down: fail open, same discipline as the rest
		// of the best-effort Redis checks. The token itself still passed
		// signature and expiry verification.
		s.log.Warn().Err(err).Msg("revocation check failed, accepting token")
	} else if revoked {
		s.log.Debug().Str("user_id", subject).Msg("revoked token rejected")
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("user_id", subject).Msg("token subject no longer exists")
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
