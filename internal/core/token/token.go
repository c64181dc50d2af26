// Package token issues and verifies the bearer credentials used by the
// API. A credential is an HS256-signed JWT carrying exactly three claims:
// subject (user id), issued-at, and expiry. Verification failures are
// classified so callers can log the precise cause while still presenting a
// single unauthorized outcome to clients.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the credential lifetime applied when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrMalformed        = errors.New("token malformed")
	ErrExpired          = errors.New("token expired")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// Manager signs and verifies credentials with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret. A non-positive ttl
// falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured credential lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a credential for subject using the configured TTL.
func (m *Manager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

// IssueWithTTL signs a credential for subject expiring at issued-at + ttl.
// The ttl is applied as given, so a zero or negative value produces an
// already-expired credential.
func (m *Manager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify decodes tokenStr, checks signature and expiry, and returns the
// embedded subject. Failures are ErrMalformed, ErrExpired or
// ErrSignatureInvalid; the subject still has to be resolved to a live user
// by the caller.
func (m *Manager) Verify(tokenStr string) (string, error) {
	subject, _, err := m.VerifyWithExpiry(tokenStr)
	return subject, err
}

// VerifyWithExpiry behaves like Verify but also returns the embedded
// expiry, which revocation uses to bound denylist entries.
func (m *Manager) VerifyWithExpiry(tokenStr string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", time.Time{}, classify(err)
	}
	if !tkn.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, ErrMalformed
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrMalformed
	}
}
