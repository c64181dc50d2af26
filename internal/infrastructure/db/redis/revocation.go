package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker is a Redis-backed denylist for logged-out tokens. Entries
// expire with the token itself, so the set never outgrows the set of tokens
// that could still be replayed.
//
// Key format: revoked:<sha256 of the token>. Hashing keeps raw JWTs out of
// the store.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker creates a TokenRevoker wrapping the given Redis client.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke denylists the token until ttl elapses.
func (t *TokenRevoker) Revoke(ctx context.Context, tokenStr string, ttl time.Duration) error {
	if err := t.client.Set(ctx, t.key(tokenStr), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been denylisted.
func (t *TokenRevoker) IsRevoked(ctx context.Context, tokenStr string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(tokenStr)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (t *TokenRevoker) key(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return "revoked:" + hex.EncodeToString(sum[:])
}
