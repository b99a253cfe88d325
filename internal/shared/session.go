package shared

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore issues and resolves API bearer tokens backed by Redis.
// Tokens are opaque random strings; the token value maps to the owning
// user ID and expires after the configured TTL.
type TokenStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, prefix string, ttl time.Duration) *TokenStore {
	if prefix == "" {
		prefix = "stockpile_token"
	}
	return &TokenStore{client: client, prefix: prefix, ttl: ttl}
}

// Issue creates a new token for the user and persists it with the store TTL.
func (ts *TokenStore) Issue(ctx context.Context, userID int64) (string, time.Time, error) {
	token, err := generateToken()
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().UTC().Add(ts.ttl)
	if err := ts.client.Set(ctx, ts.key(token), strconv.FormatInt(userID, 10), ts.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("shared: store token: %w", err)
	}
	return token, expiresAt, nil
}

// Lookup resolves a token to its user ID. Unknown or expired tokens
// return ErrUnauthorized.
func (ts *TokenStore) Lookup(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	val, err := ts.client.Get(ctx, ts.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrUnauthorized
		}
		return 0, fmt.Errorf("shared: lookup token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (ts *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := ts.client.Del(ctx, ts.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("shared: revoke token: %w", err)
	}
	return nil
}

// TTL exposes the configured token lifetime.
func (ts *TokenStore) TTL() time.Duration {
	return ts.ttl
}

func (ts *TokenStore) key(token string) string {
	return ts.prefix + ":" + token
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("shared: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
