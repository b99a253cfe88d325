package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenStore(client, "test_token", ttl), mr
}

func TestTokenStoreIssueAndLookup(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, expiresAt, err := store.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	userID, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestTokenStoreLookupUnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Lookup(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = store.Lookup(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, _, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Lookup(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenStoreRevoke(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, _, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token))
	_, err = store.Lookup(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Revoking again is a no-op.
	require.NoError(t, store.Revoke(ctx, token))
}
