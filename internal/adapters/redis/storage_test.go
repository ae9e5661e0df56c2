package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/docanalyzer-ui/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestScopedStorage_SetGetDelete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProvider(client, "", 0).Scope("scope-1")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", []byte(`{"username":"alice"}`)))

	got, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(got))

	require.NoError(t, store.Delete(ctx, "user"))
	got, err = store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScopedStorage_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProvider(client, "", 0).Scope("scope-missing")
	got, err := store.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScopedStorage_ScopesAreIsolated(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	p := NewProvider(client, "test:", 0)
	ctx := context.Background()
	require.NoError(t, p.ForScope("a").Set(ctx, "user", []byte("A")))

	got, err := p.ForScope("b").Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := client.Exists(ctx, "test:a:user").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestScopedStorage_AppliesTTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProvider(client, "ttl:", time.Hour).Scope("s")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "user", []byte("x")))

	ttl, err := client.TTL(ctx, "ttl:s:user").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestScopedStorage_EmptyKey(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProvider(client, "", 0).Scope("s")
	assert.Error(t, store.Set(context.Background(), "", []byte("x")))
	require.NoError(t, store.Delete(context.Background(), ""))
}
