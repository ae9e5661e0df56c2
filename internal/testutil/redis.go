// Package testutil provides shared test helpers: a Redis connection for the
// storage adapter tests and a fake document-analysis backend.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisPingTimeout = 2 * time.Second
	// defaultTestRedisDB keeps test data away from DB 0 of a shared dev Redis.
	defaultTestRedisDB = 15
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool parses common truthy values.
func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// redisCandidates lists addresses to probe: REDIS_ADDR when set (CI), else
// the compose service name, a local default port and TEST_REDIS_LOCAL_ADDR.
func redisCandidates() []string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return []string{addr}
	}
	return []string{
		"redis:6379",
		"localhost:6379",
		getEnvOrDefault("TEST_REDIS_LOCAL_ADDR", "localhost:56379"),
	}
}

func testRedisDB(t testing.TB) int {
	raw := os.Getenv("TEST_REDIS_DB")
	if raw == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(raw)
	if err != nil || db < 0 {
		t.Logf("invalid TEST_REDIS_DB=%q, using %d", raw, defaultTestRedisDB)
		return defaultTestRedisDB
	}
	return db
}

// SetupTestRedis connects to the first reachable test Redis, flushes its test
// DB and closes the client on cleanup. Without Redis the test is skipped,
// or fails when TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	db := testRedisDB(t)

	for _, addr := range redisCandidates() {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		err := client.Ping(ctx).Err()
		if err == nil {
			err = client.FlushDB(ctx).Err()
		}
		cancel()
		if err != nil {
			t.Logf("redis not available at %s: %v", addr, err)
			_ = client.Close()
			continue
		}
		t.Cleanup(func() { _ = client.Close() })
		return client
	}

	if envBool("TEST_REQUIRE_REDIS") {
		t.Fatal("redis not available for testing")
	}
	t.Skip("redis not available for testing")
	return nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
