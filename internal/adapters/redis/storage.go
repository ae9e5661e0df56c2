package redis

// Package redis provides Redis-backed scope storage for the web front end.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/docanalyzer-ui/internal/ports"
)

// DefaultPrefix namespaces every key written by this adapter.
const DefaultPrefix = "docanalyzer:scope:"

// Provider hands out per-scope storage partitions on one Redis client.
type Provider struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewProvider creates a Provider. A zero ttl keeps keys until deleted; a
// positive ttl is refreshed on every write.
func NewProvider(client redis.UniversalClient, prefix string, ttl time.Duration) *Provider {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Provider{client: client, prefix: prefix, ttl: ttl}
}

// ForScope returns the storage partition for scope.
//
//nolint:ireturn // satisfies ports.StorageProvider
func (p *Provider) ForScope(scope string) ports.Storage {
	return p.Scope(scope)
}

// Scope returns the concrete partition for scope.
func (p *Provider) Scope(scope string) *ScopedStorage {
	return &ScopedStorage{client: p.client, prefix: p.prefix + scope + ":", ttl: p.ttl}
}

// ScopedStorage is one scope's key-value partition in Redis.
type ScopedStorage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func (s *ScopedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *ScopedStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *ScopedStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
