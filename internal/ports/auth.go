package ports

// Package ports defines interfaces (hexagonal ports) for session persistence and the backend API.
// Implementations live in internal/adapters and internal/gateway; orchestration in internal/session.

import (
	"context"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
)

// Storage is durable key-value storage scoped to one browser or CLI profile.
// Get returns (nil, nil) when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StorageProvider hands out the Storage partition for a scope identifier.
type StorageProvider interface {
	ForScope(scope string) Storage
}

// SessionObserver receives session transitions synchronously.
type SessionObserver func(ctx context.Context, tr domainauth.Transition)
