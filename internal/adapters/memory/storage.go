// Package memory provides in-process storage adapters for development and tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/target/docanalyzer-ui/internal/ports"
)

// Storage is a single in-memory key-value partition.
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStorage creates an empty partition.
func NewStorage() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Provider hands out one Storage per scope, created lazily.
type Provider struct {
	mu     sync.Mutex
	scopes map[string]*Storage
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{scopes: make(map[string]*Storage)}
}

// ForScope returns the partition for scope.
//
//nolint:ireturn // callers depend on the port, not the concrete partition.
func (p *Provider) ForScope(scope string) ports.Storage {
	return p.Scope(scope)
}

// Scope returns the concrete partition for scope.
func (p *Provider) Scope(scope string) *Storage {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.scopes[scope]
	if !ok {
		s = NewStorage()
		p.scopes[scope] = s
	}
	return s
}
