// Package session owns the client-side authentication state: it restores the
// persisted user on Initialize, persists it on Login, erases it on Logout and
// notifies observers of every transition.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/ports"
)

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used for best-effort storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver subscribes obs before the store is used.
func WithObserver(obs ports.SessionObserver) Option {
	return func(s *Store) {
		if obs != nil {
			s.observers = append(s.observers, observerEntry{id: s.nextID(), fn: obs})
		}
	}
}

type observerEntry struct {
	id uint64
	fn ports.SessionObserver
}

// Store is the single source of truth for authentication state within one
// storage scope. It is safe for concurrent use.
type Store struct {
	storage ports.Storage
	logger  *slog.Logger

	mu        sync.RWMutex
	state     domainauth.State
	observers []observerEntry
	seq       uint64
}

// New creates a Store backed by storage. The store starts anonymous until Initialize is called.
func New(storage ports.Storage, opts ...Option) *Store {
	s := &Store{storage: storage, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nextID() uint64 {
	s.seq++
	return s.seq
}

// Initialize restores the persisted user. Missing, unreadable or corrupt
// records yield an anonymous state; a corrupt record is erased.
func (s *Store) Initialize(ctx context.Context) domainauth.State {
	user, corrupt := s.load(ctx)
	if corrupt {
		if err := s.storage.Delete(ctx, domainauth.StorageKey); err != nil {
			s.logger.WarnContext(ctx, "erase corrupt session record failed", "error", err)
		}
	}

	s.mu.Lock()
	s.state = domainauth.State{User: user}
	st := s.state
	s.mu.Unlock()
	return st
}

func (s *Store) load(ctx context.Context) (*domainauth.User, bool) {
	raw, err := s.storage.Get(ctx, domainauth.StorageKey)
	if err != nil {
		s.logger.WarnContext(ctx, "read session record failed", "error", err)
		return nil, false
	}
	if len(raw) == 0 {
		return nil, false
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable session record", "error", err)
		return nil, true
	}
	return user, false
}

var errEmptyUser = errors.New("session record has no username")

func decodeUser(raw []byte) (*domainauth.User, error) {
	var user *domainauth.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	if user == nil || !user.Valid() {
		return nil, errEmptyUser
	}
	return user, nil
}

// Login persists user and moves the store to the authenticated state.
// The in-memory transition happens even if persisting fails; the write error
// is returned so the caller can log it.
func (s *Store) Login(ctx context.Context, user domainauth.User) error {
	data, err := json.Marshal(user)
	var persistErr error
	if err != nil {
		persistErr = fmt.Errorf("marshal user: %w", err)
	} else if setErr := s.storage.Set(ctx, domainauth.StorageKey, data); setErr != nil {
		persistErr = fmt.Errorf("persist session: %w", setErr)
	}

	u := user
	s.transition(ctx, &u)
	return persistErr
}

// Logout erases the persisted user and moves the store to the anonymous
// state. It is idempotent and always notifies observers.
func (s *Store) Logout(ctx context.Context) error {
	var persistErr error
	if err := s.storage.Delete(ctx, domainauth.StorageKey); err != nil {
		persistErr = fmt.Errorf("erase session: %w", err)
	}
	s.transition(ctx, nil)
	return persistErr
}

func (s *Store) transition(ctx context.Context, user *domainauth.User) {
	s.mu.Lock()
	from := s.state.Status()
	s.state = domainauth.State{User: user}
	to := s.state.Status()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	tr := domainauth.Transition{From: from, To: to}
	if user != nil {
		u := *user
		tr.User = &u
	}
	for _, o := range observers {
		o.fn(ctx, tr)
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() domainauth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Subscribe registers obs for future transitions and returns a function that removes it.
func (s *Store) Subscribe(obs ports.SessionObserver) func() {
	if obs == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID()
	s.observers = append(s.observers, observerEntry{id: id, fn: obs})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}
