package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/target/docanalyzer-ui/internal/ports"
	"github.com/target/docanalyzer-ui/internal/session"
)

const (
	// DefaultScopeCookieName names the cookie that identifies a browser's storage scope.
	DefaultScopeCookieName = "scope_id"
	// DefaultScopeMaxAge is how long a browser keeps its scope cookie.
	DefaultScopeMaxAge = 30 * 24 * time.Hour
)

// ScopeConfig configures ScopeMiddleware.
type ScopeConfig struct {
	Provider     ports.StorageProvider
	CookieName   string
	CookieDomain string
	Secure       bool
	MaxAge       time.Duration
	Logger       *slog.Logger
}

// ScopeMiddleware binds each request to the browser's storage scope. It
// issues a scope cookie when missing or malformed, restores the session
// store from that scope and wires a Navigator as its observer.
func ScopeMiddleware(cfg ScopeConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultScopeCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultScopeMaxAge
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := scopeIDFromRequest(r, cfg.CookieName)
			if !ok {
				id = uuid.NewString()
				setScopeCookie(w, r, cfg, id)
			}

			scope := &RequestScope{
				ID:        id,
				Storage:   cfg.Provider.ForScope(id),
				Navigator: NewNavigator(w, r, cfg.Logger),
				reissue: func(fresh string) {
					setScopeCookie(w, r, cfg, fresh)
				},
				provider: cfg.Provider,
				logger:   cfg.Logger,
			}
			scope.Session = scope.newStore()
			scope.Session.Initialize(r.Context())

			next.ServeHTTP(w, r.WithContext(SetScopeInContext(r.Context(), scope)))
		})
	}
}

func scopeIDFromRequest(r *http.Request, cookieName string) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func setScopeCookie(w http.ResponseWriter, r *http.Request, cfg ScopeConfig, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: true,
		Secure:   cfg.Secure || isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	})
}

// newStore binds a session store to the scope's current storage.
func (s *RequestScope) newStore() *session.Store {
	return session.New(s.Storage,
		session.WithLogger(s.logger),
		session.WithObserver(s.Navigator.Observe),
	)
}

// Rotate moves the listed keys to a freshly issued scope, reissues the scope
// cookie and erases the keys from the old scope. On error the cookie is left
// alone. The session store is rebound to the new scope and starts anonymous.
func (s *RequestScope) Rotate(ctx context.Context, keys ...string) error {
	if s.reissue == nil || s.provider == nil {
		return errors.New("scope cannot be rotated")
	}
	id := uuid.NewString()
	old, fresh := s.Storage, s.provider.ForScope(id)
	for _, key := range keys {
		raw, err := old.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		if raw == nil {
			continue
		}
		if err := fresh.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("move %s: %w", key, err)
		}
	}
	s.reissue(id)
	for _, key := range keys {
		if err := old.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "old scope key not erased", "key", key, "error", err)
		}
	}
	s.ID, s.Storage = id, fresh
	s.Session = s.newStore()
	return nil
}
