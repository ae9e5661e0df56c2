package httpx

import (
	"context"
	"log/slog"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/ports"
	"github.com/target/docanalyzer-ui/internal/session"
)

// RequestScope is everything bound to the browser's storage scope for one request.
type RequestScope struct {
	ID        string
	Storage   ports.Storage
	Session   *session.Store
	Navigator *Navigator

	reissue  func(id string)
	provider ports.StorageProvider
	logger   *slog.Logger
}

// scopeKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type scopeKey struct{}

// SetScopeInContext returns a child context that carries the given scope.
// If scope is nil, the original ctx is returned unchanged.
func SetScopeInContext(ctx context.Context, scope *RequestScope) context.Context {
	if scope == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the request scope and a boolean indicating presence.
func ScopeFromContext(ctx context.Context) (*RequestScope, bool) {
	if scope, ok := ctx.Value(scopeKey{}).(*RequestScope); ok && scope != nil {
		return scope, true
	}
	return nil, false
}

// SessionState returns the session state of the request scope, anonymous when there is none.
func SessionState(ctx context.Context) domainauth.State {
	if scope, ok := ScopeFromContext(ctx); ok && scope.Session != nil {
		return scope.Session.State()
	}
	return domainauth.State{}
}
