package ports

import (
	"context"

	"github.com/target/docanalyzer-ui/internal/domain/document"
)

// AuthAPI covers the backend authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds document.Credentials) error
	Register(ctx context.Context, reg document.Registration) (*document.RegisteredUser, error)
	Logout(ctx context.Context) error
}

// DocumentAPI covers the backend document endpoints.
type DocumentAPI interface {
	ListDocuments(ctx context.Context) ([]document.Document, error)
	GetDocument(ctx context.Context, id int64) (*document.Document, error)
	UploadDocument(ctx context.Context, up document.Upload) (*document.Document, error)
	AnalyzeDocument(ctx context.Context, id int64) (*document.Analysis, error)
}

// BackendAPI is the full API gateway surface used by the view layer.
type BackendAPI interface {
	AuthAPI
	DocumentAPI
}

// ScopedBackend is a BackendAPI bound to one storage scope whose persisted
// backend cookies can be dropped.
type ScopedBackend interface {
	BackendAPI
	ClearCookies(ctx context.Context) error
}
