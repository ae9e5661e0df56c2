package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/target/docanalyzer-ui/internal/ports"
)

// Factory builds scope-bound clients that share one transport.
type Factory struct {
	cfg    Config
	origin *url.URL
}

// NewFactory validates cfg once for all scopes.
func NewFactory(cfg Config) (*Factory, error) {
	origin, err := ParseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if cfg.Detail == nil {
		if cfg.Detail, err = NewDetailExtractor(nil); err != nil {
			return nil, err
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Factory{cfg: cfg, origin: origin}, nil
}

// ForStorage returns a client whose backend cookies are restored from and
// persisted to storage. A corrupt cookie record is dropped and logged.
func (f *Factory) ForStorage(ctx context.Context, storage ports.Storage) (*Client, error) {
	jar := NewPersistentJar(storage, f.origin)
	if err := jar.Load(ctx); err != nil {
		f.cfg.Logger.WarnContext(ctx, "starting with empty backend cookie jar", "error", err)
	}
	return NewClient(f.cfg, jar)
}

// Scoped is ForStorage typed as the port, for callers that only need the interface.
func (f *Factory) Scoped(ctx context.Context, storage ports.Storage) (ports.ScopedBackend, error) {
	c, err := f.ForStorage(ctx, storage)
	if err != nil {
		return nil, err
	}
	return c, nil
}
