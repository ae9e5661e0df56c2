package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	docanalyzer "github.com/target/docanalyzer-ui"
	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/ports"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	// Storage hands out the per-browser storage scope.
	Storage ports.StorageProvider
	// Backend builds the backend client for one scope.
	Backend BackendFactory
	Viewer  *analysis.Viewer

	CookieDomain string
	// CookieSecure forces the Secure attribute on the scope and CSRF cookies.
	CookieSecure bool
	ScopeMaxAge  time.Duration
	// MaxUploadBytes caps an upload body; zero disables the cap.
	MaxUploadBytes int64

	// TemplateFS overrides the template source (tests); nil picks disk or embed by IsDev.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router with browser middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Storage == nil {
		return nil, errors.New("router: storage provider is required")
	}
	if services.Backend == nil {
		return nil, errors.New("router: backend factory is required")
	}
	if services.Viewer == nil {
		services.Viewer = analysis.NewViewer(analysis.NewTracker(), services.Logger)
	}

	ui, err := setupUIHandlers(services)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Dev mode serves from disk; production serves the embedded FS.
	mux.Handle("GET /static/", staticWithFallback(services.IsDev, services.Logger))

	scope := ScopeMiddleware(ScopeConfig{
		Provider:     services.Storage,
		CookieDomain: services.CookieDomain,
		Secure:       services.CookieSecure,
		MaxAge:       services.ScopeMaxAge,
		Logger:       services.Logger,
	})
	registerUIRoutes(mux, ui, uiRouteConfig{
		Scope: scope,
		CSRF: CSRFConfig{
			CookieDomain: services.CookieDomain,
			Secure:       services.CookieSecure,
		},
	})

	handler := &notFoundHandler{mux: mux, notFound: scope(http.HandlerFunc(ui.NotFound))}
	return BrowserDetection()(handler), nil
}

// templateFSFor picks the template source: an explicit override, the disk in
// dev mode, the embedded copy otherwise.
func templateFSFor(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(docanalyzer.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		loggerOrDefault(services.Logger).Warn("embedded templates unavailable; falling back to disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

func setupUIHandlers(services RouterServices) (*UIHandlers, error) {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFSFor(services),
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &UIHandlers{
		T:              tr,
		Backend:        services.Backend,
		Viewer:         services.Viewer,
		MaxUploadBytes: services.MaxUploadBytes,
		IsDev:          services.IsDev,
		Logger:         services.Logger,
	}, nil
}

type uiRouteConfig struct {
	Scope func(http.Handler) http.Handler
	CSRF  CSRFConfig
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	scope := cfg.Scope
	csrf := CSRFProtection(cfg.CSRF)
	requireAuth := RequireAuthBrowser()

	public := func(fn http.HandlerFunc) http.Handler {
		return scope(csrf(fn))
	}
	protected := func(fn http.HandlerFunc) http.Handler {
		return scope(csrf(requireAuth(fn)))
	}

	mux.Handle("GET /{$}", protected(h.Index))

	mux.Handle("GET /login", public(h.LoginPage))
	mux.Handle("POST /login", public(h.LoginSubmit))
	mux.Handle("GET /register", public(h.RegisterPage))
	mux.Handle("POST /register", public(h.RegisterSubmit))
	mux.Handle("POST /logout", public(h.Logout))
	mux.Handle("GET /auth/status", public(h.Status))

	mux.Handle("GET /dashboard", protected(h.Dashboard))
	mux.Handle("GET /dashboard/documents", protected(h.DocumentsFragment))
	mux.Handle("POST /dashboard/documents/{id}/analysis", protected(h.Analysis))
	mux.Handle("POST /documents/upload", protected(h.Upload))
}

// staticWithFallback serves /static/* assets.
func staticWithFallback(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(
			http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), isDev)
	}

	staticSub, err := fs.Sub(docanalyzer.StaticFS, "frontend/static")
	if err != nil {
		loggerOrDefault(logger).Warn("embedded static assets unavailable; falling back to disk", "error", err)
		return staticWithCacheHeaders(
			http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), isDev)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), isDev)
}

// staticWithCacheHeaders adds cache headers: none in dev, a short revalidated lifetime otherwise.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux      *http.ServeMux
	notFound http.Handler
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)

	// Unmatched paths get the rendered 404; 405s pass through.
	if cw.status == http.StatusNotFound {
		h.notFound.ServeHTTP(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		slog.Default().Warn("failed to write captured response", "error", err)
	}
}
