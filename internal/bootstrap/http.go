package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/docanalyzer-ui/config"
	"github.com/target/docanalyzer-ui/internal/analysis"
	httpx "github.com/target/docanalyzer-ui/internal/http"
	"github.com/target/docanalyzer-ui/internal/observability/statsd"
	"github.com/target/docanalyzer-ui/internal/ports"
)

const (
	defaultAddr            = ":8080"
	readHeaderTimeout      = 10 * time.Second
	idleTimeout            = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	// requestSlack is added to the backend timeout so a slow backend call
	// still gets its error page written.
	requestSlack = 30 * time.Second
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Storage ports.StorageProvider
	Backend httpx.BackendFactory
	Viewer  *analysis.Viewer
	// Metrics receives http.request metrics; nil disables.
	Metrics statsd.Sink
	Logger  *slog.Logger
}

func (cfg *HTTPServerConfig) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

// BuildHTTPHandler wires the router and the outer middleware.
// Order: Recover -> Logging -> RequestMetrics -> Compression -> Router.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	appCfg := cfg.Config
	logger := cfg.logger()

	router, err := httpx.NewRouter(httpx.RouterServices{
		Storage:        cfg.Storage,
		Backend:        cfg.Backend,
		Viewer:         cfg.Viewer,
		CookieDomain:   appCfg.HTTP.CookieDomain,
		CookieSecure:   appCfg.HTTP.CookieSecure,
		ScopeMaxAge:    appCfg.HTTP.ScopeCookieMaxAge,
		MaxUploadBytes: appCfg.Backend.MaxUploadBytes,
		IsDev:          appCfg.IsDev,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Compression is innermost so logging sees the final status.
	h := router
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger})(h)
	}

	if cfg.Metrics != nil {
		h = httpx.RequestMetrics(cfg.Metrics)(h)
	}
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	return h, nil
}

// NewHTTPServer builds the server with timeouts derived from the backend timeout.
func NewHTTPServer(appCfg *config.AppConfig, handler http.Handler) *http.Server {
	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = defaultAddr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       requestTimeout(appCfg.Backend.Timeout),
		WriteTimeout:      requestTimeout(appCfg.Backend.Timeout),
		IdleTimeout:       idleTimeout,
	}
}

// requestTimeout is zero (unbounded) when backend calls are unbounded.
func requestTimeout(backend time.Duration) time.Duration {
	if backend <= 0 {
		return 0
	}
	return backend + requestSlack
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}

// RunHTTPServer serves until SIGINT/SIGTERM, ctx cancellation or a serve
// failure, then shuts the server down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return err
	}
	server := NewHTTPServer(cfg.Config, handler)
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}
	logger := cfg.logger()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// gctx is already done; shutdown gets its own deadline.
		return ShutdownHTTPServer(context.WithoutCancel(ctx), server, cfg.Config.HTTP.ShutdownTimeout, logger)
	})

	return g.Wait()
}
