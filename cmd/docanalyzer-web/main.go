// Command docanalyzer-web serves the browser front end of the document-analysis service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/target/docanalyzer-ui/config"
	"github.com/target/docanalyzer-ui/internal/analysis"
	"github.com/target/docanalyzer-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) (err error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.LogLevel)
	logStartupInfo(ctx, logger, &cfg)

	storage, err := bootstrap.BuildStorage(&cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
		}
	}()

	sink, err := bootstrap.NewMetricsClient(cfg.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.WarnContext(ctx, "close metrics client", "error", cerr)
		}
	}()

	factory, err := bootstrap.NewBackendFactory(cfg.Backend, logger, sink)
	if err != nil {
		return err
	}

	return bootstrap.RunHTTPServer(ctx, &bootstrap.HTTPServerConfig{
		Config:  &cfg,
		Storage: storage.Provider,
		Backend: factory.Scoped,
		Viewer:  analysis.NewViewer(analysis.NewTracker(), logger),
		Metrics: sink,
		Logger:  logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting docanalyzer web",
		"addr", cfg.HTTP.Addr,
		"backend_url", cfg.Backend.URL,
		"backend_timeout", cfg.Backend.Timeout,
		"storage_mode", cfg.Storage.Mode,
		"metrics", cfg.Metrics.IsEnabled(),
		"dev", cfg.IsDev)
}
