package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/docanalyzer-ui/config"
	"github.com/target/docanalyzer-ui/internal/gateway"
	"github.com/target/docanalyzer-ui/internal/observability/statsd"
)

// NewBackendFactory builds the API gateway factory shared by every storage scope.
// sink may be nil.
func NewBackendFactory(cfg config.BackendConfig, logger *slog.Logger, sink statsd.Sink) (*gateway.Factory, error) {
	detail, err := gateway.NewDetailExtractor(cfg.ErrorDetailExprs)
	if err != nil {
		return nil, fmt.Errorf("compile error detail expressions: %w", err)
	}
	factory, err := gateway.NewFactory(gateway.Config{
		BaseURL: cfg.URL,
		Timeout: cfg.ClientTimeout(),
		Detail:  detail,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return nil, fmt.Errorf("backend gateway: %w", err)
	}
	return factory, nil
}

// NewMetricsClient connects the StatsD sink described by cfg. A disabled
// config yields a client that drops every metric.
func NewMetricsClient(cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if client.Enabled() {
		logger.Info("statsd metrics enabled", "address", cfg.StatsdAddress, "prefix", cfg.Prefix)
	}
	return client, nil
}
