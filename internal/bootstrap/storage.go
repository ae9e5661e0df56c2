package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/docanalyzer-ui/config"
	"github.com/target/docanalyzer-ui/internal/adapters/memory"
	redisadapter "github.com/target/docanalyzer-ui/internal/adapters/redis"
	"github.com/target/docanalyzer-ui/internal/ports"
)

// StorageResult is the scope storage chosen for the web front end.
type StorageResult struct {
	Provider ports.StorageProvider
	// Close releases the backing connection; never nil.
	Close func() error
}

// BuildStorage picks Redis or in-memory scope storage from cfg.
func BuildStorage(cfg *config.AppConfig, logger *slog.Logger) (StorageResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Storage.Mode == config.StorageModeMemory {
		logger.Warn("using in-memory scope storage; sessions are lost on restart")
		return StorageResult{Provider: memory.NewProvider(), Close: func() error { return nil }}, nil
	}

	client, err := ConnectRedis(RedisConnConfig{Redis: cfg.Redis, Logger: logger})
	if err != nil {
		return StorageResult{}, fmt.Errorf("connect redis: %w", err)
	}
	return StorageResult{
		Provider: redisadapter.NewProvider(client, cfg.Storage.Prefix, cfg.Storage.TTL),
		Close:    client.Close,
	}, nil
}
