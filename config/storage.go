package config

import (
	"strings"
	"time"
)

// StorageMode selects where per-browser scope storage lives.
type StorageMode string

const (
	StorageModeRedis  StorageMode = "redis"
	StorageModeMemory StorageMode = "memory"
)

// StorageConfig controls per-browser scope storage.
type StorageConfig struct {
	// Mode is redis or memory. Empty picks memory in dev and redis otherwise.
	Mode StorageMode `env:"STORAGE_MODE" envDefault:""`

	// TTL expires idle scope keys in Redis. 0 keeps them until deleted.
	TTL time.Duration `env:"STORAGE_TTL" envDefault:"720h"`

	// Prefix namespaces every Redis key.
	Prefix string `env:"STORAGE_PREFIX" envDefault:"docanalyzer:scope:"`
}

// Sanitize resolves the storage mode and clamps values.
func (s *StorageConfig) Sanitize(isDev bool) {
	s.Mode = StorageMode(strings.ToLower(strings.TrimSpace(string(s.Mode))))
	switch s.Mode {
	case StorageModeRedis, StorageModeMemory:
	default:
		if isDev {
			s.Mode = StorageModeMemory
		} else {
			s.Mode = StorageModeRedis
		}
	}
	if s.TTL < 0 {
		s.TTL = 0
	}
	if strings.TrimSpace(s.Prefix) == "" {
		s.Prefix = "docanalyzer:scope:"
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
