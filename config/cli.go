package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CLIConfig configures the terminal client. Flags override these values.
type CLIConfig struct {
	// APIURL is the backend base URL.
	APIURL string `env:"DOCANALYZER_API_URL" envDefault:"http://localhost:8000"`

	// StateDB is the SQLite file holding the session and backend cookies.
	// Defaults to <user config dir>/docanalyzer/state.db.
	StateDB string `env:"DOCANALYZER_STATE_DB"`

	// Timeout bounds each backend call. 0 disables the timeout.
	Timeout time.Duration `env:"DOCANALYZER_TIMEOUT" envDefault:"2m"`

	// ErrorDetailExprs are JMESPath expressions tried in order against error bodies.
	ErrorDetailExprs []string `env:"DOCANALYZER_ERROR_DETAIL_EXPRS" envDefault:"detail,detail[0].msg,message" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Sanitize fills derived defaults.
func (c *CLIConfig) Sanitize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.StateDB = strings.TrimSpace(c.StateDB)
	if c.StateDB == "" {
		c.StateDB = DefaultStatePath()
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// Backend adapts the CLI settings to a BackendConfig.
func (c *CLIConfig) Backend() BackendConfig {
	b := BackendConfig{URL: c.APIURL, Timeout: c.Timeout, ErrorDetailExprs: c.ErrorDetailExprs}
	b.Sanitize()
	return b
}

// DefaultStatePath returns the per-user state database location.
func DefaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "docanalyzer", "state.db")
}
