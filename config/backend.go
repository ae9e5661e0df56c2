package config

import (
	"strings"
	"time"
)

const defaultMaxUploadBytes int64 = 50 << 20

// BackendConfig describes the document-analysis API.
type BackendConfig struct {
	// URL is the backend base URL, without the /api suffix.
	URL string `env:"BACKEND_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds each backend call. 0 disables the timeout.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"2m"`

	// MaxUploadBytes caps a single uploaded file.
	MaxUploadBytes int64 `env:"BACKEND_MAX_UPLOAD_BYTES" envDefault:"52428800"`

	// ErrorDetailExprs are JMESPath expressions tried in order against error bodies.
	ErrorDetailExprs []string `env:"BACKEND_ERROR_DETAIL_EXPRS" envDefault:"detail,detail[0].msg,message" envSeparator:","`
}

// Sanitize normalises backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	if b.Timeout < 0 {
		b.Timeout = 0
	}
	if b.MaxUploadBytes <= 0 {
		b.MaxUploadBytes = defaultMaxUploadBytes
	}
	exprs := b.ErrorDetailExprs[:0]
	for _, e := range b.ErrorDetailExprs {
		if e = strings.TrimSpace(e); e != "" {
			exprs = append(exprs, e)
		}
	}
	b.ErrorDetailExprs = exprs
}

// ClientTimeout converts Timeout into the gateway convention, where a
// negative value disables the timeout and zero means "use the default".
func (b *BackendConfig) ClientTimeout() time.Duration {
	if b.Timeout == 0 {
		return -1
	}
	return b.Timeout
}
