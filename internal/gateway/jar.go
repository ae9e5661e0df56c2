package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"

	"github.com/target/docanalyzer-ui/internal/ports"
)

// CookieStorageKey is the storage key holding the backend session cookies.
const CookieStorageKey = "backend_cookies"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PersistentJar is a cookie jar for the backend origin whose cookies survive
// across requests (web) or process restarts (CLI) via scope storage.
type PersistentJar struct {
	storage ports.Storage
	origin  *url.URL

	mu    sync.Mutex
	jar   *cookiejar.Jar
	dirty bool
}

var _ http.CookieJar = (*PersistentJar)(nil)

func newCookieJar() *cookiejar.Jar {
	// cookiejar.New never returns a non-nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// NewPersistentJar creates an empty jar for origin backed by storage.
func NewPersistentJar(storage ports.Storage, origin *url.URL) *PersistentJar {
	return &PersistentJar{storage: storage, origin: origin, jar: newCookieJar()}
}

// SetCookies implements http.CookieJar.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
	j.dirty = true
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Load restores persisted cookies. A corrupt record is discarded.
func (j *PersistentJar) Load(ctx context.Context) error {
	raw, err := j.storage.Get(ctx, CookieStorageKey)
	if err != nil {
		return fmt.Errorf("load backend cookies: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		_ = j.storage.Delete(ctx, CookieStorageKey)
		return fmt.Errorf("decode backend cookies: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if c.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(j.origin, cookies)
	return nil
}

// Flush persists the jar when it changed since the last Load or Flush.
func (j *PersistentJar) Flush(ctx context.Context) error {
	j.mu.Lock()
	if !j.dirty {
		j.mu.Unlock()
		return nil
	}
	current := j.jar.Cookies(j.origin)
	j.dirty = false
	j.mu.Unlock()

	if len(current) == 0 {
		return j.storage.Delete(ctx, CookieStorageKey)
	}
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode backend cookies: %w", err)
	}
	if err := j.storage.Set(ctx, CookieStorageKey, raw); err != nil {
		return fmt.Errorf("save backend cookies: %w", err)
	}
	return nil
}

// Clear drops every cookie in memory and in storage.
func (j *PersistentJar) Clear(ctx context.Context) error {
	j.mu.Lock()
	j.jar = newCookieJar()
	j.dirty = false
	j.mu.Unlock()
	return j.storage.Delete(ctx, CookieStorageKey)
}
