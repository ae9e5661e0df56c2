package httpx

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/docanalyzer-ui/internal/adapters/memory"
	"github.com/target/docanalyzer-ui/internal/gateway"
	"github.com/target/docanalyzer-ui/internal/testutil"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// SkipIfNoTemplates checks if templates are available and skips the test if not.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// uiHarness runs the full router against a fake backend and drives it with a
// cookie-keeping client that does not follow redirects.
type uiHarness struct {
	t        *testing.T
	Backend  *testutil.FakeBackend
	Provider *memory.Provider
	Server   *httptest.Server
	Client   *http.Client
}

func newUIHarness(t *testing.T, opts ...func(*RouterServices)) *uiHarness {
	t.Helper()
	SkipIfNoTemplates(t)

	backend := testutil.NewFakeBackend(t)
	provider := memory.NewProvider()
	factory, err := gateway.NewFactory(gateway.Config{BaseURL: backend.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	services := RouterServices{
		Storage:        provider,
		Backend:        factory.Scoped,
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		MaxUploadBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(&services)
	}
	router, err := NewRouter(services)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &uiHarness{t: t, Backend: backend, Provider: provider, Server: srv, Client: client}
}

// cookie returns the named cookie the client holds for the server.
func (h *uiHarness) cookie(name string) string {
	u, err := url.Parse(h.Server.URL)
	require.NoError(h.t, err)
	for _, c := range h.Client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken returns the double-submit token, visiting a public page first when needed.
func (h *uiHarness) csrfToken() string {
	if tok := h.cookie(DefaultCSRFCookieName); tok != "" {
		return tok
	}
	resp := h.do(http.MethodGet, "/login", nil, "", false)
	_ = resp.Body.Close()
	tok := h.cookie(DefaultCSRFCookieName)
	require.NotEmpty(h.t, tok, "csrf cookie not issued")
	return tok
}

func (h *uiHarness) do(method, path string, body io.Reader, contentType string, htmx bool) *http.Response {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	h.t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, method, h.Server.URL+path, body)
	require.NoError(h.t, err)
	req.Header.Set("Accept", "text/html")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if htmx {
		req.Header.Set("Hx-Request", "true")
		req.Header.Set("Hx-Current-Url", h.Server.URL+"/dashboard")
	}
	if method != http.MethodGet && method != http.MethodHead {
		if tok := h.cookie(DefaultCSRFCookieName); tok != "" {
			req.Header.Set(DefaultCSRFHeaderName, tok)
		}
	}
	resp, err := h.Client.Do(req)
	require.NoError(h.t, err)
	return resp
}

func (h *uiHarness) get(path string, htmx bool) *http.Response {
	h.t.Helper()
	return h.do(http.MethodGet, path, nil, "", htmx)
}

func (h *uiHarness) postForm(path string, form url.Values, htmx bool) *http.Response {
	h.t.Helper()
	h.csrfToken()
	return h.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", htmx)
}

// postFile sends a multipart upload with the file under field "file" (skipped when filename is empty).
func (h *uiHarness) postFile(path, filename string, content []byte, htmx bool) *http.Response {
	h.t.Helper()
	h.csrfToken()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile(uploadField, filename)
		require.NoError(h.t, err)
		_, err = fw.Write(content)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())
	return h.do(http.MethodPost, path, &buf, mw.FormDataContentType(), htmx)
}

// login registers username with the fake backend and signs in through the UI.
func (h *uiHarness) login(username, password string) {
	h.t.Helper()
	h.Backend.AddUser(username, password)
	resp := h.postForm("/login", url.Values{"username": {username}, "password": {password}}, false)
	defer resp.Body.Close()
	require.Equal(h.t, http.StatusSeeOther, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
