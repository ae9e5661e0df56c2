// Package gateway is the HTTP client for the document-analysis backend.
// Every call returns either a decoded response or an *errors.AppError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/target/docanalyzer-ui/internal/domain/document"
	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/observability/metrics"
	"github.com/target/docanalyzer-ui/internal/observability/statsd"
	"github.com/target/docanalyzer-ui/internal/ports"
)

// maxErrorBody bounds how much of an error response is read for its detail message.
const maxErrorBody = 64 << 10

// DefaultTimeout bounds a single backend call when Config.Timeout is unset.
const DefaultTimeout = 2 * time.Minute

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero uses DefaultTimeout; negative disables it.
	Timeout   time.Duration
	Transport http.RoundTripper
	Detail    *DetailExtractor
	Logger    *slog.Logger
	// Metrics receives one backend.request per call; nil disables.
	Metrics statsd.Sink
}

// Client implements ports.BackendAPI over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	jar     *PersistentJar
	detail  *DetailExtractor
	logger  *slog.Logger
	metrics statsd.Sink
}

var _ ports.ScopedBackend = (*Client)(nil)

// ParseBaseURL validates a backend base URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(raw), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", raw)
	}
	return u, nil
}

// NewClient builds a client whose cookies live in jar.
func NewClient(cfg Config, jar *PersistentJar) (*Client, error) {
	base, err := ParseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}
	detail := cfg.Detail
	if detail == nil {
		if detail, err = NewDetailExtractor(nil); err != nil {
			return nil, err
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hc := &http.Client{Timeout: timeout, Transport: cfg.Transport}
	if jar != nil {
		hc.Jar = jar
	}
	return &Client{base: base, http: hc, jar: jar, detail: detail, logger: logger, metrics: cfg.Metrics}, nil
}

// Jar returns the client's persistent cookie jar (may be nil).
func (c *Client) Jar() *PersistentJar { return c.jar }

// Login posts credentials; the backend answers with a session cookie.
func (c *Client) Login(ctx context.Context, creds document.Credentials) error {
	return c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", creds, nil)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, reg document.Registration) (*document.RegisteredUser, error) {
	var out document.RegisteredUser
	if err := c.doJSON(ctx, "register", http.MethodPost, "/api/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "logout", http.MethodPost, "/api/auth/logout", nil, nil)
}

// ClearCookies forgets every backend cookie, in memory and in storage.
func (c *Client) ClearCookies(ctx context.Context) error {
	if c.jar == nil {
		return nil
	}
	return c.jar.Clear(ctx)
}

// ListDocuments returns the current user's documents.
func (c *Client) ListDocuments(ctx context.Context) ([]document.Document, error) {
	var out []document.Document
	if err := c.doJSON(ctx, "list_documents", http.MethodGet, "/api/documents", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []document.Document{}
	}
	return out, nil
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, id int64) (*document.Document, error) {
	var out document.Document
	if err := c.doJSON(ctx, "get_document", http.MethodGet, documentPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeDocument triggers (or re-reads) the analysis of one document. A null
// response body yields a nil Analysis.
func (c *Client) AnalyzeDocument(ctx context.Context, id int64) (*document.Analysis, error) {
	var out *document.Analysis
	if err := c.doJSON(ctx, "analyze_document", http.MethodPost, documentPath(id, "/analyze"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadDocument streams up.Body as multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, up document.Upload) (*document.Document, error) {
	if up.Body == nil || strings.TrimSpace(up.Filename) == "" {
		return nil, apperrors.ValidationField("file", "Please select a file to upload.")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipartFile(mw, up))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/documents/upload"), pr)
	if err != nil {
		_ = pr.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out document.Document
	if err := c.do(req, "upload_document", &out); err != nil {
		_ = pr.Close()
		return nil, err
	}
	return &out, nil
}

func writeMultipartFile(mw *multipart.Writer, up document.Upload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, up.Filename))
	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.Body); err != nil {
		return err
	}
	return mw.Close()
}

func documentPath(id int64, suffix string) string {
	return "/api/documents/" + strconv.FormatInt(id, 10) + suffix
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, op, out)
}

// do sends req, decodes a success body into out and records the call's metrics.
func (c *Client) do(req *http.Request, op string, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.EmitBackendCall(c.metrics, metrics.BackendCall{
			Op: op, Status: status, Duration: time.Since(start), Err: err,
		})
	}()
	return c.send(req, op, out, &status)
}

func (c *Client) send(req *http.Request, op string, out any, status *int) error {
	ctx := req.Context()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed", "op", op, "error", err)
		return apperrors.FromTransport(err, op)
	}
	*status = resp.StatusCode
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
	}()
	c.flushJar(ctx)

	c.logger.DebugContext(ctx, "backend request",
		"op", op, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Wrap(err, apperrors.ErrCodeDecode, op+": empty response body")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeDecode, op+": decode response")
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) *apperrors.AppError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var data any
	detail := ""
	if len(raw) > 0 && json.Unmarshal(raw, &data) == nil {
		detail = c.detail.Extract(data)
	}
	return apperrors.FromStatus(resp.StatusCode, detail)
}

func (c *Client) flushJar(ctx context.Context) {
	if c.jar == nil {
		return
	}
	if err := c.jar.Flush(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to persist backend cookies", "error", err)
	}
}
