package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/domain/document"
	"github.com/target/docanalyzer-ui/internal/gateway"
)

func strPtr(s string) *string { return &s }

var loadURLPattern = regexp.MustCompile(`hx-post="(/dashboard/documents/\d+/analysis\?gen=\d+)"`)

// loadURL extracts the analysis load endpoint from a dashboard page.
func loadURL(t *testing.T, body string) string {
	t.Helper()
	m := loadURLPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "analysis container missing load url")
	return strings.ReplaceAll(m[1], "&amp;", "&")
}

func TestRouter_ProtectedViewRedirectsAnonymousBrowser(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/dashboard?document=3", false)
	_ = readBody(t, resp)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard%3Fdocument%3D3", resp.Header.Get("Location"))
	assert.NotEmpty(t, h.cookie(DefaultScopeCookieName), "scope cookie issued on first visit")
}

func TestRouter_ProtectedFragmentRedirectsAnonymousHTMX(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/dashboard/documents", true)
	_ = readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard", resp.Header.Get("Hx-Redirect"))
}

func TestRouter_RootRedirects(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/", false)
	_ = readBody(t, resp)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	h.login("alice", "pw")
	resp = h.get("/", false)
	_ = readBody(t, resp)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRouter_LoginPageRenders(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/login?redirect_uri=%2Fdashboard%3Fdocument%3D2", false)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.True(t, ContainsAll(body, []string{
		"Contract Analyzer",
		`id="login-form"`,
		`name="redirect_uri" value="/dashboard?document=2"`,
		`name="csrf-token"`,
	}), body)
}

func TestRouter_LoginResumesPreservedLocation(t *testing.T) {
	h := newUIHarness(t)
	h.Backend.AddUser("alice", "pw")

	resp := h.postForm("/login", url.Values{
		"username":     {"alice"},
		"password":     {"pw"},
		"redirect_uri": {"/dashboard?document=7"},
	}, false)
	_ = readBody(t, resp)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard?document=7", resp.Header.Get("Location"))
}

func TestRouter_LoginRejectsUnsafeRedirect(t *testing.T) {
	h := newUIHarness(t)
	h.Backend.AddUser("alice", "pw")

	resp := h.postForm("/login", url.Values{
		"username":     {"alice"},
		"password":     {"pw"},
		"redirect_uri": {"//evil.example.com/"},
	}, true)
	_ = readBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Hx-Redirect"))
}

func TestRouter_LoginFailureShowsBackendDetail(t *testing.T) {
	h := newUIHarness(t)
	h.Backend.AddUser("alice", "pw")

	resp := h.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, true)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Incorrect username or password")
	assert.Contains(t, body, `value="alice"`, "username is kept")
	assert.NotContains(t, body, "<html", "htmx gets only the form")

	status := h.get("/auth/status", false)
	assert.Contains(t, readBody(t, status), `"authenticated":false`)
}

func TestRouter_LoginValidationSkipsBackend(t *testing.T) {
	h := newUIHarness(t)

	resp := h.postForm("/login", url.Values{"username": {"  "}}, true)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{
		"Username is required.",
		"Password is required.",
		errMsgFixBelow,
	}), body)
}

func TestRouter_RegisterLogsIn(t *testing.T) {
	h := newUIHarness(t)

	resp := h.postForm("/register", url.Values{
		"username": {"bob"},
		"email":    {"bob@example.com"},
		"password": {"secret"},
	}, false)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	status := h.get("/auth/status", false)
	var payload struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(readBody(t, status)), &payload))
	assert.True(t, payload.Authenticated)
	assert.Equal(t, "bob", payload.User.Username)
}

func TestRouter_RegisterDuplicateAndInvalidEmail(t *testing.T) {
	h := newUIHarness(t)
	h.Backend.AddUser("bob", "pw")

	resp := h.postForm("/register", url.Values{
		"username": {"bob"}, "email": {"bob@example.com"}, "password": {"pw"},
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Username already registered")

	resp = h.postForm("/register", url.Values{
		"username": {"carol"}, "email": {"not-an-email"}, "password": {"pw"},
	}, true)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Enter a valid email address.")
	assert.Contains(t, body, `value="not-an-email"`)
}

func TestRouter_LoginPageRedirectsAuthenticatedUser(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.get("/login", false)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRouter_DashboardListsDocuments(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	h.Backend.AddDocument("alice", "lease.pdf", nil)
	h.Backend.AddDocument("alice", "nda.docx", nil)
	h.Backend.AddDocument("mallory", "other.pdf", nil)

	resp := h.get("/dashboard", false)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{"lease.pdf", "nda.docx", "alice", "Log out", "Select a document"}), body)
	assert.NotContains(t, body, "other.pdf")
	assert.Contains(t, body, `accept=".pdf,.doc,.docx"`)
}

func TestRouter_DashboardPartialForHTMX(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	doc := h.Backend.AddDocument("alice", "lease.pdf", nil)

	resp := h.get(fmt.Sprintf("/dashboard?document=%d", doc.ID), true)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "<title>Dashboard</title>"), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Loading analysis")
	assert.Contains(t, body, "is-selected")
}

func TestRouter_AnalysisLoadsAllTabs(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	doc := h.Backend.AddDocument("alice", "lease.pdf", &document.Analysis{
		Summary:        "Twelve month lease.",
		KeyInformation: strPtr(`{"parties":["Acme","Bob"],"term":{"months":12}}`),
		RiskAssessment: strPtr("not json"),
	})

	page := readBody(t, h.get(fmt.Sprintf("/dashboard?document=%d", doc.ID), false))
	resp := h.do(http.MethodPost, loadURL(t, page), nil, "", true)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ContainsAll(body, []string{
		"Summary", "Key Information", "Risk Assessment",
		"Twelve month lease.",
		`<span class="json-key">parties:</span>`,
		`<span class="json-value">Acme</span>`,
		`<span class="json-key">months:</span>`,
		`<pre class="json-raw">not json</pre>`,
	}), body)
	assert.Regexp(t, `id="tab-summary-\d+" checked`, body, "summary tab active by default")
	assert.Equal(t, int32(1), h.Backend.AnalyzeCalls.Load())
}

func TestRouter_AnalysisMissingFieldsShowNA(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	doc := h.Backend.AddDocument("alice", "blank.pdf", &document.Analysis{
		KeyInformation: strPtr("null"),
	})

	page := readBody(t, h.get(fmt.Sprintf("/dashboard?document=%d", doc.ID), false))
	body := readBody(t, h.do(http.MethodPost, loadURL(t, page), nil, "", true))

	assert.Equal(t, 3, strings.Count(body, `<p class="na">N/A</p>`), body)
}

func TestRouter_StaleAnalysisIsDiscarded(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	first := h.Backend.AddDocument("alice", "a.pdf", nil)
	second := h.Backend.AddDocument("alice", "b.pdf", nil)

	firstPage := readBody(t, h.get(fmt.Sprintf("/dashboard?document=%d", first.ID), true))
	firstLoad := loadURL(t, firstPage)
	secondPage := readBody(t, h.get(fmt.Sprintf("/dashboard?document=%d", second.ID), true))
	secondLoad := loadURL(t, secondPage)

	stale := h.do(http.MethodPost, firstLoad, nil, "", true)
	_ = readBody(t, stale)
	assert.Equal(t, http.StatusNoContent, stale.StatusCode)

	current := h.do(http.MethodPost, secondLoad, nil, "", true)
	assert.Contains(t, readBody(t, current), "Summary of b.pdf")
}

func TestRouter_AnalysisUnknownDocument(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	page := readBody(t, h.get("/dashboard?document=999", false))
	assert.Contains(t, page, "Document not found")

	resp := h.do(http.MethodPost, "/dashboard/documents/abc/analysis?gen=1", nil, "", true)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, errMsgBadDocumentID)
}

func TestRouter_UploadHTMX(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.postFile("/documents/upload", "contract.pdf", []byte("%PDF-1.4"), true)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "Uploaded contract.pdf.")

	var triggers map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("Hx-Trigger")), &triggers))
	assert.Contains(t, triggers, eventDocumentsRefresh)
	assert.Contains(t, string(triggers[eventUploadSucceeded]), `"filename":"contract.pdf"`)

	docs := h.Backend.Documents("alice")
	require.Len(t, docs, 1)
	assert.Equal(t, "contract.pdf", docs[0].Filename)

	list := readBody(t, h.get("/dashboard/documents", true))
	assert.Contains(t, list, "contract.pdf")
}

func TestRouter_UploadWithoutFileSkipsBackend(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.postFile("/documents/upload", "", nil, true)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, errMsgSelectFile)
	assert.Equal(t, int32(0), h.Backend.UploadCalls.Load())
}

func TestRouter_UploadTooLarge(t *testing.T) {
	h := newUIHarness(t, func(s *RouterServices) { s.MaxUploadBytes = 16 })
	h.login("alice", "pw")

	resp := h.postFile("/documents/upload", "big.pdf", []byte(strings.Repeat("x", 64)), true)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "The file is too large.")
	assert.Empty(t, h.Backend.Documents("alice"))
}

func TestRouter_UploadRejectedByBackendKeepsForm(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.postFile("/documents/upload", "reject.exe", []byte("MZ"), true)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "File type not allowed")
	assert.Empty(t, resp.Header.Get("Hx-Trigger"))
}

func TestRouter_UploadPlainFormRedirectsToDocument(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.postFile("/documents/upload", "plain.txt", []byte("hello"), false)
	_ = readBody(t, resp)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	docs := h.Backend.Documents("alice")
	require.Len(t, docs, 1)
	assert.Equal(t, "/dashboard?document="+strconv.FormatInt(docs[0].ID, 10), resp.Header.Get("Location"))
}

func TestRouter_LogoutEndsSession(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")

	resp := h.postForm("/logout", url.Values{}, true)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Hx-Redirect"))
	assert.Equal(t, int32(1), h.Backend.LogoutCalls.Load())

	after := h.get("/dashboard", false)
	_ = readBody(t, after)
	assert.Equal(t, http.StatusSeeOther, after.StatusCode)
}

func TestRouter_LoginRotatesScope(t *testing.T) {
	h := newUIHarness(t)
	h.csrfToken()
	before := h.cookie(DefaultScopeCookieName)
	require.NotEmpty(t, before)

	h.login("alice", "pw")

	after := h.cookie(DefaultScopeCookieName)
	require.NotEmpty(t, after)
	assert.NotEqual(t, before, after, "login issues a new scope id")

	ctx := context.Background()
	for _, key := range []string{domainauth.StorageKey, gateway.CookieStorageKey} {
		raw, err := h.Provider.Scope(before).Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, raw, "%s left in the pre-login scope", key)

		raw, err = h.Provider.Scope(after).Get(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, raw, "%s missing from the new scope", key)
	}

	// A client holding only the pre-login id stays anonymous.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.Server.URL+"/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: DefaultScopeCookieName, Value: before})
	other := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := other.Do(req)
	require.NoError(t, err)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The logged-in browser keeps working on the new id.
	resp = h.get("/dashboard", false)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SessionSurvivesRouterRestart(t *testing.T) {
	h := newUIHarness(t)
	h.login("alice", "pw")
	h.Backend.AddDocument("alice", "kept.pdf", nil)

	// A second router over the same storage stands in for a process restart.
	// Cookies are not port-scoped, so the client keeps its scope cookie.
	factory, err := gateway.NewFactory(gateway.Config{BaseURL: h.Backend.URL})
	require.NoError(t, err)
	router, err := NewRouter(RouterServices{
		Storage:    h.Provider,
		Backend:    factory.Scoped,
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	require.NoError(t, err)
	h.Server = httptest.NewServer(router)
	t.Cleanup(h.Server.Close)

	resp := h.get("/dashboard", false)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "kept.pdf")
}

func TestRouter_NotFound(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/does-not-exist", false)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "doesn&#39;t exist")
	assert.Contains(t, body, "/login?redirect_uri=%2Fdoes-not-exist")

	req, err := http.NewRequest(http.MethodGet, h.Server.URL+"/nope", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	jsonResp, err := h.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, jsonResp.StatusCode)
	assert.Contains(t, readBody(t, jsonResp), `"error":"not_found"`)
}

func TestRouter_StaticAndHealth(t *testing.T) {
	h := newUIHarness(t)

	resp := h.get("/healthz", false)
	assert.Equal(t, `{"status":"ok"}`, readBody(t, resp))

	css := h.get("/static/css/app.css", false)
	_ = readBody(t, css)
	assert.Equal(t, http.StatusOK, css.StatusCode)
	assert.NotEmpty(t, css.Header.Get("Cache-Control"))

	// Every status DetermineErrorStatus can answer for a form is swapped in.
	js := readBody(t, h.get("/static/js/app.js", false))
	assert.Contains(t, js, "[422, 500, 502, 504]")
}

func TestRouter_PostWithoutCSRFTokenForbidden(t *testing.T) {
	h := newUIHarness(t)

	resp := h.do(http.MethodPost, "/login", strings.NewReader("username=a&password=b"),
		"application/x-www-form-urlencoded", false)
	_ = readBody(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
