package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/target/docanalyzer-ui/internal/domain/document"
)

// FakeBackendSessionCookie is the session cookie issued by FakeBackend.
const FakeBackendSessionCookie = "session"

// FakeBackend is an in-process stand-in for the document-analysis API. It
// keeps users, cookie sessions and per-user documents in memory.
type FakeBackend struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]document.Registration
	sessions  map[string]string
	documents map[string][]document.Document
	analyses  map[int64]document.Analysis
	nextID    int64
	nextToken int

	// AnalyzeHook, when set, runs before an analysis response is written.
	AnalyzeHook func(id int64)

	AnalyzeCalls atomic.Int32
	UploadCalls  atomic.Int32
	LogoutCalls  atomic.Int32
}

// NewFakeBackend starts a fake backend closed on test cleanup.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		users:     make(map[string]document.Registration),
		sessions:  make(map[string]string),
		documents: make(map[string][]document.Document),
		analyses:  make(map[int64]document.Analysis),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", fb.register)
	mux.HandleFunc("POST /api/auth/login", fb.login)
	mux.HandleFunc("POST /api/auth/logout", fb.logout)
	mux.HandleFunc("GET /api/documents", fb.authed(fb.list))
	mux.HandleFunc("GET /api/documents/{id}", fb.authed(fb.get))
	mux.HandleFunc("POST /api/documents/upload", fb.authed(fb.upload))
	mux.HandleFunc("POST /api/documents/{id}/analyze", fb.authed(fb.analyze))
	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

// AddUser registers a user directly.
func (fb *FakeBackend) AddUser(username, password string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.users[username] = document.Registration{Username: username, Password: password}
}

// AddDocument stores a document owned by username and returns it.
func (fb *FakeBackend) AddDocument(username, filename string, analysis *document.Analysis) document.Document {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.nextID++
	doc := document.Document{ID: fb.nextID, Filename: filename, Status: "completed"}
	fb.documents[username] = append(fb.documents[username], doc)
	if analysis != nil {
		fb.analyses[doc.ID] = *analysis
	}
	return doc
}

// Documents returns username's documents.
func (fb *FakeBackend) Documents(username string) []document.Document {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]document.Document(nil), fb.documents[username]...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (fb *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var reg document.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, exists := fb.users[reg.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	fb.users[reg.Username] = reg
	writeJSON(w, http.StatusOK, document.RegisteredUser{ID: int64(len(fb.users)), Username: reg.Username, Email: reg.Email})
}

func (fb *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var creds document.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	fb.mu.Lock()
	u, ok := fb.users[creds.Username]
	if !ok || u.Password != creds.Password {
		fb.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	fb.nextToken++
	token := fmt.Sprintf("tok-%s-%d", creds.Username, fb.nextToken)
	fb.sessions[token] = creds.Username
	fb.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: FakeBackendSessionCookie, Value: token, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

func (fb *FakeBackend) logout(w http.ResponseWriter, r *http.Request) {
	fb.LogoutCalls.Add(1)
	if c, err := r.Cookie(FakeBackendSessionCookie); err == nil {
		fb.mu.Lock()
		delete(fb.sessions, c.Value)
		fb.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: FakeBackendSessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (fb *FakeBackend) authed(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(FakeBackendSessionCookie)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		fb.mu.Lock()
		user, ok := fb.sessions[c.Value]
		fb.mu.Unlock()
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r, user)
	}
}

func (fb *FakeBackend) list(w http.ResponseWriter, _ *http.Request, user string) {
	writeJSON(w, http.StatusOK, fb.Documents(user))
}

func (fb *FakeBackend) find(user, rawID string) (document.Document, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return document.Document{}, false
	}
	for _, d := range fb.Documents(user) {
		if d.ID == id {
			return d, true
		}
	}
	return document.Document{}, false
}

func (fb *FakeBackend) get(w http.ResponseWriter, r *http.Request, user string) {
	doc, ok := fb.find(user, r.PathValue("id"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (fb *FakeBackend) upload(w http.ResponseWriter, r *http.Request, user string) {
	fb.UploadCalls.Add(1)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "file"}, "msg": "Field required"}},
		})
		return
	}
	defer f.Close()
	if _, err := io.Copy(io.Discard, f); err != nil {
		writeDetail(w, http.StatusBadRequest, "Could not read file")
		return
	}
	if hdr.Filename == "reject.exe" {
		writeDetail(w, http.StatusBadRequest, "File type not allowed")
		return
	}
	writeJSON(w, http.StatusOK, fb.AddDocument(user, hdr.Filename, nil))
}

func (fb *FakeBackend) analyze(w http.ResponseWriter, r *http.Request, user string) {
	fb.AnalyzeCalls.Add(1)
	doc, ok := fb.find(user, r.PathValue("id"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Document not found")
		return
	}
	if fb.AnalyzeHook != nil {
		fb.AnalyzeHook(doc.ID)
	}
	fb.mu.Lock()
	a, ok := fb.analyses[doc.ID]
	fb.mu.Unlock()
	if !ok {
		a = document.Analysis{Summary: "Summary of " + doc.Filename}
	}
	writeJSON(w, http.StatusOK, a)
}
