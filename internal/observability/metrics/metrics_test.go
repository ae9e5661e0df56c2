package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/docanalyzer-ui/internal/errors"
)

type recorded struct {
	Kind string
	Name string
	Tags map[string]string
}

// recordingSink keeps emitted metrics in memory.
type recordingSink struct {
	mu   sync.Mutex
	seen []recorded
}

func (s *recordingSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, recorded{Kind: "count", Name: name, Tags: tags})
}

func (s *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, recorded{Kind: "timing", Name: name, Tags: tags})
}

func TestEmitBackendCall(t *testing.T) {
	sink := &recordingSink{}

	EmitBackendCall(sink, BackendCall{Op: "login", Status: 200, Duration: time.Millisecond})
	EmitBackendCall(sink, BackendCall{
		Op:     "analyze_document",
		Status: 404,
		Err:    apperrors.FromStatus(404, "Document not found"),
	})
	EmitBackendCall(sink, BackendCall{Op: "list_documents", Err: apperrors.FromTransport(errors.New("refused"), "list")})

	require.Len(t, sink.seen, 4)
	assert.Equal(t, recorded{Kind: "count", Name: "backend.request", Tags: map[string]string{
		"op": "login", "result": "success", "status_class": "2xx",
	}}, sink.seen[0])
	assert.Equal(t, "backend.duration", sink.seen[1].Name)
	assert.Equal(t, map[string]string{
		"op": "analyze_document", "result": "error", "status_class": "4xx", "error_class": "not_found",
	}, sink.seen[2].Tags)
	assert.Equal(t, "none", sink.seen[3].Tags["status_class"])
	assert.Equal(t, "transport", sink.seen[3].Tags["error_class"])
}

func TestEmitRequest(t *testing.T) {
	sink := &recordingSink{}

	EmitRequest(sink, Request{Method: "POST", Status: 422, HTMX: true, Duration: time.Second})

	require.Len(t, sink.seen, 2)
	assert.Equal(t, "http.request", sink.seen[0].Name)
	assert.Equal(t, map[string]string{"method": "POST", "status_class": "4xx", "htmx": "true"}, sink.seen[0].Tags)
	assert.Equal(t, "http.duration", sink.seen[1].Name)
}

func TestEmitWithoutSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitBackendCall(nil, BackendCall{Op: "login"})
		EmitRequest(nil, Request{Method: "GET"})
	})
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(204))
	assert.Equal(t, "5xx", StatusClass(504))
	assert.Equal(t, "none", StatusClass(0))
	assert.Equal(t, "none", StatusClass(700))
}
