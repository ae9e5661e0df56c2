// Package metrics emits the front end's request and backend-call metrics.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/target/docanalyzer-ui/internal/observability/errors"
	"github.com/target/docanalyzer-ui/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// BackendCall describes one request to the document-analysis API.
type BackendCall struct {
	// Op is the operation name, e.g. "login" or "analyze_document".
	Op string
	// Status is the HTTP status received, 0 when none was.
	Status   int
	Duration time.Duration
	Err      error
}

// EmitBackendCall records a backend.request counter and a backend.duration timing.
func EmitBackendCall(sink statsd.Sink, in BackendCall) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"op":           in.Op,
		"result":       ResultSuccess,
		"status_class": StatusClass(in.Status),
	}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("backend.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("backend.duration", in.Duration, CloneTags(tags))
	}
}

// Request describes one served HTTP request.
type Request struct {
	Method   string
	Status   int
	HTMX     bool
	Duration time.Duration
}

// EmitRequest records an http.request counter and an http.duration timing.
func EmitRequest(sink statsd.Sink, in Request) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method":       in.Method,
		"status_class": StatusClass(in.Status),
		"htmx":         strconv.FormatBool(in.HTMX),
	}
	sink.Count("http.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("http.duration", in.Duration, CloneTags(tags))
	}
}

// StatusClass buckets an HTTP status as "2xx".."5xx", or "none".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
