package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial returns true when the handler should return only the main fragment (not full layout).
// Rule: partial for all HTMX requests, including history restores.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// SetHXRedirect instructs htmx to redirect the browser to the given URL.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// SetHXTrigger triggers a client-side event after swap with optional payload.
// It sets the Hx-Trigger response header as a JSON object: {"<event>": <payload>}.
// If payload is nil, the value true is used for the event.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	SetHXTriggers(w, map[string]any{event: payload})
}

// SetHXTriggers triggers several client-side events in one Hx-Trigger header.
// Nil payloads become true.
func SetHXTriggers(w http.ResponseWriter, events map[string]any) {
	m := make(map[string]any, len(events))
	for event, payload := range events {
		if payload == nil {
			payload = true
		}
		m[event] = payload
	}
	b, err := json.Marshal(m)
	if err != nil {
		// Fall back to boolean triggers if a payload cannot be serialized
		for event := range m {
			m[event] = true
		}
		b, _ = json.Marshal(m)
	}
	w.Header().Set("Hx-Trigger", string(b))
}
