// Package document holds the backend-owned document and analysis shapes as the client sees them.
package document

import (
	"io"
	"time"
)

// Document is a read-only, possibly stale copy of a backend document.
type Document struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	UploadDate string `json:"upload_date,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
}

var uploadDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// UploadedAt parses UploadDate. Timestamps without a zone are taken as UTC.
func (d Document) UploadedAt() (time.Time, bool) {
	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, d.UploadDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Analysis is the analyze endpoint response. KeyInformation and RiskAssessment
// arrive as JSON-encoded strings and must be decoded before display.
type Analysis struct {
	Summary        string  `json:"summary"`
	KeyInformation *string `json:"key_information"`
	RiskAssessment *string `json:"risk_assessment"`
}

// Credentials is the login request body. Email is always sent, empty for logins.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is returned by the register endpoint.
type RegisteredUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Upload describes a single file to send as multipart field "file".
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
