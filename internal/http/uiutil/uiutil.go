// Package uiutil holds presentation helpers shared by templates and handlers.
package uiutil

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FriendlyDateTimeLayout is the display layout for absolute timestamps.
const FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

// FriendlyRelativeTime returns a human-friendly description of how long ago t occurred.
// Times in the future are treated as "just now" to avoid confusing negative durations.
func FriendlyRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < 7*24*time.Hour:
		return humanize.Time(t)
	default:
		return FormatFriendlyDateTime(t)
	}
}

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FileSize formats a byte count for display; non-positive sizes are unknown.
func FileSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}

// StatusClass maps a backend document status to a badge class.
func StatusClass(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "complete", "processed", "analyzed", "ready":
		return "badge-success"
	case "pending", "uploaded", "processing", "queued":
		return "badge-info"
	case "failed", "error":
		return "badge-danger"
	default:
		return "badge-light"
	}
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
