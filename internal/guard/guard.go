// Package guard decides whether a navigation may render a protected view or
// must be redirected to the login view.
package guard

import (
	"net/url"
	"strings"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
)

const (
	// LoginPath is the public login view.
	LoginPath = "/login"
	// LandingPath is the protected view reached after login.
	LandingPath = "/dashboard"
	// RedirectParam carries the originally requested location to the login view.
	RedirectParam = "redirect_uri"
)

// Decision is the outcome of guarding one navigation.
type Decision struct {
	// Allow is true when the requested view may render.
	Allow bool
	// From is the sanitized originally requested location (set when redirected).
	From string
	// LoginURL is the redirect target (set when redirected).
	LoginURL string
}

// Decide renders the requested view iff state is authenticated; otherwise it
// redirects to the login view carrying the requested location.
func Decide(requested string, state domainauth.State) Decision {
	if state.IsAuthenticated() {
		return Decision{Allow: true}
	}
	from := SafeRedirectPath(requested)
	return Decision{From: from, LoginURL: LoginURL(from)}
}

// LoginURL builds the login URL that preserves from.
func LoginURL(from string) string {
	u := url.URL{Path: LoginPath}
	if from != "" && from != "/" {
		q := url.Values{}
		q.Set(RedirectParam, from)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ResumeTarget returns where to navigate after a successful login: the
// preserved location when it is safe and not the login view itself, else the landing view.
func ResumeTarget(from string) string {
	target := SafeRedirectPath(from)
	if target == "/" || isAuthPage(target) {
		return LandingPath
	}
	return target
}

func isAuthPage(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return true
	}
	return u.Path == LoginPath || u.Path == "/register" || u.Path == "/logout"
}

// SafeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute or scheme-relative URL. Returns "/" when invalid.
func SafeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}

// SafeRedirectFromURL extracts a same-origin path from a possibly absolute URL
// (e.g. an Hx-Current-Url or Referer header). Returns "" when unusable.
func SafeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}

	if u.IsAbs() {
		return SafeRedirectPath(u.RequestURI())
	}

	return SafeRedirectPath(raw)
}
