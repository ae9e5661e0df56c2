package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/guard"
)

// Navigator turns session transitions into browser navigation for one request.
// It is registered as a session observer, so navigation happens inside
// Login/Logout. Only the first navigation is written.
type Navigator struct {
	w         http.ResponseWriter
	r         *http.Request
	logger    *slog.Logger
	resume    string
	navigated bool
}

// NewNavigator binds a navigator to one request/response pair.
func NewNavigator(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{w: w, r: r, logger: logger}
}

// SetResume records where to go after the next login.
func (n *Navigator) SetResume(from string) { n.resume = from }

// Navigated reports whether a redirect has already been written.
func (n *Navigator) Navigated() bool { return n.navigated }

// Observe reacts to a session transition: login resumes the preserved
// location (or the landing view), logout goes to the login view.
func (n *Navigator) Observe(ctx context.Context, tr domainauth.Transition) {
	switch tr.To {
	case domainauth.StatusAuthenticated:
		n.Navigate(guard.ResumeTarget(n.resume))
	case domainauth.StatusAnonymous:
		n.Navigate(guard.LoginPath)
	default:
		n.logger.WarnContext(ctx, "ignoring unknown session transition", "to", tr.To)
	}
}

// Navigate redirects the browser to target: 303 for plain requests,
// Hx-Redirect for htmx requests.
func (n *Navigator) Navigate(target string) {
	if n.navigated {
		return
	}
	n.navigated = true
	if IsHTMX(n.r) {
		HTMX(n.w).Redirect(target)
		return
	}
	http.Redirect(n.w, n.r, target, http.StatusSeeOther)
}
