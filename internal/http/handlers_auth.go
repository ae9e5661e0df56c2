package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
	"github.com/target/docanalyzer-ui/internal/domain/document"
	apperrors "github.com/target/docanalyzer-ui/internal/errors"
	"github.com/target/docanalyzer-ui/internal/gateway"
	"github.com/target/docanalyzer-ui/internal/guard"
	"github.com/target/docanalyzer-ui/internal/http/validation"
)

const (
	tmplLoginForm    = "login-form"
	tmplRegisterForm = "register-form"
)

func loginMeta() PageMeta {
	return PageMeta{Title: "Log in", PageTitle: "Log in", CurrentPage: PageLogin}
}

func registerMeta() PageMeta {
	return PageMeta{Title: "Register", PageTitle: "Create an account", CurrentPage: PageRegister}
}

// redirectURIFromRequest reads the preserved location from the form or query.
// Only a safe relative path survives; "/" means none.
func redirectURIFromRequest(r *http.Request) string {
	candidate := r.PostFormValue(guard.RedirectParam)
	if candidate == "" {
		candidate = r.URL.Query().Get(guard.RedirectParam)
	}
	target := guard.SafeRedirectPath(candidate)
	if target == "/" {
		return ""
	}
	return target
}

// formRenderer re-renders a form: only the form fragment for htmx, the whole page otherwise.
func (h *UIHandlers) formRenderer(fragment string) ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, data any) {
		if !IsHTMX(r) {
			h.renderPage(w, r, data)
			return
		}
		if err := h.T.RenderFragment(w, fragment, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "fragment "+fragment)
		}
	}
}

// redirectIfAuthenticated sends signed-in users away from the login and register views.
func redirectIfAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	if !SessionState(r.Context()).IsAuthenticated() {
		return false
	}
	target := guard.ResumeTarget(redirectURIFromRequest(r))
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return true
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

// LoginPage renders the login view.
// GET /login?redirect_uri=<optional>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if redirectIfAuthenticated(w, r) {
		return
	}
	data := NewTemplateData(r, loginMeta()).
		With("RedirectURI", redirectURIFromRequest(r)).
		Build()
	h.renderPage(w, r, data)
}

// LoginSubmit authenticates against the backend and, on success, logs the
// session in. The session's navigator performs the redirect.
// POST /login.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	redirectURI := redirectURIFromRequest(r)
	formData := map[string]any{"Username": username, "RedirectURI": redirectURI}

	if fieldErrors := validation.Credentials(username, password); len(fieldErrors) > 0 {
		RenderError(ErrorOpts{
			W: w, R: r,
			FieldErrors: fieldErrors,
			Renderer:    h.formRenderer(tmplLoginForm),
			PageMeta:    loginMeta(),
			Data:        formData,
			StatusCode:  http.StatusUnprocessableEntity,
		})
		return
	}

	scope, api, err := h.backendFor(r)
	if err == nil {
		err = api.Login(r.Context(), document.Credentials{Username: username, Password: password})
	}
	if err == nil {
		err = h.rotateScope(r, scope)
	}
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "username", username, "error", err)
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:        err,
			Renderer:   h.formRenderer(tmplLoginForm),
			PageMeta:   loginMeta(),
			Data:       formData,
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	h.completeLogin(w, r, scope, domainauth.User{Username: username}, redirectURI)
}

// rotateScope issues a new scope id before the session becomes authenticated
// so an id known before login never grants access. The backend cookies follow
// the session to the new scope.
func (h *UIHandlers) rotateScope(r *http.Request, scope *RequestScope) error {
	oldID := scope.ID
	if err := scope.Rotate(r.Context(), gateway.CookieStorageKey, domainauth.StorageKey); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unable to start the session. Please try again.")
	}
	if h.Viewer != nil {
		h.Viewer.Tracker().Forget(oldID)
	}
	return nil
}

// completeLogin moves the scope's session to authenticated; its navigator
// redirects to redirectURI or the landing view.
func (h *UIHandlers) completeLogin(
	w http.ResponseWriter,
	r *http.Request,
	scope *RequestScope,
	user domainauth.User,
	redirectURI string,
) {
	scope.Navigator.SetResume(redirectURI)
	if err := scope.Session.Login(r.Context(), user); err != nil {
		h.logger().WarnContext(r.Context(), "session login not persisted", "error", err)
	}
	if !scope.Navigator.Navigated() {
		NewNavigator(w, r, h.logger()).Navigate(guard.ResumeTarget(redirectURI))
	}
}

// RegisterPage renders the registration view.
// GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if redirectIfAuthenticated(w, r) {
		return
	}
	data := NewTemplateData(r, registerMeta()).
		With("RedirectURI", redirectURIFromRequest(r)).
		Build()
	h.renderPage(w, r, data)
}

// RegisterSubmit creates the account, logs in with the same credentials so the
// backend session cookie exists, then logs the session in.
// POST /register.
func (h *UIHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	reg := document.Registration{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	redirectURI := redirectURIFromRequest(r)
	formData := map[string]any{"Username": reg.Username, "Email": reg.Email, "RedirectURI": redirectURI}

	if fieldErrors := validation.Registration(reg.Username, reg.Email, reg.Password); len(fieldErrors) > 0 {
		RenderError(ErrorOpts{
			W: w, R: r,
			FieldErrors: fieldErrors,
			Renderer:    h.formRenderer(tmplRegisterForm),
			PageMeta:    registerMeta(),
			Data:        formData,
			StatusCode:  http.StatusUnprocessableEntity,
		})
		return
	}

	scope, api, err := h.backendFor(r)
	if err == nil {
		_, err = api.Register(r.Context(), reg)
	}
	if err == nil {
		err = api.Login(r.Context(), document.Credentials{Username: reg.Username, Password: reg.Password})
	}
	if err == nil {
		err = h.rotateScope(r, scope)
	}
	if err != nil {
		h.logger().InfoContext(r.Context(), "registration failed", "username", reg.Username, "error", err)
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:        err,
			Renderer:   h.formRenderer(tmplRegisterForm),
			PageMeta:   registerMeta(),
			Data:       formData,
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	h.completeLogin(w, r, scope, domainauth.User{Username: reg.Username}, redirectURI)
}

// Logout ends the backend session (best effort), forgets the backend cookies
// and the analysis selection, then logs the session out. The navigator
// redirects to the login view.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	scope, api, err := h.backendFor(r)
	if scope == nil {
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "backend unavailable during logout", "error", err)
	} else {
		if logoutErr := api.Logout(r.Context()); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "backend logout failed", "error", logoutErr)
		}
		if clearErr := api.ClearCookies(r.Context()); clearErr != nil {
			h.logger().WarnContext(r.Context(), "clearing backend cookies failed", "error", clearErr)
		}
	}
	if h.Viewer != nil {
		h.Viewer.Tracker().Forget(scope.ID)
	}

	if err := scope.Session.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "session logout not persisted", "error", err)
	}
	if !scope.Navigator.Navigated() {
		NewNavigator(w, r, h.logger()).Navigate(guard.LoginPath)
	}
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *UIHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state := SessionState(r.Context())
	if !state.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"username": state.Username(),
		},
	})
}
