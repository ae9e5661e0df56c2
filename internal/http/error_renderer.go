package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/target/docanalyzer-ui/internal/errors"
)

// ErrorRenderer is a function that renders an error template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	// Renderer is the function to render the error template
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data contains additional template data, e.g. the submitted form values
	Data map[string]any
	// StatusCode is the HTTP status code to set (0 lets the renderer decide)
	StatusCode int
}

// DetermineErrorStatus maps an error to the status used when re-rendering a form.
// Validation and backend rejections are 422 so htmx swaps them in; transport
// problems are 502/504.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return 0
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeTransport, apperrors.ErrCodeDecode:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// RenderError renders an error response using consistent error handling patterns.
// Every failure is shown through apperrors.UserMessage; a validation error
// naming a field is attached to that field.
//
// Usage:
//
//	RenderError(ErrorOpts{
//	    W: w, R: r,
//	    Err: err,
//	    Renderer: h.renderPage,
//	    PageMeta: PageMeta{Title: "Log in", CurrentPage: PageLogin},
//	    Data: map[string]any{"Username": username},
//	})
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)

	generalError := processError(opts.Err, &opts.FieldErrors)

	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}

	if generalError != "" {
		builder.WithError(generalError)
	} else if len(opts.FieldErrors) > 0 {
		builder.WithError(errMsgFixBelow)
	}

	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.StatusCode != 0 {
		opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		opts.W.WriteHeader(opts.StatusCode)
	}

	opts.Renderer(opts.W, opts.R, builder.Build())
}

// processError returns the general message for err and moves field-specific
// validation errors into fieldErrors. Returns "" if err is nil or fully mapped to a field.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	var appErr *apperrors.AppError
	if apperrors.IsValidation(err) && errors.As(err, &appErr) && appErr.Field != "" && fieldErrors != nil {
		if *fieldErrors == nil {
			*fieldErrors = make(map[string]string)
		}
		(*fieldErrors)[appErr.Field] = appErr.Message
		return ""
	}

	return apperrors.UserMessage(err)
}
