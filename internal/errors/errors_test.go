package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "Document not found",
			},
			want: "Document not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "list documents failed",
				Cause:   errors.New("connection refused"),
			},
			want: "list documents failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeDecode, "decode analysis")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false")
	}
	if Wrap(nil, ErrCodeDecode, "x") != nil {
		t.Errorf("Wrap(nil) should be nil")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		detail  string
		code    ErrorCode
		message string
	}{
		{http.StatusUnauthorized, "Incorrect username or password", ErrCodeUnauthorized, "Incorrect username or password"},
		{http.StatusNotFound, "Document not found", ErrCodeNotFound, "Document not found"},
		{http.StatusBadRequest, "Username already registered", ErrCodeValidation, "Username already registered"},
		{http.StatusInternalServerError, "", ErrCodeStatus, "HTTP error! status: 500"},
		{http.StatusBadGateway, "  upstream down ", ErrCodeStatus, "upstream down"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, tt.detail)
			if err.Code != tt.code {
				t.Errorf("Code = %v, want %v", err.Code, tt.code)
			}
			if err.Message != tt.message {
				t.Errorf("Message = %q, want %q", err.Message, tt.message)
			}
			if GetStatus(err) != tt.status {
				t.Errorf("GetStatus = %d, want %d", GetStatus(err), tt.status)
			}
		})
	}
}

func TestFromTransport(t *testing.T) {
	if got := GetCode(FromTransport(context.DeadlineExceeded, "analyze")); got != ErrCodeTimeout {
		t.Errorf("deadline code = %v", got)
	}
	if got := GetCode(FromTransport(fmt.Errorf("do: %w", context.Canceled), "analyze")); got != ErrCodeCanceled {
		t.Errorf("canceled code = %v", got)
	}
	if !IsTransport(FromTransport(errors.New("dial tcp: refused"), "analyze")) {
		t.Errorf("expected transport error")
	}
	if FromTransport(nil, "analyze") != nil {
		t.Errorf("nil error should map to nil")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(FromStatus(http.StatusUnauthorized, "Incorrect username or password")); got != "Incorrect username or password" {
		t.Errorf("UserMessage(status) = %q", got)
	}
	if got := UserMessage(Validation("Please select a file to upload.")); got != "Please select a file to upload." {
		t.Errorf("UserMessage(validation) = %q", got)
	}
	if got := UserMessage(FromTransport(errors.New("refused"), "login")); got != "Could not reach the document service. Please try again." {
		t.Errorf("UserMessage(transport) = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "Something went wrong. Please try again." {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if UserMessage(nil) != "" {
		t.Errorf("UserMessage(nil) should be empty")
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", FromStatus(http.StatusNotFound, "gone"))
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound through wrapping failed")
	}
	if IsValidation(wrapped) || IsUnauthorized(wrapped) || IsTimeout(wrapped) {
		t.Errorf("unexpected predicate match")
	}
	if !IsValidation(ValidationField("file", "required")) {
		t.Errorf("IsValidation failed")
	}
	if GetCode(errors.New("x")) != "" || GetStatus(errors.New("x")) != 0 {
		t.Errorf("non-AppError should have empty code and zero status")
	}
	if Internalf("bad %d", 1).Message != "bad 1" {
		t.Errorf("Internalf formatting failed")
	}
}
