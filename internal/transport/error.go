package transport

import (
	"fmt"
	"net/http"

	"github.com/peksoon/account/internal/domain"
)

// Kind classifies a transport failure
type Kind int

const (
	// NetworkError means no response was received
	NetworkError Kind = iota
	// HTTPError means the server answered with a non-2xx status
	HTTPError
)

func (k Kind) String() string {
	if k == NetworkError {
		return "network"
	}
	return "http"
}

// Error is the normalized failure of a backend call
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
	Err     error
}

// errorBody is the backend error envelope
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Some handlers answer with {"error": "..."} instead
	Error string `json:"error"`
}

func (e *Error) Error() string {
	if e.Kind == NetworkError {
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// Unwrap returns the underlying network error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps the failure onto the domain error taxonomy
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrNetwork:
		return e.Kind == NetworkError
	case domain.ErrConflict:
		return e.Kind == HTTPError && e.Status == http.StatusConflict
	case domain.ErrNotFound:
		return e.Kind == HTTPError && e.Status == http.StatusNotFound
	case domain.ErrValidation:
		return e.Kind == HTTPError && e.Status != http.StatusConflict && e.Status != http.StatusNotFound
	}
	return false
}

// ServerMessage returns the message from the backend error body
func (e *Error) ServerMessage() string {
	return e.Message
}
