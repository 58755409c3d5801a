package domain

import "errors"

// Domain errors
var (
	ErrNetwork             = errors.New("server unreachable")
	ErrConflict            = errors.New("resource conflict")
	ErrValidation          = errors.New("request rejected")
	ErrNotFound            = errors.New("resource not found")
	ErrReferenceUnresolved = errors.New("reference could not be resolved")
	ErrCategoryIDRequired  = errors.New("category id is required")
	ErrInvalidEntryType    = errors.New("invalid entry type")
	ErrInvalidID           = errors.New("invalid id")
)

// User-facing messages
const (
	MessageNetwork        = "Cannot connect to the server. Check that the backend is running."
	MessageBudgetConflict = "A budget for this category already exists."
	MessageRequestFailed  = "An error occurred while processing the request."
)

// ServerMessager is implemented by errors that carry a server-supplied message
type ServerMessager interface {
	ServerMessage() string
}

// UserMessage maps an error to the text shown to the user. Network failures
// always get a fixed message; other failures prefer the server message and
// fall back to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNetwork) {
		return MessageNetwork
	}
	var sm ServerMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	if fallback == "" {
		return MessageRequestFailed
	}
	return fallback
}
