package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sentinel errors for response classification. Callers match with errors.Is.
var (
	// ErrSessionExpired marks a 401 on an authenticated call. By the time a
	// caller sees it the session has already been invalidated locally.
	ErrSessionExpired = fmt.Errorf("session expired")

	// ErrServerFault marks a 5xx. No local state is mutated; retrying is safe.
	ErrServerFault = fmt.Errorf("server fault")

	// ErrUnavailable marks a transport failure or timeout. Never treated as
	// an authentication rejection.
	ErrUnavailable = fmt.Errorf("server unavailable")

	// ErrValidation marks any other 4xx; the server message is surfaced
	// verbatim for caller-specific handling.
	ErrValidation = fmt.Errorf("request rejected")
)

// Error is a classified HTTP failure. It unwraps to one of the sentinel
// errors above and carries the status and the human-readable message
// extracted from the server's structured payload.
type Error struct {
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.kind.Error(), e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// serverMessage extracts a user-facing message from an error payload.
// The service reports errors as {"error": "..."}; DRF-style payloads use
// "detail" or "non_field_errors" instead, so those are accepted as fallbacks.
func serverMessage(body []byte) string {
	var payload struct {
		Error          string   `json:"error"`
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Error != "":
		return payload.Error
	case payload.Detail != "":
		return payload.Detail
	case len(payload.NonFieldErrors) > 0:
		return strings.Join(payload.NonFieldErrors, "; ")
	}
	return ""
}
