package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed remote call so screens can decide how to surface it.
type Kind int

const (
	// KindTransport means the request never produced a response.
	KindTransport Kind = iota
	// KindUnauthorized means the server rejected the token (401).
	KindUnauthorized
	// KindRequest covers other 4xx responses; the server's message is
	// surfaced verbatim.
	KindRequest
	// KindServer covers 5xx responses; a generic message is shown.
	KindServer
)

// Error is what every gateway method returns on failure.
type Error struct {
	Kind    Kind
	Status  int    // 0 for transport failures
	Message string // safe to show to the user
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err is a 401 gateway error.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: "could not reach the server",
		cause:   err,
	}
}

// statusError builds the right Error for a non-2xx response body.
// Backends answer either {"error": "..."} or {"message": "..."}.
func statusError(status int, body []byte) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: "session expired"}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: "something went wrong on the server"}
	default:
		msg := serverMessage(body)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindRequest, Status: status, Message: msg}
	}
}

func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
