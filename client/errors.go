package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client operations.
var (
	// ErrNoCredentials is returned by New for zero credentials.
	ErrNoCredentials = errors.New("client: credentials are required")

	// ErrInvalidBaseURL is returned by New for an unusable API URL.
	ErrInvalidBaseURL = errors.New("client: invalid api url")

	// ErrInvalidConfig wraps settings that cannot be parsed or used.
	ErrInvalidConfig = errors.New("client: invalid config")

	// ErrUnexpectedContentType is returned when a response body is neither
	// JSON nor XML.
	ErrUnexpectedContentType = errors.New("client: unexpected response content type")

	// ErrDecodeResponse wraps malformed response bodies.
	ErrDecodeResponse = errors.New("client: cannot decode response")

	// ErrNotFound matches APIErrors with status 404.
	ErrNotFound = errors.New("client: not found")

	// ErrConflict matches APIErrors with status 409.
	ErrConflict = errors.New("client: conflict")

	// ErrUnauthorized matches APIErrors with status 401 or 403.
	ErrUnauthorized = errors.New("client: unauthorized")
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("client: api error %d: %s", e.StatusCode, msg)
}

// Is matches the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Temporary reports whether the failure says something about the health
// of the endpoint rather than about the request.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}
