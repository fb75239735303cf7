package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned before any network call when the client has no
// bearer credential configured.
var ErrMissingToken = errors.New("workspace: missing API token")

// APIError represents a structured error response from the workspace service.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("workspace: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// SchemaError reports an encode-time schema violation. It is returned before
// any network call is made, so a malformed write never reaches the store.
type SchemaError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("workspace: schema violation on %q: %s", e.Field, e.Reason)
}

// IsAuth returns true if the error is a 401/403 credential failure. Auth
// failures are fatal to the caller; there is no point retrying them.
func IsAuth(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return errors.Is(err, ErrMissingToken)
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusTooManyRequests
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
