package talks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error taxonomy for remote service failures. Callers classify with errors.Is.
var (
	ErrAuth       = errors.New("api key rejected")
	ErrValidation = errors.New("invalid talk request")
	ErrNotFound   = errors.New("talk not found")
	ErrNetwork    = errors.New("network failure")
	ErrService    = errors.New("service reported failure")
)

// APIError is an HTTP-level failure carrying the service's own description.
type APIError struct {
	StatusCode  int    `json:"statusCode"`
	Description string `json:"description"`
	Kind        error  `json:"-"`
}

// Error formats the failure for logs and UI status lines.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Description == "" {
		return fmt.Sprintf("api error (status %d): %v", e.StatusCode, e.Kind)
	}

	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Description)
}

// Unwrap exposes the taxonomy sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// classifyStatus maps HTTP status codes onto the error taxonomy.
func classifyStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrService
	}
}

// errorBody matches the shapes the service uses for failure responses.
type errorBody struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// newAPIError builds an APIError from a non-2xx response body.
func newAPIError(statusCode int, body []byte) *APIError {
	description := ""

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Description != "":
			description = parsed.Description
		case parsed.Message != "":
			description = parsed.Message
		case parsed.Kind != "":
			description = parsed.Kind
		}
	}
	if description == "" {
		description = strings.TrimSpace(string(body))
	}

	return &APIError{
		StatusCode:  statusCode,
		Description: description,
		Kind:        classifyStatus(statusCode),
	}
}
