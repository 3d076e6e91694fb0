package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured failure response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.StatusCode)
}

// UserMessage maps recognized status codes to user-facing text.
func (e *APIError) UserMessage() string {
	switch e.StatusCode {
	case http.StatusConflict:
		return "A resume with this version name already exists. Please choose a different name."
	case http.StatusForbidden:
		return "You are not authorized to perform this action."
	case http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case http.StatusNotFound:
		return "Resume not found."
	case http.StatusRequestEntityTooLarge:
		return "The file is too large to upload."
	default:
		if e.Detail != "" {
			return e.Detail
		}
		return "The request failed. Please try again."
	}
}

// TransportError represents a failure to reach the backend at all:
// connection refused, DNS failure, or a request-level timeout.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsConflict reports whether err is a 409 duplicate-version-name failure.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsNotFound reports whether err is a 404 failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsTransport reports whether err is a network-level failure rather than
// a structured backend response.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
