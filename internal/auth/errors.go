package auth

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when an operation needs a signed-in user and
// no session is stored.
var ErrNoSession = errors.New("not signed in")

// AuthError is a non-2xx response from the auth service.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("auth request failed with status %d", e.StatusCode)
}

// UserMessage returns text suitable for showing directly to the user.
func (e *AuthError) UserMessage() string {
	switch e.StatusCode {
	case 400, 401:
		if e.Message != "" {
			return e.Message
		}
		return "Invalid email or password."
	case 422:
		if e.Message != "" {
			return e.Message
		}
		return "The auth service rejected the request."
	case 429:
		return "Too many attempts. Please wait a moment and try again."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Authentication failed. Please try again."
	}
}

// TransportError wraps a network-level failure reaching the auth service.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsInvalidCredentials reports whether err is a credential rejection.
func IsInvalidCredentials(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) && (ae.StatusCode == 400 || ae.StatusCode == 401)
}
