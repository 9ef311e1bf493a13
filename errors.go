package somfyprotect

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Somfy Protect client.
// Typed errors below match these through errors.Is.
var (
	// Authentication errors
	ErrUnauthorized    = errors.New("somfyprotect: unauthorized (invalid or expired token)")
	ErrMissingUsername = errors.New("somfyprotect: username cannot be empty")
	ErrNoRefreshToken  = errors.New("somfyprotect: no refresh token available")

	// Resource errors
	ErrNotFound          = errors.New("somfyprotect: resource not found")
	ErrMalformedResponse = errors.New("somfyprotect: malformed API response")

	// Validation errors
	ErrValidation = errors.New("somfyprotect: invalid input")
)

// Validation errors for required arguments. They match ErrValidation.
var (
	ErrEmptySiteID     = &ValidationError{Field: "site ID", Message: "cannot be empty"}
	ErrEmptyDeviceID   = &ValidationError{Field: "device ID", Message: "cannot be empty"}
	ErrEmptyLabel      = &ValidationError{Field: "device label", Message: "cannot be empty"}
	ErrMissingSettings = &ValidationError{Field: "device settings", Message: "cannot be nil"}
)

// AuthError reports a rejected credential or token, or an unreachable
// token endpoint.
type AuthError struct {
	Op          string // "password_grant", "refresh" or "request"
	StatusCode  int    // 0 when the endpoint was never reached
	Code        string // OAuth error code, e.g. "invalid_grant"
	Description string
	Err         error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	msg := "somfyprotect: auth error (" + e.Op + ")"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Code != "" {
		msg += ": " + e.Code
		if e.Description != "" {
			msg += " - " + e.Description
		}
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error { return e.Err }

// Is reports AuthError as ErrUnauthorized.
func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// NotFoundError is returned when the API answers 404 for a resource.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("somfyprotect: %s not found: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("somfyprotect: %s not found", e.Path)
}

// Is reports NotFoundError as ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports missing or invalid local input. It is always
// returned before any HTTP call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("somfyprotect: invalid %s: %s", e.Field, e.Message)
}

// Is reports ValidationError as ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// APIError represents any other failure talking to the Somfy Protect API:
// a non-2xx status, or a 2xx body that could not be decoded.
type APIError struct {
	StatusCode int // 0 for decode failures of a successful response
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("somfyprotect: API error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("somfyprotect: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.Err }

// malformed builds an APIError for a response body that failed to decode.
func malformed(what string, body []byte, err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("failed to parse %s (body: %s)", what, truncatePreview(body)),
		Err:     fmt.Errorf("%w: %v", ErrMalformedResponse, err),
	}
}

// IsUnauthorized returns true if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound returns true if the error indicates the resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error was raised by local input checks.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsMalformedResponse returns true if the API answered but its payload
// did not match the expected contract.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
