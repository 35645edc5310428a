// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package kubarr

import (
	"errors"
	"fmt"
)

// Error types for Kubarr backend API operations
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrSessionExpired indicates the session token was rejected with 401.
	// The dashboard reacts to this by redirecting to login; CLI callers
	// should prompt for re-authentication.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates the authenticated user lacks the required permission
	ErrForbidden = errors.New("permission denied")

	// ErrServerUnavailable indicates the backend (or a dependency behind it)
	// is temporarily unable to serve the request
	ErrServerUnavailable = errors.New("server unavailable")
)

// APIError is an error response from the Kubarr backend. Message carries the
// backend's human-readable detail verbatim so provider errors surface
// unchanged to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("kubarr API error (HTTP %d)", e.StatusCode)
	}
	return e.Message
}

// Unwrap maps well-known status codes onto the sentinel errors so callers
// can use errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrSessionExpired
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 502, 503, 504:
		return ErrServerUnavailable
	}
	return nil
}

// IsNotFoundError checks if the error indicates a missing resource
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSessionExpiredError checks if the error indicates an expired session
func IsSessionExpiredError(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsServerUnavailableError checks if the error indicates a temporarily
// unreachable backend
func IsServerUnavailableError(err error) bool {
	return errors.Is(err, ErrServerUnavailable)
}
