package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired is returned when an authenticated endpoint is called with
// no session token. No network round trip is made.
var ErrAuthRequired = errors.New("authentication required")

// HTTPError is a failure response from the backend. Message carries the
// server-supplied error text verbatim when present.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// AuthDenied reports whether the server rejected the request's credentials.
func (e *HTTPError) AuthDenied() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// NetworkError signals the request never reached the server (DNS, refused
// connection, timeout). Callers can suggest checking server availability or
// cross-origin configuration instead of showing a generic failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request did not reach the server (check availability and network configuration): %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side precondition failure detected before any
// network call, such as a missing required field or an empty cart on submit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsAuthDenied reports whether err is an authorization-denied HTTP error.
// The session manager uses it to tear down stale authenticated state.
func IsAuthDenied(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.AuthDenied()
}
