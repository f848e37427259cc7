package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was submitted with a blank query
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrBusy indicates a mutating operation is already in flight
	ErrBusy = errors.New("operation already in progress")

	// ErrNoNextPage indicates the search has no continuation token
	ErrNoNextPage = errors.New("no next page available")

	// ErrSearchRunning indicates the search is still processing a page
	ErrSearchRunning = errors.New("search is still processing")

	// ErrContactExists indicates a matching contact already exists
	ErrContactExists = errors.New("contact already exists")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTriggerNotConfigured indicates no scrape trigger URL is set
	ErrTriggerNotConfigured = errors.New("scrape trigger URL not configured")
)

// BackendError means the remote call reached the server but it returned a
// failure payload. Message is human-readable and supplied by the backend.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "backend error"
	}
	return e.Message
}

// TransportError means the remote call never produced a usable response
// (connectivity failure, timeout, malformed reply).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the most specific message available from a gateway
// failure: the backend-supplied message when present, a generic transport
// message otherwise.
func ErrorMessage(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Error()
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "connection to search service failed"
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
