package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the API client.
var (
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")

	// ErrRejected matches every *ValidationError.
	ErrRejected = errors.New("request rejected")
)

// NetworkError reports a request that did not produce a usable response.
type NetworkError struct {
	// Op is the operation, e.g. "fetch catalog".
	Op string

	// Status is the HTTP status, or 0 when no response arrived.
	Status int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match NetworkError with ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// ValidationError reports a request the server refused.
type ValidationError struct {
	Op      string
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: rejected (%d): %s", e.Op, e.Status, e.Message)
}

// Is allows errors.Is to match ValidationError with ErrRejected.
func (e *ValidationError) Is(target error) bool {
	return target == ErrRejected
}
