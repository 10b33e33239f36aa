package api

import (
	"errors"
	"fmt"
)

// APIError represents a non-200 response from the bubbly-todo server.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error is a 404 Not Found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsBadRequest returns true if the error is a 400 Bad Request error.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == 400
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NetworkError is a transport-level failure: the request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError means the server answered 200 but the payload was malformed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsAPIError checks if an error is or wraps an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNetworkError checks if an error is or wraps a NetworkError and returns it.
func IsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	ok := errors.As(err, &netErr)
	return netErr, ok
}

// IsDecodeError checks if an error is or wraps a DecodeError and returns it.
func IsDecodeError(err error) (*DecodeError, bool) {
	var decErr *DecodeError
	ok := errors.As(err, &decErr)
	return decErr, ok
}
