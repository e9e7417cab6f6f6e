package api

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when an action is requested without an email id.
var ErrEmptyID = errors.New("email id is required")

// FailureKind classifies why a request did not produce a usable value.
type FailureKind int

const (
	// NetworkFailure covers transport errors and non-2xx responses.
	NetworkFailure FailureKind = iota
	// ParseFailure means the body was not JSON of the expected shape.
	ParseFailure
)

func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network error"
	case ParseFailure:
		return "parse error"
	default:
		return "unknown error"
	}
}

// RequestError describes a failed backend call.
type RequestError struct {
	Kind   FailureKind
	Method string
	Path   string
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s on %s %s (status %d): %v", e.Kind, e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s on %s %s: %v", e.Kind, e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNetworkFailure reports whether err (or any error in its chain) is a
// RequestError of kind NetworkFailure.
func IsNetworkFailure(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == NetworkFailure
}

// IsParseFailure reports whether err (or any error in its chain) is a
// RequestError of kind ParseFailure.
func IsParseFailure(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == ParseFailure
}
