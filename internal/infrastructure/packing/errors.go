// Package packing contains the packability checkers: the external oracle
// adapter with its probe-and-bisect search, the local heuristic fallback,
// and the resilience wrapper composing the two.
package packing

import (
	"errors"
	"fmt"
)

// FailureClass categorizes why the oracle could not deliver a verdict.
// The class only drives log severity and observability; every class is
// handled identically by the resilience wrapper.
type FailureClass string

const (
	// FailureConfiguration means oracle credentials or endpoint are missing.
	FailureConfiguration FailureClass = "configuration"

	// FailureTransport covers network errors, timeouts and body decoding.
	FailureTransport FailureClass = "transport"

	// FailureHTTPStatus covers HTTP responses with status >= 400.
	FailureHTTPStatus FailureClass = "http_status"

	// FailureOracleStatus means the oracle reported a negative status code.
	FailureOracleStatus FailureClass = "oracle_status"

	// FailureAccountBlocked means the oracle reported an account lockout.
	FailureAccountBlocked FailureClass = "account_blocked"

	// FailureStructural means the response was missing expected fields
	// or carried wrong types.
	FailureStructural FailureClass = "structural"
)

// UnavailableError signals that the oracle could not be consulted.
// It is the single failure value the resilience layer reacts to, and it
// is never used for a legitimate "does not fit" verdict.
type UnavailableError struct {
	// Class is the failure category.
	Class FailureClass

	// Retriable hints whether a later attempt might succeed.
	// It affects log severity only, never behavior.
	Retriable bool

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("packing oracle unavailable (%s): %v", e.Class, e.Err)
	}
	return fmt.Sprintf("packing oracle unavailable (%s)", e.Class)
}

// Unwrap returns the underlying cause.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// unavailable builds an UnavailableError for the given class and cause.
func unavailable(class FailureClass, retriable bool, err error) *UnavailableError {
	return &UnavailableError{Class: class, Retriable: retriable, Err: err}
}

// IsUnavailable checks whether err signals oracle unavailability.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - *UnavailableError: the typed error, or nil
//   - bool: true if err is (or wraps) an UnavailableError
func IsUnavailable(err error) (*UnavailableError, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
