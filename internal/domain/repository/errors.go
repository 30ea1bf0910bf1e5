package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrBoxNotFound is returned when a box cannot be found by ID.
	ErrBoxNotFound = errors.New("box not found")

	// ErrCacheMiss is returned when no cache entry exists for a
	// product-set fingerprint. It is a normal outcome, not a failure.
	ErrCacheMiss = errors.New("packing cache miss")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrTransactionFailed is returned when a database transaction fails.
	ErrTransactionFailed = errors.New("database transaction failed")

	// ErrInvalidInput is returned when a repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
// This is useful for handling not-found cases uniformly.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBoxNotFound)
}
