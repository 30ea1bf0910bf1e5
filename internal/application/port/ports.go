// Package port contains the port interfaces (driven ports) for the application layer.
// Ports define the interfaces that the application layer requires from external
// services like packing checks, logging, etc.
//
// In Hexagonal Architecture (ports & adapters):
//   - Ports are interfaces that define what the application needs.
//   - Adapters are implementations of these interfaces
//   - this enables loose coupling and easy testing/swapping of implementations.
//
// SOLID Principles applied:
//   - Interface Segregation: small, focused interfaces
//   - Dependency Inversion: Application depends on abstractions
package port

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// Logger defines the interface for structured logging.
// Implementation may use zap, logrus, or the standard library.
//
// Example usage:
//
//	logger.Info("Box selected", "box_id", boxID, "candidates", len(page))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a logger with additional context fields.
	With(keysAndValues ...interface{}) Logger

	// WithContext returns a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// PackabilityChecker finds the first candidate box able to hold a full
// product set. Candidates are given in the order they should be tried
// (smallest volume first); the checker must respect that order.
//
// The result is a discriminated value:
//   - (box, nil): the first fitting candidate
//   - (nil, nil): no candidate fits; a normal outcome, not a failure
//   - (nil, err): the check itself could not be performed
//
// Implementations must never report "no fit" through the error channel.
type PackabilityChecker interface {
	// FindFirstFit returns the first box in candidates that can hold
	// every product, or nil when none can.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - products: the full product set to pack
	//   - candidates: ordered candidate boxes (smallest volume first)
	//
	// Returns:
	//   - *entity.Box: the first fitting candidate, or nil
	//   - error: failure to perform the check (never "no fit")
	FindFirstFit(ctx context.Context, products []valueobject.Product, candidates []entity.Box) (*entity.Box, error)
}
