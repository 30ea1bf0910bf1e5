package packing

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// ResilientChecker presents a single packability interface that prefers
// the oracle and transparently substitutes the local heuristic when the
// oracle is unavailable.
//
// A normal oracle result (box or nil) is returned unchanged; the
// heuristic runs only on an unavailability signal. The wrapper performs
// no caching of its own: caching belongs exclusively to the oracle path,
// since heuristic verdicts are not trusted as standing decisions.
type ResilientChecker struct {
	primary   port.PackabilityChecker
	secondary port.PackabilityChecker
	log       port.Logger
}

// NewResilientChecker creates a new ResilientChecker.
//
// Parameters:
//   - primary: the oracle-backed checker
//   - secondary: the heuristic fallback
//   - log: structured logger
//
// Returns:
//   - *ResilientChecker: the composed checker
func NewResilientChecker(primary, secondary port.PackabilityChecker, log port.Logger) *ResilientChecker {
	return &ResilientChecker{
		primary:   primary,
		secondary: secondary,
		log:       log,
	}
}

// FindFirstFit implements port.PackabilityChecker.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - products: the full product set to pack
//   - candidates: ordered candidate boxes (smallest volume first)
//
// Returns:
//   - *entity.Box: the primary's result, or the fallback's on unavailability
//   - error: only errors that are not an unavailability signal
func (c *ResilientChecker) FindFirstFit(ctx context.Context, products []valueobject.Product, candidates []entity.Box) (*entity.Box, error) {
	box, err := c.primary.FindFirstFit(ctx, products, candidates)
	if err == nil {
		return box, nil
	}

	ue, ok := IsUnavailable(err)
	if !ok {
		return nil, err
	}

	// Retriable failures are transient noise; everything else deserves
	// operator attention. Behavior is identical either way.
	log := c.log.WithContext(ctx)
	if ue.Retriable {
		log.Warn("Packing oracle unavailable, using heuristic fallback",
			"class", string(ue.Class),
			"error", err,
		)
	} else {
		log.Error("Packing oracle unavailable, using heuristic fallback",
			"class", string(ue.Class),
			"error", err,
		)
	}

	return c.secondary.FindFirstFit(ctx, products, candidates)
}
