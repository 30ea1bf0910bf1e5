package packing

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// HeuristicChecker approximates packability without an external call.
// A candidate is accepted when every product's sorted dimension triple
// fits inside the box's sorted triple, the total weight stays within the
// box limit, and the total product volume stays within the box volume.
//
// The test is a conservative necessary condition: it can accept sets
// that would not physically tile, but never accepts a set that obviously
// cannot fit by bounding box or weight. Its verdicts are therefore never
// written to the packing cache.
type HeuristicChecker struct{}

// NewHeuristicChecker creates a new HeuristicChecker.
//
// Returns:
//   - *HeuristicChecker: the checker
func NewHeuristicChecker() *HeuristicChecker {
	return &HeuristicChecker{}
}

// FindFirstFit implements port.PackabilityChecker with the local
// volume/weight heuristic. It never fails.
//
// Parameters:
//   - ctx: context for cancellation and deadlines (unused; the check is pure)
//   - products: the full product set to pack
//   - candidates: ordered candidate boxes (smallest volume first)
//
// Returns:
//   - *entity.Box: the first candidate passing the heuristic, or nil
//   - error: always nil
func (c *HeuristicChecker) FindFirstFit(_ context.Context, products []valueobject.Product, candidates []entity.Box) (*entity.Box, error) {
	var totalWeight, totalVolume float64
	for _, p := range products {
		totalWeight += p.Weight()
		totalVolume += p.Volume()
	}

	for _, box := range candidates {
		if c.fits(box, products, totalWeight, totalVolume) {
			found := box
			return &found, nil
		}
	}
	return nil, nil
}

// fits applies the heuristic to a single candidate box.
func (c *HeuristicChecker) fits(box entity.Box, products []valueobject.Product, totalWeight, totalVolume float64) bool {
	if totalWeight > box.MaxWeight {
		return false
	}
	if totalVolume > box.Volume() {
		return false
	}
	for _, p := range products {
		if !box.CanHold(p) {
			return false
		}
	}
	return true
}
