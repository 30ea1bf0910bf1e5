package packing

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
)

// probeFunc issues one oracle round-trip covering the full product set
// and the given candidate boxes, reporting whether some single box among
// them holds everything. It must return an error only when the probe
// itself could not be performed, never for a legitimate "no fit".
type probeFunc func(ctx context.Context, candidates []entity.Box) (bool, error)

// findFirstFit locates the first (smallest-volume) box in the ordered
// candidate list that can hold the full product set, using at most
// ⌈log2(n)⌉+1 probes.
//
// The search probes the whole list once; if nothing in it fits, the
// answer is nil. Otherwise it repeatedly probes the left half of the
// current range: a fit narrows to the left half, a miss narrows to the
// right half (which must then contain the fit). A range already known
// to contain a fit skips the redundant opening probe.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - candidates: ordered candidate boxes (smallest volume first)
//   - probe: the oracle round-trip to use
//
// Returns:
//   - *entity.Box: the first fitting candidate, or nil when none fits
//   - error: propagated probe failure
func findFirstFit(ctx context.Context, candidates []entity.Box, probe probeFunc) (*entity.Box, error) {
	return bisectFirstFit(ctx, candidates, probe, false)
}

// bisectFirstFit is the recursive core of findFirstFit. knownFit records
// the precondition that candidates is already confirmed to contain a fit.
func bisectFirstFit(ctx context.Context, candidates []entity.Box, probe probeFunc, knownFit bool) (*entity.Box, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	if !knownFit {
		fit, err := probe(ctx, candidates)
		if err != nil {
			return nil, err
		}
		if !fit {
			return nil, nil
		}
	}

	if len(candidates) == 1 {
		box := candidates[0]
		return &box, nil
	}

	mid := len(candidates) / 2
	fit, err := probe(ctx, candidates[:mid])
	if err != nil {
		return nil, err
	}
	if fit {
		return bisectFirstFit(ctx, candidates[:mid], probe, true)
	}
	return bisectFirstFit(ctx, candidates[mid:], probe, true)
}
