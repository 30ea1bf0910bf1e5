package packing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProbe reports fit iff the probed subset contains the target
// box id, and records every call's candidate ids.
type scriptedProbe struct {
	targetID int64
	calls    [][]int64
}

func (s *scriptedProbe) probe(_ context.Context, candidates []entity.Box) (bool, error) {
	ids := make([]int64, len(candidates))
	fit := false
	for i, box := range candidates {
		ids[i] = *box.ID
		if *box.ID == s.targetID {
			fit = true
		}
	}
	s.calls = append(s.calls, ids)
	return fit, nil
}

func maxProbes(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func TestFindFirstFitLocatesTarget(t *testing.T) {
	// For every possible position of the single fitting box, the search
	// must find it within the probe budget.
	for n := 1; n <= 16; n++ {
		for target := int64(1); target <= int64(n); target++ {
			probe := &scriptedProbe{targetID: target}
			box, err := findFirstFit(context.Background(), testBoxes(t, n), probe.probe)

			require.NoError(t, err)
			require.NotNil(t, box, "n=%d target=%d", n, target)
			assert.Equal(t, target, *box.ID, "n=%d", n)
			assert.LessOrEqual(t, len(probe.calls), maxProbes(n), "n=%d target=%d", n, target)
		}
	}
}

func TestFindFirstFitOpensWithWholeList(t *testing.T) {
	probe := &scriptedProbe{targetID: 3}
	_, err := findFirstFit(context.Background(), testBoxes(t, 8), probe.probe)
	require.NoError(t, err)

	require.NotEmpty(t, probe.calls)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, probe.calls[0])
}

func TestFindFirstFitNoFit(t *testing.T) {
	// Target id 99 is in no subset, so the single opening probe settles it.
	probe := &scriptedProbe{targetID: 99}
	box, err := findFirstFit(context.Background(), testBoxes(t, 8), probe.probe)

	require.NoError(t, err)
	assert.Nil(t, box)
	assert.Len(t, probe.calls, 1)
}

func TestFindFirstFitEmptyCandidates(t *testing.T) {
	probe := &scriptedProbe{targetID: 1}
	box, err := findFirstFit(context.Background(), nil, probe.probe)

	require.NoError(t, err)
	assert.Nil(t, box)
	assert.Empty(t, probe.calls)
}

func TestFindFirstFitSingleCandidate(t *testing.T) {
	probe := &scriptedProbe{targetID: 1}
	box, err := findFirstFit(context.Background(), testBoxes(t, 1), probe.probe)

	require.NoError(t, err)
	require.NotNil(t, box)
	assert.Equal(t, int64(1), *box.ID)
	assert.Len(t, probe.calls, 1)
}

func TestFindFirstFitPropagatesProbeError(t *testing.T) {
	probeErr := errors.New("boom")
	calls := 0
	failing := func(context.Context, []entity.Box) (bool, error) {
		calls++
		return false, probeErr
	}

	box, err := findFirstFit(context.Background(), testBoxes(t, 4), failing)
	assert.Nil(t, box)
	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, 1, calls)
}
