package dive

import (
	"math"

	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// DistanceFixService is the inverse solver companion to the simulator: given
// a swim segment that breached its safety threshold, it computes the longest
// distance for that segment that still fits the gas budget in force.
//
// The solve works on total consumption, stages included: a side-trip swim
// partly covered by a carried stage is credited for that stage gas, both in
// what the segment consumed and in the available budget.
type DistanceFixService struct{}

// NewDistanceFixService creates a new solver instance
func NewDistanceFixService() *DistanceFixService {
	return &DistanceFixService{}
}

// FixDistance computes the maximum distance for the segment at index.
//
// Parameters:
//   - segments/results: the simulated plan and its snapshots
//   - usableBudget: the rounded usable primary budget in litres
//   - tankVolume: primary tank volume in litres
//   - index: target segment index
//
// Returns:
//   - the fixed distance in metres, floored, and true; 0 when no budget
//     remains
//   - false for non-swim segments and segments that consumed no gas
func (s *DistanceFixService) FixDistance(
	segments []*Segment,
	results []*SegmentResult,
	usableBudget float64,
	tankVolume float64,
	index int,
) (float64, bool) {
	if index < 0 || index >= len(segments) || index >= len(results) {
		return 0, false
	}
	seg := segments[index]
	if seg.Kind != SegmentSwim {
		return 0, false
	}

	var prev *SegmentResult
	prevConsumed := 0.0
	if index > 0 {
		prev = results[index-1]
		prevConsumed = prev.TotalConsumed
	}
	consumed := results[index].TotalConsumed - prevConsumed
	if consumed <= 0 {
		return 0, false
	}

	available := s.availableBudget(segments, results, usableBudget, tankVolume, index, prev, prevConsumed)
	if available <= 0 {
		return 0, true
	}
	return math.Floor(seg.Distance * available / consumed), true
}

// availableBudget resolves the gas available at the start of the segment
// under the budget in force at that point.
func (s *DistanceFixService) availableBudget(
	segments []*Segment,
	results []*SegmentResult,
	usableBudget float64,
	tankVolume float64,
	index int,
	prev *SegmentResult,
	prevConsumed float64,
) float64 {
	recalc := activeRecalculation(segments, results, index)
	if recalc == nil {
		return usableBudget - prevConsumed
	}

	// Under an adjusted threshold the primary budget is whatever pressure
	// sits above it at the segment start.
	startPressure := 0.0
	if prev != nil {
		startPressure = prev.RemainingPressure
	}
	primary := &shared.Tank{Volume: tankVolume}
	available := primary.VolumeFor(startPressure - recalc.Threshold)

	// A kill-stage trip is funded by the carried stage as well; its content
	// at the segment start still counts.
	if recalc.Scenario == ScenarioKillStage && prev != nil {
		for _, st := range prev.Stages {
			if st.StageID == recalc.Source && !st.Dropped {
				available += st.RemainingVolume()
			}
		}
	}
	return available
}

// activeRecalculation finds the recalculation governing the segment at
// index, if any: the closest preceding one with no turnaround in between.
func activeRecalculation(segments []*Segment, results []*SegmentResult, index int) *RecalculationResult {
	for i := index - 1; i >= 0; i-- {
		switch segments[i].Kind {
		case SegmentTurnaround:
			return nil
		case SegmentRecalculation:
			return results[i].Recalculation
		}
	}
	return nil
}
