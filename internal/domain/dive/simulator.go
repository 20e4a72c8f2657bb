package dive

import (
	"math"

	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// ConsumptionSimulator walks a segment list once, left to right, and emits a
// gas/time/pressure snapshot per segment.
//
// The simulation is a pure function of its inputs: every run allocates its
// own stage scratch state and nothing survives between calls, so concurrent
// runs never interfere.
//
// Consumption order per segment:
//
//  1. Stage sources, in configured list order, each breathable only down to
//     its drop pressure (to zero after a pickup). A stage emptied mid-swim
//     with no explicit drop marker ahead on the outbound leg is dropped
//     inline and an advisory recorded for the editor; with a marker pending
//     it is left in place and skipped.
//  2. The primary supply takes whatever demand is left. Its pressure may go
//     negative when the plan is over budget.
//
// Stage-event standing time breathes primary only: the diver is stationary
// and off whichever tank they are manipulating.
type ConsumptionSimulator struct {
	budgets *GasBudgetService
}

// NewConsumptionSimulator creates a new simulator instance
func NewConsumptionSimulator() *ConsumptionSimulator {
	return &ConsumptionSimulator{budgets: NewGasBudgetService()}
}

// Simulate runs the full two-pass calculation: the consumption pass below,
// then the re-entry pass over the finished snapshots.
func (s *ConsumptionSimulator) Simulate(cfg *StandingConfiguration, segments []*Segment) *DiveCalculationResult {
	budget := s.budgets.Compute(cfg)

	stages := make([]*StageSourceState, 0, len(cfg.Stages))
	for _, def := range cfg.Stages {
		stages = append(stages, newStageSourceState(def))
	}

	result := &DiveCalculationResult{
		TankVolume:            cfg.TankVolume,
		TotalVolume:           budget.TotalVolume,
		EffectiveVolume:       budget.EffectiveVolume,
		UsableVolume:          budget.UsableVolume,
		RoundedUsableVolume:   budget.RoundedUsableVolume,
		RoundedUsablePressure: budget.RoundedUsablePressure,
		TurnPressure:          budget.TurnPressure,
	}

	primary := cfg.PrimaryTank()
	primaryVolume := budget.TotalVolume
	currentDepth := 0.0
	totalTime := 0.0
	totalConsumed := 0.0
	depthTimeArea := 0.0
	returning := false

	for i, seg := range segments {
		res := &SegmentResult{SegmentID: seg.ID, Kind: seg.Kind}

		time, depth := s.timeAndDepth(cfg, seg, currentDepth)
		currentDepth = depth
		demand := cfg.ConsumptionRate * shared.Atmospheres(depth) * time

		switch seg.Kind {
		case SegmentStageEvent:
			if demand > 0 {
				primaryVolume -= demand
				res.BreathedPrimary = true
			}
			if st := findStage(stages, seg.StageID); st != nil {
				if returning {
					st.PickUp()
				} else {
					st.Drop()
					res.DroppedStages = append(res.DroppedStages, st.StageID)
				}
			}

		default:
			if demand > 0 {
				remainder := s.consume(segments, i, seg, stages, demand, returning, res, result)
				if remainder > 0 {
					primaryVolume -= remainder
					res.BreathedPrimary = true
				}
			}
		}

		switch seg.Kind {
		case SegmentTurnaround:
			returning = !returning
		case SegmentRecalculation:
			// Re-entering a previously exited passage: outbound again
			// relative to a new budget.
			returning = false
		}

		totalTime += time
		totalConsumed += demand
		depthTimeArea += time * depth

		res.Time = time
		res.Depth = depth
		res.GasConsumed = demand
		res.TotalTime = totalTime
		res.TotalConsumed = totalConsumed
		if totalTime > 0 {
			res.AverageDepth = depthTimeArea / totalTime
		}
		res.RemainingVolume = primaryVolume
		res.RemainingPressure = primary.PressureFor(primaryVolume)
		res.Returning = returning
		res.TurnWarning = !returning && budget.TurnPressure > 0 &&
			res.RemainingPressure < budget.TurnPressure
		res.Stages = snapshotStages(stages)

		result.Results = append(result.Results, res)
	}

	NewReentryTracker().Apply(cfg, segments, result)
	return result
}

// timeAndDepth resolves the elapsed minutes and effective depth of a segment
func (s *ConsumptionSimulator) timeAndDepth(cfg *StandingConfiguration, seg *Segment, currentDepth float64) (float64, float64) {
	switch seg.Kind {
	case SegmentSwim:
		if cfg.SwimSpeed <= 0 {
			return 0, seg.Depth
		}
		return seg.Distance / cfg.SwimSpeed, seg.Depth
	case SegmentJumpLeft, SegmentJumpRight:
		return jumpTransitMinutes, currentDepth
	case SegmentStageEvent:
		return cfg.StageTime, currentDepth
	default:
		// Turns and direction markers are instantaneous.
		return 0, currentDepth
	}
}

// consume satisfies demand from stage sources in order and returns the
// remainder owed by the primary supply.
func (s *ConsumptionSimulator) consume(
	segments []*Segment,
	index int,
	seg *Segment,
	stages []*StageSourceState,
	demand float64,
	returning bool,
	res *SegmentResult,
	result *DiveCalculationResult,
) float64 {
	remaining := demand
	consumedSoFar := 0.0

	for _, st := range stages {
		if st.Dropped {
			continue
		}
		available := st.AvailableVolume()
		if available <= 0 {
			// Exhausted but awaiting its explicit drop marker.
			continue
		}

		if available >= remaining {
			st.Consume(remaining)
			res.BreathedStages = append(res.BreathedStages, st.StageID)
			return 0
		}

		st.Consume(available)
		remaining -= available
		consumedSoFar += available
		res.BreathedStages = append(res.BreathedStages, st.StageID)

		if returning {
			continue
		}
		if hasDropMarkerAhead(segments, index, st.StageID) {
			// The planned marker will drop it; leave it in place.
			continue
		}

		st.Drop()
		res.DroppedStages = append(res.DroppedStages, st.StageID)
		advisory := &StageDropAdvisory{SegmentID: seg.ID, StageID: st.StageID}
		if seg.Kind == SegmentSwim && demand > 0 {
			split := math.Round(consumedSoFar / demand * seg.Distance)
			advisory.SplitDistance = &split
		}
		result.Advisories = append(result.Advisories, advisory)
	}

	return remaining
}

// hasDropMarkerAhead reports whether an explicit stage-event for the stage
// exists later on the current outbound leg (before the next turnaround).
func hasDropMarkerAhead(segments []*Segment, index int, stageID string) bool {
	for _, seg := range segments[index+1:] {
		switch seg.Kind {
		case SegmentTurnaround:
			return false
		case SegmentStageEvent:
			if seg.StageID == stageID {
				return true
			}
		}
	}
	return false
}

func findStage(stages []*StageSourceState, stageID string) *StageSourceState {
	for _, st := range stages {
		if st.StageID == stageID {
			return st
		}
	}
	return nil
}

func snapshotStages(stages []*StageSourceState) []*StageSourceState {
	snapshot := make([]*StageSourceState, len(stages))
	for i, st := range stages {
		snapshot[i] = st.Clone()
	}
	return snapshot
}
