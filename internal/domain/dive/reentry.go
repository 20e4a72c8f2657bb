package dive

import (
	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// ReentryTracker is the second simulation pass.
//
// It consumes the finished per-segment snapshots plus the raw segment list
// and maintains what the consumption pass cannot know mid-flight: the signed
// distance back to the exit (outbound swims add, returning swims subtract),
// the gas needed to physically reach the exit from each point, and the
// feasibility verdict of every recalculation segment.
//
// A recalculation's replacement threshold applies to outbound segments after
// it, up to but not including the next turnaround, where normal turn-pressure
// logic resumes.
type ReentryTracker struct{}

// NewReentryTracker creates a new tracker instance
func NewReentryTracker() *ReentryTracker {
	return &ReentryTracker{}
}

// Apply annotates the result set in place
func (t *ReentryTracker) Apply(cfg *StandingConfiguration, segments []*Segment, result *DiveCalculationResult) {
	position := 0.0
	var active *RecalculationResult

	for i, seg := range segments {
		res := result.Results[i]

		switch seg.Kind {
		case SegmentSwim:
			if res.Returning {
				position -= seg.Distance
			} else {
				position += seg.Distance
			}
		case SegmentTurnaround:
			active = nil
		}

		distance := position
		if distance < 0 {
			distance = 0
		}
		res.DistanceFromExit = distance
		if cfg.SwimSpeed > 0 {
			res.TimeFromExit = distance / cfg.SwimSpeed
		}
		res.GasToExit = cfg.ConsumptionRate * shared.Atmospheres(res.Depth) * res.TimeFromExit

		if active != nil {
			res.TurnWarning = !res.Returning && active.Threshold > 0 &&
				res.RemainingPressure < active.Threshold
		}

		if seg.Kind == SegmentRecalculation {
			res.Recalculation = t.evaluate(cfg, res)
			active = res.Recalculation
		}
	}
}

// evaluate picks exactly one re-entry scenario, in priority order:
//
//  1. Kill-stage: a carried stage still holds gas. The side trip burns the
//     stage completely; the diver must still be able to exit on primary
//     alone with half of it in reserve.
//  2. Back-gas with a dropped stage holding gas: the stage's content is
//     reserved, the rest of primary funds the trip by thirds.
//  3. Back-gas with no stage gas: same, without the reservation.
func (t *ReentryTracker) evaluate(cfg *StandingConfiguration, res *SegmentResult) *RecalculationResult {
	primary := cfg.PrimaryTank()
	remaining := res.RemainingVolume
	gasToExit := res.GasToExit

	for _, st := range res.Stages {
		if st.Dropped || st.Pressure <= 0 {
			continue
		}
		stageVolume := st.RemainingVolume()
		return &RecalculationResult{
			Scenario:          ScenarioKillStage,
			Possible:          gasToExit+stageVolume <= remaining/2.0,
			AvailableVolume:   stageVolume,
			AvailablePressure: shared.RoundDownToTen(primary.PressureFor(stageVolume)),
			Source:            st.StageID,
			GasToExit:         gasToExit,
			Threshold:         shared.RoundDownToTen(res.RemainingPressure),
		}
	}

	reservation := 0.0
	for _, st := range res.Stages {
		if st.Dropped && st.Pressure > 0 {
			reservation = st.RemainingVolume()
			break
		}
	}

	available := (remaining - reservation - 2.0*gasToExit) / 3.0
	availablePressure := shared.RoundDownToTen(primary.PressureFor(available))
	return &RecalculationResult{
		Scenario:          ScenarioBackGasReentry,
		Possible:          availablePressure > 0,
		AvailableVolume:   primary.VolumeFor(availablePressure),
		AvailablePressure: availablePressure,
		Source:            BackGasSource,
		GasToExit:         gasToExit,
		Threshold:         shared.RoundUpToTen(res.RemainingPressure - availablePressure),
	}
}
