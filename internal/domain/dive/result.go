package dive

import "fmt"

// ReentryScenario tags how a side-passage re-entry would be funded
type ReentryScenario string

const (
	// ScenarioKillStage burns a carried stage completely during the side
	// trip, exiting on primary gas alone.
	ScenarioKillStage ReentryScenario = "KILL_STAGE"
	// ScenarioBackGasReentry funds the side trip from the primary reserve.
	ScenarioBackGasReentry ReentryScenario = "BACKGAS_REENTRY"
)

// BackGasSource is the Source value on a RecalculationResult funded from the
// primary supply rather than a stage.
const BackGasSource = "backgas"

// RecalculationResult is the feasibility verdict computed at a recalculation
// segment for re-entering a side passage.
type RecalculationResult struct {
	Scenario ReentryScenario
	Possible bool
	// AvailableVolume is the side-trip gas budget in litres; for a
	// kill-stage re-entry it is the carried stage's full content.
	AvailableVolume float64
	// AvailablePressure is the budget expressed in primary-tank bar,
	// rounded down to the nearest 10.
	AvailablePressure float64
	// Source is the stage id funding the trip, or BackGasSource.
	Source string
	// GasToExit is the gas needed to physically reach the exit from this
	// point, ignoring the side trip.
	GasToExit float64
	// Threshold replaces the normal turn pressure for outbound segments
	// after this recalculation, until the next turnaround.
	Threshold float64
}

// StageDropAdvisory asks the external editor to materialize an explicit drop
// marker for a stage the simulator had to drop inline.
type StageDropAdvisory struct {
	SegmentID string
	StageID   string
	// SplitDistance is set only for swim segments: the distance into the
	// swim, in metres, at which the drop occurred.
	SplitDistance *float64
}

// SegmentResult is the immutable snapshot emitted for each segment
type SegmentResult struct {
	SegmentID string
	Kind      SegmentKind

	// Time is the minutes elapsed in this segment; Depth the effective
	// depth it was spent at.
	Time  float64
	Depth float64

	// GasConsumed is the litres breathed this segment from all sources;
	// TotalConsumed and TotalTime are cumulative; AverageDepth is the
	// time-weighted running average.
	GasConsumed   float64
	TotalConsumed float64
	TotalTime     float64
	AverageDepth  float64

	// RemainingVolume/RemainingPressure track the primary supply. Pressure
	// may go negative when a plan is over budget; that is how a breach is
	// made visible rather than silently clamped.
	RemainingVolume   float64
	RemainingPressure float64

	Stages          []*StageSourceState
	DroppedStages   []string
	BreathedStages  []string
	BreathedPrimary bool

	TurnWarning bool
	Returning   bool

	DistanceFromExit float64
	TimeFromExit     float64
	GasToExit        float64

	// Recalculation is present only on recalculation segments.
	Recalculation *RecalculationResult
}

// DiveCalculationResult is the full output of a simulation run
type DiveCalculationResult struct {
	Results []*SegmentResult

	TankVolume            float64
	TotalVolume           float64
	EffectiveVolume       float64
	UsableVolume          float64
	RoundedUsableVolume   float64
	RoundedUsablePressure float64
	TurnPressure          float64

	Advisories []*StageDropAdvisory
}

// FinalResult returns the last segment snapshot, or nil for an empty plan
func (r *DiveCalculationResult) FinalResult() *SegmentResult {
	if len(r.Results) == 0 {
		return nil
	}
	return r.Results[len(r.Results)-1]
}

// HasBreach reports whether any segment tripped its safety threshold
func (r *DiveCalculationResult) HasBreach() bool {
	for _, res := range r.Results {
		if res.TurnWarning {
			return true
		}
	}
	return false
}

func (r *DiveCalculationResult) String() string {
	return fmt.Sprintf("DiveCalculationResult(segments=%d, usable=%.0fL, turn=%.0fbar, advisories=%d)",
		len(r.Results), r.UsableVolume, r.TurnPressure, len(r.Advisories))
}
