package dive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

func TestReentry_SymmetricPlanHasZeroExitDistance(t *testing.T) {
	// Arrange - 200 m out and 200 m back leaves the diver at the exit
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentRecalculation),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert
	final := result.FinalResult()
	assert.Equal(t, 0.0, final.DistanceFromExit)
	assert.Equal(t, 0.0, final.TimeFromExit)
	assert.Equal(t, 0.0, final.GasToExit)
}

func TestReentry_AsymmetricPlanTracksExitDistance(t *testing.T) {
	// Arrange - 200 m out, only 150 m back
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 150),
		mustMarker(t, dive.SegmentRecalculation),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert - 50 m from the exit at 10 m/min and 3 atm
	final := result.FinalResult()
	assert.Equal(t, 50.0, final.DistanceFromExit)
	assert.Equal(t, 5.0, final.TimeFromExit)
	assert.Equal(t, 300.0, final.GasToExit)
}

func TestReentry_BackGasScenario(t *testing.T) {
	// Arrange - no stages anywhere: plain thirds of what is left
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentRecalculation),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert - 2440 L remain; a third is 813 L, floored to 30 bar
	rec := result.FinalResult().Recalculation
	require.NotNil(t, rec)
	assert.Equal(t, dive.ScenarioBackGasReentry, rec.Scenario)
	assert.True(t, rec.Possible)
	assert.Equal(t, dive.BackGasSource, rec.Source)
	assert.Equal(t, 30.0, rec.AvailablePressure)
	assert.Equal(t, 660.0, rec.AvailableVolume)
	assert.Equal(t, 90.0, rec.Threshold)
}

func TestReentry_ThresholdReplacesTurnPressure(t *testing.T) {
	// Arrange - after the recalculation, 90 bar governs instead of 150
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()

	base := func() []*dive.Segment {
		return []*dive.Segment{
			mustSwim(t, 20, 200),
			mustMarker(t, dive.SegmentTurnaround),
			mustSwim(t, 20, 200),
			mustMarker(t, dive.SegmentRecalculation),
		}
	}

	// Act - a short side swim stays above the threshold
	short := append(base(), mustSwim(t, 20, 30))
	shortResult := simulator.Simulate(cfg, short)

	// Assert - 102.7 bar is below the 150 bar turn pressure but safe here
	final := shortResult.FinalResult()
	assert.InDelta(t, 102.73, final.RemainingPressure, 0.01)
	assert.False(t, final.TurnWarning)

	// Act - a longer side swim crosses it
	long := append(base(), mustSwim(t, 20, 100))
	longResult := simulator.Simulate(cfg, long)

	// Assert
	final = longResult.FinalResult()
	assert.InDelta(t, 83.64, final.RemainingPressure, 0.01)
	assert.True(t, final.TurnWarning)
}

func killStagePlan(t *testing.T) []*dive.Segment {
	return []*dive.Segment{
		mustSwim(t, 10, 100),
		mustStageEvent(t, "s1"),
		mustSwim(t, 10, 100),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 10, 100),
		mustStageEvent(t, "s1"),
		mustMarker(t, dive.SegmentRecalculation),
	}
}

func TestReentry_KillStageScenario(t *testing.T) {
	// Arrange - an 8L stage at 200 bar, breathed to 150 bar outbound, is
	// carried again at the recalculation point
	cfg := baseConfiguration()
	cfg.Stages = []*dive.StageDefinition{
		{ID: "s1", TankVolume: 8, FillPressure: 200},
	}
	simulator := dive.NewConsumptionSimulator()

	// Act
	result := simulator.Simulate(cfg, killStagePlan(t))

	// Assert - 1200 L of stage gas funds the trip; exit needs 400 L and
	// half of the 3640 L primary covers both
	rec := result.FinalResult().Recalculation
	require.NotNil(t, rec)
	assert.Equal(t, dive.ScenarioKillStage, rec.Scenario)
	assert.True(t, rec.Possible)
	assert.Equal(t, "s1", rec.Source)
	assert.Equal(t, 1200.0, rec.AvailableVolume)
	assert.Equal(t, 50.0, rec.AvailablePressure)
	assert.Equal(t, 400.0, rec.GasToExit)
	assert.Equal(t, 160.0, rec.Threshold)
}

func TestReentry_KillStageSideTripBreathesStage(t *testing.T) {
	// Arrange
	cfg := baseConfiguration()
	cfg.Stages = []*dive.StageDefinition{
		{ID: "s1", TankVolume: 8, FillPressure: 200},
	}
	simulator := dive.NewConsumptionSimulator()
	segments := append(killStagePlan(t), mustSwim(t, 10, 70))

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert - the picked-up stage covers the side swim entirely and the
	// primary stays above the 160 bar threshold
	final := result.FinalResult()
	assert.Equal(t, []string{"s1"}, final.BreathedStages)
	assert.InDelta(t, 165.45, final.RemainingPressure, 0.01)
	assert.False(t, final.TurnWarning)
}

func TestReentry_KillStageNotPossibleWhenPrimaryLow(t *testing.T) {
	// Arrange - longer penetration leaves too little primary to cover the
	// exit plus a fully burned stage
	cfg := baseConfiguration()
	cfg.Stages = []*dive.StageDefinition{
		{ID: "s1", TankVolume: 8, FillPressure: 200},
	}
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 10, 100),
		mustStageEvent(t, "s1"),
		mustSwim(t, 10, 400),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 10, 400),
		mustStageEvent(t, "s1"),
		mustMarker(t, dive.SegmentRecalculation),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert
	rec := result.FinalResult().Recalculation
	require.NotNil(t, rec)
	assert.Equal(t, dive.ScenarioKillStage, rec.Scenario)
	assert.False(t, rec.Possible)
}

func TestReentry_DroppedStageGasIsReserved(t *testing.T) {
	// Arrange - the stage stays dropped on the line with 1200 L in it
	cfg := baseConfiguration()
	cfg.Stages = []*dive.StageDefinition{
		{ID: "s1", TankVolume: 8, FillPressure: 200},
	}
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 10, 100),
		mustStageEvent(t, "s1"),
		mustSwim(t, 10, 100),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 10, 100),
		mustMarker(t, dive.SegmentRecalculation),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert - (3840 - 1200 - 2*400) / 3 = 613 L, floored to 20 bar
	rec := result.FinalResult().Recalculation
	require.NotNil(t, rec)
	assert.Equal(t, dive.ScenarioBackGasReentry, rec.Scenario)
	assert.Equal(t, 20.0, rec.AvailablePressure)
	assert.Equal(t, 440.0, rec.AvailableVolume)
	assert.Equal(t, 160.0, rec.Threshold)
}

func TestReentry_TurnaroundClearsThreshold(t *testing.T) {
	// Arrange - after the side trip's turnaround the segments are returning,
	// so neither the threshold nor the turn pressure warns
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentRecalculation),
		mustSwim(t, 20, 30),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 30),
	}

	// Act
	result := simulator.Simulate(cfg, segments)

	// Assert
	final := result.FinalResult()
	assert.True(t, final.Returning)
	assert.False(t, final.TurnWarning)
	assert.False(t, result.HasBreach())
}
