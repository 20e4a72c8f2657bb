package dive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

func TestFixDistance_ShrinksBreachingSwim(t *testing.T) {
	// Arrange - 600 m at 30 m burns 4800 L against a 1540 L usable budget
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{mustSwim(t, 30, 600)}
	result := simulator.Simulate(cfg, segments)
	require.True(t, result.HasBreach())

	// Act
	distance, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 0)

	// Assert
	require.True(t, ok)
	assert.Equal(t, 192.0, distance)

	// Act - re-simulating at the fixed distance clears the warning
	fixed := []*dive.Segment{mustSwim(t, 30, distance)}
	refixed := simulator.Simulate(cfg, fixed)

	// Assert
	assert.False(t, refixed.HasBreach())
}

func TestFixDistance_NonSwimSegment(t *testing.T) {
	// Arrange
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
	}
	result := simulator.Simulate(cfg, segments)

	// Act
	_, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 1)

	// Assert
	assert.False(t, ok)
}

func TestFixDistance_SegmentWithoutConsumption(t *testing.T) {
	// Arrange - a zero-distance swim burns nothing
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{mustSwim(t, 20, 0)}
	result := simulator.Simulate(cfg, segments)

	// Act
	_, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 0)

	// Assert
	assert.False(t, ok)
}

func TestFixDistance_IndexOutOfRange(t *testing.T) {
	// Arrange
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{mustSwim(t, 20, 200)}
	result := simulator.Simulate(cfg, segments)

	// Act / Assert
	_, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, -1)
	assert.False(t, ok)
	_, ok = solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 5)
	assert.False(t, ok)
}

func TestFixDistance_BudgetAlreadyExhausted(t *testing.T) {
	// Arrange - the first swim alone blows past the usable budget
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{
		mustSwim(t, 30, 600),
		mustSwim(t, 30, 100),
	}
	result := simulator.Simulate(cfg, segments)

	// Act
	distance, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 1)

	// Assert - solvable, but nothing is left: the segment shrinks to zero
	require.True(t, ok)
	assert.Equal(t, 0.0, distance)
}

func TestFixDistance_UnderReentryThreshold(t *testing.T) {
	// Arrange - a 300 m side swim against the 90 bar post-recalculation
	// threshold
	cfg := baseConfiguration()
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentRecalculation),
		mustSwim(t, 20, 300),
	}
	result := simulator.Simulate(cfg, segments)
	require.True(t, result.FinalResult().TurnWarning)

	// Act
	distance, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 4)

	// Assert - 460 L sit above the threshold at the segment start
	require.True(t, ok)
	assert.InDelta(t, 76.0, distance, 1.0)

	// Act - the shrunken side swim no longer warns
	fixed := []*dive.Segment{
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentTurnaround),
		mustSwim(t, 20, 200),
		mustMarker(t, dive.SegmentRecalculation),
		mustSwim(t, 20, 76),
	}
	refixed := simulator.Simulate(cfg, fixed)

	// Assert
	assert.False(t, refixed.FinalResult().TurnWarning)
}

func TestFixDistance_KillStageBudgetIncludesStageGas(t *testing.T) {
	// Arrange - the carried stage's 1200 L count toward the side trip
	cfg := baseConfiguration()
	cfg.Stages = []*dive.StageDefinition{
		{ID: "s1", TankVolume: 8, FillPressure: 200},
	}
	simulator := dive.NewConsumptionSimulator()
	solver := dive.NewDistanceFixService()
	segments := append(killStagePlan(t), mustSwim(t, 10, 600))
	result := simulator.Simulate(cfg, segments)
	require.True(t, result.FinalResult().TurnWarning)

	// Act
	distance, ok := solver.FixDistance(segments, result.Results, result.RoundedUsableVolume, result.TankVolume, 7)

	// Assert - 120 L of primary above the threshold plus the 1200 L stage
	require.True(t, ok)
	assert.InDelta(t, 330.0, distance, 1.0)
}
