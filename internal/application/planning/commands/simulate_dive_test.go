package commands_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/caveplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
	"github.com/andrescamacho/caveplan-go/test/helpers"
)

type fixture struct {
	plans   *persistence.GormPlanRepository
	configs *persistence.GormConfigurationRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	return &fixture{
		plans:   persistence.NewGormPlanRepository(db, zerolog.Nop()),
		configs: persistence.NewGormConfigurationRepository(db, zerolog.Nop()),
	}
}

func (f *fixture) saveConfiguration(t *testing.T) {
	t.Helper()
	cfg := &dive.StandingConfiguration{
		ConsumptionRate: 20,
		SwimSpeed:       10,
		TankVolume:      22,
		FillPressure:    220,
		StageTime:       5,
	}
	require.NoError(t, f.configs.Save(context.Background(), cfg))
}

func (f *fixture) savePlan(t *testing.T, segments ...*dive.Segment) *dive.Plan {
	t.Helper()
	plan, err := dive.NewPlan("main line")
	require.NoError(t, err)
	for _, seg := range segments {
		require.NoError(t, plan.AddSegment(seg))
	}
	require.NoError(t, f.plans.Save(context.Background(), plan))
	return plan
}

func swimSegment(t *testing.T, depth, distance float64) *dive.Segment {
	t.Helper()
	seg, err := dive.NewSwimSegment(depth, distance)
	require.NoError(t, err)
	return seg
}

func TestSimulateDive_ByName(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.saveConfiguration(t)
	f.savePlan(t, swimSegment(t, 20, 200))
	handler := commands.NewSimulateDiveHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	response, err := handler.Handle(context.Background(), &commands.SimulateDiveCommand{PlanName: "main line"})

	// Assert
	require.NoError(t, err)
	result := response.(*dive.DiveCalculationResult)
	require.Len(t, result.Results, 1)
	assert.Equal(t, 150.0, result.TurnPressure)
	assert.Equal(t, 3640.0, result.FinalResult().RemainingVolume)
}

func TestSimulateDive_PlanNotFound(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.saveConfiguration(t)
	handler := commands.NewSimulateDiveHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	_, err := handler.Handle(context.Background(), &commands.SimulateDiveCommand{PlanName: "missing"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan not found")
}

func TestSimulateDive_NoConfiguration(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.savePlan(t, swimSegment(t, 20, 200))
	handler := commands.NewSimulateDiveHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	_, err := handler.Handle(context.Background(), &commands.SimulateDiveCommand{PlanName: "main line"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no standing configuration")
}

func TestSimulateDive_MissingIdentity(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := commands.NewSimulateDiveHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	_, err := handler.Handle(context.Background(), &commands.SimulateDiveCommand{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan id or name is required")
}

func TestFixSegmentDistance_SolveWithoutApply(t *testing.T) {
	// Arrange - 600 m at 30 m breaches the budget; 192 m fits
	f := newFixture(t)
	f.saveConfiguration(t)
	plan := f.savePlan(t, swimSegment(t, 30, 600))
	handler := commands.NewFixSegmentDistanceHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	response, err := handler.Handle(context.Background(), &commands.FixSegmentDistanceCommand{
		PlanName:     "main line",
		SegmentIndex: 0,
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.FixSegmentDistanceResult)
	assert.True(t, result.Fixable)
	assert.False(t, result.Applied)
	assert.Equal(t, 600.0, result.OriginalDistance)
	assert.Equal(t, 192.0, result.FixedDistance)

	// Assert - the stored plan is untouched
	stored, err := f.plans.FindByID(context.Background(), plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 600.0, stored.Segments()[0].Distance)
}

func TestFixSegmentDistance_ApplyPersists(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.saveConfiguration(t)
	plan := f.savePlan(t, swimSegment(t, 30, 600))
	handler := commands.NewFixSegmentDistanceHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	response, err := handler.Handle(context.Background(), &commands.FixSegmentDistanceCommand{
		PlanID:       plan.ID(),
		SegmentIndex: 0,
		Apply:        true,
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.FixSegmentDistanceResult)
	assert.True(t, result.Applied)

	stored, err := f.plans.FindByID(context.Background(), plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 192.0, stored.Segments()[0].Distance)
}

func TestFixSegmentDistance_IndexOutOfRange(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.saveConfiguration(t)
	f.savePlan(t, swimSegment(t, 30, 600))
	handler := commands.NewFixSegmentDistanceHandler(f.plans, f.configs, zerolog.Nop())

	// Act
	_, err := handler.Handle(context.Background(), &commands.FixSegmentDistanceCommand{
		PlanName:     "main line",
		SegmentIndex: 3,
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSaveConfiguration_RejectsInvalid(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := commands.NewSaveConfigurationHandler(f.configs, zerolog.Nop())
	cfg := &dive.StandingConfiguration{ConsumptionRate: -1}

	// Act
	_, err := handler.Handle(context.Background(), &commands.SaveConfigurationCommand{Configuration: cfg})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
