package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

type simulateCommandStub struct{}

func TestPrometheusMiddleware_RecordsSimulationOutcome(t *testing.T) {
	// Arrange - a breaching two-segment run with one advisory
	commands := NewCommandMetricsCollector()
	simulations := NewSimulationMetricsCollector()
	middleware := PrometheusMiddleware(commands, simulations)

	result := &dive.DiveCalculationResult{
		Results: []*dive.SegmentResult{
			{TurnWarning: true},
			{},
		},
		Advisories: []*dive.StageDropAdvisory{{StageID: "s1"}},
	}
	next := func(ctx context.Context, request common.Request) (common.Response, error) {
		return result, nil
	}

	// Act
	response, err := middleware(context.Background(), &simulateCommandStub{}, next)

	// Assert - outcome flows through the middleware into the collectors
	require.NoError(t, err)
	assert.Same(t, result, response)
	assert.Equal(t, 1.0, testutil.ToFloat64(simulations.simulationsTotal.WithLabelValues("breach")))
	assert.Equal(t, 1.0, testutil.ToFloat64(simulations.breachesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(simulations.advisoriesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(commands.commandsTotal.WithLabelValues("simulateCommandStub", "success")))
}

func TestPrometheusMiddleware_ClearRunNotCountedAsBreach(t *testing.T) {
	// Arrange
	commands := NewCommandMetricsCollector()
	simulations := NewSimulationMetricsCollector()
	middleware := PrometheusMiddleware(commands, simulations)

	result := &dive.DiveCalculationResult{
		Results: []*dive.SegmentResult{{}},
	}
	next := func(ctx context.Context, request common.Request) (common.Response, error) {
		return result, nil
	}

	// Act
	_, err := middleware(context.Background(), &simulateCommandStub{}, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(simulations.simulationsTotal.WithLabelValues("clear")))
	assert.Equal(t, 0.0, testutil.ToFloat64(simulations.breachesTotal))
}

func TestPrometheusMiddleware_FailureCountedAgainstCommand(t *testing.T) {
	// Arrange
	commands := NewCommandMetricsCollector()
	simulations := NewSimulationMetricsCollector()
	middleware := PrometheusMiddleware(commands, simulations)

	next := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("plan not found")
	}

	// Act
	_, err := middleware(context.Background(), &simulateCommandStub{}, next)

	// Assert - the error passes through and no simulation is recorded
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(commands.commandsTotal.WithLabelValues("simulateCommandStub", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(simulations.simulationsTotal.WithLabelValues("breach")))
	assert.Equal(t, 0.0, testutil.ToFloat64(simulations.simulationsTotal.WithLabelValues("clear")))
}
