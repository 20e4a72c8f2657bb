package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// FixSegmentDistanceCommand inverse-solves the maximum distance for one swim
// segment of a stored plan. With Apply set, the plan is updated and saved.
type FixSegmentDistanceCommand struct {
	PlanID       string
	PlanName     string
	SegmentIndex int
	Apply        bool
}

// FixSegmentDistanceResult is the solver verdict for the segment
type FixSegmentDistanceResult struct {
	SegmentID        string
	OriginalDistance float64
	FixedDistance    float64
	// Fixable is false for non-swim segments and segments that consumed no
	// gas, mirroring the solver's null result.
	Fixable bool
	Applied bool
}

// FixSegmentDistanceHandler handles FixSegmentDistanceCommand
type FixSegmentDistanceHandler struct {
	plans     dive.PlanRepository
	configs   dive.ConfigurationRepository
	simulator *dive.ConsumptionSimulator
	solver    *dive.DistanceFixService
	logger    zerolog.Logger
}

// NewFixSegmentDistanceHandler creates the handler
func NewFixSegmentDistanceHandler(
	plans dive.PlanRepository,
	configs dive.ConfigurationRepository,
	logger zerolog.Logger,
) *FixSegmentDistanceHandler {
	return &FixSegmentDistanceHandler{
		plans:     plans,
		configs:   configs,
		simulator: dive.NewConsumptionSimulator(),
		solver:    dive.NewDistanceFixService(),
		logger:    logger,
	}
}

// Handle simulates the plan, solves the segment, and optionally applies the
// fixed distance back to the stored plan.
func (h *FixSegmentDistanceHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*FixSegmentDistanceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for FixSegmentDistanceHandler")
	}

	plan, err := ResolvePlan(ctx, h.plans, cmd.PlanID, cmd.PlanName)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfiguration(ctx, h.configs)
	if err != nil {
		return nil, err
	}

	segments := plan.Segments()
	if cmd.SegmentIndex < 0 || cmd.SegmentIndex >= len(segments) {
		return nil, fmt.Errorf("segment index %d out of range", cmd.SegmentIndex)
	}
	segment := segments[cmd.SegmentIndex]

	simulation := h.simulator.Simulate(cfg, segments)
	distance, fixable := h.solver.FixDistance(
		segments,
		simulation.Results,
		simulation.RoundedUsableVolume,
		simulation.TankVolume,
		cmd.SegmentIndex,
	)

	result := &FixSegmentDistanceResult{
		SegmentID:        segment.ID,
		OriginalDistance: segment.Distance,
		FixedDistance:    distance,
		Fixable:          fixable,
	}

	if cmd.Apply && fixable {
		if err := plan.UpdateSegmentDistance(segment.ID, distance); err != nil {
			return nil, fmt.Errorf("failed to apply fixed distance: %w", err)
		}
		if err := h.plans.Save(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to save plan: %w", err)
		}
		result.Applied = true
	}

	h.logger.Info().
		Str("plan", plan.Name()).
		Int("segment", cmd.SegmentIndex).
		Float64("distance", distance).
		Bool("fixable", fixable).
		Bool("applied", result.Applied).
		Msg("distance fix solved")

	return result, nil
}
