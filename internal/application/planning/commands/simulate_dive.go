package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// SimulateDiveCommand runs the full gas consumption calculation for a stored
// plan. Either PlanID or PlanName identifies the plan.
type SimulateDiveCommand struct {
	PlanID   string
	PlanName string
}

// SimulateDiveHandler handles SimulateDiveCommand
type SimulateDiveHandler struct {
	plans     dive.PlanRepository
	configs   dive.ConfigurationRepository
	simulator *dive.ConsumptionSimulator
	logger    zerolog.Logger
}

// NewSimulateDiveHandler creates the handler
func NewSimulateDiveHandler(
	plans dive.PlanRepository,
	configs dive.ConfigurationRepository,
	logger zerolog.Logger,
) *SimulateDiveHandler {
	return &SimulateDiveHandler{
		plans:     plans,
		configs:   configs,
		simulator: dive.NewConsumptionSimulator(),
		logger:    logger,
	}
}

// Handle loads the plan and standing configuration and runs the simulation
func (h *SimulateDiveHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SimulateDiveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for SimulateDiveHandler")
	}

	plan, err := ResolvePlan(ctx, h.plans, cmd.PlanID, cmd.PlanName)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfiguration(ctx, h.configs)
	if err != nil {
		return nil, err
	}

	result := h.simulator.Simulate(cfg, plan.Segments())

	h.logger.Info().
		Str("plan", plan.Name()).
		Int("segments", len(result.Results)).
		Float64("turn_pressure", result.TurnPressure).
		Bool("breach", result.HasBreach()).
		Int("advisories", len(result.Advisories)).
		Msg("dive simulated")

	return result, nil
}

// ResolvePlan loads a plan by id or name, translating absence into an error
// the caller can show the diver.
func ResolvePlan(ctx context.Context, plans dive.PlanRepository, id, name string) (*dive.Plan, error) {
	var (
		plan *dive.Plan
		err  error
	)
	switch {
	case id != "":
		plan, err = plans.FindByID(ctx, id)
	case name != "":
		plan, err = plans.FindByName(ctx, name)
	default:
		return nil, fmt.Errorf("plan id or name is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}
	return plan, nil
}

// LoadConfiguration loads and validates the standing configuration,
// translating absence into an error.
func LoadConfiguration(ctx context.Context, configs dive.ConfigurationRepository) (*dive.StandingConfiguration, error) {
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no standing configuration saved")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid standing configuration: %w", err)
	}
	return cfg, nil
}
