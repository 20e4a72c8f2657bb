package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// SavePlanCommand persists a plan (new or edited)
type SavePlanCommand struct {
	Plan *dive.Plan
}

// SavePlanHandler handles SavePlanCommand
type SavePlanHandler struct {
	plans  dive.PlanRepository
	logger zerolog.Logger
}

// NewSavePlanHandler creates the handler
func NewSavePlanHandler(plans dive.PlanRepository, logger zerolog.Logger) *SavePlanHandler {
	return &SavePlanHandler{plans: plans, logger: logger}
}

func (h *SavePlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SavePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for SavePlanHandler")
	}
	if cmd.Plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}

	if err := h.plans.Save(ctx, cmd.Plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	h.logger.Debug().Str("plan", cmd.Plan.Name()).Msg("plan saved")
	return cmd.Plan, nil
}

// DeletePlanCommand removes a stored plan
type DeletePlanCommand struct {
	PlanID string
}

// DeletePlanHandler handles DeletePlanCommand
type DeletePlanHandler struct {
	plans  dive.PlanRepository
	logger zerolog.Logger
}

// NewDeletePlanHandler creates the handler
func NewDeletePlanHandler(plans dive.PlanRepository, logger zerolog.Logger) *DeletePlanHandler {
	return &DeletePlanHandler{plans: plans, logger: logger}
}

func (h *DeletePlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DeletePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for DeletePlanHandler")
	}
	if cmd.PlanID == "" {
		return nil, fmt.Errorf("plan id is required")
	}

	if err := h.plans.Delete(ctx, cmd.PlanID); err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}

	h.logger.Debug().Str("plan_id", cmd.PlanID).Msg("plan deleted")
	return nil, nil
}
