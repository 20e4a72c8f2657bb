package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// GetPlanQuery fetches a single plan by id or name
type GetPlanQuery struct {
	PlanID   string
	PlanName string
}

// GetPlanHandler handles GetPlanQuery
type GetPlanHandler struct {
	plans dive.PlanRepository
}

// NewGetPlanHandler creates the handler
func NewGetPlanHandler(plans dive.PlanRepository) *GetPlanHandler {
	return &GetPlanHandler{plans: plans}
}

// Handle returns the plan, or nil when it does not exist
func (h *GetPlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type for GetPlanHandler")
	}

	switch {
	case query.PlanID != "":
		return h.plans.FindByID(ctx, query.PlanID)
	case query.PlanName != "":
		return h.plans.FindByName(ctx, query.PlanName)
	default:
		return nil, fmt.Errorf("plan id or name is required")
	}
}
