package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// ListPlansQuery lists all stored plans
type ListPlansQuery struct{}

// ListPlansHandler handles ListPlansQuery
type ListPlansHandler struct {
	plans dive.PlanRepository
}

// NewListPlansHandler creates the handler
func NewListPlansHandler(plans dive.PlanRepository) *ListPlansHandler {
	return &ListPlansHandler{plans: plans}
}

func (h *ListPlansHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListPlansQuery); !ok {
		return nil, fmt.Errorf("invalid request type for ListPlansHandler")
	}
	return h.plans.List(ctx)
}
