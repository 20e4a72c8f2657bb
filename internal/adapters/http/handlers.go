package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/queries"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// Handlers dispatches HTTP requests through the application mediator
type Handlers struct {
	mediator common.Mediator
	logger   zerolog.Logger
}

// NewHandlers creates the HTTP handlers
func NewHandlers(mediator common.Mediator, logger zerolog.Logger) *Handlers {
	return &Handlers{mediator: mediator, logger: logger}
}

// HandleHealth reports liveness
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleListPlans returns all stored plans
func (h *Handlers) HandleListPlans(c *gin.Context) {
	response, err := h.mediator.Send(c.Request.Context(), &queries.ListPlansQuery{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plans := response.([]*dive.Plan)
	payloads := make([]planPayload, 0, len(plans))
	for _, plan := range plans {
		payloads = append(payloads, toPlanPayload(plan))
	}
	c.JSON(http.StatusOK, payloads)
}

// HandleGetPlan returns one plan by id
func (h *Handlers) HandleGetPlan(c *gin.Context) {
	response, err := h.mediator.Send(c.Request.Context(), &queries.GetPlanQuery{PlanID: c.Param("id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plan, _ := response.(*dive.Plan)
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, toPlanPayload(plan))
}

// HandleSavePlan creates a plan, or replaces it when the payload carries an id
func (h *Handlers) HandleSavePlan(c *gin.Context) {
	var payload planPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segments, err := toDomainSegments(payload.Segments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan *dive.Plan
	if payload.ID != "" {
		plan, err = dive.RestorePlan(payload.ID, payload.Name, segments)
	} else {
		plan, err = dive.NewPlan(payload.Name)
		for _, seg := range segments {
			if err != nil {
				break
			}
			err = plan.AddSegment(seg)
		}
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.mediator.Send(c.Request.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPlanPayload(plan))
}

// HandleDeletePlan removes a stored plan
func (h *Handlers) HandleDeletePlan(c *gin.Context) {
	_, err := h.mediator.Send(c.Request.Context(), &commands.DeletePlanCommand{PlanID: c.Param("id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSimulate runs the gas calculation for a stored plan
func (h *Handlers) HandleSimulate(c *gin.Context) {
	response, err := h.mediator.Send(c.Request.Context(), &commands.SimulateDiveCommand{PlanID: c.Param("id")})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result := response.(*dive.DiveCalculationResult)
	c.JSON(http.StatusOK, toSimulationPayload(result))
}

// fixDistanceRequest is the body of a distance fix call
type fixDistanceRequest struct {
	SegmentIndex int  `json:"segmentIndex"`
	Apply        bool `json:"apply"`
}

// HandleFixDistance inverse-solves a swim segment's maximum distance
func (h *Handlers) HandleFixDistance(c *gin.Context) {
	var req fixDistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.mediator.Send(c.Request.Context(), &commands.FixSegmentDistanceCommand{
		PlanID:       c.Param("id"),
		SegmentIndex: req.SegmentIndex,
		Apply:        req.Apply,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result := response.(*commands.FixSegmentDistanceResult)
	c.JSON(http.StatusOK, gin.H{
		"segmentId":        result.SegmentID,
		"originalDistance": result.OriginalDistance,
		"fixedDistance":    result.FixedDistance,
		"fixable":          result.Fixable,
		"applied":          result.Applied,
	})
}

// HandleGetConfiguration returns the standing configuration
func (h *Handlers) HandleGetConfiguration(c *gin.Context) {
	response, err := h.mediator.Send(c.Request.Context(), &queries.GetConfigurationQuery{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cfg, _ := response.(*dive.StandingConfiguration)
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no standing configuration saved"})
		return
	}
	c.JSON(http.StatusOK, toConfigurationPayload(cfg))
}

// HandlePutConfiguration replaces the standing configuration
func (h *Handlers) HandlePutConfiguration(c *gin.Context) {
	var payload configurationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := toDomainConfiguration(payload)
	if _, err := h.mediator.Send(c.Request.Context(), &commands.SaveConfigurationCommand{Configuration: cfg}); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toConfigurationPayload(cfg))
}
