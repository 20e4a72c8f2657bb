package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// GetConfigurationQuery fetches the standing configuration
type GetConfigurationQuery struct{}

// GetConfigurationHandler handles GetConfigurationQuery
type GetConfigurationHandler struct {
	configs dive.ConfigurationRepository
}

// NewGetConfigurationHandler creates the handler
func NewGetConfigurationHandler(configs dive.ConfigurationRepository) *GetConfigurationHandler {
	return &GetConfigurationHandler{configs: configs}
}

// Handle returns the configuration, or nil when none has been saved
func (h *GetConfigurationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetConfigurationQuery); !ok {
		return nil, fmt.Errorf("invalid request type for GetConfigurationHandler")
	}
	return h.configs.Load(ctx)
}
