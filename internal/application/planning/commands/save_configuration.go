package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/application/common"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// SaveConfigurationCommand persists the standing configuration
type SaveConfigurationCommand struct {
	Configuration *dive.StandingConfiguration
}

// SaveConfigurationHandler handles SaveConfigurationCommand
type SaveConfigurationHandler struct {
	configs dive.ConfigurationRepository
	logger  zerolog.Logger
}

// NewSaveConfigurationHandler creates the handler
func NewSaveConfigurationHandler(configs dive.ConfigurationRepository, logger zerolog.Logger) *SaveConfigurationHandler {
	return &SaveConfigurationHandler{configs: configs, logger: logger}
}

func (h *SaveConfigurationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SaveConfigurationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type for SaveConfigurationHandler")
	}
	if cmd.Configuration == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cmd.Configuration.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := h.configs.Save(ctx, cmd.Configuration); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	h.logger.Debug().
		Int("stages", len(cmd.Configuration.Stages)).
		Msg("standing configuration saved")
	return cmd.Configuration, nil
}
