package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// configurationRowID pins the standing configuration to a single row
const configurationRowID = 1

// GormConfigurationRepository implements dive.ConfigurationRepository using GORM
type GormConfigurationRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormConfigurationRepository creates a new GORM-based configuration repository
func NewGormConfigurationRepository(db *gorm.DB, logger zerolog.Logger) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db, logger: logger}
}

// Save upserts the single configuration row
func (r *GormConfigurationRepository) Save(ctx context.Context, cfg *dive.StandingConfiguration) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	records := make([]stageRecord, 0, len(cfg.Stages))
	for _, st := range cfg.Stages {
		records = append(records, stageRecord{
			ID:               st.ID,
			Name:             st.Name,
			TankVolume:       st.TankVolume,
			FillPressure:     st.FillPressure,
			ReserveInPrimary: st.ReserveInPrimary,
		})
	}
	stages, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode stages: %w", err)
	}

	model := ConfigurationModel{
		ID:                 configurationRowID,
		ConsumptionRate:    cfg.ConsumptionRate,
		SwimSpeed:          cfg.SwimSpeed,
		TankVolume:         cfg.TankVolume,
		FillPressure:       cfg.FillPressure,
		ConservatismMargin: cfg.ConservatismMargin,
		StageTime:          cfg.StageTime,
		Stages:             string(stages),
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// Load retrieves the standing configuration, or (nil, nil) when none has been
// saved yet or the stored row cannot be decoded
func (r *GormConfigurationRepository) Load(ctx context.Context) (*dive.StandingConfiguration, error) {
	var model ConfigurationModel
	err := r.db.WithContext(ctx).Where("id = ?", configurationRowID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var records []stageRecord
	if model.Stages != "" {
		if err := json.Unmarshal([]byte(model.Stages), &records); err != nil {
			r.logger.Warn().
				Err(err).
				Msg("Stored configuration has unreadable stages, treating as absent")
			return nil, nil
		}
	}

	stages := make([]*dive.StageDefinition, 0, len(records))
	for _, rec := range records {
		stages = append(stages, &dive.StageDefinition{
			ID:               rec.ID,
			Name:             rec.Name,
			TankVolume:       rec.TankVolume,
			FillPressure:     rec.FillPressure,
			ReserveInPrimary: rec.ReserveInPrimary,
		})
	}

	return &dive.StandingConfiguration{
		ConsumptionRate:    model.ConsumptionRate,
		SwimSpeed:          model.SwimSpeed,
		TankVolume:         model.TankVolume,
		FillPressure:       model.FillPressure,
		ConservatismMargin: model.ConservatismMargin,
		StageTime:          model.StageTime,
		Stages:             stages,
	}, nil
}
