package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// GormPlanRepository implements dive.PlanRepository using GORM
type GormPlanRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormPlanRepository creates a new GORM-based plan repository
func NewGormPlanRepository(db *gorm.DB, logger zerolog.Logger) *GormPlanRepository {
	return &GormPlanRepository{db: db, logger: logger}
}

// Save upserts the plan row and replaces its segment rows in one transaction
func (r *GormPlanRepository) Save(ctx context.Context, plan *dive.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := PlanModel{
			ID:   plan.ID(),
			Name: plan.Name(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}

		if err := tx.Where("plan_id = ?", plan.ID()).Delete(&SegmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear plan segments: %w", err)
		}

		segments := plan.Segments()
		if len(segments) == 0 {
			return nil
		}
		rows := make([]SegmentModel, 0, len(segments))
		for i, seg := range segments {
			rows = append(rows, SegmentModel{
				ID:       seg.ID,
				PlanID:   plan.ID(),
				Position: i,
				Kind:     string(seg.Kind),
				Depth:    seg.Depth,
				Distance: seg.Distance,
				StageID:  seg.StageID,
				Note:     seg.Note,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save plan segments: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a plan by its identity, or (nil, nil) if absent
func (r *GormPlanRepository) FindByID(ctx context.Context, id string) (*dive.Plan, error) {
	var model PlanModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return r.restore(ctx, &model)
}

// FindByName retrieves a plan by name, or (nil, nil) if absent
func (r *GormPlanRepository) FindByName(ctx context.Context, name string) (*dive.Plan, error) {
	var model PlanModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return r.restore(ctx, &model)
}

// List retrieves all plans ordered by name. Plans whose stored rows can no
// longer be decoded are skipped.
func (r *GormPlanRepository) List(ctx context.Context) ([]*dive.Plan, error) {
	var models []PlanModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*dive.Plan, 0, len(models))
	for i := range models {
		plan, err := r.restore(ctx, &models[i])
		if err != nil {
			return nil, err
		}
		if plan != nil {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

// Delete removes a plan and its segments. Deleting an absent plan is a no-op.
func (r *GormPlanRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&SegmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete plan segments: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&PlanModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		return nil
	})
}

// restore rebuilds the domain plan from its rows. Undecodable rows make the
// whole plan absent rather than an error.
func (r *GormPlanRepository) restore(ctx context.Context, model *PlanModel) (*dive.Plan, error) {
	var rows []SegmentModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", model.ID).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load plan segments: %w", err)
	}

	segments := make([]*dive.Segment, 0, len(rows))
	for _, row := range rows {
		kind, err := dive.ParseSegmentKind(row.Kind)
		if err != nil {
			r.logger.Warn().
				Str("plan_id", model.ID).
				Str("segment_id", row.ID).
				Str("kind", row.Kind).
				Msg("Skipping plan with unreadable segment kind")
			return nil, nil
		}
		segments = append(segments, &dive.Segment{
			ID:       row.ID,
			Kind:     kind,
			Depth:    row.Depth,
			Distance: row.Distance,
			StageID:  row.StageID,
			Note:     row.Note,
		})
	}

	plan, err := dive.RestorePlan(model.ID, model.Name, segments)
	if err != nil {
		r.logger.Warn().
			Str("plan_id", model.ID).
			Err(err).
			Msg("Skipping plan that cannot be restored")
		return nil, nil
	}
	return plan, nil
}
