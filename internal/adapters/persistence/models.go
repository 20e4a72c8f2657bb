package persistence

import (
	"time"
)

// ConfigurationModel represents the standing_configuration table.
// A single row (id 1) holds the active standing configuration.
type ConfigurationModel struct {
	ID                 int       `gorm:"column:id;primaryKey"`
	ConsumptionRate    float64   `gorm:"column:consumption_rate;not null"`
	SwimSpeed          float64   `gorm:"column:swim_speed;not null"`
	TankVolume         float64   `gorm:"column:tank_volume;not null"`
	FillPressure       float64   `gorm:"column:fill_pressure;not null"`
	ConservatismMargin float64   `gorm:"column:conservatism_margin;not null"`
	StageTime          float64   `gorm:"column:stage_time;not null"`
	Stages             string    `gorm:"column:stages;type:text"` // JSON array as text
	UpdatedAt          time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ConfigurationModel) TableName() string {
	return "standing_configuration"
}

// PlanModel represents the plans table
type PlanModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;unique;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (PlanModel) TableName() string {
	return "plans"
}

// SegmentModel represents the segments table.
// Position is the simulation order within the plan.
type SegmentModel struct {
	ID       string     `gorm:"column:id;primaryKey"`
	PlanID   string     `gorm:"column:plan_id;index;not null"`
	Plan     *PlanModel `gorm:"foreignKey:PlanID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Position int        `gorm:"column:position;not null"`
	Kind     string     `gorm:"column:kind;not null"`
	Depth    float64    `gorm:"column:depth"`
	Distance float64    `gorm:"column:distance"`
	StageID  string     `gorm:"column:stage_id"`
	Note     string     `gorm:"column:note;type:text"`
}

func (SegmentModel) TableName() string {
	return "segments"
}

// stageRecord is the JSON shape of one stage definition inside
// ConfigurationModel.Stages
type stageRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	TankVolume       float64 `json:"tankVolume"`
	FillPressure     float64 `json:"fillPressure"`
	ReserveInPrimary bool    `json:"reserveInPrimary,omitempty"`
}
