package config

import "github.com/andrescamacho/caveplan-go/internal/domain/dive"

// DiveDefaults seeds a standing configuration when none has been saved yet.
// Values mirror a typical single-diver cave setup; all units are metric.
type DiveDefaults struct {
	ConsumptionRate    float64 `mapstructure:"consumption_rate" validate:"min=0"`
	SwimSpeed          float64 `mapstructure:"swim_speed" validate:"min=0"`
	TankVolume         float64 `mapstructure:"tank_volume" validate:"min=0"`
	FillPressure       float64 `mapstructure:"fill_pressure" validate:"min=0"`
	ConservatismMargin float64 `mapstructure:"conservatism_margin" validate:"min=0"`
	StageTime          float64 `mapstructure:"stage_time" validate:"min=0"`
}

// ToStandingConfiguration converts the defaults into a domain configuration
// with no stages
func (d *DiveDefaults) ToStandingConfiguration() *dive.StandingConfiguration {
	return &dive.StandingConfiguration{
		ConsumptionRate:    d.ConsumptionRate,
		SwimSpeed:          d.SwimSpeed,
		TankVolume:         d.TankVolume,
		FillPressure:       d.FillPressure,
		ConservatismMargin: d.ConservatismMargin,
		StageTime:          d.StageTime,
	}
}
