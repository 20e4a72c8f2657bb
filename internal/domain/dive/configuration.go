package dive

import (
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// stageDropPressureMargin is the fixed pressure margin, in bar, added on top
// of half the fill pressure when computing a stage's drop pressure. Leaving
// the margin in the bottle keeps the second half breathable on the way out
// even after gauge error.
const stageDropPressureMargin = 10.0

// StageDefinition describes one stage tank in the standing configuration.
//
// ReserveInPrimary marks a stage whose usable half is counted against the
// primary supply when computing the thirds budget: the diver plans to breathe
// it down to its drop pressure, so that gas is not part of the primary
// reserve.
type StageDefinition struct {
	ID               string
	Name             string
	TankVolume       float64
	FillPressure     float64
	ReserveInPrimary bool
}

// DropPressure returns the pressure at which this stage is dropped on the
// outbound leg: half the fill plus a fixed margin.
func (d *StageDefinition) DropPressure() float64 {
	return d.FillPressure/2.0 + stageDropPressureMargin
}

// Tank returns the stage bottle as a tank value object
func (d *StageDefinition) Tank() *shared.Tank {
	return &shared.Tank{Volume: d.TankVolume, FillPressure: d.FillPressure}
}

// StandingConfiguration is the immutable-per-run diver and gas configuration.
//
// Units: consumption rate in litres per minute per atmosphere, swim speed in
// metres per minute, volumes in litres, pressures in bar, times in minutes.
// Created by the external configuration editor; the engine never mutates it.
type StandingConfiguration struct {
	ConsumptionRate    float64
	SwimSpeed          float64
	TankVolume         float64
	FillPressure       float64
	ConservatismMargin float64
	StageTime          float64
	Stages             []*StageDefinition
}

// Validate checks the configuration for negative values and duplicate stage
// ids. Zero values are legal: the engine substitutes zero for the divisions
// they would otherwise break.
func (c *StandingConfiguration) Validate() error {
	if c.ConsumptionRate < 0 {
		return fmt.Errorf("consumption rate cannot be negative")
	}
	if c.SwimSpeed < 0 {
		return fmt.Errorf("swim speed cannot be negative")
	}
	if _, err := shared.NewTank(c.TankVolume, c.FillPressure); err != nil {
		return fmt.Errorf("primary tank: %w", err)
	}
	if c.ConservatismMargin < 0 {
		return fmt.Errorf("conservatism margin cannot be negative")
	}
	if c.StageTime < 0 {
		return fmt.Errorf("stage time cannot be negative")
	}

	seen := make(map[string]bool, len(c.Stages))
	for _, stage := range c.Stages {
		if stage.ID == "" {
			return fmt.Errorf("stage id cannot be empty")
		}
		if seen[stage.ID] {
			return fmt.Errorf("duplicate stage id: %s", stage.ID)
		}
		seen[stage.ID] = true
		if _, err := shared.NewTank(stage.TankVolume, stage.FillPressure); err != nil {
			return fmt.Errorf("stage %s: %w", stage.ID, err)
		}
	}
	return nil
}

// PrimaryTank returns the primary supply as a tank value object. All
// volume/pressure conversions against the primary go through it.
func (c *StandingConfiguration) PrimaryTank() *shared.Tank {
	return &shared.Tank{Volume: c.TankVolume, FillPressure: c.FillPressure}
}

// StageByID finds a stage definition by id, or nil if absent
func (c *StandingConfiguration) StageByID(id string) *StageDefinition {
	for _, stage := range c.Stages {
		if stage.ID == id {
			return stage
		}
	}
	return nil
}
