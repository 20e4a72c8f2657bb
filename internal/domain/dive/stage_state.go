package dive

import (
	"fmt"

	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// StageSourceState is the per-run mutable state of one stage tank.
//
// Created fresh from the standing configuration at the start of every
// simulation run and discarded afterwards; it is never persisted. Current
// pressure only ever falls. A pickup resets the drop pressure to zero,
// allowing the stage to be breathed empty on the way back in.
type StageSourceState struct {
	StageID         string
	TankVolume      float64
	InitialPressure float64
	Pressure        float64
	DropPressure    float64
	Dropped         bool
}

// newStageSourceState builds run state from a stage definition
func newStageSourceState(def *StageDefinition) *StageSourceState {
	return &StageSourceState{
		StageID:         def.ID,
		TankVolume:      def.TankVolume,
		InitialPressure: def.FillPressure,
		Pressure:        def.FillPressure,
		DropPressure:    def.DropPressure(),
	}
}

// tank returns the bottle geometry for volume/pressure conversions
func (s *StageSourceState) tank() *shared.Tank {
	return &shared.Tank{Volume: s.TankVolume, FillPressure: s.InitialPressure}
}

// AvailableVolume returns the gas, in litres, breathable from this stage
// before it reaches its drop pressure. Zero once at or below the threshold.
func (s *StageSourceState) AvailableVolume() float64 {
	available := s.tank().VolumeFor(s.Pressure - s.DropPressure)
	if available < 0 {
		return 0
	}
	return available
}

// RemainingVolume returns the full gas content, in litres, ignoring the drop
// threshold. This is what a kill-stage re-entry burns.
func (s *StageSourceState) RemainingVolume() float64 {
	if s.Pressure < 0 {
		return 0
	}
	return s.tank().VolumeFor(s.Pressure)
}

// Consume draws the given gas volume, in litres, from the stage
func (s *StageSourceState) Consume(volume float64) {
	s.Pressure -= s.tank().PressureFor(volume)
}

// Drop marks the stage as left behind on the line
func (s *StageSourceState) Drop() {
	s.Dropped = true
}

// PickUp takes the stage back. The drop threshold is cleared so the rest of
// the bottle can be breathed.
func (s *StageSourceState) PickUp() {
	s.Dropped = false
	s.DropPressure = 0
}

// Clone returns an independent copy for result snapshots
func (s *StageSourceState) Clone() *StageSourceState {
	clone := *s
	return &clone
}

func (s *StageSourceState) String() string {
	state := "carried"
	if s.Dropped {
		state = "dropped"
	}
	return fmt.Sprintf("Stage(%s %.0f/%.0fbar %s)", s.StageID, s.Pressure, s.InitialPressure, state)
}
