package dive

import (
	"github.com/andrescamacho/caveplan-go/internal/domain/shared"
)

// GasBudget is the computed primary-gas budget for one run
type GasBudget struct {
	// TotalVolume is the raw primary content at fill pressure.
	TotalVolume float64
	// EffectiveVolume is the total minus reserve-in-primary stage
	// reservations.
	EffectiveVolume float64
	// UsableVolume is the thirds budget minus the conservatism margin.
	UsableVolume float64
	// RoundedUsableVolume/RoundedUsablePressure express the usable budget
	// rounded down to the nearest 10 bar equivalent.
	RoundedUsableVolume   float64
	RoundedUsablePressure float64
	// TurnPressure is the safety threshold: fill minus the usable pressure
	// equivalent, rounded up to the nearest 10 bar.
	TurnPressure float64
}

// GasBudgetService computes rule-of-thirds gas budgets and turn pressures.
//
// This service contains stateless budget logic so the simulator, the
// re-entry tracker and the distance-fix solver all share one definition of
// "usable gas".
//
// Budget rules:
//
//  1. Effective capacity: the raw primary content minus, for every stage
//     flagged reserve-in-primary, the gas needed to breathe that stage from
//     fill down to its drop pressure.
//  2. Usable gas: one third of the effective capacity, minus the
//     conservatism margin converted from bar to litres.
//  3. Rounding: the turn pressure rounds up to the nearest 10 bar, the
//     usable budget rounds down. Both roundings favour the diver.
type GasBudgetService struct{}

// NewGasBudgetService creates a new budget service instance
func NewGasBudgetService() *GasBudgetService {
	return &GasBudgetService{}
}

// Compute derives the gas budget for a standing configuration
func (s *GasBudgetService) Compute(cfg *StandingConfiguration) *GasBudget {
	primary := cfg.PrimaryTank()
	total := primary.Capacity()

	reserved := 0.0
	for _, stage := range cfg.Stages {
		if !stage.ReserveInPrimary {
			continue
		}
		usable := stage.Tank().VolumeFor(stage.FillPressure - stage.DropPressure())
		if usable > 0 {
			reserved += usable
		}
	}

	effective := total - reserved
	usable := effective/3.0 - primary.VolumeFor(cfg.ConservatismMargin)

	usablePressure := primary.PressureFor(usable)
	roundedUsablePressure := shared.RoundDownToTen(usablePressure)
	return &GasBudget{
		TotalVolume:           total,
		EffectiveVolume:       effective,
		UsableVolume:          usable,
		RoundedUsableVolume:   primary.VolumeFor(roundedUsablePressure),
		RoundedUsablePressure: roundedUsablePressure,
		TurnPressure:          shared.RoundUpToTen(cfg.FillPressure - usablePressure),
	}
}
