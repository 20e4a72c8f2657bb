package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var planID, planName string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the gas consumption calculation for a plan",
		Long: `Run the gas consumption calculation for a plan.

Examples:
  caveplan simulate --plan "main line"
  caveplan simulate --plan-id 6f1c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &commands.SimulateDiveCommand{
				PlanID:   planID,
				PlanName: planName,
			})
			if err != nil {
				return err
			}

			result := response.(*dive.DiveCalculationResult)
			printSimulation(result)
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	return cmd
}

func printSimulation(result *dive.DiveCalculationResult) {
	fmt.Printf("Gas budget\n")
	fmt.Printf("  Total volume:    %8.0f L\n", result.TotalVolume)
	fmt.Printf("  Effective:       %8.0f L\n", result.EffectiveVolume)
	fmt.Printf("  Usable:          %8.0f L (rounded %0.f L / %.0f bar)\n",
		result.UsableVolume, result.RoundedUsableVolume, result.RoundedUsablePressure)
	fmt.Printf("  Turn pressure:   %8.0f bar\n", result.TurnPressure)
	fmt.Println()

	fmt.Printf("%-3s %-14s %7s %7s %9s %9s %9s  %s\n",
		"#", "Segment", "Time", "Depth", "Consumed", "Volume", "Pressure", "Flags")
	for i, res := range result.Results {
		fmt.Printf("%-3d %-14s %7.1f %7.1f %9.0f %9.0f %9.1f  %s\n",
			i, res.Kind, res.Time, res.Depth, res.GasConsumed,
			res.RemainingVolume, res.RemainingPressure, segmentFlags(res))
		if res.Recalculation != nil {
			printRecalculation(res.Recalculation)
		}
	}

	if len(result.Advisories) > 0 {
		fmt.Println()
		fmt.Println("Stage drop advisories:")
		for _, adv := range result.Advisories {
			if adv.SplitDistance != nil {
				fmt.Printf("  stage %s should be dropped %.0f m into segment %s\n",
					adv.StageID, *adv.SplitDistance, adv.SegmentID)
			} else {
				fmt.Printf("  stage %s should be dropped at segment %s\n", adv.StageID, adv.SegmentID)
			}
		}
	}

	if result.HasBreach() {
		fmt.Println()
		fmt.Println("⚠ Plan breaches turn pressure")
	}
}

func printRecalculation(rec *dive.RecalculationResult) {
	verdict := "NOT POSSIBLE"
	if rec.Possible {
		verdict = "possible"
	}
	fmt.Printf("      ↳ re-entry %s (%s): %s, budget %.0f L / %.0f bar, threshold %.0f bar\n",
		rec.Scenario, rec.Source, verdict, rec.AvailableVolume, rec.AvailablePressure, rec.Threshold)
}

func segmentFlags(res *dive.SegmentResult) string {
	var flags []string
	if res.TurnWarning {
		flags = append(flags, "TURN")
	}
	if res.Returning {
		flags = append(flags, "return")
	}
	if len(res.BreathedStages) > 0 {
		flags = append(flags, "stage:"+strings.Join(res.BreathedStages, ","))
	}
	if len(res.DroppedStages) > 0 {
		flags = append(flags, "drop:"+strings.Join(res.DroppedStages, ","))
	}
	return strings.Join(flags, " ")
}
