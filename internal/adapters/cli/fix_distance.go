package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
)

// NewFixDistanceCommand creates the fix-distance command
func NewFixDistanceCommand() *cobra.Command {
	var (
		planID, planName string
		segment          int
		apply            bool
	)

	cmd := &cobra.Command{
		Use:   "fix-distance",
		Short: "Solve the maximum safe distance for a swim segment",
		Long: `Solve the maximum distance a swim segment could cover without the
plan breaching its active threshold, holding every other segment fixed.

Examples:
  caveplan fix-distance --plan "main line" --segment 2
  caveplan fix-distance --plan "main line" --segment 2 --apply`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if segment < 0 {
				return fmt.Errorf("--segment flag is required")
			}

			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &commands.FixSegmentDistanceCommand{
				PlanID:       planID,
				PlanName:     planName,
				SegmentIndex: segment,
				Apply:        apply,
			})
			if err != nil {
				return err
			}

			result := response.(*commands.FixSegmentDistanceResult)
			if !result.Fixable {
				fmt.Printf("Segment %d cannot be solved (not a swim segment, or it consumed no gas)\n", segment)
				return nil
			}

			fmt.Printf("Segment %d: %.0f m → %.0f m\n", segment, result.OriginalDistance, result.FixedDistance)
			if result.Applied {
				fmt.Println("✓ Plan updated")
			}
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	cmd.Flags().IntVar(&segment, "segment", -1, "Segment index to solve (required)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Write the solved distance back to the plan")
	return cmd
}
