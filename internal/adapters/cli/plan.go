package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/queries"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// planDocument is the JSON file shape used by plan import/export
type planDocument struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Segments []segmentDocument `json:"segments"`
}

type segmentDocument struct {
	ID       string  `json:"id,omitempty"`
	Kind     string  `json:"kind"`
	Depth    float64 `json:"depth,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	StageID  string  `json:"stageId,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// NewPlanCommand creates the plan command group
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create and edit dive plans",
	}

	cmd.AddCommand(newPlanCreateCommand())
	cmd.AddCommand(newPlanListCommand())
	cmd.AddCommand(newPlanShowCommand())
	cmd.AddCommand(newPlanDeleteCommand())
	cmd.AddCommand(newPlanAddSegmentCommand())
	cmd.AddCommand(newPlanRemoveSegmentCommand())
	cmd.AddCommand(newPlanMoveSegmentCommand())
	cmd.AddCommand(newPlanImportCommand())
	cmd.AddCommand(newPlanExportCommand())

	return cmd
}

func newPlanCreateCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new empty plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := dive.NewPlan(name)
			if err != nil {
				return err
			}
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
				return err
			}

			fmt.Printf("✓ Plan created\n")
			fmt.Printf("  ID:    %s\n", plan.ID())
			fmt.Printf("  Name:  %s\n", plan.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name (required)")
	return cmd
}

func newPlanListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all stored plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &queries.ListPlansQuery{})
			if err != nil {
				return err
			}

			plans := response.([]*dive.Plan)
			if len(plans) == 0 {
				fmt.Println("No plans stored")
				return nil
			}
			for _, plan := range plans {
				fmt.Printf("%-36s  %-24s  %d segments\n", plan.ID(), plan.Name(), len(plan.Segments()))
			}
			return nil
		},
	}
	return cmd
}

func newPlanShowCommand() *cobra.Command {
	var planID, planName string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a plan's segments in simulation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}

			fmt.Printf("Plan: %s (%s)\n", plan.Name(), plan.ID())
			for i, seg := range plan.Segments() {
				fmt.Printf("  %2d  %s", i, seg)
				if seg.Note != "" {
					fmt.Printf("  # %s", seg.Note)
				}
				fmt.Println()
			}
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	return cmd
}

func newPlanDeleteCommand() *cobra.Command {
	var planID, planName string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}
			if _, err := c.Mediator.Send(cmd.Context(), &commands.DeletePlanCommand{PlanID: plan.ID()}); err != nil {
				return err
			}

			fmt.Printf("✓ Plan %s deleted\n", plan.Name())
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	return cmd
}

func newPlanAddSegmentCommand() *cobra.Command {
	var (
		planID, planName string
		kind             string
		depth, distance  float64
		stageID, note    string
		position         int
	)

	cmd := &cobra.Command{
		Use:   "add-segment",
		Short: "Append or insert a segment into a plan",
		Long: `Append or insert a segment into a plan.

Examples:
  caveplan plan add-segment --plan "main line" --kind SWIM --depth 20 --distance 200
  caveplan plan add-segment --plan "main line" --kind STAGE_EVENT --stage s1
  caveplan plan add-segment --plan "main line" --kind TURNAROUND
  caveplan plan add-segment --plan "main line" --kind JUMP_LEFT --position 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}

			segmentKind, err := dive.ParseSegmentKind(kind)
			if err != nil {
				return err
			}

			var seg *dive.Segment
			switch segmentKind {
			case dive.SegmentSwim:
				seg, err = dive.NewSwimSegment(depth, distance)
			case dive.SegmentStageEvent:
				seg, err = dive.NewStageEventSegment(stageID)
			default:
				seg, err = dive.NewMarkerSegment(segmentKind)
			}
			if err != nil {
				return err
			}
			seg.Note = note

			if position >= 0 {
				err = plan.InsertSegment(seg, position)
			} else {
				err = plan.AddSegment(seg)
			}
			if err != nil {
				return err
			}

			if _, err := c.Mediator.Send(cmd.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
				return err
			}

			fmt.Printf("✓ Segment added: %s\n", seg)
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	cmd.Flags().StringVar(&kind, "kind", "", "Segment kind (required)")
	cmd.Flags().Float64Var(&depth, "depth", 0, "Depth in metres (swim segments)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Distance in metres (swim segments)")
	cmd.Flags().StringVar(&stageID, "stage", "", "Stage id (stage events)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	cmd.Flags().IntVar(&position, "position", -1, "Insert at position (append when omitted)")
	return cmd
}

func newPlanRemoveSegmentCommand() *cobra.Command {
	var (
		planID, planName string
		index            int
	)

	cmd := &cobra.Command{
		Use:   "remove-segment",
		Short: "Remove a segment from a plan by index",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}

			segments := plan.Segments()
			if index < 0 || index >= len(segments) {
				return fmt.Errorf("segment index %d out of range", index)
			}
			if err := plan.RemoveSegment(segments[index].ID); err != nil {
				return err
			}
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
				return err
			}

			fmt.Printf("✓ Segment %d removed\n", index)
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	cmd.Flags().IntVar(&index, "segment", -1, "Segment index to remove (required)")
	return cmd
}

func newPlanMoveSegmentCommand() *cobra.Command {
	var (
		planID, planName string
		index, position  int
	)

	cmd := &cobra.Command{
		Use:   "move-segment",
		Short: "Move a segment to a new position",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}

			segments := plan.Segments()
			if index < 0 || index >= len(segments) {
				return fmt.Errorf("segment index %d out of range", index)
			}
			if err := plan.MoveSegment(segments[index].ID, position); err != nil {
				return err
			}
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
				return err
			}

			fmt.Printf("✓ Segment %d moved to %d\n", index, position)
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	cmd.Flags().IntVar(&index, "segment", -1, "Segment index to move (required)")
	cmd.Flags().IntVar(&position, "position", -1, "Target position (required)")
	return cmd
}

func newPlanImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a plan from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file flag is required")
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read plan file: %w", err)
			}
			var doc planDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("failed to decode plan file: %w", err)
			}

			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := documentToPlan(doc)
			if err != nil {
				return err
			}
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SavePlanCommand{Plan: plan}); err != nil {
				return err
			}

			fmt.Printf("✓ Plan %s imported (%d segments)\n", plan.Name(), len(plan.Segments()))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to plan JSON file (required)")
	return cmd
}

func newPlanExportCommand() *cobra.Command {
	var (
		planID, planName string
		file             string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a plan to a JSON file (stdout when no file given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			plan, err := loadPlan(cmd, c, planID, planName)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(planToDocument(plan), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}

			if file == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(file, data, 0o644); err != nil {
				return fmt.Errorf("failed to write plan file: %w", err)
			}
			fmt.Printf("✓ Plan %s exported to %s\n", plan.Name(), file)
			return nil
		},
	}

	addPlanFlags(cmd, &planID, &planName)
	cmd.Flags().StringVar(&file, "file", "", "Output file path")
	return cmd
}

// addPlanFlags registers the shared plan identity flags
func addPlanFlags(cmd *cobra.Command, planID, planName *string) {
	cmd.Flags().StringVar(planID, "plan-id", "", "Plan id")
	cmd.Flags().StringVar(planName, "plan", "", "Plan name (alternative to --plan-id)")
}

// loadPlan resolves a plan through the mediator by id or name
func loadPlan(cmd *cobra.Command, c *Container, planID, planName string) (*dive.Plan, error) {
	response, err := c.Mediator.Send(cmd.Context(), &queries.GetPlanQuery{PlanID: planID, PlanName: planName})
	if err != nil {
		return nil, err
	}
	plan, _ := response.(*dive.Plan)
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}
	return plan, nil
}

func planToDocument(plan *dive.Plan) planDocument {
	doc := planDocument{ID: plan.ID(), Name: plan.Name()}
	for _, seg := range plan.Segments() {
		doc.Segments = append(doc.Segments, segmentDocument{
			ID:       seg.ID,
			Kind:     string(seg.Kind),
			Depth:    seg.Depth,
			Distance: seg.Distance,
			StageID:  seg.StageID,
			Note:     seg.Note,
		})
	}
	return doc
}

func documentToPlan(doc planDocument) (*dive.Plan, error) {
	segments := make([]*dive.Segment, 0, len(doc.Segments))
	for i, sd := range doc.Segments {
		kind, err := dive.ParseSegmentKind(sd.Kind)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}

		var seg *dive.Segment
		switch kind {
		case dive.SegmentSwim:
			seg, err = dive.NewSwimSegment(sd.Depth, sd.Distance)
		case dive.SegmentStageEvent:
			seg, err = dive.NewStageEventSegment(sd.StageID)
		default:
			seg, err = dive.NewMarkerSegment(kind)
		}
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if sd.ID != "" {
			seg.ID = sd.ID
		}
		seg.Note = sd.Note
		segments = append(segments, seg)
	}

	if doc.ID != "" {
		return dive.RestorePlan(doc.ID, doc.Name, segments)
	}
	plan, err := dive.NewPlan(doc.Name)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		if err := plan.AddSegment(seg); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
