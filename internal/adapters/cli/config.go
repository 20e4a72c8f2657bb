package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/caveplan-go/internal/application/planning/commands"
	"github.com/andrescamacho/caveplan-go/internal/application/planning/queries"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the standing dive configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigAddStageCommand())
	cmd.AddCommand(newConfigRemoveStageCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the standing configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &queries.GetConfigurationQuery{})
			if err != nil {
				return err
			}
			cfg, _ := response.(*dive.StandingConfiguration)
			if cfg == nil {
				fmt.Println("No standing configuration saved; run 'caveplan config init'")
				return nil
			}

			fmt.Printf("Consumption rate:    %.1f L/min at surface\n", cfg.ConsumptionRate)
			fmt.Printf("Swim speed:          %.1f m/min\n", cfg.SwimSpeed)
			fmt.Printf("Primary tank:        %.1f L at %.0f bar\n", cfg.TankVolume, cfg.FillPressure)
			fmt.Printf("Conservatism margin: %.0f bar\n", cfg.ConservatismMargin)
			fmt.Printf("Stage handling time: %.1f min\n", cfg.StageTime)
			if len(cfg.Stages) == 0 {
				fmt.Println("Stages:              none")
				return nil
			}
			fmt.Println("Stages:")
			for _, st := range cfg.Stages {
				reserve := ""
				if st.ReserveInPrimary {
					reserve = "  (reserve in primary)"
				}
				fmt.Printf("  %-12s %.1f L at %.0f bar, drop at %.0f bar%s\n",
					st.ID, st.TankVolume, st.FillPressure, st.DropPressure(), reserve)
			}
			return nil
		},
	}
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed the standing configuration from file/env defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			cfg := c.Config.Defaults.ToStandingConfiguration()
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SaveConfigurationCommand{Configuration: cfg}); err != nil {
				return err
			}

			fmt.Println("✓ Standing configuration initialized")
			return nil
		},
	}
	return cmd
}

func newConfigAddStageCommand() *cobra.Command {
	var (
		stageID, name    string
		volume, pressure float64
		reserve          bool
	)

	cmd := &cobra.Command{
		Use:   "add-stage",
		Short: "Add a stage tank to the standing configuration",
		Long: `Add a stage tank to the standing configuration.

Examples:
  caveplan config add-stage --id s1 --volume 11 --pressure 220
  caveplan config add-stage --id o2 --volume 7 --pressure 200 --reserve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stageID == "" {
				return fmt.Errorf("--id flag is required")
			}

			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &queries.GetConfigurationQuery{})
			if err != nil {
				return err
			}
			cfg, _ := response.(*dive.StandingConfiguration)
			if cfg == nil {
				return fmt.Errorf("no standing configuration saved; run 'caveplan config init' first")
			}

			cfg.Stages = append(cfg.Stages, &dive.StageDefinition{
				ID:               stageID,
				Name:             name,
				TankVolume:       volume,
				FillPressure:     pressure,
				ReserveInPrimary: reserve,
			})
			if _, err := c.Mediator.Send(cmd.Context(), &commands.SaveConfigurationCommand{Configuration: cfg}); err != nil {
				return err
			}

			fmt.Printf("✓ Stage %s added\n", stageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&stageID, "id", "", "Stage id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Human-readable stage name")
	cmd.Flags().Float64Var(&volume, "volume", 0, "Stage tank volume in litres")
	cmd.Flags().Float64Var(&pressure, "pressure", 0, "Stage fill pressure in bar")
	cmd.Flags().BoolVar(&reserve, "reserve", false, "Reserve the stage's post-drop remainder in the primary budget")
	return cmd
}

func newConfigRemoveStageCommand() *cobra.Command {
	var stageID string

	cmd := &cobra.Command{
		Use:   "remove-stage",
		Short: "Remove a stage tank from the standing configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stageID == "" {
				return fmt.Errorf("--id flag is required")
			}

			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(cmd.Context(), &queries.GetConfigurationQuery{})
			if err != nil {
				return err
			}
			cfg, _ := response.(*dive.StandingConfiguration)
			if cfg == nil {
				return fmt.Errorf("no standing configuration saved")
			}

			kept := cfg.Stages[:0]
			found := false
			for _, st := range cfg.Stages {
				if st.ID == stageID {
					found = true
					continue
				}
				kept = append(kept, st)
			}
			if !found {
				return fmt.Errorf("stage %s not found", stageID)
			}
			cfg.Stages = kept

			if _, err := c.Mediator.Send(cmd.Context(), &commands.SaveConfigurationCommand{Configuration: cfg}); err != nil {
				return err
			}

			fmt.Printf("✓ Stage %s removed\n", stageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&stageID, "id", "", "Stage id to remove (required)")
	return cmd
}
