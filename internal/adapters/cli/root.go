package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "caveplan",
		Short: "Caveplan - cave dive gas planning engine",
		Long: `Caveplan simulates gas consumption over multi-segment cave dive plans.
It tracks primary and stage tank supplies, flags turn pressure breaches, and
solves side-passage re-entry feasibility.

Examples:
  caveplan config init
  caveplan plan create --name "main line"
  caveplan plan add-segment --plan "main line" --kind SWIM --depth 20 --distance 200
  caveplan simulate --plan "main line"
  caveplan fix-distance --plan "main line" --segment 0 --apply
  caveplan serve`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default searches ., ./configs, /etc/caveplan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewFixDistanceCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
