package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	caveplanhttp "github.com/andrescamacho/caveplan-go/internal/adapters/http"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning engine over HTTP",
		Long: `Serve the planning engine over HTTP.

Examples:
  caveplan serve
  caveplan serve --listen 0.0.0.0:8480`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewContainer(configPath, verbose)
			if err != nil {
				return err
			}
			defer c.Close()

			addr := listen
			if addr == "" {
				addr = c.Config.Server.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := caveplanhttp.NewServer(c.Mediator, c.Logger)
			return server.Listen(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	return cmd
}
