package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/truthpulse/truthpulse/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve starts the HTTP API:

  POST /api/v1/verify             verify a claim
  GET  /api/v1/verifications      list recent verifications
  GET  /api/v1/verifications/:id  fetch one verification
  GET  /healthz                   health check

The server shuts down gracefully on SIGINT or SIGTERM.

Example:
  truthpulse serve
  TRUTHPULSE_SERVER_PORT=9000 truthpulse serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var recorder api.Recorder
	if a.store != nil {
		recorder = a.store
	}

	server := api.New(a.workflow, recorder, a.cfg.Server, a.log)
	return server.Start(ctx)
}
