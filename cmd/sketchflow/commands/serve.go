package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API over HTTP and WebSocket",
		Long: `Start an HTTP server exposing generation:

  GET  /health           status and version
  GET  /api/adapters     registered framework adapters
  GET  /api/layouts      registered layout engines
  GET  /api/parsers      registered parsers
  POST /api/generate     generate files for one or more frameworks
  POST /api/introspect   adapter node and component counts
  GET  /ws               generation requests over a WebSocket
  GET  /metrics          Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			gen, err := a.generator()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(gen, cfg, server.WithLogger(logger.ComponentLogger("server"))).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")
	return cmd
}
