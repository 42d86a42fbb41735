package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/review-writer/internal/observability"
	"github.com/jonathan/review-writer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing:

  POST /generate          run a generation and return the JSON response
  POST /generate/stream   same, streaming progress as Server-Sent Events
  GET  /health            liveness probe
  GET  /metrics           Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT, else 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	orch, closeFn, err := buildOrchestrator(ctx, appConfig, logger, metrics)
	if err != nil {
		return err
	}
	defer closeFn()

	port := appConfig.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if port <= 0 {
		return fmt.Errorf("invalid port %d", port)
	}

	srv := server.New(server.Config{Port: port}, orch, logger, metrics)
	return srv.Start(ctx)
}
