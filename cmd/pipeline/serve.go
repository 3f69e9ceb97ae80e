package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/api"
	"yt-sentiment-pipeline/internal/api/handler"
	"yt-sentiment-pipeline/internal/metrics"
	"yt-sentiment-pipeline/internal/pipeline"
	"yt-sentiment-pipeline/internal/store"
	"yt-sentiment-pipeline/pkg/router"
	"yt-sentiment-pipeline/pkg/utils"
)

func serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			// Init DB
			if err := store.InitDB(cfg.Server.DBPath); err != nil {
				return fmt.Errorf("failed to init job store: %w", err)
			}
			defer store.Close()

			output := utils.NewOutputManager(cfg.Report.OutputDir)
			if err := output.EnsureOutputDirExists(); err != nil {
				return err
			}

			m := metrics.New(prometheus.DefaultRegisterer)
			c := pipeline.NewController(cfg, log,
				pipeline.LogTracker{Logger: log},
				pipeline.MetricsTracker{Metrics: m},
			)
			h := handler.NewPipelineHandler(c, output, log)

			// Create router
			r := router.New(log)

			// Register API routes
			api.RegisterRoutes(r, h, prometheus.DefaultGatherer)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Start server
			err = r.Start(ctx, cfg.Server.Addr, router.ServerOptions{
				ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
				WriteTimeout: cfg.Server.WriteTimeoutDuration(),
			})
			if h.Running() {
				log.Info("⏳ Waiting for the running pipeline to finish")
			}
			h.Wait()
			if err != nil {
				log.Error("Server stopped with error", zap.Error(err))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
