package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/penguin-chart/internal/adapter/httpadapter"
	"github.com/couchcryptid/penguin-chart/internal/observability"
	"github.com/spf13/cobra"
)

func newServeCommand(flags *flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Render once, then serve the output directory over HTTP",
		Long: "Renders the charts, then serves the output directory together with " +
			"/healthz, /readyz and /metrics until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			a := newApp(cfg, logger, metrics)
			defer closeApp(a)

			srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.OutputDir, a.pipeline, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serverErr := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			res, runErr := a.pipeline.Run(ctx)
			if runErr == nil {
				runErr = printResult(cmd.OutOrStdout(), a, res)
			}
			if runErr == nil {
				select {
				case <-ctx.Done():
				case runErr = <-serverErr:
					logger.Error("http server error", "error", runErr)
				}
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			logger.Info("shutdown complete")
			return runErr
		},
	}
}
