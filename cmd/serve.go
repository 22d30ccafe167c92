package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"tracker/internal/api"
	"tracker/internal/config"
	"tracker/internal/worker"
	"tracker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	server := api.NewServer(api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the metrics server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			stopWebserver := setupServer(ctx, cfg)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			riverClient, err := worker.Start(ctx, strg.Pool, strg)
			if err != nil {
				logger.Fatal(ctx, "could not start background workers", zap.Error(err))
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(ctx, "stopping background workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop background workers", zap.Error(err))
			}

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
