package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conduit/internal/cache"
	"conduit/internal/database"
	"conduit/internal/observability"
	"conduit/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

By default the schema is migrated on startup. Use --no-migrate to skip.
SIGINT or SIGTERM triggers a graceful shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		return serve(cmd.Context(), noMigrate)
	},
}

func init() {
	serveCmd.Flags().Bool("no-migrate", false, "skip schema migration on startup")
}

func serve(ctx context.Context, noMigrate bool) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "conduit-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if !noMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// Redis is optional: without it the tag cache and endpoint rate limits are off.
	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		observability.Logger.Warn("redis unavailable, continuing without it", "error", err)
		rdb = nil
	}

	srv := server.NewServer(cfg, db, rdb)
	// Shutdown reads the app, so it must exist before Start runs.
	srv.App()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case sig := <-quit:
		observability.Logger.Info("shutting down", "signal", sig.String())
	case serveErr = <-errCh:
		observability.Logger.Error("server stopped unexpectedly", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, fmt.Errorf("flush traces: %w", err))
	}
	return serveErr
}
