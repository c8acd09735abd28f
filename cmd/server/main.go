package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aalexmrt/portfolio/internal/config"
	"github.com/aalexmrt/portfolio/internal/logging"
	"github.com/aalexmrt/portfolio/internal/server"
	"github.com/aalexmrt/portfolio/internal/telemetry"
	"github.com/aalexmrt/portfolio/internal/version"
)

func main() {
	if err := run(); err != nil {
		logging.GetLogger().Error("%v", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so that traces are flushed and the log
// file is closed before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger configuration
	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile

	// Configure and get logger
	if err := logging.Configure(logConfig); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting portfolio %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, server.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	services, err := server.NewServices(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := server.NewServer(cfg, services).Start(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
