package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/cache"
	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/posts"
	"github.com/ripple-social/ripple/internal/scheduler"
	"github.com/ripple-social/ripple/pkg/config"
	"github.com/ripple-social/ripple/pkg/logging"
	"github.com/ripple-social/ripple/pkg/telemetry"
)

// The worker runs the scheduled-publication poller on its own, for
// deployments that keep the API servers stateless and publish from a
// single dedicated process.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Ripple Worker")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Initialize database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Initialize Redis (optional)
	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	postsSvc := posts.NewService(db.NewRepository(database.DB))
	poller := scheduler.New(postsSvc, redisCache, &cfg.Scheduler)
	if err := poller.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	poller.Stop()
	logger.Info("Worker exited")
}
