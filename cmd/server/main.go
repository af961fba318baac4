package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/config"
	"github.com/gauravtib/mybankchecknext-sub001/internal/infrastructure/database"
	httpServer "github.com/gauravtib/mybankchecknext-sub001/internal/infrastructure/http"
	"github.com/gauravtib/mybankchecknext-sub001/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, appLogger); err != nil {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, appLogger)

	// Initialize HTTP server
	srv := httpServer.NewServer(cfg, appLogger, repos)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	appLogger.Info("Server shut down successfully")
}
