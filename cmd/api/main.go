package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atp-media/rear-differential/internal/api"
	"github.com/atp-media/rear-differential/internal/config"
	"github.com/atp-media/rear-differential/internal/library"
	"github.com/atp-media/rear-differential/internal/logger"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/service"
	"github.com/atp-media/rear-differential/internal/transmission"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger from environment and make it the process default
	logCfg := logger.LoadFromEnv()
	appLog := logger.NewFromEnv(logCfg)
	logger.SetDefaultLogger(appLog)

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	repos := api.NewRepos(db)

	// Initialize gateways
	torrents := transmission.NewClient(&transmission.Config{
		Host:     cfg.Transmission.Host,
		Port:     cfg.Transmission.Port,
		Username: cfg.Transmission.Username,
		Password: cfg.Transmission.Password,
		Timeout:  cfg.Transmission.Timeout,
	})
	files := library.NewFiles(library.Config{
		DeletionEnabled: cfg.Library.FileDeletionEnabled,
		CachePath:       cfg.Library.CachePath,
		MoviesPath:      cfg.Library.MoviesPath,
		TVPath:          cfg.Library.TVPath,
	})

	// Initialize rejection workflow service
	rejection := service.NewRejectionService(repos.Training, repos.Media, torrents, files)

	// Setup router
	router := api.SetupRouter(repos, rejection, appLog, &cfg.Server)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLog.Infof("Starting API server on port %d (mode=%s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatalf("Server forced to shutdown: %v", err)
	}

	appLog.Info("Server exited")
}
