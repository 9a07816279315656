package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scamshield/scamshield/internal/config"
	"github.com/scamshield/scamshield/internal/content"
	"github.com/scamshield/scamshield/internal/handlers"
	"github.com/scamshield/scamshield/internal/logger"
	"github.com/scamshield/scamshield/internal/middleware"
	"github.com/scamshield/scamshield/internal/services"
	"github.com/scamshield/scamshield/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting ScamShield API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	repo, err := content.Load(cfg.DataDir, log)
	if err != nil {
		log.Error("Failed to load content", "error", err)
		os.Exit(1)
	}

	store := storage.NewRedisProgressStore(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	progressService := services.NewProgressService(store, repo, cfg.PointsPerScenario, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(log, store)
	mux.Handle("/health", healthHandler)

	scenarioHandler := handlers.NewScenarioHandler(log, repo)
	mux.Handle("/v1/scenarios", scenarioHandler)
	mux.Handle("/v1/scenarios/", scenarioHandler)

	categoryHandler := handlers.NewCategoryHandler(log, repo)
	mux.Handle("/v1/categories", categoryHandler)
	mux.Handle("/v1/categories/", categoryHandler)

	resourceHandler := handlers.NewResourceHandler(log, repo)
	mux.Handle("/v1/resources", resourceHandler)

	progressHandler := handlers.NewProgressHandler(log, progressService, repo)
	mux.Handle("/v1/progress", progressHandler)

	languageHandler := handlers.NewLanguageHandler(log)
	mux.Handle("/v1/languages", languageHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server stopped")
}
