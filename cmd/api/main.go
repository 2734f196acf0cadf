// Command api is the League History API server.
//
// Usage:
//
//	league-history-api
//	API_PORT=8080 league-history-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/league-history/internal/api"
	"github.com/albapepper/league-history/internal/cache"
	"github.com/albapepper/league-history/internal/config"
	"github.com/albapepper/league-history/internal/league"
	"github.com/albapepper/league-history/internal/provider/sleeper"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Initialize cache (shared by the remote client and HTTP responses)
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)
	go appCache.StartEvictLoop(5*time.Minute, ctx.Done())

	// Remote client + aggregation service
	client := sleeper.NewClient(cfg.SleeperBaseURL, cfg.RequestsPerMinute, appCache, logger)
	service := league.NewService(client, cfg.Aliases, cfg.FetchConcurrency, logger)

	// Create router
	router := api.NewRouter(service, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting League History API",
			"addr", addr,
			"environment", cfg.Environment,
			"base_url", cfg.SleeperBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
