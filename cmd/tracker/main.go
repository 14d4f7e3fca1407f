package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/config"
	"github.com/brittbaker321/reddit-trend-tracker/internal/keywords"
	"github.com/brittbaker321/reddit-trend-tracker/internal/notifications"
	"github.com/brittbaker321/reddit-trend-tracker/internal/reddit"
	"github.com/brittbaker321/reddit-trend-tracker/internal/scheduler"
	"github.com/brittbaker321/reddit-trend-tracker/internal/storage"
	"github.com/brittbaker321/reddit-trend-tracker/internal/trends"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Infof("Starting Reddit Trend Tracker for r/%s", cfg.Subreddit)

	// Initialize trend storage
	trendStore, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer trendStore.Close()

	// Initialize keyword store
	keywordStore, err := newKeywordStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize keyword store: %v", err)
	}

	// Initialize Reddit client
	redditClient := reddit.NewClient(cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent)

	// Initialize notification service
	notificationService := notifications.NewService(cfg)

	// Initialize aggregation service
	aggregator := trends.NewService(cfg, redditClient, keywordStore, trendStore, notificationService)

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, aggregator)

	// Start scheduler
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server for health checks and manual triggers
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.HandleFunc("/metrics", metricsHandler(aggregator)).Methods("GET")

	// Manual trigger endpoint (for testing and backfilling a missed day)
	router.HandleFunc("/trigger", triggerHandler(aggregator)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// newKeywordStore picks the keyword source: blob, then file, then the inline
// list from KEYWORDS. Config validation guarantees at least one is set.
func newKeywordStore(cfg *config.Config) (keywords.Store, error) {
	if cfg.KeywordsBlob != "" {
		return keywords.NewBlobStore(cfg.StorageAccount, cfg.StorageContainer, cfg.KeywordsBlob)
	}
	if cfg.KeywordsFile != "" {
		return keywords.NewFileStore(cfg.KeywordsFile), nil
	}
	return keywords.NewStaticStore(cfg.Keywords), nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(aggregator *trends.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := aggregator.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

func triggerHandler(aggregator *trends.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
		defer cancel()

		result, err := aggregator.Run(ctx, time.Now())
		if err != nil {
			logrus.Errorf("Manual snapshot trigger failed: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(result)
	}
}
