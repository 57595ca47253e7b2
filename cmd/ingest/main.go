package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/resale-ops/backend-go/internal/cache"
	"github.com/resale-ops/backend-go/internal/config"
	"github.com/resale-ops/backend-go/internal/reports"
	"github.com/resale-ops/backend-go/internal/repository"
	"github.com/resale-ops/backend-go/internal/repository/postgres"
	"github.com/resale-ops/backend-go/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := reports.NewService(cfg.Reports.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize cache for post-ingest invalidation
	summaryCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: cache unavailable, summaries will expire on TTL only: %v", err)
		summaryCache = cache.NewNoopForecastCache()
	}

	// Initialize report archive (optional)
	var archive storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		archive, err = storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize report archive: %v", err)
		}
	}

	// Initialize Repositories and Services
	ingestRepo := repository.NewIngestRepository(db)
	ingestService := reports.NewIngestService(driveService, ingestRepo, summaryCache, archive)

	// Periodic folder sync, so new reports land without an API call
	if cfg.Reports.PollIntervalSeconds > 0 {
		go pollFolder(ingestService, cfg.Reports)
	}

	// Register routes
	r := mux.NewRouter()
	reportsHandler := reports.NewHandler(driveService, ingestService, cfg.Reports)
	reportsHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func pollFolder(ingestService *reports.IngestService, cfg config.ReportsConfig) {
	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		results, err := ingestService.SyncFolder(context.Background(), reports.DownloadOptions{
			FolderID:    cfg.DriveFolder,
			DownloadDir: cfg.DownloadDir,
		})
		if err != nil {
			log.Printf("scheduled report sync failed: %v", err)
			continue
		}
		log.Printf("scheduled report sync processed %d files", len(results))
	}
}
