package main

import (
	"fmt"
	"log"

	"github.com/nivgrinberg/receipt-export-service/internal/config"
	"github.com/nivgrinberg/receipt-export-service/internal/handler"
	"github.com/nivgrinberg/receipt-export-service/internal/inliner"
	"github.com/nivgrinberg/receipt-export-service/internal/server"
	"github.com/nivgrinberg/receipt-export-service/internal/service"
	"github.com/nivgrinberg/receipt-export-service/internal/storage"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the storage fetcher for design assets referenced by
	// object key. The service runs without it; those references then
	// resolve to empty at inline time.
	var assetFetcher inliner.ResourceFetcher
	objectFetcher, err := storage.NewObjectFetcher(&storage.Config{
		Endpoint:        cfg.StorageEndpoint,
		AccessKeyID:     cfg.StorageAccessKeyID,
		AccessKeySecret: cfg.StorageAccessKeySecret,
		Bucket:          cfg.StorageBucket,
		Region:          cfg.StorageRegion,
	})
	if err != nil {
		log.Printf("Storage fetcher disabled: %v", err)
	} else {
		assetFetcher = objectFetcher
	}

	// Create the image inliner
	imageInliner := inliner.New(&inliner.Config{
		FetchTimeout: cfg.ImageFetchTimeout,
		MaxBytes:     cfg.ImageMaxBytes,
		MaxDimension: cfg.ImageMaxDimension,
	}, assetFetcher)

	// Create export service
	log.Println("Creating export service...")
	exportService := service.NewExportService(imageInliner, cfg.MaxWorkers)

	// Create handler
	exportHandler := handler.NewExportHandler(exportService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, exportHandler)

	// Set export service in the server for clean shutdown
	appServer.SetExportService(exportService)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
