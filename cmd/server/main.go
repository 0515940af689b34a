package main

import (
	"fmt"
	"log"
	"os"

	"github.com/foodtrack/backend/config"
	httpDelivery "github.com/foodtrack/backend/internal/delivery/http"
	"github.com/foodtrack/backend/internal/infrastructure/embedding"
	"github.com/foodtrack/backend/internal/infrastructure/storage"
	"github.com/foodtrack/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FoodTrack Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize the embedder and recognition service
	embedder := embedding.NewHashingEmbedder(cfg.Catalog.EmbeddingDim)
	log.Printf("Embedding dimension: %d", embedder.Dimension())

	recogniser := usecase.NewRecognitionService(embedder, usecase.RecognitionConfig{
		DefaultTopK:        cfg.Matching.DefaultTopK,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	// Seed the catalog; the index is derived state and is rebuilt from the
	// catalog here on every startup
	foods := storage.DefaultFoodDefinitions()
	if cfg.Catalog.FoodsPath != "" {
		foods, err = storage.LoadFoodDefinitions(cfg.Catalog.FoodsPath)
		if err != nil {
			log.Fatalf("Failed to load food definitions: %v", err)
		}
		log.Printf("Food definitions: %s", cfg.Catalog.FoodsPath)
	} else {
		log.Printf("Food definitions: built-in reference set")
	}

	for _, item := range foods {
		if err := recogniser.RegisterFood(item); err != nil {
			log.Fatalf("Failed to index food %q: %v", item.ID, err)
		}
	}
	log.Printf("Catalog loaded: %d foods", len(foods))

	// Initialize the tracker with file-backed journal persistence
	repository := storage.NewFileEntryRepository(cfg.Storage.EntriesPath)
	tracker, err := usecase.NewTrackerService(recogniser, repository)
	if err != nil {
		log.Fatalf("Failed to initialize tracker: %v", err)
	}
	log.Printf("Journal: %s (%d entries)", cfg.Storage.EntriesPath, len(tracker.Entries()))

	log.Printf("Matching: default_top_k=%d, max_top_k=%d, debug=%v",
		cfg.Matching.DefaultTopK,
		cfg.Matching.MaxTopK,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(tracker, recogniser, cfg.Matching.MaxTopK)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
