package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("FOODTRACK_SERVER_PORT")
		os.Unsetenv("FOODTRACK_SERVER_ENVIRONMENT")
		os.Unsetenv("FOODTRACK_CATALOG_FOODS_PATH")
		os.Unsetenv("FOODTRACK_CATALOG_EMBEDDING_DIM")
		os.Unsetenv("FOODTRACK_STORAGE_ENTRIES_PATH")
		os.Unsetenv("FOODTRACK_MATCHING_DEFAULT_TOP_K")
		os.Unsetenv("FOODTRACK_MATCHING_MAX_TOP_K")
		os.Unsetenv("FOODTRACK_MATCHING_ENABLE_DEBUG_LOGGING")
		os.Unsetenv("FOODTRACK_RATELIMIT_REQUESTS_PER_SECOND")
		os.Unsetenv("FOODTRACK_RATELIMIT_BURST")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.EmbeddingDim != 256 {
			t.Errorf("Catalog.EmbeddingDim = %d, want 256", cfg.Catalog.EmbeddingDim)
		}
		if cfg.Catalog.FoodsPath != "" {
			t.Errorf("Catalog.FoodsPath = %s, want empty (built-in set)", cfg.Catalog.FoodsPath)
		}
		if cfg.Storage.EntriesPath != "data/entries.json" {
			t.Errorf("Storage.EntriesPath = %s, want data/entries.json", cfg.Storage.EntriesPath)
		}
		if cfg.Matching.DefaultTopK != 1 {
			t.Errorf("Matching.DefaultTopK = %d, want 1", cfg.Matching.DefaultTopK)
		}
		if cfg.Matching.MaxTopK != 25 {
			t.Errorf("Matching.MaxTopK = %d, want 25", cfg.Matching.MaxTopK)
		}
		if cfg.RateLimit.RequestsPerSecond != 20 {
			t.Errorf("RateLimit.RequestsPerSecond = %f, want 20", cfg.RateLimit.RequestsPerSecond)
		}
		if cfg.RateLimit.Burst != 40 {
			t.Errorf("RateLimit.Burst = %d, want 40", cfg.RateLimit.Burst)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODTRACK_SERVER_PORT", "9090")
		os.Setenv("FOODTRACK_SERVER_ENVIRONMENT", "production")
		os.Setenv("FOODTRACK_CATALOG_EMBEDDING_DIM", "512")
		os.Setenv("FOODTRACK_STORAGE_ENTRIES_PATH", "/var/lib/foodtrack/entries.json")
		os.Setenv("FOODTRACK_MATCHING_DEFAULT_TOP_K", "3")
		os.Setenv("FOODTRACK_MATCHING_MAX_TOP_K", "50")
		os.Setenv("FOODTRACK_RATELIMIT_REQUESTS_PER_SECOND", "100")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.EmbeddingDim != 512 {
			t.Errorf("Catalog.EmbeddingDim = %d, want 512", cfg.Catalog.EmbeddingDim)
		}
		if cfg.Storage.EntriesPath != "/var/lib/foodtrack/entries.json" {
			t.Errorf("Storage.EntriesPath = %s, want /var/lib/foodtrack/entries.json", cfg.Storage.EntriesPath)
		}
		if cfg.Matching.DefaultTopK != 3 {
			t.Errorf("Matching.DefaultTopK = %d, want 3", cfg.Matching.DefaultTopK)
		}
		if cfg.Matching.MaxTopK != 50 {
			t.Errorf("Matching.MaxTopK = %d, want 50", cfg.Matching.MaxTopK)
		}
		if cfg.RateLimit.RequestsPerSecond != 100 {
			t.Errorf("RateLimit.RequestsPerSecond = %f, want 100", cfg.RateLimit.RequestsPerSecond)
		}
	})

	t.Run("fails validation for non-positive embedding dimension", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODTRACK_CATALOG_EMBEDDING_DIM", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero embedding dimension")
		}
	})

	t.Run("fails validation when max top_k below default", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODTRACK_MATCHING_DEFAULT_TOP_K", "10")
		os.Setenv("FOODTRACK_MATCHING_MAX_TOP_K", "5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for max top_k < default top_k")
		}
	})

	t.Run("fails validation for non-positive rate limit", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODTRACK_RATELIMIT_REQUESTS_PER_SECOND", "-1")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for negative rate limit")
		}
	})
}
