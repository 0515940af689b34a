package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Storage   StorageConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds reference catalog configuration
type CatalogConfig struct {
	// FoodsPath points at a JSON definitions file; empty means the
	// built-in reference set
	FoodsPath    string `mapstructure:"foods_path"`
	EmbeddingDim int    `mapstructure:"embedding_dim"`
}

// StorageConfig holds journal persistence configuration
type StorageConfig struct {
	EntriesPath string `mapstructure:"entries_path"`
}

// MatchingConfig holds recognition configuration
type MatchingConfig struct {
	DefaultTopK        int  `mapstructure:"default_top_k"`
	MaxTopK            int  `mapstructure:"max_top_k"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/foodtrack/")

	// Environment variable settings
	v.SetEnvPrefix("FOODTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.foods_path", "")
	v.SetDefault("catalog.embedding_dim", 256)

	// Storage defaults
	v.SetDefault("storage.entries_path", "data/entries.json")

	// Matching defaults
	v.SetDefault("matching.default_top_k", 1)
	v.SetDefault("matching.max_top_k", 25)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.requests_per_second", 20)
	v.SetDefault("ratelimit.burst", 40)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.EmbeddingDim <= 0 {
		return fmt.Errorf("embedding dimension must be positive, got: %d", config.Catalog.EmbeddingDim)
	}

	if config.Matching.DefaultTopK <= 0 {
		return fmt.Errorf("default top_k must be positive, got: %d", config.Matching.DefaultTopK)
	}

	if config.Matching.MaxTopK < config.Matching.DefaultTopK {
		return fmt.Errorf("max top_k (%d) must be >= default top_k (%d)",
			config.Matching.MaxTopK, config.Matching.DefaultTopK)
	}

	if config.Storage.EntriesPath == "" {
		return fmt.Errorf("storage entries path is required (set FOODTRACK_STORAGE_ENTRIES_PATH)")
	}

	if config.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive, got: %f", config.RateLimit.RequestsPerSecond)
	}

	return nil
}
