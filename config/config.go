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
	Matching  MatchingConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig names the retailer catalog files loaded at startup
type CatalogConfig struct {
	Dir    string        `mapstructure:"dir"`
	Stores []StoreConfig `mapstructure:"stores"`
}

// StoreConfig maps one retailer name to its catalog file
type StoreConfig struct {
	Name string `mapstructure:"name"`
	File string `mapstructure:"file"`
}

// MatchingConfig holds the externally tunable matching knobs. The two
// thresholds are deliberately distinct: bulk cross-store comparison and
// single-store lookup were calibrated separately.
type MatchingConfig struct {
	BulkThreshold      float64 `mapstructure:"bulk_threshold"`
	StoreThreshold     float64 `mapstructure:"store_threshold"`
	MaxComparisons     int     `mapstructure:"max_comparisons"`
	MaxAlternatives    int     `mapstructure:"max_alternatives"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cartcompare/")

	// Environment variable settings
	v.SetEnvPrefix("CARTCOMPARE")
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

	// Catalog defaults: one delimited export per supported retailer
	v.SetDefault("catalog.dir", "./data")
	v.SetDefault("catalog.stores", []map[string]interface{}{
		{"name": "ALDI", "file": "aldi.csv"},
		{"name": "Tesco", "file": "tesco.csv"},
		{"name": "Sainsbury's", "file": "sainsburys.csv"},
		{"name": "Morrisons", "file": "morrisons.csv"},
		{"name": "ASDA", "file": "asda.csv"},
	})

	// Matching defaults
	v.SetDefault("matching.bulk_threshold", 0.4)
	v.SetDefault("matching.store_threshold", 0.3)
	v.SetDefault("matching.max_comparisons", 10)
	v.SetDefault("matching.max_alternatives", 4)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/cartcompare.log")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.BulkThreshold <= 0 || config.Matching.BulkThreshold > 1 {
		return fmt.Errorf("matching.bulk_threshold must be in (0,1], got: %v", config.Matching.BulkThreshold)
	}
	if config.Matching.StoreThreshold <= 0 || config.Matching.StoreThreshold > 1 {
		return fmt.Errorf("matching.store_threshold must be in (0,1], got: %v", config.Matching.StoreThreshold)
	}
	if len(config.Catalog.Stores) == 0 {
		return fmt.Errorf("at least one catalog store is required")
	}
	for _, s := range config.Catalog.Stores {
		if s.Name == "" || s.File == "" {
			return fmt.Errorf("catalog store entries need both name and file, got: %+v", s)
		}
	}
	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}
	return nil
}
