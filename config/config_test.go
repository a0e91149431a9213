package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Matching.BulkThreshold != 0.4 {
		t.Errorf("bulk threshold = %v, want 0.4", cfg.Matching.BulkThreshold)
	}
	if cfg.Matching.StoreThreshold != 0.3 {
		t.Errorf("store threshold = %v, want 0.3", cfg.Matching.StoreThreshold)
	}
	if cfg.RateLimit.PerIP != 120 {
		t.Errorf("per-ip rate limit = %d, want 120", cfg.RateLimit.PerIP)
	}
	if len(cfg.Catalog.Stores) != 5 {
		t.Fatalf("got %d catalog stores, want 5", len(cfg.Catalog.Stores))
	}
	if cfg.Catalog.Stores[0].Name != "ALDI" || cfg.Catalog.Stores[0].File != "aldi.csv" {
		t.Errorf("first store = %+v", cfg.Catalog.Stores[0])
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CARTCOMPARE_SERVER_PORT", "9090")
	t.Setenv("CARTCOMPARE_MATCHING_BULK_THRESHOLD", "0.6")
	t.Setenv("CARTCOMPARE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("server port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Matching.BulkThreshold != 0.6 {
		t.Errorf("bulk threshold = %v, want 0.6", cfg.Matching.BulkThreshold)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Matching: MatchingConfig{BulkThreshold: 0.4, StoreThreshold: 0.3},
			Catalog: CatalogConfig{Stores: []StoreConfig{
				{Name: "Tesco", File: "tesco.csv"},
			}},
			RateLimit: RateLimitConfig{PerIP: 60},
		}
	}

	if err := validate(valid()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bulk threshold above one",
			mutate:  func(c *Config) { c.Matching.BulkThreshold = 1.5 },
			wantErr: "bulk_threshold",
		},
		{
			name:    "zero store threshold",
			mutate:  func(c *Config) { c.Matching.StoreThreshold = 0 },
			wantErr: "store_threshold",
		},
		{
			name:    "no stores",
			mutate:  func(c *Config) { c.Catalog.Stores = nil },
			wantErr: "at least one catalog store",
		},
		{
			name:    "store without file",
			mutate:  func(c *Config) { c.Catalog.Stores = []StoreConfig{{Name: "Tesco"}} },
			wantErr: "name and file",
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.RateLimit.PerIP = 0 },
			wantErr: "per_ip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
