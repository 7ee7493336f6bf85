package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_FuzzyThresholdTooHigh(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Search: SearchConfig{FuzzyThreshold: 1.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for fuzzy threshold above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.MinQueryLength != 2 {
		t.Errorf("expected MinQueryLength=2, got %d", cfg.Search.MinQueryLength)
	}
	if cfg.Search.FuzzyThreshold != 0.7 {
		t.Errorf("expected FuzzyThreshold=0.7, got %g", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.MaxResults != 100 {
		t.Errorf("expected MaxResults=100, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.HighlightTag != "mark" {
		t.Errorf("expected HighlightTag='mark', got %q", cfg.Search.HighlightTag)
	}
	if cfg.Search.AutocompleteLimit != 10 {
		t.Errorf("expected AutocompleteLimit=10, got %d", cfg.Search.AutocompleteLimit)
	}
	if cfg.Search.CacheTTLSec != 300 {
		t.Errorf("expected CacheTTLSec=300, got %d", cfg.Search.CacheTTLSec)
	}
	if cfg.Search.CacheSize != 256 {
		t.Errorf("expected CacheSize=256, got %d", cfg.Search.CacheSize)
	}
	if cfg.Analytics.HistorySize != 100 {
		t.Errorf("expected HistorySize=100, got %d", cfg.Analytics.HistorySize)
	}
	if cfg.Analytics.NoResultsSize != 50 {
		t.Errorf("expected NoResultsSize=50, got %d", cfg.Analytics.NoResultsSize)
	}
	if cfg.Storage.KeyPrefix != "mythopedia:" {
		t.Errorf("expected KeyPrefix='mythopedia:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Search:    SearchConfig{MinQueryLength: 3, FuzzyThreshold: 0.8, MaxResults: 50, HighlightTag: "em"},
		Analytics: AnalyticsConfig{HistorySize: 20, NoResultsSize: 10},
		Storage:   StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.MinQueryLength != 3 {
		t.Errorf("expected MinQueryLength=3, got %d", cfg.Search.MinQueryLength)
	}
	if cfg.Search.HighlightTag != "em" {
		t.Errorf("expected HighlightTag='em', got %q", cfg.Search.HighlightTag)
	}
	if cfg.Analytics.HistorySize != 20 {
		t.Errorf("expected HistorySize=20, got %d", cfg.Analytics.HistorySize)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}
