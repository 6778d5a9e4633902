package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tickerforge/internal/config"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Resolver.BatchSize != 50 {
		t.Fatalf("unexpected default batch size: %d", cfg.Resolver.BatchSize)
	}
	if cfg.Resolver.Workers != 10 {
		t.Fatalf("unexpected default workers: %d", cfg.Resolver.Workers)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Gateway.Port != 7497 {
		t.Fatalf("unexpected gateway port: %d", cfg.Gateway.Port)
	}
}

func TestLoadAppliesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[resolver]
batch_size = 25
currency = "chf"

[gateway]
port = 4002
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Resolver.BatchSize != 25 {
		t.Fatalf("batch size = %d, want 25", cfg.Resolver.BatchSize)
	}
	if cfg.Resolver.Currency != "CHF" {
		t.Fatalf("currency = %q, want normalized CHF", cfg.Resolver.Currency)
	}
	if cfg.Gateway.Port != 4002 {
		t.Fatalf("gateway port = %d, want 4002", cfg.Gateway.Port)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not expanded: %q", cfg.Paths.DataDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Resolver.Workers = 0
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "resolver.workers") {
		t.Fatalf("expected workers validation error, got %v", err)
	}

	cfg = config.Default()
	cfg.Gateway.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected gateway port validation error")
	}

	cfg = config.Default()
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected logging format validation error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[resolver]") {
		t.Fatal("sample config missing resolver section")
	}
}
