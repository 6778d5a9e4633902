// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"tickerforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithGateway points the config at a test bridge endpoint.
func WithGateway(host string, port int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Gateway.Host = host
		cfg.Gateway.Port = port
	}
}

// WithQuoteSearchURL overrides the quote-search endpoint.
func WithQuoteSearchURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.QuoteSearch.BaseURL = baseURL
	}
}
